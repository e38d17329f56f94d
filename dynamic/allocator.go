package dynamic

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/sampler"
	"github.com/katalvlaran/perfectns/shrink"
	"github.com/katalvlaran/perfectns/weights"
)

// Allocator runs the dynamic nested-sampling loop for one generator.
// Immutable after New; Generate may be called concurrently with distinct
// seeds.
type Allocator struct {
	gen  *sampler.Generator
	opts options
}

// Result is a completed dynamic run. Stalled marks a run that terminated
// because allocation could not find a productive region; the run itself is
// still the best obtained and fully weighted.
type Result struct {
	// Run merges the exploratory threads with every added thread.
	Run *core.Run

	// Weights is the final weight computation over Run.
	Weights *weights.Result

	// Batches counts completed allocation batches.
	Batches int

	// Stalled reports termination by a degenerate importance landscape
	// rather than an exhausted budget.
	Stalled bool
}

// New validates options and wraps the generator.
func New(gen *sampler.Generator, opts ...Option) (*Allocator, error) {
	if gen == nil {
		return nil, ErrNilGenerator
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.parallelism < 1 {
		o.parallelism = runtime.GOMAXPROCS(0)
	}

	return &Allocator{gen: gen, opts: o}, nil
}

// Generate performs one dynamic run. All randomness derives from seed:
// stream 0 drives the exploratory run, stream 1+k the k-th added thread.
func (a *Allocator) Generate(seed uint64) (*Result, error) {
	log := a.opts.logger
	if log != nil {
		log = log.With("seed", seed)
		log.Debug("dynamic run starting", "phase", phaseExplore.String(),
			"nlive_init", a.opts.nliveInit)
	}

	initial, err := a.gen.StandardRun(shrink.DeriveRNG(seed, 0), a.opts.nliveInit,
		sampler.EvidenceFraction(a.opts.stopFraction))
	if err != nil {
		return nil, fmt.Errorf("dynamic: exploratory run: %w", err)
	}
	initThreads := initial.Threads()
	run, err := core.NewRun(initThreads, core.WithInitCount(len(initThreads)))
	if err != nil {
		return nil, fmt.Errorf("dynamic: exploratory merge: %w", err)
	}

	budget := a.opts.maxSamples
	if budget == 0 {
		budget = run.NumPoints() * a.opts.nliveRef / a.opts.nliveInit
	}
	if log != nil {
		log.Debug("exploration finished", "samples", run.NumPoints(), "budget", budget)
	}

	res := &Result{Run: run}
	stream := uint64(1)
	for res.Batches < a.opts.maxBatches && run.NumPoints() < budget {
		w, err := weights.Calc(run)
		if err != nil {
			return nil, fmt.Errorf("dynamic: batch %d weights: %w", res.Batches, err)
		}
		imp, err := a.pointImportance(run, w)
		if err != nil {
			if errors.Is(err, core.ErrAllocationStalled) {
				res.Stalled = true
				break
			}

			return nil, err
		}
		lo, hi, ok := allocationInterval(imp, a.opts.significance)
		if !ok {
			res.Stalled = true
			break
		}

		startLogL, logXStart, logXEnd := a.threadBounds(run, lo, hi)
		if log != nil {
			log.Debug("allocating batch", "phase", phaseAllocate.String(),
				"batch", res.Batches, "samples", run.NumPoints(),
				"logl_start", startLogL, "logx_end", logXEnd)
		}
		added, err := a.spawnBatch(seed, stream, startLogL, logXStart, logXEnd, run.NumThreads())
		if err != nil {
			return nil, fmt.Errorf("dynamic: batch %d: %w", res.Batches, err)
		}
		stream += uint64(len(added))

		next, err := core.NewRun(append(run.Threads(), added...),
			core.WithInitCount(len(initThreads)))
		if err != nil {
			return nil, fmt.Errorf("dynamic: batch %d merge: %w", res.Batches, err)
		}
		if next.NumPoints() <= run.NumPoints() {
			res.Stalled = true
			break
		}
		run = next
		res.Run = run
		res.Batches++
	}

	if res.Stalled && a.opts.strict {
		return nil, fmt.Errorf("dynamic: after %d batches: %w",
			res.Batches, core.ErrAllocationStalled)
	}
	res.Weights, err = weights.Calc(run)
	if err != nil {
		return nil, fmt.Errorf("dynamic: final weights: %w", err)
	}
	if log != nil {
		log.Info("dynamic run finished", "phase", phaseDone.String(),
			"batches", res.Batches, "samples", run.NumPoints(),
			"threads", run.NumThreads(), "stalled", res.Stalled)
	}

	return res, nil
}

// threadBounds converts the allocation interval into the start state and
// end volume for new threads. An interval reaching the first point starts
// from the whole prior; one reaching the last point ends an e-fold past the
// deepest recorded volume, so new threads can extend the run.
func (a *Allocator) threadBounds(run *core.Run, lo, hi int) (startLogL, logXStart, logXEnd float64) {
	logl := run.LogL()
	logx := run.LogX()
	if lo == 0 {
		startLogL = math.NaN()
		logXStart = 0
	} else {
		startLogL = logl[lo-1]
		logXStart = logx[lo-1]
	}
	if hi < len(logx)-1 {
		logXEnd = logx[hi+1]
	} else {
		logXEnd = logx[len(logx)-1] - 1.0
	}

	return startLogL, logXStart, logXEnd
}

// spawnBatch generates nbatch threads over the same bounds in parallel,
// each on its own derived stream.
func (a *Allocator) spawnBatch(seed, stream uint64, startLogL, logXStart, logXEnd float64, labelBase int) ([]*core.Thread, error) {
	added := make([]*core.Thread, a.opts.nbatch)
	var eg errgroup.Group
	eg.SetLimit(a.opts.parallelism)
	for j := 0; j < a.opts.nbatch; j++ {
		eg.Go(func() error {
			rng := shrink.DeriveRNG(seed, stream+uint64(j))
			th, err := a.gen.Thread(rng, labelBase+j, startLogL, logXStart, logXEnd)
			if err != nil {
				return err
			}
			added[j] = th

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return added, nil
}
