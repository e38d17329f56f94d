package bootstrap

import (
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/estimator"
	"github.com/katalvlaran/perfectns/shrink"
	"github.com/katalvlaran/perfectns/weights"
)

// Result holds the replicated estimator values of one replication scheme.
type Result struct {
	names   []string
	samples [][]float64
}

// Names returns the estimator names, in input order.
func (r *Result) Names() []string {
	return append([]string(nil), r.names...)
}

// Samples returns the replicated values of estimator i.
func (r *Result) Samples(i int) []float64 {
	return append([]float64(nil), r.samples[i]...)
}

// Summary returns the mean and standard deviation of estimator i's
// replicated values; the standard deviation is the uncertainty estimate.
func (r *Result) Summary(i int) (mean, std float64) {
	return stat.MeanStdDev(r.samples[i], nil)
}

// Resample bootstraps the run's threads: each draw selects threads with
// replacement, remerges, reweights and re-evaluates every estimator. Runs
// with fewer than two threads have no resampling variability to measure.
func Resample(run *core.Run, ests []estimator.Estimator, opts ...Option) (*Result, error) {
	o, err := applyOptions(run, ests, opts)
	if err != nil {
		return nil, err
	}
	if run.NumThreads() < 2 {
		return nil, fmt.Errorf("bootstrap: %d threads: %w",
			run.NumThreads(), core.ErrInsufficientThreads)
	}
	threads := run.Threads()
	initCount := 0
	if o.separateInitial {
		initCount = run.InitCount()
	}

	return replicate(o, ests, func(rng *rand.Rand) (*core.Run, *weights.Result, error) {
		picked := resampleThreads(rng, threads, initCount)
		rep, err := core.NewRun(picked, core.WithInitCount(initCount))
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap: remerge: %w", err)
		}
		w, err := weights.Calc(rep)
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap: reweight: %w", err)
		}

		return rep, w, nil
	})
}

// SimulatedWeights keeps the run fixed and redraws the stochastic shrinkage
// volumes per draw, isolating the prior-volume uncertainty.
func SimulatedWeights(run *core.Run, ests []estimator.Estimator, opts ...Option) (*Result, error) {
	o, err := applyOptions(run, ests, opts)
	if err != nil {
		return nil, err
	}

	return replicate(o, ests, func(rng *rand.Rand) (*core.Run, *weights.Result, error) {
		w, err := weights.Calc(run, weights.WithSimulatedVolumes(rng))
		if err != nil {
			return nil, nil, fmt.Errorf("bootstrap: simulated weights: %w", err)
		}

		return run, w, nil
	})
}

func applyOptions(run *core.Run, ests []estimator.Estimator, opts []Option) (options, error) {
	o := defaultOptions()
	if run == nil {
		return o, ErrNilRun
	}
	if len(ests) == 0 {
		return o, ErrNoEstimators
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o, o.err
	}
	if o.parallelism < 1 {
		o.parallelism = runtime.GOMAXPROCS(0)
	}

	return o, nil
}

// replicate runs the draws in parallel, each on its own derived stream,
// filling a preallocated slot per draw.
func replicate(o options, ests []estimator.Estimator, draw func(*rand.Rand) (*core.Run, *weights.Result, error)) (*Result, error) {
	values := make([][]float64, o.draws)
	p := pool.New().WithErrors().WithMaxGoroutines(o.parallelism)
	for d := 0; d < o.draws; d++ {
		p.Go(func() error {
			rng := shrink.DeriveRNG(o.seed, uint64(d))
			rep, w, err := draw(rng)
			if err != nil {
				return err
			}
			row := make([]float64, len(ests))
			for i, est := range ests {
				v, err := est.Value(rep, w)
				if err != nil {
					return fmt.Errorf("bootstrap: %s: %w", est.Name(), err)
				}
				row[i] = v
			}
			values[d] = row

			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	res := &Result{
		names:   make([]string, len(ests)),
		samples: make([][]float64, len(ests)),
	}
	for i, est := range ests {
		res.names[i] = est.Name()
		col := make([]float64, o.draws)
		for d := range values {
			col[d] = values[d][i]
		}
		res.samples[i] = col
	}

	return res, nil
}

// resampleThreads picks len(threads) threads with replacement. A positive
// initCount resamples the first initCount threads and the remainder as two
// independent groups, preserving both sizes.
func resampleThreads(rng *rand.Rand, threads []*core.Thread, initCount int) []*core.Thread {
	if initCount <= 0 || initCount >= len(threads) {
		return pickWithReplacement(rng, threads, len(threads))
	}
	picked := pickWithReplacement(rng, threads[:initCount], initCount)

	return append(picked, pickWithReplacement(rng, threads[initCount:], len(threads)-initCount)...)
}

func pickWithReplacement(rng *rand.Rand, threads []*core.Thread, n int) []*core.Thread {
	out := make([]*core.Thread, n)
	for i := range out {
		out[i] = threads[rng.Intn(len(threads))]
	}

	return out
}
