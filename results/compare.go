package results

import (
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/dynamic"
	"github.com/katalvlaran/perfectns/estimator"
	"github.com/katalvlaran/perfectns/sampler"
	"github.com/katalvlaran/perfectns/shrink"
	"github.com/katalvlaran/perfectns/weights"
)

type options struct {
	parallelism int
	logger      *slog.Logger
}

// Option configures the comparison driver.
type Option func(*options)

// WithParallelism bounds the workers executing repeats; values below one
// mean GOMAXPROCS (default).
func WithParallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

// WithLogger enables progress logging (default: no logging).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Compare runs the experiment: Repeats independent runs for the standard
// sampler and for each dynamic-fraction variant, every estimator evaluated
// on every run. Streams are keyed by (variant, repeat), so results are
// reproducible for a fixed experiment seed.
func Compare(exp *Experiment, opts ...Option) (*Table, error) {
	if exp == nil {
		return nil, fmt.Errorf("%w: nil experiment", ErrConfig)
	}
	if err := exp.validate(); err != nil {
		return nil, err
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.parallelism < 1 {
		o.parallelism = runtime.GOMAXPROCS(0)
	}

	p, err := exp.Problem()
	if err != nil {
		return nil, err
	}
	gen, err := sampler.New(p)
	if err != nil {
		return nil, err
	}
	ests, err := exp.EstimatorList()
	if err != nil {
		return nil, err
	}

	variants := []string{"standard"}
	for _, f := range exp.Fractions {
		variants = append(variants, fmt.Sprintf("dynamic f=%g", f))
	}

	values := make([][][]float64, len(variants))
	for vi := range variants {
		vals, err := repeatVariant(exp, gen, ests, o, vi)
		if err != nil {
			return nil, fmt.Errorf("results: %s: %w", variants[vi], err)
		}
		values[vi] = vals
		if o.logger != nil {
			o.logger.Info("variant finished", "variant", variants[vi],
				"repeats", exp.Repeats)
		}
	}

	return newTable(estimatorNames(ests), variants, values)
}

// repeatVariant executes the experiment's repeats for variant vi (0 is the
// standard sampler, vi-1 indexes the dynamic fractions) and returns one
// value row per repeat.
func repeatVariant(exp *Experiment, gen *sampler.Generator, ests []estimator.Estimator, o options, vi int) ([][]float64, error) {
	values := make([][]float64, exp.Repeats)
	var eg errgroup.Group
	eg.SetLimit(o.parallelism)
	for i := 0; i < exp.Repeats; i++ {
		eg.Go(func() error {
			stream := uint64(vi*exp.Repeats + i)
			run, w, err := oneRun(exp, gen, vi, stream)
			if err != nil {
				return fmt.Errorf("repeat %d: %w", i, err)
			}
			row := make([]float64, len(ests))
			for j, est := range ests {
				v, err := est.Value(run, w)
				if err != nil {
					return fmt.Errorf("repeat %d: %s: %w", i, est.Name(), err)
				}
				row[j] = v
			}
			values[i] = row

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return values, nil
}

func oneRun(exp *Experiment, gen *sampler.Generator, vi int, stream uint64) (*core.Run, *weights.Result, error) {
	if vi == 0 {
		run, err := gen.StandardRun(shrink.DeriveRNG(exp.Seed, stream), exp.Nlive,
			sampler.EvidenceFraction(exp.StopFraction))
		if err != nil {
			return nil, nil, err
		}
		w, err := weights.Calc(run)
		if err != nil {
			return nil, nil, err
		}

		return run, w, nil
	}

	alloc, err := dynamic.New(gen,
		dynamic.WithNliveInit(exp.NliveInit),
		dynamic.WithNliveRef(exp.Nlive),
		dynamic.WithDynamicFraction(exp.Fractions[vi-1]),
		dynamic.WithEvidenceFractionStop(exp.StopFraction),
	)
	if err != nil {
		return nil, nil, err
	}
	res, err := alloc.Generate(shrink.DeriveSeed(exp.Seed, stream))
	if err != nil {
		return nil, nil, err
	}

	return res.Run, res.Weights, nil
}

func estimatorNames(ests []estimator.Estimator) []string {
	names := make([]string, len(ests))
	for i, est := range ests {
		names[i] = est.Name()
	}

	return names
}
