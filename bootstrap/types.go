package bootstrap

import (
	"fmt"

	"github.com/katalvlaran/perfectns/core"
)

// Sentinel errors; configuration failures also match core.ErrInvalidConfig.
var (
	// ErrNilRun rejects a nil run.
	ErrNilRun = fmt.Errorf("bootstrap: run is nil: %w", core.ErrInvalidConfig)

	// ErrNoEstimators rejects an empty estimator list.
	ErrNoEstimators = fmt.Errorf("bootstrap: no estimators: %w", core.ErrInvalidConfig)

	// ErrOption rejects an out-of-range option value; recorded at option
	// application and surfaced by Resample or SimulatedWeights.
	ErrOption = fmt.Errorf("bootstrap: option out of range: %w", core.ErrInvalidConfig)
)

type options struct {
	draws           int
	seed            uint64
	parallelism     int
	separateInitial bool

	err error
}

func defaultOptions() options {
	return options{draws: 200}
}

// Option configures a replication. Violations are recorded and surfaced by
// the entry point, wrapping ErrOption.
type Option func(*options)

func (o *options) record(err error) {
	if o.err == nil {
		o.err = err
	}
}

// WithDraws sets the number of replications (default 200).
func WithDraws(n int) Option {
	return func(o *options) {
		if n < 1 {
			o.record(fmt.Errorf("%w: draws %d", ErrOption, n))
		}
		o.draws = n
	}
}

// WithSeed fixes the random stream (default 0).
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithParallelism bounds the workers evaluating draws; values below one
// mean GOMAXPROCS (default).
func WithParallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

// WithSeparateInitial resamples a run's initial whole-prior threads
// separately from its dynamically added ones, keeping both group sizes.
// Runs without a recorded initial count ignore the option.
func WithSeparateInitial() Option {
	return func(o *options) { o.separateInitial = true }
}
