package dynamic

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/perfectns/core"
)

// Sentinel errors; configuration failures also match core.ErrInvalidConfig.
var (
	// ErrNilGenerator rejects a nil run generator.
	ErrNilGenerator = fmt.Errorf("dynamic: generator is nil: %w", core.ErrInvalidConfig)

	// ErrOption rejects an out-of-range option value; recorded at option
	// application and surfaced by New.
	ErrOption = fmt.Errorf("dynamic: option out of range: %w", core.ErrInvalidConfig)
)

// phase names the allocator's state for logging.
type phase int

const (
	phaseExplore phase = iota
	phaseEvaluate
	phaseAllocate
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseExplore:
		return "explore"
	case phaseEvaluate:
		return "evaluate"
	case phaseAllocate:
		return "allocate"
	default:
		return "done"
	}
}

// PointValueFunc returns an estimator's raw per-point values on a run, used
// by the tuned parameter importance (estimator.PointValued provides these).
type PointValueFunc func(run *core.Run) ([]float64, error)

type options struct {
	nliveInit    int
	nliveRef     int
	nbatch       int
	fraction     float64
	stopFraction float64
	maxSamples   int
	maxBatches   int
	significance float64
	strict       bool
	parallelism  int
	tuned        PointValueFunc
	logger       *slog.Logger

	err error
}

func defaultOptions() options {
	return options{
		nliveInit:    10,
		nliveRef:     100,
		nbatch:       1,
		fraction:     1,
		stopFraction: 1e-3,
		maxBatches:   1000,
		significance: 0.9,
	}
}

// Option configures the allocator. Violations are recorded and surfaced by
// New, wrapping ErrOption.
type Option func(*options)

func (o *options) record(err error) {
	if o.err == nil {
		o.err = err
	}
}

// WithNliveInit sets the exploratory run's live-point count (default 10).
func WithNliveInit(n int) Option {
	return func(o *options) {
		if n < 1 {
			o.record(fmt.Errorf("%w: nlive init %d", ErrOption, n))
		}
		o.nliveInit = n
	}
}

// WithNliveRef sets the reference live-point count used to derive the
// sample budget when none is configured (default 100).
func WithNliveRef(n int) Option {
	return func(o *options) {
		if n < 1 {
			o.record(fmt.Errorf("%w: nlive ref %d", ErrOption, n))
		}
		o.nliveRef = n
	}
}

// WithNbatch sets how many threads each allocation batch adds (default 1).
func WithNbatch(n int) Option {
	return func(o *options) {
		if n < 1 {
			o.record(fmt.Errorf("%w: nbatch %d", ErrOption, n))
		}
		o.nbatch = n
	}
}

// WithDynamicFraction blends the importance target: 1 is pure evidence
// accuracy, 0 pure parameter estimation (default 1).
func WithDynamicFraction(f float64) Option {
	return func(o *options) {
		if !(f >= 0 && f <= 1) {
			o.record(fmt.Errorf("%w: dynamic fraction %v", ErrOption, f))
		}
		o.fraction = f
	}
}

// WithEvidenceFractionStop sets the exploratory run's termination fraction
// (default 1e-3).
func WithEvidenceFractionStop(frac float64) Option {
	return func(o *options) {
		if !(frac > 0 && frac < 1) {
			o.record(fmt.Errorf("%w: evidence fraction %v", ErrOption, frac))
		}
		o.stopFraction = frac
	}
}

// WithMaxSamples caps the total sample count; zero derives the cap from the
// exploratory run and the reference live-point count (default zero).
func WithMaxSamples(n int) Option {
	return func(o *options) {
		if n < 0 {
			o.record(fmt.Errorf("%w: max samples %d", ErrOption, n))
		}
		o.maxSamples = n
	}
}

// WithMaxBatches bounds the allocation loop (default 1000).
func WithMaxBatches(n int) Option {
	return func(o *options) {
		if n < 1 {
			o.record(fmt.Errorf("%w: max batches %d", ErrOption, n))
		}
		o.maxBatches = n
	}
}

// WithSignificance sets the importance threshold selecting the allocation
// interval, on the max-normalized importance in (0,1) (default 0.9).
func WithSignificance(s float64) Option {
	return func(o *options) {
		if !(s > 0 && s < 1) {
			o.record(fmt.Errorf("%w: significance %v", ErrOption, s))
		}
		o.significance = s
	}
}

// WithStrict turns a stalled allocation into an error instead of a
// warning-level result.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// WithParallelism bounds the workers spawning batch threads; values below
// one mean GOMAXPROCS (default).
func WithParallelism(n int) Option {
	return func(o *options) { o.parallelism = n }
}

// WithTunedImportance weighs parameter importance by each point's distance
// from the estimator's running mean, |f_i - mean_w(f)|·w_i, instead of the
// plain posterior weight.
func WithTunedImportance(fn PointValueFunc) Option {
	return func(o *options) {
		if fn == nil {
			o.record(fmt.Errorf("%w: nil tuned point-value func", ErrOption))
		}
		o.tuned = fn
	}
}

// WithLogger enables progress logging (default: no logging).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
