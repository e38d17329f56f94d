package weights

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/shrink"
)

// Sentinel errors; configuration failures also match core.ErrInvalidConfig.
var (
	// ErrNilRun rejects a nil run.
	ErrNilRun = fmt.Errorf("weights: run is nil: %w", core.ErrInvalidConfig)

	// ErrNilRNG rejects a nil random stream for simulated volumes.
	ErrNilRNG = fmt.Errorf("weights: random stream is nil: %w", core.ErrInvalidConfig)

	// ErrNotFinite reports a non-finite evidence after log-sum-exp
	// stabilization: an internal invariant violation, not a recoverable
	// numeric condition.
	ErrNotFinite = fmt.Errorf("weights: evidence not finite after stabilization")
)

type config struct {
	simulate bool
	rng      *rand.Rand
}

// Option configures weight computation.
type Option func(*config)

// WithSimulatedVolumes redraws the volumes from the shrinkage distribution
// with the profile's local live counts, instead of using their expected
// values. Each call should receive its own stream.
func WithSimulatedVolumes(rng *rand.Rand) Option {
	return func(c *config) {
		c.simulate = true
		c.rng = rng
	}
}

// Result holds the weights of one run. Immutable; accessors return copies.
type Result struct {
	logx []float64
	logw []float64
	norm []float64
	logZ float64
}

// Calc computes per-point weights and the evidence for a merged run.
func Calc(run *core.Run, opts ...Option) (*Result, error) {
	if run == nil {
		return nil, ErrNilRun
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	nlive := run.Nlive()
	var logx []float64
	var err error
	if cfg.simulate {
		if cfg.rng == nil {
			return nil, ErrNilRNG
		}
		logx, err = shrink.Simulate(nlive, cfg.rng)
	} else {
		logx, err = shrink.Expected(nlive)
	}
	if err != nil {
		return nil, err
	}

	logl := run.LogL()
	n := len(logx)
	logw := make([]float64, n)
	for i := 0; i < n; i++ {
		// Trapezoidal volume increment in log space: ΔX_i = (X_a - X_b)/2
		// with X_a the previous volume (whole prior ahead of the first
		// point) and X_b the next volume (zero past the last point).
		a := 0.0
		if i > 0 {
			a = logx[i-1]
		}
		b := math.Inf(-1)
		if i < n-1 {
			b = logx[i+1]
		}
		logw[i] = logl[i] + a + math.Log1p(-math.Exp(b-a)) - math.Ln2
	}

	logZ := floats.LogSumExp(logw)
	if math.IsNaN(logZ) || math.IsInf(logZ, 1) {
		return nil, fmt.Errorf("%w: logZ=%v over %d points", ErrNotFinite, logZ, n)
	}
	norm := make([]float64, n)
	for i, w := range logw {
		norm[i] = math.Exp(w - logZ)
	}

	return &Result{logx: logx, logw: logw, norm: norm, logZ: logZ}, nil
}

// LogZ returns the log evidence estimate.
func (r *Result) LogZ() float64 { return r.logZ }

// Len returns the number of weighted points.
func (r *Result) Len() int { return len(r.logw) }

// LogW returns a copy of the per-point log weights logL_i + log ΔX_i.
func (r *Result) LogW() []float64 {
	return append([]float64(nil), r.logw...)
}

// LogX returns a copy of the profile-consistent log volumes the weights
// were computed from.
func (r *Result) LogX() []float64 {
	return append([]float64(nil), r.logx...)
}

// Normalized returns a copy of the weights scaled to sum to one.
func (r *Result) Normalized() []float64 {
	return append([]float64(nil), r.norm...)
}
