package problem

import (
	"fmt"
	"math"

	"github.com/katalvlaran/perfectns/core"
)

// Sentinel errors; configuration failures also match core.ErrInvalidConfig
// and contract violations match core.ErrLikelihoodNotMonotonic via errors.Is.
var (
	// ErrDim rejects dimensions below one.
	ErrDim = fmt.Errorf("problem: dimension below one: %w", core.ErrInvalidConfig)

	// ErrNilLikelihood rejects a nil likelihood.
	ErrNilLikelihood = fmt.Errorf("problem: likelihood is nil: %w", core.ErrInvalidConfig)

	// ErrNilPrior rejects a nil prior.
	ErrNilPrior = fmt.Errorf("problem: prior is nil: %w", core.ErrInvalidConfig)

	// ErrScale rejects non-positive scale parameters.
	ErrScale = fmt.Errorf("problem: scale must be positive: %w", core.ErrInvalidConfig)

	// ErrLikelihoodShape is returned when a likelihood increases with radius
	// somewhere on the probe grid.
	ErrLikelihoodShape = fmt.Errorf("problem: likelihood increases with radius: %w",
		core.ErrLikelihoodNotMonotonic)

	// ErrPriorShape is returned when a prior's radius fails to shrink with
	// the prior volume somewhere on the probe grid.
	ErrPriorShape = fmt.Errorf("problem: prior radius not monotonic in volume: %w",
		core.ErrInvalidConfig)

	// ErrNoAnalytic is returned when no closed-form evidence exists for a
	// likelihood/prior pairing.
	ErrNoAnalytic = fmt.Errorf("problem: no closed-form evidence for this pairing: %w",
		core.ErrInvalidConfig)
)

// Likelihood is a spherically symmetric likelihood: the log-likelihood as a
// function of the radial coordinate. Must be non-increasing in r.
type Likelihood interface {
	LogL(r float64) float64
}

// Prior describes a spherically symmetric prior through the inverse of its
// volume function: the radius enclosing a given log prior-volume. Must
// shrink as logX decreases.
type Prior interface {
	Radius(logX float64) float64
}

// probeGrid is the number of volume nodes New uses to check both contracts.
const probeGrid = 64

// Problem bundles a likelihood, a prior and the dimension into one validated
// sampling target. Immutable after construction; safe for concurrent use as
// long as the wrapped Likelihood and Prior are.
type Problem struct {
	dim   int
	like  Likelihood
	prior Prior
}

// New validates the pair on a coarse volume grid and wraps it. The grid
// spans logX from near zero down to roughly the depth a long run reaches;
// both contracts are re-checked lazily during sampling, where violations
// surface as core.ErrLikelihoodNotMonotonic.
func New(dim int, like Likelihood, prior Prior) (*Problem, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrDim, dim)
	}
	if like == nil {
		return nil, ErrNilLikelihood
	}
	if prior == nil {
		return nil, ErrNilPrior
	}
	p := &Problem{dim: dim, like: like, prior: prior}

	// Probe from shallow to deep volumes: radius must not grow and the
	// log-likelihood must not fall as logX decreases.
	depth := 10.0 * float64(dim+4)
	prevR := math.Inf(1)
	prevL := math.Inf(-1)
	for i := 0; i < probeGrid; i++ {
		logX := -1e-3 - depth*float64(i)/float64(probeGrid-1)
		r := prior.Radius(logX)
		if math.IsNaN(r) || r < 0 || r > prevR {
			return nil, fmt.Errorf("%w: radius %.6g at logX %.6g (previous %.6g)",
				ErrPriorShape, r, logX, prevR)
		}
		logL := like.LogL(r)
		if math.IsNaN(logL) || logL < prevL {
			return nil, fmt.Errorf("%w: logL %.6g at r %.6g (previous %.6g)",
				ErrLikelihoodShape, logL, r, prevL)
		}
		prevR, prevL = r, logL
	}

	return p, nil
}

// Dim returns the parameter-space dimension.
func (p *Problem) Dim() int { return p.dim }

// Radius returns the prior radius enclosing log prior-volume logX.
func (p *Problem) Radius(logX float64) float64 { return p.prior.Radius(logX) }

// LogLikeR returns the log-likelihood at radius r.
func (p *Problem) LogLikeR(r float64) float64 { return p.like.LogL(r) }

// LogLikeLogX returns the log-likelihood on the iso-likelihood contour
// enclosing log prior-volume logX.
func (p *Problem) LogLikeLogX(logX float64) float64 {
	return p.like.LogL(p.prior.Radius(logX))
}

// Likelihood returns the wrapped likelihood.
func (p *Problem) Likelihood() Likelihood { return p.like }

// Prior returns the wrapped prior.
func (p *Problem) Prior() Prior { return p.prior }

// TailLogX returns a log prior-volume deep enough that the posterior mass
// below it is negligible: the deepest scan node whose integrand
// logL(logX)+logX sits within 45 nats of the scan maximum, extended by a
// safety margin. Used as the lower integration bound by the analytic
// cross-checks.
func (p *Problem) TailLogX() float64 {
	const (
		nodes  = 256
		window = 45.0
		margin = 10.0
	)
	depth := 60.0 * float64(p.dim+4)
	best := math.Inf(-1)
	integrand := make([]float64, nodes)
	grid := make([]float64, nodes)
	for i := 0; i < nodes; i++ {
		logX := -1e-3 - depth*float64(i)/float64(nodes-1)
		grid[i] = logX
		integrand[i] = p.LogLikeLogX(logX) + logX
		if integrand[i] > best {
			best = integrand[i]
		}
	}
	tail := grid[nodes-1]
	for i := nodes - 1; i >= 0; i-- {
		if integrand[i] > best-window {
			tail = grid[i]
			break
		}
	}

	return tail - margin
}
