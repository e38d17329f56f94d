package problem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

// GaussianPrior is a co-centred Gaussian prior of scale sigma. The fraction
// of prior mass inside radius r is the chi-squared CDF of (r/σ)² with d
// degrees of freedom, so
//
//	r(logX) = σ·sqrt(Quantile_{χ²(d)}(exp(logX))).
//
// The quantile argument underflows for logX below about -745; use
// CachedGaussianPrior for runs that reach such depths (high dimension or
// very long runs).
type GaussianPrior struct {
	sigma float64
	chi2  distuv.ChiSquared
}

// NewGaussianPrior returns a Gaussian prior of scale sigma in dim dimensions.
func NewGaussianPrior(dim int, sigma float64) (*GaussianPrior, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrDim, dim)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %.6g", ErrScale, sigma)
	}

	return &GaussianPrior{
		sigma: sigma,
		chi2:  distuv.ChiSquared{K: float64(dim)},
	}, nil
}

// Radius implements Prior.
func (g *GaussianPrior) Radius(logX float64) float64 {
	return g.sigma * math.Sqrt(g.chi2.Quantile(math.Exp(logX)))
}

// Sigma returns the prior scale.
func (g *GaussianPrior) Sigma() float64 { return g.sigma }

// UniformPrior is uniform over the d-ball of radius rmax:
// r(logX) = rmax·exp(logX/d).
type UniformPrior struct {
	rmax   float64
	invDim float64
}

// NewUniformPrior returns a uniform-ball prior of radius rmax in dim
// dimensions.
func NewUniformPrior(dim int, rmax float64) (*UniformPrior, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrDim, dim)
	}
	if rmax <= 0 {
		return nil, fmt.Errorf("%w: rmax %.6g", ErrScale, rmax)
	}

	return &UniformPrior{rmax: rmax, invDim: 1 / float64(dim)}, nil
}

// Radius implements Prior.
func (u *UniformPrior) Radius(logX float64) float64 {
	return u.rmax * math.Exp(logX*u.invDim)
}

// CachedGaussianPrior replaces the chi-squared quantile of GaussianPrior
// with a caller-owned interpolation table over a logX grid, built once at
// construction from the forward log-CDF (which stays accurate in log space
// long after exp(logX) has underflowed). The table is an explicit lookup
// structure passed into run generation like any other prior; lifetime and
// coverage are the caller's choice.
type CachedGaussianPrior struct {
	sigma   float64
	logXMin float64
	table   interp.PiecewiseLinear
}

// NewCachedGaussianPrior builds the lookup over size nodes spanning
// [logXMin, ~0). Lookups outside the grid return the nearest endpoint
// radius, so logXMin must cover the deepest volume the run will reach.
func NewCachedGaussianPrior(dim int, sigma, logXMin float64, size int) (*CachedGaussianPrior, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrDim, dim)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %.6g", ErrScale, sigma)
	}
	if logXMin >= 0 || math.IsInf(logXMin, -1) {
		return nil, fmt.Errorf("problem: cached prior logXMin %.6g must be finite and negative: %w",
			logXMin, ErrScale)
	}
	if size < 2 {
		return nil, fmt.Errorf("problem: cached prior table size %d below two: %w",
			size, ErrScale)
	}

	const logXMax = -1e-6
	logxs := make([]float64, size)
	radii := make([]float64, size)
	for i := range logxs {
		logxs[i] = logXMin + (logXMax-logXMin)*float64(i)/float64(size-1)
		radii[i] = invertLogVolume(float64(dim), sigma, logxs[i])
	}
	p := &CachedGaussianPrior{sigma: sigma, logXMin: logXMin}
	if err := p.table.Fit(logxs, radii); err != nil {
		return nil, fmt.Errorf("problem: cached prior table fit: %w", err)
	}

	return p, nil
}

// Radius implements Prior via the interpolation table.
func (c *CachedGaussianPrior) Radius(logX float64) float64 {
	return c.table.Predict(logX)
}

// Sigma returns the prior scale.
func (c *CachedGaussianPrior) Sigma() float64 { return c.sigma }

// LogXMin returns the deepest log volume the table covers.
func (c *CachedGaussianPrior) LogXMin() float64 { return c.logXMin }

// gaussianLogVolume returns log P(χ²(d) ≤ (r/σ)²), the log prior-volume
// inside radius r. For small arguments the regularized incomplete gamma is
// evaluated through its ascending series entirely in log space, so the
// result stays finite far below float underflow of the volume itself.
func gaussianLogVolume(dim, sigma, r float64) float64 {
	if r <= 0 {
		return math.Inf(-1)
	}
	s := dim / 2
	x := r * r / (2 * sigma * sigma)
	if x >= s+1 {
		return math.Log(mathext.GammaIncReg(s, x))
	}
	// P(s,x) = x^s e^{-x} / Γ(s) · Σ_{n≥0} x^n / (s(s+1)...(s+n))
	term := 1 / s
	sum := term
	for n := 1; n < 1000; n++ {
		term *= x / (s + float64(n))
		sum += term
		if term < sum*1e-17 {
			break
		}
	}
	lg, _ := math.Lgamma(s)

	return s*math.Log(x) - x + math.Log(sum) - lg
}

// invertLogVolume solves gaussianLogVolume(dim, sigma, r) = logX for r by
// bisection. The bracket is grown geometrically until it straddles logX.
func invertLogVolume(dim, sigma, logX float64) float64 {
	hi := sigma * (math.Sqrt(dim) + 10)
	for gaussianLogVolume(dim, sigma, hi) < logX {
		hi *= 2
	}
	lo := 0.0
	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		if gaussianLogVolume(dim, sigma, mid) < logX {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo <= math.Nextafter(lo, math.Inf(1))-lo {
			break
		}
	}

	return 0.5 * (lo + hi)
}
