package problem

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// quadNodes is the Gauss-Legendre order used by the numeric cross-checks.
// The integrands are smooth single-bump functions of logX, for which a few
// hundred nodes give close to machine precision.
const quadNodes = 400

// AnalyticLogZ returns the closed-form log evidence where one exists:
// a Gaussian likelihood with a Gaussian (plain or cached) prior gives
//
//	logZ = -(d/2)·log(2π(σ_L² + σ_P²)).
//
// Other pairings return ErrNoAnalytic; use NumericLogZ instead.
func (p *Problem) AnalyticLogZ() (float64, error) {
	like, ok := p.like.(*Gaussian)
	if !ok {
		return 0, fmt.Errorf("%w: likelihood %T", ErrNoAnalytic, p.like)
	}
	var sigmaP float64
	switch prior := p.prior.(type) {
	case *GaussianPrior:
		sigmaP = prior.Sigma()
	case *CachedGaussianPrior:
		sigmaP = prior.Sigma()
	default:
		return 0, fmt.Errorf("%w: prior %T", ErrNoAnalytic, p.prior)
	}
	s2 := like.Sigma()*like.Sigma() + sigmaP*sigmaP

	return -0.5 * float64(p.dim) * math.Log(2*math.Pi*s2), nil
}

// NumericLogZ evaluates log Z = log ∫ L(X) dX by Gauss-Legendre quadrature
// over logX ∈ [logXMin, 0), shifting the integrand by its maximum so the
// exponentials cannot overflow. logXMin must be deep enough to contain the
// evidence mass; TailLogX provides a safe choice.
func (p *Problem) NumericLogZ(logXMin float64) float64 {
	shift := math.Inf(-1)
	for i := 0; i < quadNodes; i++ {
		logX := logXMin * (float64(i) + 0.5) / quadNodes
		if v := p.LogLikeLogX(logX) + logX; v > shift {
			shift = v
		}
	}
	z := quad.Fixed(func(logX float64) float64 {
		return math.Exp(p.LogLikeLogX(logX) + logX - shift)
	}, logXMin, 0, quadNodes, nil, 0)

	return math.Log(z) + shift
}

// PosteriorExpectation returns the posterior expectation of a spherically
// symmetric quantity via its iso-likelihood contour mean ftilde(logX):
//
//	E[f] = ∫ ftilde(X)·L(X)·X dlogX / Z
//
// (Chopin & Robert 2010), with Z evaluated by NumericLogZ over the same
// range. Used to cross-check estimator output against truth.
func (p *Problem) PosteriorExpectation(ftilde func(logX float64) float64, logXMin float64) float64 {
	logZ := p.NumericLogZ(logXMin)
	num := quad.Fixed(func(logX float64) float64 {
		return ftilde(logX) * math.Exp(p.LogLikeLogX(logX)+logX-logZ)
	}, logXMin, 0, quadNodes, nil, 0)

	return num
}
