package problem

import (
	"fmt"
	"math"
)

// Gaussian is the normalized d-dimensional Gaussian likelihood
//
//	logL(r) = -r²/(2σ²) - (d/2)·log(2πσ²).
type Gaussian struct {
	sigma float64
	norm  float64 // -(d/2)·log(2πσ²)
}

// NewGaussian returns a Gaussian likelihood of scale sigma in dim dimensions.
func NewGaussian(dim int, sigma float64) (*Gaussian, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrDim, dim)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %.6g", ErrScale, sigma)
	}

	return &Gaussian{
		sigma: sigma,
		norm:  -0.5 * float64(dim) * math.Log(2*math.Pi*sigma*sigma),
	}, nil
}

// LogL implements Likelihood.
func (g *Gaussian) LogL(r float64) float64 {
	return -r*r/(2*g.sigma*g.sigma) + g.norm
}

// Sigma returns the likelihood scale.
func (g *Gaussian) Sigma() float64 { return g.sigma }

// ExpPower is the normalized exponential-power likelihood
//
//	logL(r) = -(r²/(2σ²))^b + logΓ(d/2) + log b - logΓ(d/(2b)) - (d/2)·log(2πσ²).
//
// b=1 reduces to Gaussian; b=2 has lighter tails, b<1 heavier.
type ExpPower struct {
	sigma float64
	power float64
	norm  float64
}

// NewExpPower returns an exponential-power likelihood of scale sigma and
// shape power in dim dimensions.
func NewExpPower(dim int, sigma, power float64) (*ExpPower, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrDim, dim)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %.6g", ErrScale, sigma)
	}
	if power <= 0 {
		return nil, fmt.Errorf("%w: power %.6g", ErrScale, power)
	}
	d := float64(dim)
	lgHalfD, _ := math.Lgamma(d / 2)
	lgShaped, _ := math.Lgamma(d / (2 * power))

	return &ExpPower{
		sigma: sigma,
		power: power,
		norm: lgHalfD + math.Log(power) - lgShaped -
			0.5*d*math.Log(2*math.Pi*sigma*sigma),
	}, nil
}

// LogL implements Likelihood.
func (e *ExpPower) LogL(r float64) float64 {
	return -math.Pow(r*r/(2*e.sigma*e.sigma), e.power) + e.norm
}

// Cauchy is the normalized d-dimensional Cauchy likelihood
//
//	logL(r) = logΓ((1+d)/2) - logΓ(1/2) - (d/2)·logπ - d·logσ
//	          - ((1+d)/2)·log(1 + r²/σ²).
//
// Its heavy tails spread the evidence integral over a much wider range of
// prior volumes than the Gaussian case.
type Cauchy struct {
	sigma float64
	halfP float64 // (1+d)/2
	norm  float64
}

// NewCauchy returns a Cauchy likelihood of scale sigma in dim dimensions.
func NewCauchy(dim int, sigma float64) (*Cauchy, error) {
	if dim < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrDim, dim)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: sigma %.6g", ErrScale, sigma)
	}
	d := float64(dim)
	lgNum, _ := math.Lgamma((1 + d) / 2)
	lgHalf, _ := math.Lgamma(0.5)

	return &Cauchy{
		sigma: sigma,
		halfP: (1 + d) / 2,
		norm:  lgNum - lgHalf - 0.5*d*math.Log(math.Pi) - d*math.Log(sigma),
	}, nil
}

// LogL implements Likelihood.
func (c *Cauchy) LogL(r float64) float64 {
	return c.norm - c.halfP*math.Log1p(r*r/(c.sigma*c.sigma))
}
