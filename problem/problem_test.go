package problem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/perfectns/core"
)

func mustGaussianPair(t *testing.T, dim int, sigmaL, sigmaP float64) *Problem {
	t.Helper()
	like, err := NewGaussian(dim, sigmaL)
	require.NoError(t, err)
	prior, err := NewGaussianPrior(dim, sigmaP)
	require.NoError(t, err)
	p, err := New(dim, like, prior)
	require.NoError(t, err)

	return p
}

func TestNew_Validation(t *testing.T) {
	like, err := NewGaussian(3, 1)
	require.NoError(t, err)
	prior, err := NewGaussianPrior(3, 10)
	require.NoError(t, err)

	_, err = New(0, like, prior)
	require.ErrorIs(t, err, ErrDim)
	require.ErrorIs(t, err, core.ErrInvalidConfig)

	_, err = New(3, nil, prior)
	require.ErrorIs(t, err, ErrNilLikelihood)

	_, err = New(3, like, nil)
	require.ErrorIs(t, err, ErrNilPrior)

	p, err := New(3, like, prior)
	require.NoError(t, err)
	require.Equal(t, 3, p.Dim())
}

// risingLikelihood violates the non-increasing contract.
type risingLikelihood struct{}

func (risingLikelihood) LogL(r float64) float64 { return r }

func TestNew_RejectsRisingLikelihood(t *testing.T) {
	prior, err := NewGaussianPrior(2, 1)
	require.NoError(t, err)

	_, err = New(2, risingLikelihood{}, prior)
	require.ErrorIs(t, err, ErrLikelihoodShape)
	require.ErrorIs(t, err, core.ErrLikelihoodNotMonotonic)
}

func TestCatalog_Validation(t *testing.T) {
	_, err := NewGaussian(1, 0)
	require.ErrorIs(t, err, ErrScale)
	_, err = NewExpPower(1, 1, -1)
	require.ErrorIs(t, err, ErrScale)
	_, err = NewCauchy(0, 1)
	require.ErrorIs(t, err, ErrDim)
	_, err = NewGaussianPrior(1, -2)
	require.ErrorIs(t, err, ErrScale)
	_, err = NewUniformPrior(0, 1)
	require.ErrorIs(t, err, ErrDim)
	_, err = NewCachedGaussianPrior(2, 1, 5, 100)
	require.ErrorIs(t, err, ErrScale)
	_, err = NewCachedGaussianPrior(2, 1, -100, 1)
	require.ErrorIs(t, err, ErrScale)
}

func TestExpPower_ReducesToGaussian(t *testing.T) {
	const dim = 4
	g, err := NewGaussian(dim, 1.5)
	require.NoError(t, err)
	e, err := NewExpPower(dim, 1.5, 1)
	require.NoError(t, err)

	for _, r := range []float64{0, 0.1, 1, 2.5, 7} {
		require.InDelta(t, g.LogL(r), e.LogL(r), 1e-12, "r=%v", r)
	}
}

func TestCauchy_MonotoneAndNormalized1D(t *testing.T) {
	c, err := NewCauchy(1, 2)
	require.NoError(t, err)

	// In one dimension the density at r=0 is 1/(πσ).
	require.InDelta(t, math.Log(1/(math.Pi*2)), c.LogL(0), 1e-12)
	prev := math.Inf(1)
	for r := 0.0; r < 50; r += 0.5 {
		v := c.LogL(r)
		require.LessOrEqual(t, v, prev)
		prev = v
	}
}

func TestGaussianPrior_RoundTrip(t *testing.T) {
	const dim = 5
	prior, err := NewGaussianPrior(dim, 2)
	require.NoError(t, err)

	chi2 := distuv.ChiSquared{K: dim}
	for _, r := range []float64{0.5, 1, 2, 4, 8} {
		logX := math.Log(chi2.CDF(r * r / 4))
		require.InDelta(t, r, prior.Radius(logX), 1e-8, "r=%v", r)
	}
}

func TestUniformPrior_Radius(t *testing.T) {
	prior, err := NewUniformPrior(3, 10)
	require.NoError(t, err)

	require.InDelta(t, 10, prior.Radius(0), 1e-12)
	require.InDelta(t, 10*math.Exp(-1), prior.Radius(-3), 1e-12)
}

func TestCachedGaussianPrior_MatchesExact(t *testing.T) {
	const dim = 5
	exact, err := NewGaussianPrior(dim, 3)
	require.NoError(t, err)
	cached, err := NewCachedGaussianPrior(dim, 3, -200, 4000)
	require.NoError(t, err)

	for logX := -1.0; logX > -150; logX -= 7 {
		re := exact.Radius(logX)
		rc := cached.Radius(logX)
		require.InEpsilon(t, re, rc, 5e-3, "logX=%v", logX)
	}
}

func TestCachedGaussianPrior_DeepVolumes(t *testing.T) {
	// exp(logX) underflows long before -5000; the cached table must still
	// produce finite, monotone radii there.
	cached, err := NewCachedGaussianPrior(100, 1, -6000, 2000)
	require.NoError(t, err)

	prev := 0.0
	for logX := -5500.0; logX < -1; logX += 250 {
		r := cached.Radius(logX)
		require.False(t, math.IsNaN(r))
		require.Greater(t, r, prev)
		prev = r
	}
}

func TestGaussianLogVolume_AgreesWithCDF(t *testing.T) {
	chi2 := distuv.ChiSquared{K: 7}
	for _, r := range []float64{0.5, 1, 2, 3, 5} {
		want := math.Log(chi2.CDF(r * r))
		require.InDelta(t, want, gaussianLogVolume(7, 1, r), 1e-9, "r=%v", r)
	}
}

func TestAnalyticLogZ_GaussianPair(t *testing.T) {
	p := mustGaussianPair(t, 3, 1, 10)

	want := -1.5 * math.Log(2*math.Pi*101)
	got, err := p.AnalyticLogZ()
	require.NoError(t, err)
	require.InDelta(t, want, got, 1e-12)
}

func TestAnalyticLogZ_NoClosedForm(t *testing.T) {
	like, err := NewCauchy(2, 1)
	require.NoError(t, err)
	prior, err := NewGaussianPrior(2, 5)
	require.NoError(t, err)
	p, err := New(2, like, prior)
	require.NoError(t, err)

	_, err = p.AnalyticLogZ()
	require.ErrorIs(t, err, ErrNoAnalytic)
}

func TestNumericLogZ_MatchesClosedForm(t *testing.T) {
	for _, dim := range []int{2, 5, 10} {
		p := mustGaussianPair(t, dim, 1, 10)
		want, err := p.AnalyticLogZ()
		require.NoError(t, err)
		got := p.NumericLogZ(p.TailLogX())
		require.InDelta(t, want, got, 1e-6, "dim=%d", dim)
	}
}

func TestPosteriorExpectation_SecondMoment(t *testing.T) {
	const dim = 4
	p := mustGaussianPair(t, dim, 1, 10)

	// Gaussian times Gaussian: the posterior of each component is centred
	// Gaussian with variance (σ_L^-2 + σ_P^-2)^-1, so E[θ₁²] is exactly that.
	want := 1 / (1 + 1.0/100)
	got := p.PosteriorExpectation(func(logX float64) float64 {
		r := p.Radius(logX)
		return r * r / dim
	}, p.TailLogX())
	require.InDelta(t, want, got, 1e-4)
}
