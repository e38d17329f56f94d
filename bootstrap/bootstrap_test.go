package bootstrap_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/perfectns/bootstrap"
	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/estimator"
	"github.com/katalvlaran/perfectns/problem"
	"github.com/katalvlaran/perfectns/sampler"
	"github.com/katalvlaran/perfectns/shrink"
)

func gaussianRun(t testing.TB, dim, nlive int, seed uint64) *core.Run {
	t.Helper()
	like, err := problem.NewGaussian(dim, 1)
	require.NoError(t, err)
	prior, err := problem.NewGaussianPrior(dim, 10)
	require.NoError(t, err)
	p, err := problem.New(dim, like, prior)
	require.NoError(t, err)
	g, err := sampler.New(p)
	require.NoError(t, err)
	run, err := g.StandardRun(shrink.RNG(seed), nlive, sampler.EvidenceFraction(1e-3))
	require.NoError(t, err)

	return run
}

func TestResample_Validation(t *testing.T) {
	ests := []estimator.Estimator{estimator.LogZ{}}

	_, err := bootstrap.Resample(nil, ests)
	require.ErrorIs(t, err, bootstrap.ErrNilRun)

	run := gaussianRun(t, 2, 10, 1)
	_, err = bootstrap.Resample(run, nil)
	require.ErrorIs(t, err, bootstrap.ErrNoEstimators)

	_, err = bootstrap.Resample(run, ests, bootstrap.WithDraws(0))
	require.ErrorIs(t, err, bootstrap.ErrOption)
	require.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestResample_NeedsTwoThreads(t *testing.T) {
	run := gaussianRun(t, 2, 10, 2)
	single, err := core.NewRun(run.Threads()[:1])
	require.NoError(t, err)

	_, err = bootstrap.Resample(single, []estimator.Estimator{estimator.LogZ{}})
	require.ErrorIs(t, err, core.ErrInsufficientThreads)
}

// The bootstrap standard deviation of logZ should approximate the
// sqrt(d/nlive) scaling of nested-sampling evidence error.
func TestResample_LogZSpread(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical spread test")
	}
	const (
		dim   = 2
		nlive = 50
	)
	run := gaussianRun(t, dim, nlive, 3)

	res, err := bootstrap.Resample(run, []estimator.Estimator{estimator.LogZ{}},
		bootstrap.WithDraws(200), bootstrap.WithSeed(17))
	require.NoError(t, err)

	_, std := res.Summary(0)
	want := math.Sqrt(float64(dim) / nlive)
	require.Greater(t, std, want/3, "std=%v want~%v", std, want)
	require.Less(t, std, want*3, "std=%v want~%v", std, want)
}

func TestResample_Deterministic(t *testing.T) {
	run := gaussianRun(t, 2, 20, 4)
	ests := []estimator.Estimator{estimator.LogZ{}, estimator.RMean{}}

	a, err := bootstrap.Resample(run, ests,
		bootstrap.WithDraws(30), bootstrap.WithSeed(9), bootstrap.WithParallelism(1))
	require.NoError(t, err)
	b, err := bootstrap.Resample(run, ests,
		bootstrap.WithDraws(30), bootstrap.WithSeed(9), bootstrap.WithParallelism(4))
	require.NoError(t, err)

	require.Equal(t, []string{"logz", "r"}, a.Names())
	require.Equal(t, a.Samples(0), b.Samples(0))
	require.Equal(t, a.Samples(1), b.Samples(1))

	c, err := bootstrap.Resample(run, ests,
		bootstrap.WithDraws(30), bootstrap.WithSeed(10))
	require.NoError(t, err)
	require.NotEqual(t, a.Samples(0), c.Samples(0))
}

func TestResample_SeparateInitial(t *testing.T) {
	run := gaussianRun(t, 2, 20, 5)
	marked, err := core.NewRun(run.Threads(), core.WithInitCount(5))
	require.NoError(t, err)

	res, err := bootstrap.Resample(marked, []estimator.Estimator{estimator.LogZ{}},
		bootstrap.WithDraws(40), bootstrap.WithSeed(6), bootstrap.WithSeparateInitial())
	require.NoError(t, err)

	mean, std := res.Summary(0)
	require.False(t, math.IsNaN(mean))
	require.Greater(t, std, 0.0)
}

func TestSimulatedWeights(t *testing.T) {
	run := gaussianRun(t, 2, 30, 7)
	ests := []estimator.Estimator{estimator.LogZ{}}

	res, err := bootstrap.SimulatedWeights(run, ests,
		bootstrap.WithDraws(50), bootstrap.WithSeed(11))
	require.NoError(t, err)
	_, std := res.Summary(0)
	require.Greater(t, std, 0.0)

	again, err := bootstrap.SimulatedWeights(run, ests,
		bootstrap.WithDraws(50), bootstrap.WithSeed(11))
	require.NoError(t, err)
	require.Equal(t, res.Samples(0), again.Samples(0))

	// Single-thread runs are fine here: no thread resampling happens.
	single, err := core.NewRun(run.Threads()[:1])
	require.NoError(t, err)
	_, err = bootstrap.SimulatedWeights(single, ests, bootstrap.WithDraws(10))
	require.NoError(t, err)
}

func TestResult_CopyingAccessors(t *testing.T) {
	run := gaussianRun(t, 2, 10, 8)
	res, err := bootstrap.Resample(run, []estimator.Estimator{estimator.LogZ{}},
		bootstrap.WithDraws(10))
	require.NoError(t, err)

	s := res.Samples(0)
	s[0] = math.Inf(1)
	require.NotEqual(t, s[0], res.Samples(0)[0])

	names := res.Names()
	names[0] = "mutated"
	require.Equal(t, "logz", res.Names()[0])
}
