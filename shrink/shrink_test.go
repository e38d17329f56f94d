package shrink

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/perfectns/core"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(0, 0, RNG(1))
	require.ErrorIs(t, err, ErrNlive)
	require.ErrorIs(t, err, core.ErrInvalidConfig)

	_, err = New(5, 0, nil)
	require.ErrorIs(t, err, ErrNilRNG)
	require.ErrorIs(t, err, core.ErrInvalidConfig)

	s, err := New(5, -1.5, RNG(1))
	require.NoError(t, err)
	require.Equal(t, 5, s.Nlive())
	require.InDelta(t, -1.5, s.LogX(), 1e-15)
}

func TestSampler_StrictlyDecreasing(t *testing.T) {
	s, err := New(3, 0, RNG(7))
	require.NoError(t, err)

	prev := s.LogX()
	for i := 0; i < 1000; i++ {
		v := s.Next()
		require.Less(t, v, prev)
		prev = v
	}
}

func TestSampler_Reproducible(t *testing.T) {
	a, err := New(10, 0, RNG(42))
	require.NoError(t, err)
	b, err := New(10, 0, RNG(42))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}

func TestSampler_BatchMatchesNext(t *testing.T) {
	a, err := New(4, 0, RNG(11))
	require.NoError(t, err)
	b, err := New(4, 0, RNG(11))
	require.NoError(t, err)

	batch := a.Batch(50)
	require.Len(t, batch, 50)
	for i := 0; i < 50; i++ {
		require.Equal(t, b.Next(), batch[i])
	}
	require.Nil(t, a.Batch(0))
	require.Nil(t, a.Batch(-3))
}

func TestSampler_UntilIncludesTrigger(t *testing.T) {
	s, err := New(1, 0, RNG(3))
	require.NoError(t, err)

	const bound = -5.0
	seq := s.Until(func(logX float64, _ int) bool { return logX <= bound })
	require.NotEmpty(t, seq)
	require.LessOrEqual(t, seq[len(seq)-1], bound)
	for _, v := range seq[:len(seq)-1] {
		require.Greater(t, v, bound)
	}
}

// The mean log shrinkage at nlive=n is -1/n with standard deviation 1/n, so
// the sample mean over N draws sits within a few 1/(n*sqrt(N)).
func TestLogShrink_Mean(t *testing.T) {
	const (
		nlive = 5
		draws = 20000
	)
	rng := RNG(12345)
	sum := 0.0
	for i := 0; i < draws; i++ {
		sum += LogShrink(nlive, rng)
	}
	mean := sum / draws
	require.InDelta(t, -1.0/nlive, mean, 0.01)
}

func TestExpected_Exact(t *testing.T) {
	got, err := Expected([]int{2, 2, 4})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{-0.5, -1.0, -1.25}, got, 1e-12)

	_, err = Expected(nil)
	require.ErrorIs(t, err, ErrEmptyProfile)

	_, err = Expected([]int{2, 0})
	require.ErrorIs(t, err, ErrNlive)
}

func TestSimulate_MatchesProfile(t *testing.T) {
	profile := make([]int, 40000)
	for i := range profile {
		profile[i] = 4
	}
	got, err := Simulate(profile, RNG(99))
	require.NoError(t, err)
	require.Len(t, got, len(profile))

	prev := 0.0
	sum := 0.0
	for _, v := range got {
		require.Less(t, v, prev)
		sum += v - prev
		prev = v
	}
	require.InDelta(t, -0.25, sum/float64(len(profile)), 0.01)

	_, err = Simulate(profile, nil)
	require.ErrorIs(t, err, ErrNilRNG)
	_, err = Simulate(nil, RNG(1))
	require.ErrorIs(t, err, ErrEmptyProfile)
}

func TestSimulate_NeverInf(t *testing.T) {
	profile := []int{1, 1, 1, 1, 1, 1, 1, 1}
	got, err := Simulate(profile, RNG(5))
	require.NoError(t, err)
	for _, v := range got {
		require.False(t, math.IsInf(v, -1))
	}
}
