package weights

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/shrink"
)

// constRun builds nlive whole-prior threads whose interleaved points mimic a
// constant-nlive standard run with total points and constant logL slope.
func constRun(t *testing.T, nlive, perThread int) *core.Run {
	t.Helper()
	threads := make([]*core.Thread, nlive)
	for ti := 0; ti < nlive; ti++ {
		pts := make([]core.Point, perThread)
		for pi := 0; pi < perThread; pi++ {
			rank := float64(pi*nlive + ti)
			pts[pi] = core.Point{
				LogL: 0.01 * rank,
				LogX: -float64(pi+1) - 0.001*float64(ti),
			}
		}
		th, err := core.NewThread(ti, math.NaN(), pts)
		require.NoError(t, err)
		threads[ti] = th
	}
	run, err := core.NewRun(threads)
	require.NoError(t, err)

	return run
}

func singleThreadRun(t *testing.T, logl []float64) *core.Run {
	t.Helper()
	pts := make([]core.Point, len(logl))
	for i, l := range logl {
		pts[i] = core.Point{LogL: l, LogX: -float64(i + 1)}
	}
	th, err := core.NewThread(0, math.NaN(), pts)
	require.NoError(t, err)
	run, err := core.NewRun([]*core.Thread{th})
	require.NoError(t, err)

	return run
}

func TestCalc_Validation(t *testing.T) {
	_, err := Calc(nil)
	require.ErrorIs(t, err, ErrNilRun)
	require.ErrorIs(t, err, core.ErrInvalidConfig)

	run := singleThreadRun(t, []float64{0, 1, 2})
	_, err = Calc(run, WithSimulatedVolumes(nil))
	require.ErrorIs(t, err, ErrNilRNG)
}

// With a flat likelihood the evidence is exactly the summed trapezoidal
// volume (1+X_0)/2 - X_{n-1}/2 under expected nlive=1 volumes X_i=e^{-(i+1)}.
func TestCalc_FlatLikelihoodExact(t *testing.T) {
	const n = 3
	run := singleThreadRun(t, make([]float64, n))
	w, err := Calc(run)
	require.NoError(t, err)

	want := math.Log((1+math.Exp(-1))/2 - math.Exp(-n)/2)
	require.InDelta(t, want, w.LogZ(), 1e-12)
}

func TestCalc_NormalizedSumsToOne(t *testing.T) {
	for _, nlive := range []int{2, 3, 10, 50} {
		run := constRun(t, nlive, 30)
		w, err := Calc(run)
		require.NoError(t, err)

		sum := 0.0
		for _, v := range w.Normalized() {
			sum += v
		}
		require.InDelta(t, 1.0, sum, 1e-10, "nlive=%d", nlive)
		require.Equal(t, run.NumPoints(), w.Len())
	}
}

// Volumes must follow the run-wide profile: the expected log decrement at
// each merged position is -1/nlive_i.
func TestCalc_VolumesTrackProfile(t *testing.T) {
	run := constRun(t, 4, 20)
	w, err := Calc(run)
	require.NoError(t, err)

	want, err := shrink.Expected(run.Nlive())
	require.NoError(t, err)
	require.InDeltaSlice(t, want, w.LogX(), 1e-12)
}

// Extreme likelihood magnitudes must pass through log-sum-exp untouched by
// overflow: shifting every logL by a constant shifts logZ by the same
// constant.
func TestCalc_LogSpaceStability(t *testing.T) {
	base := singleThreadRun(t, []float64{0, 0.5, 1, 1.5})
	shifted := singleThreadRun(t, []float64{9000, 9000.5, 9001, 9001.5})

	wb, err := Calc(base)
	require.NoError(t, err)
	ws, err := Calc(shifted)
	require.NoError(t, err)

	require.InDelta(t, wb.LogZ()+9000, ws.LogZ(), 1e-9)
	require.InDeltaSlice(t, wb.Normalized(), ws.Normalized(), 1e-12)
}

func TestCalc_SimulatedReproducible(t *testing.T) {
	run := constRun(t, 5, 40)

	a, err := Calc(run, WithSimulatedVolumes(shrink.RNG(17)))
	require.NoError(t, err)
	b, err := Calc(run, WithSimulatedVolumes(shrink.RNG(17)))
	require.NoError(t, err)
	require.Equal(t, a.LogZ(), b.LogZ())

	c, err := Calc(run, WithSimulatedVolumes(shrink.RNG(18)))
	require.NoError(t, err)
	require.NotEqual(t, a.LogZ(), c.LogZ())
}

// Simulated evidence scatters around the expected-volume value; over many
// draws the mean logZ should sit close to it.
func TestCalc_SimulatedCentredOnExpected(t *testing.T) {
	run := constRun(t, 20, 50)
	w, err := Calc(run)
	require.NoError(t, err)

	const draws = 200
	rng := shrink.RNG(4242)
	sum := 0.0
	for i := 0; i < draws; i++ {
		ws, err := Calc(run, WithSimulatedVolumes(rng))
		require.NoError(t, err)
		sum += ws.LogZ()
	}
	require.InDelta(t, w.LogZ(), sum/draws, 0.2)
}

func TestResult_AccessorsCopy(t *testing.T) {
	run := singleThreadRun(t, []float64{0, 1, 2})
	w, err := Calc(run)
	require.NoError(t, err)

	lw := w.LogW()
	lw[0] = 999
	require.NotEqual(t, lw[0], w.LogW()[0])
}
