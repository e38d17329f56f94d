package sampler

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/shrink"
)

// livePoint is the working state of one chain during a standard run.
type livePoint struct {
	logL   float64
	logX   float64
	radius float64
	theta  []float64
	pts    []core.Point
}

func (g *Generator) advance(rng *rand.Rand, lp *livePoint) {
	lp.logX += shrink.LogShrink(1, rng)
	lp.radius = g.prob.Radius(lp.logX)
	lp.theta = sphereSample(rng, g.prob.Dim(), g.recordDims, lp.radius)
	lp.logL = g.prob.LogLikeR(lp.radius)
}

// StandardRun performs one standard nested-sampling run with a constant
// live-point count: nlive interleaved single-live-point chains, the lowest
// likelihood dying each iteration. Volumes recorded per point are each
// chain's own stochastic draws (the exact joint distribution); the
// deterministic expected volume and the trapezoidal dead evidence are
// tracked separately for the stop rule. After the rule fires the surviving
// live points are appended, so every chain becomes a whole-prior thread
// ending at one of the final live points and the merged profile steps down
// from nlive to one over the last nlive points.
func (g *Generator) StandardRun(rng *rand.Rand, nlive int, stop StopRule) (*core.Run, error) {
	if rng == nil {
		return nil, ErrNilRNG
	}
	if nlive < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNlive, nlive)
	}
	if stop == nil {
		return nil, ErrNilStop
	}
	if err := stop.Err(); err != nil {
		return nil, err
	}

	live := make([]livePoint, nlive)
	liveLogL := make([]float64, nlive)
	for i := range live {
		g.advance(rng, &live[i])
		liveLogL[i] = live[i].logL
	}

	// Trapezoidal factor for the geometric expected-volume series.
	t := math.Exp(-1.0 / float64(nlive))
	logTrapz := math.Log(0.5 * (1/t - t))
	state := RunState{
		Nlive:    nlive,
		LogZDead: math.Inf(-1),
		LiveLogL: liveLogL,
	}
	for !stop.Done(state) {
		dying := 0
		for i := 1; i < nlive; i++ {
			if live[i].logL < live[dying].logL {
				dying = i
			}
		}
		lp := &live[dying]
		lp.pts = append(lp.pts, core.Point{
			LogL: lp.logL, LogX: lp.logX, Radius: lp.radius, Theta: lp.theta,
		})
		state.Iter++
		state.LogXExpected -= 1.0 / float64(nlive)
		state.LogZDead = logAddExp(state.LogZDead, lp.logL+logTrapz+state.LogXExpected)
		g.advance(rng, lp)
		liveLogL[dying] = lp.logL
	}

	// Surviving live points close their chains in likelihood order; the
	// merge re-sorts anyway, ordering labels here just keeps runs tidy.
	order := make([]int, nlive)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return live[order[a]].logL < live[order[b]].logL })

	threads := make([]*core.Thread, nlive)
	for rank, i := range order {
		lp := &live[i]
		lp.pts = append(lp.pts, core.Point{
			LogL: lp.logL, LogX: lp.logX, Radius: lp.radius, Theta: lp.theta,
		})
		th, err := core.NewThread(rank, math.NaN(), lp.pts)
		if err != nil {
			return nil, fmt.Errorf("sampler: standard run thread %d: %w", rank, err)
		}
		threads[rank] = th
	}
	run, err := core.NewRun(threads)
	if err != nil {
		return nil, fmt.Errorf("sampler: standard run merge: %w", err)
	}

	return run, nil
}

// logAddExp returns log(exp(a)+exp(b)) without overflow.
func logAddExp(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	if math.IsInf(a, -1) {
		return a
	}

	return a + math.Log1p(math.Exp(b-a))
}
