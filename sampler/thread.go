package sampler

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/shrink"
)

// Thread generates one constrained single-live-point thread: volumes start
// with one shrinkage draw below logXStart and continue until they cross
// logXEnd, keeping the first point past the bound. startLogL records the
// likelihood level the thread branched from (NaN for the whole prior) and
// becomes the thread's lower bound in the merged live-point profile.
//
// A first point whose likelihood falls below startLogL means the likelihood
// rose somewhere between the branch radius and the smaller sampled radius;
// that violates the monotonicity contract and fails with
// core.ErrLikelihoodNotMonotonic.
func (g *Generator) Thread(rng *rand.Rand, label int, startLogL, logXStart, logXEnd float64) (*core.Thread, error) {
	if rng == nil {
		return nil, ErrNilRNG
	}
	if !(logXStart > logXEnd) || math.IsInf(logXEnd, -1) || math.IsNaN(logXEnd) {
		return nil, fmt.Errorf("%w: logXStart=%.6g logXEnd=%.6g", ErrBounds, logXStart, logXEnd)
	}

	var pts []core.Point
	logX := logXStart
	for {
		logX += shrink.LogShrink(1, rng)
		r := g.prob.Radius(logX)
		pts = append(pts, core.Point{
			LogL:   g.prob.LogLikeR(r),
			LogX:   logX,
			Radius: r,
			Theta:  sphereSample(rng, g.prob.Dim(), g.recordDims, r),
		})
		if logX <= logXEnd {
			break
		}
	}
	if !math.IsNaN(startLogL) && pts[0].LogL < startLogL {
		return nil, fmt.Errorf(
			"sampler: first point logL %.6g below branch level %.6g: %w",
			pts[0].LogL, startLogL, core.ErrLikelihoodNotMonotonic)
	}
	th, err := core.NewThread(label, startLogL, pts)
	if err != nil {
		return nil, fmt.Errorf("sampler: thread %d: %w", label, err)
	}

	return th, nil
}
