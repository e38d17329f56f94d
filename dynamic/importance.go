package dynamic

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/weights"
)

// pointImportance returns the per-point importance of a merged run,
// normalized to maximum one: the dynamic-fraction blend of evidence and
// parameter importance, each first scaled to unit sum.
func (a *Allocator) pointImportance(run *core.Run, w *weights.Result) ([]float64, error) {
	logw := w.LogW()
	wrel := make([]float64, len(logw))
	shift := floats.Max(logw)
	for i, lw := range logw {
		wrel[i] = math.Exp(lw - shift)
	}

	var imp []float64
	switch a.opts.fraction {
	case 1:
		imp = zImportance(wrel, run.Nlive())
	case 0:
		var err error
		imp, err = a.pImportance(run, wrel)
		if err != nil {
			return nil, err
		}
	default:
		impZ := zImportance(wrel, run.Nlive())
		impP, err := a.pImportance(run, wrel)
		if err != nil {
			return nil, err
		}
		sumZ := floats.Sum(impZ)
		sumP := floats.Sum(impP)
		imp = make([]float64, len(wrel))
		for i := range imp {
			imp[i] = a.opts.fraction*impZ[i]/sumZ + (1-a.opts.fraction)*impP[i]/sumP
		}
	}

	return maxNormalize(imp)
}

// zImportance is the evidence importance: the expected share of remaining
// evidence per live point at each position.
func zImportance(wrel []float64, nlive []int) []float64 {
	imp := make([]float64, len(wrel))
	acc := 0.0
	for i, w := range wrel {
		acc += w
		imp[i] = acc
	}
	total := acc
	for i := range imp {
		imp[i] = (total - imp[i]) / float64(nlive[i])
	}

	return imp
}

// pImportance is the parameter-estimation importance: the relative
// posterior weight, or, when tuned to an estimator, the weight scaled by
// each point's distance from the estimator's weighted mean.
func (a *Allocator) pImportance(run *core.Run, wrel []float64) ([]float64, error) {
	if a.opts.tuned == nil {
		return append([]float64(nil), wrel...), nil
	}
	f, err := a.opts.tuned(run)
	if err != nil {
		return nil, fmt.Errorf("dynamic: tuned importance: %w", err)
	}
	if len(f) != len(wrel) {
		return nil, fmt.Errorf("dynamic: tuned importance returned %d values for %d points: %w",
			len(f), len(wrel), core.ErrInvalidConfig)
	}
	wSum := floats.Sum(wrel)
	mean := 0.0
	for i, v := range f {
		mean += v * wrel[i]
	}
	mean /= wSum
	imp := make([]float64, len(f))
	for i, v := range f {
		imp[i] = math.Abs(v-mean) * wrel[i]
	}

	return imp, nil
}

// allocationInterval returns the index range [lo, hi] of points whose
// importance exceeds the significance threshold, widened one point outward
// on each side. ok is false when the landscape is degenerate (no finite
// importance above the threshold).
func allocationInterval(imp []float64, significance float64) (lo, hi int, ok bool) {
	lo, hi = -1, -1
	for i, v := range imp {
		if v > significance {
			if lo < 0 {
				lo = i
			}
			hi = i
		}
	}
	if lo < 0 {
		return 0, 0, false
	}
	if lo > 0 {
		lo--
	}
	if hi < len(imp)-1 {
		hi++
	}

	return lo, hi, true
}

// maxNormalize scales to maximum one; degenerate input (empty, all zero or
// non-finite) reports failure through the returned error.
func maxNormalize(imp []float64) ([]float64, error) {
	best := math.Inf(-1)
	for _, v := range imp {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("dynamic: NaN importance: %w", core.ErrAllocationStalled)
		}
		if v > best {
			best = v
		}
	}
	if !(best > 0) || math.IsInf(best, 1) {
		return nil, fmt.Errorf("dynamic: degenerate importance maximum %v: %w",
			best, core.ErrAllocationStalled)
	}
	for i := range imp {
		imp[i] /= best
	}

	return imp, nil
}
