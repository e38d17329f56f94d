// Package core: shared types and sentinel errors for nested-sampling runs.
package core

import (
	"errors"
	"math"
)

// Sentinel errors shared across the module. Component packages wrap these
// with fmt.Errorf("...: %w", err) so callers can match with errors.Is.
var (
	// ErrInvalidConfig is returned when a configuration value is rejected
	// before any sampling begins (live-point counts below one, fractions
	// outside [0,1], nil random streams, and similar).
	ErrInvalidConfig = errors.New("core: invalid configuration")

	// ErrLikelihoodNotMonotonic is returned when a likelihood violates its
	// contract of being non-increasing in radius: within a thread the
	// log-likelihood decreased while the volume shrank, or the merged
	// likelihood ordering disagrees with the volume ordering.
	ErrLikelihoodNotMonotonic = errors.New("core: likelihood not monotonic")

	// ErrAllocationStalled is returned (in strict mode) or reported (in the
	// default mode) when dynamic allocation cannot find a productive
	// likelihood region to refine.
	ErrAllocationStalled = errors.New("core: allocation stalled")

	// ErrInsufficientThreads is returned when bootstrap resampling is asked
	// to operate on fewer than two threads.
	ErrInsufficientThreads = errors.New("core: insufficient threads")

	// ErrNoThreads is returned when a Run is built from an empty thread set.
	ErrNoThreads = errors.New("core: run has no threads")

	// ErrEmptyThread is returned when a Thread is built with no points.
	ErrEmptyThread = errors.New("core: thread has no points")

	// ErrThreadOrder is returned when a Thread's volumes are not strictly
	// decreasing, or a point carries a NaN coordinate.
	ErrThreadOrder = errors.New("core: thread points out of order")

	// ErrThreadGap is returned when the merged live-point profile drops
	// below one at some likelihood level, i.e. no thread covers that part
	// of the run span.
	ErrThreadGap = errors.New("core: live-point coverage gap")
)

// Point is one nested-sampling sample: the coordinates recorded when a live
// point dies (or survives to the end of a run).
//
// LogX is the point's log prior-volume as drawn by its own thread, not the
// expected volume implied by the run-wide profile; weight computation
// re-estimates volumes from the profile.
type Point struct {
	// LogL is the log-likelihood at the point's radius.
	LogL float64

	// LogX is the log prior-volume drawn along the point's thread; ≤ 0 and
	// strictly decreasing along the thread.
	LogX float64

	// Radius is the radial coordinate r(X) given by the prior.
	Radius float64

	// Theta holds the recorded parameter components, sampled uniformly on
	// the sphere of radius Radius. Only the first few components are kept;
	// by spherical symmetry they share one marginal distribution.
	Theta []float64
}

// Thread is an ordered slice of Points produced by one single-live-point
// chain. StartLogL is the log-likelihood the thread branched from; NaN means
// the thread was started from the whole prior.
type Thread struct {
	// Label identifies the thread inside its Run. Assigned by generators;
	// not required to be unique across Runs.
	Label int

	// StartLogL is the strictly-lower likelihood bound the thread sampled
	// above, or NaN when the thread sampled the whole prior.
	StartLogL float64

	points []Point
}

// NewThread validates points and wraps them into a Thread.
//
// Validation:
//   - at least one point (ErrEmptyThread);
//   - no NaN coordinates and strictly decreasing LogX (ErrThreadOrder);
//   - non-decreasing LogL (ErrLikelihoodNotMonotonic).
//
// The points slice is retained; callers must not mutate it afterwards.
func NewThread(label int, startLogL float64, points []Point) (*Thread, error) {
	if len(points) == 0 {
		return nil, ErrEmptyThread
	}
	var prev Point
	for i, pt := range points {
		if math.IsNaN(pt.LogL) || math.IsNaN(pt.LogX) {
			return nil, ErrThreadOrder
		}
		if i > 0 {
			if pt.LogX >= prev.LogX {
				return nil, ErrThreadOrder
			}
			if pt.LogL < prev.LogL {
				return nil, ErrLikelihoodNotMonotonic
			}
		}
		prev = pt
	}

	return &Thread{Label: label, StartLogL: startLogL, points: points}, nil
}

// Len returns the number of points in the thread.
func (t *Thread) Len() int { return len(t.points) }

// Point returns the i-th point (ascending likelihood order).
func (t *Thread) Point(i int) Point { return t.points[i] }

// EndLogL returns the log-likelihood of the thread's final (highest) point.
func (t *Thread) EndLogL() float64 { return t.points[len(t.points)-1].LogL }

// WholePrior reports whether the thread sampled from the whole prior
// (no lower likelihood bound).
func (t *Thread) WholePrior() bool { return math.IsNaN(t.StartLogL) }
