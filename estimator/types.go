package estimator

import (
	"fmt"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/problem"
	"github.com/katalvlaran/perfectns/weights"
)

// Sentinel errors; configuration failures also match core.ErrInvalidConfig.
var (
	// ErrNilInput rejects a nil run or weight result.
	ErrNilInput = fmt.Errorf("estimator: nil run or weights: %w", core.ErrInvalidConfig)

	// ErrProbability rejects credible-interval probabilities outside (0,1).
	ErrProbability = fmt.Errorf("estimator: probability outside (0,1): %w", core.ErrInvalidConfig)

	// ErrMismatch rejects a weight result whose length differs from the run.
	ErrMismatch = fmt.Errorf("estimator: weights do not match run: %w", core.ErrInvalidConfig)
)

// Estimator is one scalar quantity computed from a weighted run.
type Estimator interface {
	// Name identifies the estimator in results tables.
	Name() string

	// Value returns the estimator applied to the weighted run.
	Value(run *core.Run, w *weights.Result) (float64, error)
}

// Analytic is implemented by estimators whose true value is known for a
// problem, either in closed form or by numeric integration.
type Analytic interface {
	Analytic(p *problem.Problem) (float64, error)
}

// PointValued is implemented by estimators with a natural per-point value
// (the quantity whose weighted average the estimator reports). The dynamic
// allocator's tuned importance uses these values.
type PointValued interface {
	PointValues(run *core.Run) ([]float64, error)
}

// check validates the (run, weights) pair shared by every estimator.
func check(run *core.Run, w *weights.Result) error {
	if run == nil || w == nil {
		return ErrNilInput
	}
	if run.NumPoints() != w.Len() {
		return fmt.Errorf("%w: run has %d points, weights %d", ErrMismatch, run.NumPoints(), w.Len())
	}

	return nil
}
