package estimator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/problem"
	"github.com/katalvlaran/perfectns/weights"
)

// LogZ is the log Bayesian evidence.
type LogZ struct{}

// Name implements Estimator.
func (LogZ) Name() string { return "logz" }

// Value implements Estimator.
func (LogZ) Value(run *core.Run, w *weights.Result) (float64, error) {
	if err := check(run, w); err != nil {
		return 0, err
	}

	return w.LogZ(), nil
}

// Analytic implements Analytic.
func (LogZ) Analytic(p *problem.Problem) (float64, error) {
	if v, err := p.AnalyticLogZ(); err == nil {
		return v, nil
	}

	return p.NumericLogZ(p.TailLogX()), nil
}

// Z is the Bayesian evidence.
type Z struct{}

// Name implements Estimator.
func (Z) Name() string { return "z" }

// Value implements Estimator.
func (Z) Value(run *core.Run, w *weights.Result) (float64, error) {
	if err := check(run, w); err != nil {
		return 0, err
	}

	return math.Exp(w.LogZ()), nil
}

// Analytic implements Analytic.
func (Z) Analytic(p *problem.Problem) (float64, error) {
	v, err := LogZ{}.Analytic(p)
	if err != nil {
		return 0, err
	}

	return math.Exp(v), nil
}

// NSamples is the number of samples in the run.
type NSamples struct{}

// Name implements Estimator.
func (NSamples) Name() string { return "n_samples" }

// Value implements Estimator.
func (NSamples) Value(run *core.Run, w *weights.Result) (float64, error) {
	if err := check(run, w); err != nil {
		return 0, err
	}

	return float64(w.Len()), nil
}

// RMean is the posterior mean radial coordinate.
type RMean struct{}

// Name implements Estimator.
func (RMean) Name() string { return "r" }

// Value implements Estimator.
func (RMean) Value(run *core.Run, w *weights.Result) (float64, error) {
	if err := check(run, w); err != nil {
		return 0, err
	}

	return weightedMean(run.Radius(), w.Normalized()), nil
}

// Analytic implements Analytic via the contour integral.
func (RMean) Analytic(p *problem.Problem) (float64, error) {
	return p.PosteriorExpectation(p.Radius, p.TailLogX()), nil
}

// PointValues implements PointValued.
func (RMean) PointValues(run *core.Run) ([]float64, error) {
	if run == nil {
		return nil, ErrNilInput
	}

	return run.Radius(), nil
}

// ParamMean is the posterior mean of one parameter component (zero-based).
// By spherical symmetry its true value is zero for every component.
type ParamMean struct {
	Index int
}

// Name implements Estimator.
func (e ParamMean) Name() string { return fmt.Sprintf("theta%d", e.Index+1) }

// Value implements Estimator.
func (e ParamMean) Value(run *core.Run, w *weights.Result) (float64, error) {
	if err := check(run, w); err != nil {
		return 0, err
	}
	vals, err := run.ThetaComponent(e.Index)
	if err != nil {
		return 0, err
	}

	return weightedMean(vals, w.Normalized()), nil
}

// Analytic implements Analytic.
func (e ParamMean) Analytic(*problem.Problem) (float64, error) { return 0, nil }

// PointValues implements PointValued.
func (e ParamMean) PointValues(run *core.Run) ([]float64, error) {
	if run == nil {
		return nil, ErrNilInput
	}

	return run.ThetaComponent(e.Index)
}

// ParamSquaredMean is the posterior second moment of one parameter
// component (zero-based).
type ParamSquaredMean struct {
	Index int
}

// Name implements Estimator.
func (e ParamSquaredMean) Name() string { return fmt.Sprintf("theta%dsqu", e.Index+1) }

// Value implements Estimator.
func (e ParamSquaredMean) Value(run *core.Run, w *weights.Result) (float64, error) {
	if err := check(run, w); err != nil {
		return 0, err
	}
	vals, err := run.ThetaComponent(e.Index)
	if err != nil {
		return 0, err
	}
	for i, v := range vals {
		vals[i] = v * v
	}

	return weightedMean(vals, w.Normalized()), nil
}

// Analytic implements Analytic: on the contour at volume X the mean squared
// component is r(X)²/d.
func (e ParamSquaredMean) Analytic(p *problem.Problem) (float64, error) {
	d := float64(p.Dim())

	return p.PosteriorExpectation(func(logX float64) float64 {
		r := p.Radius(logX)

		return r * r / d
	}, p.TailLogX()), nil
}

// RCred is the one-tailed credible interval on the radial coordinate.
type RCred struct {
	P float64
}

// Name implements Estimator.
func (e RCred) Name() string { return fmt.Sprintf("rc_%v", e.P) }

// Value implements Estimator.
func (e RCred) Value(run *core.Run, w *weights.Result) (float64, error) {
	if err := check(run, w); err != nil {
		return 0, err
	}
	if !(e.P > 0 && e.P < 1) {
		return 0, fmt.Errorf("%w: got %v", ErrProbability, e.P)
	}

	return weightedQuantile(run.Radius(), w.Normalized(), e.P), nil
}

// ParamCred is the one-tailed credible interval on one parameter component
// (zero-based).
type ParamCred struct {
	P     float64
	Index int
}

// Name implements Estimator.
func (e ParamCred) Name() string {
	if e.P == 0.5 {
		return fmt.Sprintf("median(theta%d)", e.Index+1)
	}

	return fmt.Sprintf("theta%dc_%v", e.Index+1, e.P)
}

// Value implements Estimator.
func (e ParamCred) Value(run *core.Run, w *weights.Result) (float64, error) {
	if err := check(run, w); err != nil {
		return 0, err
	}
	if !(e.P > 0 && e.P < 1) {
		return 0, fmt.Errorf("%w: got %v", ErrProbability, e.P)
	}
	vals, err := run.ThetaComponent(e.Index)
	if err != nil {
		return 0, err
	}

	return weightedQuantile(vals, w.Normalized(), e.P), nil
}

// Analytic implements Analytic for Gaussian likelihood and Gaussian prior:
// each posterior component is a centred Gaussian of variance
// (σ_L⁻² + σ_P⁻²)⁻¹, so the interval is its quantile. The median is zero
// for any spherically symmetric pairing.
func (e ParamCred) Analytic(p *problem.Problem) (float64, error) {
	if e.P == 0.5 {
		return 0, nil
	}
	like, ok := p.Likelihood().(*problem.Gaussian)
	if !ok {
		return 0, fmt.Errorf("estimator: %s: likelihood %T: %w",
			e.Name(), p.Likelihood(), problem.ErrNoAnalytic)
	}
	var sigmaP float64
	switch prior := p.Prior().(type) {
	case *problem.GaussianPrior:
		sigmaP = prior.Sigma()
	case *problem.CachedGaussianPrior:
		sigmaP = prior.Sigma()
	default:
		return 0, fmt.Errorf("estimator: %s: prior %T: %w",
			e.Name(), p.Prior(), problem.ErrNoAnalytic)
	}
	sigma := 1 / math.Sqrt(1/(like.Sigma()*like.Sigma())+1/(sigmaP*sigmaP))

	return math.Sqrt2 * math.Erfinv(2*e.P-1) * sigma, nil
}

func weightedMean(vals, norm []float64) float64 {
	sum := 0.0
	for i, v := range vals {
		sum += norm[i] * v
	}

	return sum
}
