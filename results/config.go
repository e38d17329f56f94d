package results

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/estimator"
	"github.com/katalvlaran/perfectns/problem"
)

// Sentinel errors; configuration failures also match core.ErrInvalidConfig.
var (
	// ErrConfig rejects a malformed or incomplete experiment definition.
	ErrConfig = fmt.Errorf("results: invalid experiment: %w", core.ErrInvalidConfig)

	// ErrUnknownName rejects an unrecognized likelihood, prior or estimator
	// name.
	ErrUnknownName = fmt.Errorf("results: unknown name: %w", core.ErrInvalidConfig)
)

// LikelihoodConfig selects a likelihood by name: "gaussian", "exp_power" or
// "cauchy".
type LikelihoodConfig struct {
	Name  string  `yaml:"name"`
	Sigma float64 `yaml:"sigma"`
	Power float64 `yaml:"power,omitempty"`
}

// PriorConfig selects a prior by name: "gaussian", "gaussian_cached" or
// "uniform".
type PriorConfig struct {
	Name    string  `yaml:"name"`
	Sigma   float64 `yaml:"sigma,omitempty"`
	RMax    float64 `yaml:"rmax,omitempty"`
	LogXMin float64 `yaml:"logx_min,omitempty"`
	Size    int     `yaml:"size,omitempty"`
}

// Experiment is one comparison configuration. Zero fields take defaults:
// a unit Gaussian likelihood in a σ=10 Gaussian prior, dim 2, nlive 100,
// 10 exploratory live points, 10 repeats, fractions [1, 0], estimators
// [logz, r, theta1].
type Experiment struct {
	Likelihood   LikelihoodConfig `yaml:"likelihood"`
	Prior        PriorConfig      `yaml:"prior"`
	Dim          int              `yaml:"dim"`
	Nlive        int              `yaml:"nlive"`
	NliveInit    int              `yaml:"nlive_init"`
	Repeats      int              `yaml:"repeats"`
	Fractions    []float64        `yaml:"dynamic_fractions"`
	Estimators   []string         `yaml:"estimators"`
	StopFraction float64          `yaml:"stop_fraction"`
	Seed         uint64           `yaml:"seed"`
}

// Load reads and parses a YAML experiment file.
func Load(path string) (*Experiment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("results: read %s: %w", path, err)
	}

	return Parse(raw)
}

// Parse decodes a YAML experiment, fills defaults and validates.
func Parse(raw []byte) (*Experiment, error) {
	var e Experiment
	if err := yaml.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	e.fillDefaults()
	if err := e.validate(); err != nil {
		return nil, err
	}

	return &e, nil
}

// Default returns the default experiment, validated.
func Default() *Experiment {
	var e Experiment
	e.fillDefaults()

	return &e
}

func (e *Experiment) fillDefaults() {
	if e.Likelihood.Name == "" {
		e.Likelihood.Name = "gaussian"
	}
	if e.Likelihood.Sigma == 0 {
		e.Likelihood.Sigma = 1
	}
	if e.Prior.Name == "" {
		e.Prior.Name = "gaussian"
	}
	if e.Prior.Sigma == 0 {
		e.Prior.Sigma = 10
	}
	if e.Dim == 0 {
		e.Dim = 2
	}
	if e.Nlive == 0 {
		e.Nlive = 100
	}
	if e.NliveInit == 0 {
		e.NliveInit = 10
	}
	if e.Repeats == 0 {
		e.Repeats = 10
	}
	if e.Fractions == nil {
		e.Fractions = []float64{1, 0}
	}
	if len(e.Estimators) == 0 {
		e.Estimators = []string{"logz", "r", "theta1"}
	}
	if e.StopFraction == 0 {
		e.StopFraction = 1e-3
	}
}

func (e *Experiment) validate() error {
	if e.Dim < 1 {
		return fmt.Errorf("%w: dim %d", ErrConfig, e.Dim)
	}
	if e.Nlive < 1 || e.NliveInit < 1 {
		return fmt.Errorf("%w: nlive %d, nlive_init %d", ErrConfig, e.Nlive, e.NliveInit)
	}
	if e.Repeats < 2 {
		return fmt.Errorf("%w: repeats %d (need at least 2 for variances)", ErrConfig, e.Repeats)
	}
	for _, f := range e.Fractions {
		if !(f >= 0 && f <= 1) {
			return fmt.Errorf("%w: dynamic fraction %v", ErrConfig, f)
		}
	}
	if !(e.StopFraction > 0 && e.StopFraction < 1) {
		return fmt.Errorf("%w: stop fraction %v", ErrConfig, e.StopFraction)
	}
	if _, err := e.Problem(); err != nil {
		return err
	}
	if _, err := e.EstimatorList(); err != nil {
		return err
	}

	return nil
}

// Problem builds the configured likelihood/prior pair.
func (e *Experiment) Problem() (*problem.Problem, error) {
	var (
		like problem.Likelihood
		err  error
	)
	switch e.Likelihood.Name {
	case "gaussian":
		like, err = problem.NewGaussian(e.Dim, e.Likelihood.Sigma)
	case "exp_power":
		power := e.Likelihood.Power
		if power == 0 {
			power = 2
		}
		like, err = problem.NewExpPower(e.Dim, e.Likelihood.Sigma, power)
	case "cauchy":
		like, err = problem.NewCauchy(e.Dim, e.Likelihood.Sigma)
	default:
		return nil, fmt.Errorf("%w: likelihood %q", ErrUnknownName, e.Likelihood.Name)
	}
	if err != nil {
		return nil, err
	}

	var prior problem.Prior
	switch e.Prior.Name {
	case "gaussian":
		prior, err = problem.NewGaussianPrior(e.Dim, e.Prior.Sigma)
	case "gaussian_cached":
		logXMin := e.Prior.LogXMin
		if logXMin == 0 {
			logXMin = -1000
		}
		size := e.Prior.Size
		if size == 0 {
			size = 2000
		}
		prior, err = problem.NewCachedGaussianPrior(e.Dim, e.Prior.Sigma, logXMin, size)
	case "uniform":
		rmax := e.Prior.RMax
		if rmax == 0 {
			rmax = 10
		}
		prior, err = problem.NewUniformPrior(e.Dim, rmax)
	default:
		return nil, fmt.Errorf("%w: prior %q", ErrUnknownName, e.Prior.Name)
	}
	if err != nil {
		return nil, err
	}

	return problem.New(e.Dim, like, prior)
}

// EstimatorList resolves the configured estimator names.
func (e *Experiment) EstimatorList() ([]estimator.Estimator, error) {
	out := make([]estimator.Estimator, len(e.Estimators))
	for i, name := range e.Estimators {
		est, err := lookupEstimator(name)
		if err != nil {
			return nil, err
		}
		out[i] = est
	}

	return out, nil
}

func lookupEstimator(name string) (estimator.Estimator, error) {
	switch name {
	case "logz":
		return estimator.LogZ{}, nil
	case "z":
		return estimator.Z{}, nil
	case "n_samples":
		return estimator.NSamples{}, nil
	case "r":
		return estimator.RMean{}, nil
	case "theta1":
		return estimator.ParamMean{Index: 0}, nil
	case "theta2":
		return estimator.ParamMean{Index: 1}, nil
	case "theta1squ":
		return estimator.ParamSquaredMean{Index: 0}, nil
	case "median(theta1)":
		return estimator.ParamCred{P: 0.5, Index: 0}, nil
	case "rc_0.84":
		return estimator.RCred{P: 0.84}, nil
	case "theta1c_0.84":
		return estimator.ParamCred{P: 0.84, Index: 0}, nil
	default:
		return nil, fmt.Errorf("%w: estimator %q", ErrUnknownName, name)
	}
}
