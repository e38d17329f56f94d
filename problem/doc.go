// Package problem bundles the pluggable ingredients of a perfect
// nested-sampling calculation: a spherically symmetric likelihood L(r), a
// prior described by its volume-to-radius inverse r(X), and the dimension.
//
// Contracts
//
//   - Likelihood.LogL must be non-increasing in radius.
//   - Prior.Radius must shrink as the log prior-volume decreases.
//
// Both contracts are probed on a coarse volume grid at construction
// (New rejects violations early) and re-checked lazily during sampling,
// where a violation surfaces as core.ErrLikelihoodNotMonotonic.
//
// The package ships the standard catalog used throughout the tests and the
// results driver: Gaussian, exponential-power and Cauchy likelihoods;
// Gaussian and uniform-ball priors; and a cached Gaussian prior backed by a
// caller-owned interpolation table for dimensions where the exact quantile
// underflows. Analytic evidence values and posterior expectations computed
// by direct numeric integration are available for cross-checking estimator
// output.
package problem
