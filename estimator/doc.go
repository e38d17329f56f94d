// Package estimator defines the quantities computed from a weighted run:
// the evidence, the sample count, and posterior summaries of the radial
// coordinate and individual parameter components (means, second moments,
// one-tailed credible intervals).
//
// Each estimator consumes the immutable pair (core.Run, weights.Result).
// Two optional capabilities refine what an estimator can do:
//
//   - Analytic: the true value for a given problem, from a closed form
//     where one exists or by direct numeric integration of the
//     iso-likelihood contour mean otherwise; used to cross-check sampling
//     output in tests and results tables.
//   - PointValued: the estimator's raw per-point values on a run, which is
//     what the dynamic allocator's tuned importance weighs.
//
// Credible intervals interpolate the weighted empirical CDF, shifted by
// half the first point's weight so the smallest value is not returned for
// every probability below its relative weight.
package estimator
