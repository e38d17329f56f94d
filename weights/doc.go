// Package weights converts a merged run's live-point profile into posterior
// weights and the evidence estimate.
//
// Each merged point i receives a volume increment by the symmetric
// trapezoidal rule over its neighbours' volumes,
//
//	ΔX_i = (X_{i-1} - X_{i+1}) / 2,
//
// with X_{-1} = 1 (the whole prior) ahead of the first point and the final
// increment extended to zero volume. The volumes themselves are estimated
// from the run-wide live-point profile — the expected log decrement at step
// i is -1/nlive_i — so likelihood regions covered by more threads obtain
// proportionally finer increments. This is what makes the same formula serve
// constant-nlive standard runs, dynamic multi-thread runs and bootstrap
// resamples with duplicated threads.
//
// All products are formed as sums in log space: logw_i = logL_i + logΔX_i
// with the volume difference taken via log1p, and the evidence combined by
// log-sum-exp before any exponentiation. A non-finite evidence after that
// stabilization indicates corrupted input, not a numeric edge case, and is
// reported as an invariant violation.
//
// Volumes default to the profile's expected values; WithSimulatedVolumes
// redraws them from the shrinkage distribution instead, which is the basis
// of the simulated-weights uncertainty estimate in package bootstrap.
package weights
