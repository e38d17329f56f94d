// Package shrink draws the prior-volume contractions that define perfect
// nested sampling: with nlive live points, the shrinkage ratio t = X_i/X_{i-1}
// is distributed as the largest of nlive uniforms, so
// log t = log(u)/nlive with u uniform on (0,1).
//
// The package offers three views of the same distribution:
//
//   - Sampler: a lazy sequence of decreasing logX values for a fixed live
//     count, advanced one draw (or one batch) at a time.
//   - Expected: deterministic expected log-volumes for an arbitrary
//     per-position live-count profile (the decrement at step i is -1/nlive_i).
//   - Simulate: stochastic log-volumes for the same profile, used when a
//     full volume-sampling pass is required.
//
// All arithmetic stays in log space; volumes never underflow regardless of
// run length. Every operation takes an explicit random stream; RNG and
// DeriveRNG construct deterministic, independent streams for parallel
// workers.
package shrink
