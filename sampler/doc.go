// Package sampler generates nested-sampling runs exactly, without any
// rejection sampling or MCMC: volumes come straight from the shrinkage
// distribution (package shrink), radii from the prior's volume inverse and
// likelihoods from the spherically symmetric likelihood (package problem).
//
// Two generation modes cover every caller:
//
//   - StandardRun interleaves nlive single-live-point chains: at each
//     iteration the lowest-likelihood live point dies and its chain
//     advances one shrinkage step. Termination is pluggable (StopRule);
//     after it fires the surviving live points are appended in likelihood
//     order, so each chain becomes a whole-prior thread ending at one of
//     the final live points.
//   - Thread produces one constrained single-live-point thread between two
//     log volumes, keeping the first point past the end bound. The dynamic
//     allocator uses it to refine chosen likelihood intervals.
//
// Parameter vectors are drawn uniformly on the hyper-sphere of each point's
// radius (normal deviates rescaled to the radius); only the leading
// components are recorded, which loses nothing because spherical symmetry
// gives every component the same marginal.
//
// The likelihood's monotonicity contract is re-validated during generation:
// a point whose likelihood falls below the bound its thread branched from,
// or below an earlier point at larger volume, surfaces as
// core.ErrLikelihoodNotMonotonic.
//
// Every operation takes an explicit random stream; StandardRuns derives one
// independent stream per run index, so batches reproduce exactly for a
// given top-level seed regardless of scheduling.
package sampler
