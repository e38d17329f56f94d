// Package core defines the data model shared by every perfectns component:
// points, threads, runs, and the merged live-point profile.
//
// What
//
//   - Point: one nested-sampling sample (log-likelihood, log prior-volume,
//     radial coordinate, recorded parameter components).
//   - Thread: an ordered slice of Points produced by one single-live-point
//     chain, bounded below by the log-likelihood it branched from.
//   - Run: one or more Threads merged into a single likelihood-ordered
//     sequence, together with the derived run-wide live-point profile.
//
// Why
//
//   - Threads are the atomic unit of the whole system: standard runs are
//     bundles of threads started from the whole prior, dynamic runs append
//     threads confined to high-importance likelihood intervals, and
//     bootstrap resampling draws threads with replacement. Everything
//     downstream (weights, estimators, importance) consumes the merged view.
//
// Invariants
//
//   - Within a Thread, LogL is non-decreasing and LogX is strictly
//     decreasing; violations surface as ErrLikelihoodNotMonotonic or
//     ErrThreadOrder at construction.
//   - Across a merged Run, points sorted by LogL must have non-increasing
//     LogX (ties permitted only for duplicated threads and likelihood
//     plateaus); the live-point profile must stay ≥ 1 everywhere, otherwise
//     the evidence integral is undefined over the gap (ErrThreadGap).
//
// Determinism
//
//	Merging is idempotent and order-independent: points are sorted by
//	(LogL ascending, LogX descending) with a stable sort, so the merged
//	sequence does not depend on the order threads were supplied in.
//
// Concurrency
//
//	A Run is immutable after NewRun returns. Accessors hand out fresh
//	copies of the merged columns, so a Run may be shared freely across
//	goroutines (bootstrap resampling relies on this).
package core
