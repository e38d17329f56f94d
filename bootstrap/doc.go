// Package bootstrap estimates the sampling uncertainty of nested-sampling
// results without repeating runs.
//
// Resample draws bootstrap replications of a run's threads: each draw
// selects threads with replacement, remerges them into a run, recomputes
// weights and re-evaluates the estimators. The spread of the replicated
// values approximates the sampling distribution of each estimator. When a
// run holds designated initial (whole-prior) threads next to dynamically
// added ones, the two groups can be resampled separately so each keeps its
// share.
//
// SimulatedWeights keeps the threads fixed and instead redraws the
// stochastic shrinkage volumes underlying the weights, isolating the
// uncertainty contributed by the unknown prior volumes alone.
//
// Both are deterministic in their seed; draws run in parallel on
// independent derived streams.
package bootstrap
