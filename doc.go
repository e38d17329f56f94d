// Package perfectns performs exact ("perfect") nested sampling on
// spherically symmetric likelihoods and priors.
//
// 🚀 What is perfectns?
//
//	A nested-sampling laboratory where the usual approximation — drawing
//	new live points by exploring the constrained prior — is replaced by
//	exact draws, so every error you measure comes from the algorithm
//	itself:
//		• Exact sampling: likelihood and prior depend only on the radial
//		  coordinate, so contours map to prior volumes analytically
//		• Standard runs: constant live-point count, evidence-fraction
//		  termination, trapezoidal evidence accumulation
//		• Dynamic runs: importance-driven allocation of single-live-point
//		  threads targeting evidence or parameter accuracy
//		• Uncertainties: thread bootstrap and simulated-weights
//		  replication, without repeating runs
//		• Results: parallel repetition driver, efficiency tables, YAML
//		  experiment configs and a demo CLI
//
// ✨ Why choose perfectns?
//
//   - Deterministic – every stream derives from one seed, results do not
//     depend on scheduling
//   - Verifiable – Gaussian pairings carry closed-form evidence and
//     posterior moments to test against
//   - Extensible – likelihoods, priors and estimators are small
//     interfaces with a ready catalog
//
// Everything is organized under focused subpackages:
//
//	core/       — threads, merged runs, live-point profiles
//	shrink/     — shrinkage draws & deterministic stream derivation
//	problem/    — likelihood/prior catalog & analytic cross-checks
//	sampler/    — thread & standard-run generation, stop rules
//	weights/    — prior-volume weights and the evidence
//	estimator/  — posterior quantities computed from weighted runs
//	dynamic/    — importance-targeted live-point allocation
//	bootstrap/  — resampled uncertainty estimates
//	results/    — repetition driver, comparison tables, YAML configs
//	cmd/        — the perfectns command-line demo
//
// Quick sketch of a standard run:
//
//	logX 0 ───────────────► -∞
//	  L(X) ▁▁▂▂▃▅▇█  dead points accumulate Z ≈ Σ L·ΔX
//
//	go get github.com/katalvlaran/perfectns
package perfectns
