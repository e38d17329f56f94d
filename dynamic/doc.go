// Package dynamic implements dynamic nested sampling: instead of spending a
// fixed live-point count uniformly over the whole prior, it first explores
// with a small constant count, then repeatedly adds single-live-point
// threads over the likelihood interval where extra samples help the target
// quantity most.
//
// The allocator moves through four phases:
//
//	explore    one standard run with nliveInit live points, terminating on
//	           the evidence-fraction rule, fixes the likelihood range;
//	evaluate   per-point importance is computed from the current merged run:
//	           a blend of evidence importance (expected remaining evidence
//	           share per live point) and parameter importance (posterior
//	           weight, optionally tuned to a specific estimator), weighted
//	           by the dynamic fraction and normalized to maximum one;
//	allocate   the contiguous interval of points above the significance
//	           threshold, widened one point outward, receives nbatch new
//	           threads branching from the interval's start state;
//	done       the loop ends when the sample budget is spent, the batch
//	           bound is hit, or allocation stalls.
//
// A dynamic fraction of one targets the evidence, zero targets parameter
// estimation; the blend interpolates. When no sample budget is configured
// the allocator grants itself the budget a standard run at the reference
// live-point count would have used, scaled from the exploratory run.
//
// Allocation stalling (a degenerate importance landscape, or a batch that
// adds no points) is reported on the result rather than failing, so the
// best run obtained so far stays usable; strict mode turns it into
// core.ErrAllocationStalled.
package dynamic
