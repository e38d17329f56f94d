package core

import (
	"fmt"
	"sort"
)

// computeProfile derives the run-wide live-point profile from thread
// metadata: each thread is alive from the first merged point whose
// likelihood exceeds the thread's start bound up to and including the
// thread's own final point.
//
// The profile is accumulated as delta counts between consecutive merged
// positions, so duplicated threads (bootstrap resamples) stack their
// coverage the expected number of times. A thread whose start bound lies
// below every merged likelihood counts toward the base live count, which
// keeps profiles well-defined for resamples that dropped the thread the
// bound was anchored to.
func (r *Run) computeProfile() error {
	n := len(r.logl)
	delta := make([]int, n+1)
	base := 0
	for _, t := range r.threads {
		if t.WholePrior() {
			base++
			continue
		}
		start := t.StartLogL
		s := sort.Search(n, func(i int) bool { return r.logl[i] > start })
		if s == 0 {
			base++
		} else {
			delta[s]++
		}
	}
	// A thread stops being alive directly after its final point.
	for m, ref := range r.refs {
		if ref.point == r.threads[ref.thread].Len()-1 {
			delta[m+1]--
		}
	}

	r.nlive = make([]int, n)
	alive := base
	for i := 0; i < n; i++ {
		alive += delta[i]
		if alive < 1 {
			return fmt.Errorf("core: no thread alive at merged point %d (logL %.6g): %w",
				i, r.logl[i], ErrThreadGap)
		}
		r.nlive[i] = alive
	}

	return nil
}
