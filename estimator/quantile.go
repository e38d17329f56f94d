package estimator

import "sort"

// weightedQuantile interpolates the weighted empirical CDF of vals at
// probability p. The CDF is cumsum(w) shifted down by half the first
// sorted point's weight and normalized, then linearly interpolated; below
// the first node the smallest value is returned, above the last node the
// largest.
func weightedQuantile(vals, norm []float64, p float64) float64 {
	n := len(vals)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return vals[idx[a]] < vals[idx[b]] })

	cdf := make([]float64, n)
	total := 0.0
	for _, i := range idx {
		total += norm[i]
	}
	acc := 0.0
	for rank, i := range idx {
		acc += norm[i]
		cdf[rank] = (acc - norm[idx[0]]/2) / total
	}

	if p <= cdf[0] {
		return vals[idx[0]]
	}
	for rank := 1; rank < n; rank++ {
		if p <= cdf[rank] {
			lo, hi := vals[idx[rank-1]], vals[idx[rank]]
			frac := (p - cdf[rank-1]) / (cdf[rank] - cdf[rank-1])

			return lo + frac*(hi-lo)
		}
	}

	return vals[idx[n-1]]
}
