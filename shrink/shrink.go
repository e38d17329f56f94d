package shrink

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/perfectns/core"
)

// Sentinel errors; all configuration failures also match
// core.ErrInvalidConfig via errors.Is.
var (
	// ErrNlive rejects live-point counts below one.
	ErrNlive = fmt.Errorf("shrink: live-point count below one: %w", core.ErrInvalidConfig)

	// ErrNilRNG rejects a nil random stream.
	ErrNilRNG = fmt.Errorf("shrink: random stream is nil: %w", core.ErrInvalidConfig)

	// ErrEmptyProfile rejects an empty live-count profile.
	ErrEmptyProfile = fmt.Errorf("shrink: empty live-count profile: %w", core.ErrInvalidConfig)
)

// Sampler produces a lazy, strictly decreasing sequence of log prior-volumes
// for a fixed live-point count. Not safe for concurrent use; give each
// goroutine its own Sampler and stream.
type Sampler struct {
	nlive int
	logX  float64
	rng   *rand.Rand
}

// New returns a Sampler positioned at logXStart (0 for a fresh run).
func New(nlive int, logXStart float64, rng *rand.Rand) (*Sampler, error) {
	if nlive < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNlive, nlive)
	}
	if rng == nil {
		return nil, ErrNilRNG
	}

	return &Sampler{nlive: nlive, logX: logXStart, rng: rng}, nil
}

// Nlive returns the sampler's live-point count.
func (s *Sampler) Nlive() int { return s.nlive }

// LogX returns the current log prior-volume without advancing.
func (s *Sampler) LogX() float64 { return s.logX }

// Next draws one shrinkage ratio and returns the new, smaller logX.
func (s *Sampler) Next() float64 {
	s.logX += LogShrink(s.nlive, s.rng)

	return s.logX
}

// Batch advances the sampler n times and returns the drawn values in order.
// Non-positive n returns nil without drawing.
func (s *Sampler) Batch(n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Next()
	}

	return out
}

// Until draws successive values until stop reports true, returning every
// drawn value including the one that satisfied the predicate (callers that
// must not cross a bound drop the final element). The predicate receives the
// freshly drawn logX and the zero-based iteration index; it is responsible
// for eventually stopping, e.g. by bounding the iteration count.
func (s *Sampler) Until(stop func(logX float64, iter int) bool) []float64 {
	var out []float64
	for i := 0; ; i++ {
		v := s.Next()
		out = append(out, v)
		if stop(v, i) {
			return out
		}
	}
}

// LogShrink draws a single log shrinkage ratio log(t) = log(u)/nlive.
// The caller guarantees nlive ≥ 1 and a non-nil stream.
func LogShrink(nlive int, rng *rand.Rand) float64 {
	return math.Log(uniform01(rng)) / float64(nlive)
}

// Expected returns the expected log-volumes for a per-position live-count
// profile: logX_i is the running sum of -1/nlive_j for j ≤ i.
func Expected(nlive []int) ([]float64, error) {
	if len(nlive) == 0 {
		return nil, ErrEmptyProfile
	}
	out := make([]float64, len(nlive))
	acc := 0.0
	for i, n := range nlive {
		if n < 1 {
			return nil, fmt.Errorf("%w: got %d at position %d", ErrNlive, n, i)
		}
		acc -= 1 / float64(n)
		out[i] = acc
	}

	return out, nil
}

// Simulate returns stochastic log-volumes for a per-position live-count
// profile: logX_i is the running sum of log(u_j)/nlive_j for j ≤ i.
func Simulate(nlive []int, rng *rand.Rand) ([]float64, error) {
	if len(nlive) == 0 {
		return nil, ErrEmptyProfile
	}
	if rng == nil {
		return nil, ErrNilRNG
	}
	out := make([]float64, len(nlive))
	acc := 0.0
	for i, n := range nlive {
		if n < 1 {
			return nil, fmt.Errorf("%w: got %d at position %d", ErrNlive, n, i)
		}
		acc += LogShrink(n, rng)
		out[i] = acc
	}

	return out, nil
}

// uniform01 draws from the open interval (0,1); a zero draw would send logX
// to -Inf, so zeros are redrawn.
func uniform01(rng *rand.Rand) float64 {
	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}

	return u
}
