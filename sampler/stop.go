package sampler

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// RunState is the snapshot a StopRule inspects before each iteration of a
// standard run. LiveLogL is shared with the generator's working state and
// must be treated as read-only.
type RunState struct {
	// Iter counts completed iterations (dead points recorded so far).
	Iter int

	// Nlive is the constant live-point count of the run.
	Nlive int

	// LogXExpected is the deterministic expected log volume -Iter/Nlive
	// used for termination bookkeeping.
	LogXExpected float64

	// LogZDead is the trapezoidal evidence accumulated over dead points.
	LogZDead float64

	// LiveLogL holds the current live points' log-likelihoods, unsorted.
	LiveLogL []float64
}

// StopRule decides when a standard run terminates. Rules are checked before
// each death, so a run always records at least zero iterations plus the
// final live points. Construction errors are deferred and surfaced by the
// generator on first use via Err.
type StopRule interface {
	// Done reports whether the run should stop before the next death.
	Done(s RunState) bool

	// Err returns a deferred construction error, or nil.
	Err() error
}

// MaxIters stops after a fixed number of iterations.
func MaxIters(n int) StopRule {
	r := maxIters{n: n}
	if n < 1 {
		r.err = fmt.Errorf("%w: max iterations %d below one", ErrStopRule, n)
	}

	return r
}

type maxIters struct {
	n   int
	err error
}

func (m maxIters) Done(s RunState) bool { return s.Iter >= m.n }
func (m maxIters) Err() error           { return m.err }

// LikelihoodThreshold stops once every live point has log-likelihood at or
// above the limit, i.e. the run continues while the next point to die lies
// below it.
func LikelihoodThreshold(limit float64) StopRule {
	r := loglThreshold{limit: limit}
	if math.IsNaN(limit) {
		r.err = fmt.Errorf("%w: likelihood threshold is NaN", ErrStopRule)
	}

	return r
}

type loglThreshold struct {
	limit float64
	err   error
}

func (l loglThreshold) Done(s RunState) bool {
	return floats.Min(s.LiveLogL) >= l.limit
}
func (l loglThreshold) Err() error { return l.err }

// EvidenceFraction stops when the evidence still held by the live points,
// estimated as their mean likelihood times the remaining prior volume,
// drops below the given fraction of the dead evidence:
//
//	logZ_live - log(frac) <= logZ_dead.
func EvidenceFraction(frac float64) StopRule {
	r := evidenceFraction{logFrac: math.Log(frac)}
	if !(frac > 0 && frac < 1) {
		r.err = fmt.Errorf("%w: evidence fraction %v outside (0,1)", ErrStopRule, frac)
	}

	return r
}

type evidenceFraction struct {
	logFrac float64
	err     error
}

func (e evidenceFraction) Done(s RunState) bool {
	logZLive := floats.LogSumExp(s.LiveLogL) + s.LogXExpected - math.Log(float64(s.Nlive))

	return logZLive-e.logFrac <= s.LogZDead
}
func (e evidenceFraction) Err() error { return e.err }
