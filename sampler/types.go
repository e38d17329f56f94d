package sampler

import (
	"fmt"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/problem"
)

// Sentinel errors; configuration failures also match core.ErrInvalidConfig.
var (
	// ErrNilProblem rejects a nil problem.
	ErrNilProblem = fmt.Errorf("sampler: problem is nil: %w", core.ErrInvalidConfig)

	// ErrNilRNG rejects a nil random stream.
	ErrNilRNG = fmt.Errorf("sampler: random stream is nil: %w", core.ErrInvalidConfig)

	// ErrNilStop rejects a nil termination rule.
	ErrNilStop = fmt.Errorf("sampler: termination rule is nil: %w", core.ErrInvalidConfig)

	// ErrNlive rejects live-point counts below one.
	ErrNlive = fmt.Errorf("sampler: live-point count below one: %w", core.ErrInvalidConfig)

	// ErrRecordDims rejects recorded-dimension counts outside [1, dim].
	ErrRecordDims = fmt.Errorf("sampler: recorded dimensions outside [1, dim]: %w", core.ErrInvalidConfig)

	// ErrBounds rejects thread volume bounds with logXStart <= logXEnd or a
	// non-finite end bound.
	ErrBounds = fmt.Errorf("sampler: thread volume bounds out of order: %w", core.ErrInvalidConfig)

	// ErrStopRule rejects malformed termination-rule parameters; surfaced
	// on first use of the rule.
	ErrStopRule = fmt.Errorf("sampler: invalid termination rule: %w", core.ErrInvalidConfig)

	// ErrCount rejects non-positive run counts.
	ErrCount = fmt.Errorf("sampler: run count below one: %w", core.ErrInvalidConfig)
)

// Generator builds runs and threads for one validated problem. Immutable
// and safe for concurrent use; concurrency is bounded only by the random
// streams handed to each call.
type Generator struct {
	prob       *problem.Problem
	recordDims int
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecordDims sets how many parameter components each point records.
// Defaults to min(2, dim); by spherical symmetry all components share one
// marginal distribution, so recording more only costs memory.
func WithRecordDims(k int) Option {
	return func(g *Generator) { g.recordDims = k }
}

// New returns a Generator for the given problem.
func New(prob *problem.Problem, opts ...Option) (*Generator, error) {
	if prob == nil {
		return nil, ErrNilProblem
	}
	g := &Generator{prob: prob, recordDims: 2}
	if prob.Dim() < g.recordDims {
		g.recordDims = prob.Dim()
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.recordDims < 1 || g.recordDims > prob.Dim() {
		return nil, fmt.Errorf("%w: got %d with dim %d", ErrRecordDims, g.recordDims, prob.Dim())
	}

	return g, nil
}

// Problem returns the generator's sampling target.
func (g *Generator) Problem() *problem.Problem { return g.prob }

// RecordDims returns how many parameter components each point records.
func (g *Generator) RecordDims() int { return g.recordDims }
