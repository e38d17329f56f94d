package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
)

// pointRef locates a point inside the owning thread set.
type pointRef struct {
	thread int // index into Run.threads
	point  int // index into that thread's points
}

// Run is an immutable merged collection of threads: the points of all
// threads sorted by likelihood, plus the derived run-wide live-point
// profile. Construct with NewRun; all accessors are safe for concurrent use.
type Run struct {
	id        uuid.UUID
	threads   []*Thread
	initCount int

	// merged columns, sorted by (LogL ascending, LogX descending)
	refs   []pointRef
	logl   []float64
	logx   []float64
	radius []float64
	labels []int
	theta  [][]float64
	nlive  []int
}

// RunOption configures run assembly.
type RunOption func(*Run)

// WithInitCount marks the first n threads as the initial-exploration set.
// Dynamic runs record their exploratory thread count here so that bootstrap
// resampling can resample initial and added threads separately.
func WithInitCount(n int) RunOption {
	return func(r *Run) { r.initCount = n }
}

// WithRunID fixes the run identifier instead of generating a fresh one.
func WithRunID(id uuid.UUID) RunOption {
	return func(r *Run) { r.id = id }
}

// NewRun merges threads into a Run: points are sorted by likelihood, the
// cross-thread monotonicity contract is checked, and the run-wide live-point
// profile is derived from each thread's start bound and final point.
//
// The thread slice is copied but the *Thread values are retained as-is;
// threads must not be mutated after being handed to a Run. Passing the same
// *Thread more than once is allowed (bootstrap resamples do exactly that)
// and contributes its live-point coverage once per copy.
//
// Errors: ErrNoThreads, ErrEmptyThread, ErrInvalidConfig (bad option),
// ErrLikelihoodNotMonotonic, ErrThreadGap.
func NewRun(threads []*Thread, opts ...RunOption) (*Run, error) {
	if len(threads) == 0 {
		return nil, ErrNoThreads
	}
	r := &Run{
		id:      uuid.New(),
		threads: append([]*Thread(nil), threads...),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.initCount < 0 || r.initCount > len(r.threads) {
		return nil, fmt.Errorf("core: init count %d outside [0, %d]: %w",
			r.initCount, len(r.threads), ErrInvalidConfig)
	}
	for _, t := range r.threads {
		if t == nil || t.Len() == 0 {
			return nil, ErrEmptyThread
		}
	}
	if err := r.merge(); err != nil {
		return nil, err
	}
	if err := r.computeProfile(); err != nil {
		return nil, err
	}

	return r, nil
}

// merge flattens all threads into likelihood-sorted columns.
func (r *Run) merge() error {
	total := 0
	for _, t := range r.threads {
		total += t.Len()
	}
	r.refs = make([]pointRef, 0, total)
	for ti, t := range r.threads {
		for pi := 0; pi < t.Len(); pi++ {
			r.refs = append(r.refs, pointRef{thread: ti, point: pi})
		}
	}
	// Sort by likelihood; ties (duplicated threads, likelihood plateaus)
	// keep larger volumes first so the volume column stays non-increasing.
	sort.SliceStable(r.refs, func(i, j int) bool {
		a := r.threads[r.refs[i].thread].points[r.refs[i].point]
		b := r.threads[r.refs[j].thread].points[r.refs[j].point]
		if a.LogL != b.LogL {
			return a.LogL < b.LogL
		}

		return a.LogX > b.LogX
	})

	r.logl = make([]float64, total)
	r.logx = make([]float64, total)
	r.radius = make([]float64, total)
	r.labels = make([]int, total)
	r.theta = make([][]float64, total)
	for m, ref := range r.refs {
		t := r.threads[ref.thread]
		pt := t.points[ref.point]
		r.logl[m] = pt.LogL
		r.logx[m] = pt.LogX
		r.radius[m] = pt.Radius
		r.labels[m] = t.Label
		r.theta[m] = pt.Theta
		// Ascending likelihood must mean shrinking volume; a growing volume
		// across distinct likelihood levels breaks the monotone contract.
		if m > 0 && r.logx[m] > r.logx[m-1] && r.logl[m] != r.logl[m-1] {
			return fmt.Errorf(
				"core: merged point %d has logX %.6g above predecessor %.6g: %w",
				m, r.logx[m], r.logx[m-1], ErrLikelihoodNotMonotonic)
		}
	}

	return nil
}

// ID returns the run identifier.
func (r *Run) ID() uuid.UUID { return r.id }

// NumThreads returns the number of threads merged into the run.
func (r *Run) NumThreads() int { return len(r.threads) }

// NumPoints returns the total number of merged points.
func (r *Run) NumPoints() int { return len(r.logl) }

// InitCount returns the number of leading threads marked as the
// initial-exploration set; zero when no distinction was recorded.
func (r *Run) InitCount() int { return r.initCount }

// Threads returns the merged threads in the order they were supplied.
// The slice is fresh; the *Thread values are shared and must be treated
// as read-only.
func (r *Run) Threads() []*Thread {
	return append([]*Thread(nil), r.threads...)
}

// LogL returns a copy of the merged log-likelihood column (ascending).
func (r *Run) LogL() []float64 {
	return append([]float64(nil), r.logl...)
}

// LogX returns a copy of the merged log prior-volume column, as drawn by
// each point's own thread.
func (r *Run) LogX() []float64 {
	return append([]float64(nil), r.logx...)
}

// Radius returns a copy of the merged radial-coordinate column.
func (r *Run) Radius() []float64 {
	return append([]float64(nil), r.radius...)
}

// Nlive returns a copy of the run-wide live-point profile: the number of
// threads alive at each merged point's likelihood level.
func (r *Run) Nlive() []int {
	return append([]int(nil), r.nlive...)
}

// ThreadLabels returns a copy of the per-point thread labels.
func (r *Run) ThreadLabels() []int {
	return append([]int(nil), r.labels...)
}

// RecordedDims returns how many parameter components each point carries.
func (r *Run) RecordedDims() int {
	if len(r.theta) == 0 {
		return 0
	}

	return len(r.theta[0])
}

// ThetaComponent returns a copy of the j-th recorded parameter component
// across all merged points (zero-based).
func (r *Run) ThetaComponent(j int) ([]float64, error) {
	if j < 0 || j >= r.RecordedDims() {
		return nil, fmt.Errorf("core: parameter component %d outside [0, %d): %w",
			j, r.RecordedDims(), ErrInvalidConfig)
	}
	out := make([]float64, len(r.theta))
	for i, row := range r.theta {
		out[i] = row[j]
	}

	return out, nil
}

// Span returns the smallest and largest merged log-likelihoods.
func (r *Run) Span() (logLMin, logLMax float64) {
	if len(r.logl) == 0 {
		return math.NaN(), math.NaN()
	}

	return r.logl[0], r.logl[len(r.logl)-1]
}
