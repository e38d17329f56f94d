package core

import "github.com/google/uuid"

// Clone returns a deep copy of the thread: points and parameter slices are
// duplicated so the copy can be relabeled or extended without touching the
// original.
func (t *Thread) Clone() *Thread {
	pts := make([]Point, len(t.points))
	copy(pts, t.points)
	for i := range pts {
		if pts[i].Theta != nil {
			pts[i].Theta = append([]float64(nil), pts[i].Theta...)
		}
	}

	return &Thread{Label: t.Label, StartLogL: t.StartLogL, points: pts}
}

// Clone returns a deep copy of the run under a fresh identifier. Threads are
// cloned, then re-merged; the merged order and profile are recomputed rather
// than copied so a clone is always internally consistent.
func (r *Run) Clone() *Run {
	threads := make([]*Thread, len(r.threads))
	for i, t := range r.threads {
		threads[i] = t.Clone()
	}
	// Reconstruction cannot fail: the source run already passed validation.
	clone, err := NewRun(threads, WithInitCount(r.initCount), WithRunID(uuid.New()))
	if err != nil {
		panic("core: clone of validated run failed: " + err.Error())
	}

	return clone
}
