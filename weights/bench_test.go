package weights

import (
	"math"
	"testing"

	"github.com/katalvlaran/perfectns/core"
)

func benchRun(b *testing.B, nlive, perThread int) *core.Run {
	b.Helper()
	threads := make([]*core.Thread, nlive)
	for ti := 0; ti < nlive; ti++ {
		pts := make([]core.Point, perThread)
		for pi := 0; pi < perThread; pi++ {
			rank := float64(pi*nlive + ti)
			pts[pi] = core.Point{LogL: 0.01 * rank, LogX: -float64(pi+1) - 1e-4*float64(ti)}
		}
		th, err := core.NewThread(ti, math.NaN(), pts)
		if err != nil {
			b.Fatal(err)
		}
		threads[ti] = th
	}
	run, err := core.NewRun(threads)
	if err != nil {
		b.Fatal(err)
	}

	return run
}

func BenchmarkCalc_100x500(b *testing.B) {
	run := benchRun(b, 100, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Calc(run); err != nil {
			b.Fatal(err)
		}
	}
}
