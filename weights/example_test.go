package weights_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/weights"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleCalc
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A three-point single-thread run with a flat likelihood. The evidence is
//	then exactly the summed trapezoidal volume: (1+e⁻¹)/2 − e⁻³/2.
func ExampleCalc() {
	pts := []core.Point{
		{LogL: 0, LogX: -1},
		{LogL: 0, LogX: -2},
		{LogL: 0, LogX: -3},
	}
	th, err := core.NewThread(0, math.NaN(), pts)
	if err != nil {
		panic(err)
	}
	run, err := core.NewRun([]*core.Thread{th})
	if err != nil {
		panic(err)
	}

	w, err := weights.Calc(run)
	if err != nil {
		panic(err)
	}
	fmt.Printf("logZ: %.4f\n", w.LogZ())
	fmt.Printf("sum:  %.4f\n", sum(w.Normalized()))
	// Output:
	// logZ: -0.4170
	// sum:  1.0000
}

func sum(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}

	return s
}
