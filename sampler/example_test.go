package sampler_test

import (
	"fmt"

	"github.com/katalvlaran/perfectns/problem"
	"github.com/katalvlaran/perfectns/sampler"
	"github.com/katalvlaran/perfectns/shrink"
	"github.com/katalvlaran/perfectns/weights"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleGenerator_StandardRun
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	One standard run on a 2-dimensional Gaussian likelihood inside a σ=10
//	Gaussian prior, terminating when the live points hold less than 0.1%
//	of the accumulated evidence. The weight calculator then turns the
//	merged run into an evidence estimate.
func ExampleGenerator_StandardRun() {
	like, err := problem.NewGaussian(2, 1)
	if err != nil {
		panic(err)
	}
	prior, err := problem.NewGaussianPrior(2, 10)
	if err != nil {
		panic(err)
	}
	p, err := problem.New(2, like, prior)
	if err != nil {
		panic(err)
	}
	gen, err := sampler.New(p)
	if err != nil {
		panic(err)
	}

	run, err := gen.StandardRun(shrink.RNG(7), 50, sampler.EvidenceFraction(1e-3))
	if err != nil {
		panic(err)
	}
	w, err := weights.Calc(run)
	if err != nil {
		panic(err)
	}

	analytic, err := p.AnalyticLogZ()
	if err != nil {
		panic(err)
	}
	fmt.Println("threads:", run.NumThreads())
	fmt.Printf("|logZ - analytic| < 1: %v\n", abs(w.LogZ()-analytic) < 1)
	// Output:
	// threads: 50
	// |logZ - analytic| < 1: true
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}
