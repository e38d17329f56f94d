package problem_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/perfectns/problem"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleNew
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A unit Gaussian likelihood inside a σ=10 Gaussian prior in one
//	dimension. The radius enclosing half the prior mass is the median of
//	|θ| under the prior, and the closed-form evidence is available for
//	cross-checking estimators.
func ExampleNew() {
	like, err := problem.NewGaussian(1, 1)
	if err != nil {
		panic(err)
	}
	prior, err := problem.NewGaussianPrior(1, 10)
	if err != nil {
		panic(err)
	}
	p, err := problem.New(1, like, prior)
	if err != nil {
		panic(err)
	}

	logZ, err := p.AnalyticLogZ()
	if err != nil {
		panic(err)
	}
	fmt.Printf("median radius: %.4f\n", p.Radius(math.Log(0.5)))
	fmt.Printf("logZ:          %.4f\n", logZ)
	// Output:
	// median radius: 6.7449
	// logZ:          -3.2265
}
