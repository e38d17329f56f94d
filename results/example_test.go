package results_test

import (
	"fmt"

	"github.com/katalvlaran/perfectns/results"
)

// //////////////////////////////////////////////////////////////////////////////
// ExampleCompare
// //////////////////////////////////////////////////////////////////////////////
//
// Scenario:
//
//	A small comparison on the default 2-dimensional Gaussian problem:
//	five repeats each of the standard sampler and an evidence-targeted
//	dynamic variant, with the evidence estimator evaluated on every run.
func ExampleCompare() {
	exp, err := results.Parse([]byte(`
nlive: 20
nlive_init: 5
repeats: 5
dynamic_fractions: [1]
estimators: [logz]
stop_fraction: 0.01
seed: 11
`))
	if err != nil {
		panic(err)
	}

	tbl, err := results.Compare(exp)
	if err != nil {
		panic(err)
	}

	fmt.Println("variants:", tbl.Variants())
	fmt.Println("standard efficiency:", tbl.Efficiency(0, 0))
	// Output:
	// variants: [standard dynamic f=1]
	// standard efficiency: 1
}
