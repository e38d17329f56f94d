package results

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/stat"
)

// Table holds per-variant estimator statistics. Row zero is always the
// standard sampler; efficiencies are variance ratios against it.
type Table struct {
	estimators []string
	variants   []string
	mean       [][]float64 // [variant][estimator]
	std        [][]float64
	efficiency [][]float64
}

func newTable(estimators, variants []string, values [][][]float64) (*Table, error) {
	t := &Table{
		estimators: estimators,
		variants:   variants,
		mean:       make([][]float64, len(variants)),
		std:        make([][]float64, len(variants)),
		efficiency: make([][]float64, len(variants)),
	}
	variance := make([][]float64, len(variants))
	for vi := range variants {
		t.mean[vi] = make([]float64, len(estimators))
		t.std[vi] = make([]float64, len(estimators))
		variance[vi] = make([]float64, len(estimators))
		col := make([]float64, len(values[vi]))
		for ei := range estimators {
			for d, row := range values[vi] {
				col[d] = row[ei]
			}
			mean, std := stat.MeanStdDev(col, nil)
			t.mean[vi][ei] = mean
			t.std[vi][ei] = std
			variance[vi][ei] = std * std
		}
	}
	for vi := range variants {
		t.efficiency[vi] = make([]float64, len(estimators))
		for ei := range estimators {
			t.efficiency[vi][ei] = variance[0][ei] / variance[vi][ei]
		}
	}

	return t, nil
}

// Variants returns the variant names, standard sampler first.
func (t *Table) Variants() []string {
	return append([]string(nil), t.variants...)
}

// Estimators returns the estimator names, in experiment order.
func (t *Table) Estimators() []string {
	return append([]string(nil), t.estimators...)
}

// Stats returns the mean and standard deviation of estimator ei under
// variant vi.
func (t *Table) Stats(vi, ei int) (mean, std float64) {
	return t.mean[vi][ei], t.std[vi][ei]
}

// Efficiency returns the variance gain of variant vi for estimator ei over
// the standard sampler (1 for the standard sampler itself).
func (t *Table) Efficiency(vi, ei int) float64 {
	return t.efficiency[vi][ei]
}

// Render writes the comparison as an aligned text table: one row per
// variant, a value column and an efficiency column per estimator.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "variant")
	for _, name := range t.estimators {
		fmt.Fprintf(tw, "\t%s\teff(%s)", name, name)
	}
	fmt.Fprintln(tw)
	for vi, variant := range t.variants {
		fmt.Fprint(tw, variant)
		for ei := range t.estimators {
			fmt.Fprintf(tw, "\t%.4g ± %.3g\t%.3g", t.mean[vi][ei], t.std[vi][ei], t.efficiency[vi][ei])
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
