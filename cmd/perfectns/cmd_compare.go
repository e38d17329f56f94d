package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/perfectns/results"
)

type compareFlags struct {
	config    string
	dim       int
	nlive     int
	nliveInit int
	repeats   int
	fractions []float64
	seed      uint64
}

func newCompareCommand() *cobra.Command {
	var f compareFlags
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare standard and dynamic allocation efficiency",
		Long: `Run repeated standard and dynamic calculations on one problem and print
the per-estimator means, standard deviations and variance efficiency gains.
Settings come from a YAML experiment file, or from flags when no file is
given.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return compareCommandE(f)
		},
	}

	cmd.Flags().StringVarP(&f.config, "config", "c", "", "YAML experiment file")
	cmd.Flags().IntVar(&f.dim, "dim", 2, "problem dimension")
	cmd.Flags().IntVar(&f.nlive, "nlive", 100, "standard live points and dynamic reference")
	cmd.Flags().IntVar(&f.nliveInit, "nlive-init", 10, "exploratory live points")
	cmd.Flags().IntVar(&f.repeats, "repeats", 10, "independent runs per variant")
	cmd.Flags().Float64SliceVar(&f.fractions, "fractions", []float64{1, 0}, "dynamic importance targets")
	cmd.Flags().Uint64Var(&f.seed, "seed", 1, "random seed")

	return cmd
}

func compareCommandE(f compareFlags) error {
	log := newLogger()

	var (
		exp *results.Experiment
		err error
	)
	if f.config != "" {
		exp, err = results.Load(f.config)
		if err != nil {
			return err
		}
	} else {
		exp = results.Default()
		exp.Dim = f.dim
		exp.Nlive = f.nlive
		exp.NliveInit = f.nliveInit
		exp.Repeats = f.repeats
		exp.Fractions = f.fractions
		exp.Seed = f.seed
	}

	tbl, err := results.Compare(exp, results.WithLogger(log))
	if err != nil {
		return err
	}

	return tbl.Render(os.Stdout)
}
