package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/perfectns/bootstrap"
	"github.com/katalvlaran/perfectns/core"
	"github.com/katalvlaran/perfectns/dynamic"
	"github.com/katalvlaran/perfectns/estimator"
	"github.com/katalvlaran/perfectns/results"
	"github.com/katalvlaran/perfectns/sampler"
	"github.com/katalvlaran/perfectns/shrink"
	"github.com/katalvlaran/perfectns/weights"
)

type runFlags struct {
	likelihood   string
	likeSigma    float64
	power        float64
	prior        string
	priorSigma   float64
	rmax         float64
	dim          int
	nlive        int
	nliveInit    int
	stopFraction float64
	seed         uint64
	useDynamic   bool
	fraction     float64
	draws        int
}

func newRunCommand() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one nested-sampling calculation",
		Long: `Run a single standard or dynamic nested-sampling calculation and print
the evidence and parameter estimates with bootstrap uncertainties.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runCommandE(f)
		},
	}

	cmd.Flags().StringVar(&f.likelihood, "likelihood", "gaussian", "likelihood: gaussian, exp_power or cauchy")
	cmd.Flags().Float64Var(&f.likeSigma, "likelihood-sigma", 1, "likelihood scale")
	cmd.Flags().Float64Var(&f.power, "power", 2, "exp_power exponent")
	cmd.Flags().StringVar(&f.prior, "prior", "gaussian", "prior: gaussian, gaussian_cached or uniform")
	cmd.Flags().Float64Var(&f.priorSigma, "prior-sigma", 10, "prior scale")
	cmd.Flags().Float64Var(&f.rmax, "rmax", 10, "uniform prior radius")
	cmd.Flags().IntVar(&f.dim, "dim", 2, "problem dimension")
	cmd.Flags().IntVar(&f.nlive, "nlive", 100, "live points (standard) or reference live points (dynamic)")
	cmd.Flags().IntVar(&f.nliveInit, "nlive-init", 10, "exploratory live points (dynamic)")
	cmd.Flags().Float64Var(&f.stopFraction, "stop-fraction", 1e-3, "evidence-fraction termination threshold")
	cmd.Flags().Uint64Var(&f.seed, "seed", 1, "random seed")
	cmd.Flags().BoolVar(&f.useDynamic, "dynamic", false, "use dynamic live-point allocation")
	cmd.Flags().Float64Var(&f.fraction, "fraction", 1, "dynamic importance target: 1 evidence, 0 parameters")
	cmd.Flags().IntVar(&f.draws, "draws", 200, "bootstrap draws for the uncertainty column")

	return cmd
}

func runCommandE(f runFlags) error {
	log := newLogger()

	exp := results.Default()
	exp.Likelihood = results.LikelihoodConfig{Name: f.likelihood, Sigma: f.likeSigma, Power: f.power}
	exp.Prior = results.PriorConfig{Name: f.prior, Sigma: f.priorSigma, RMax: f.rmax}
	exp.Dim = f.dim
	p, err := exp.Problem()
	if err != nil {
		return err
	}
	gen, err := sampler.New(p)
	if err != nil {
		return err
	}

	var (
		run *core.Run
		w   *weights.Result
	)
	if f.useDynamic {
		alloc, err := dynamic.New(gen,
			dynamic.WithNliveInit(f.nliveInit),
			dynamic.WithNliveRef(f.nlive),
			dynamic.WithDynamicFraction(f.fraction),
			dynamic.WithEvidenceFractionStop(f.stopFraction),
			dynamic.WithLogger(log),
		)
		if err != nil {
			return err
		}
		res, err := alloc.Generate(f.seed)
		if err != nil {
			return err
		}
		if res.Stalled {
			log.Warn("allocation stalled, reporting best run obtained")
		}
		run, w = res.Run, res.Weights
	} else {
		run, err = gen.StandardRun(shrink.RNG(f.seed), f.nlive,
			sampler.EvidenceFraction(f.stopFraction))
		if err != nil {
			return err
		}
		w, err = weights.Calc(run)
		if err != nil {
			return err
		}
	}
	log.Info("run finished", "id", run.ID(), "threads", run.NumThreads(),
		"samples", run.NumPoints())

	ests := []estimator.Estimator{
		estimator.LogZ{},
		estimator.RMean{},
		estimator.ParamMean{Index: 0},
		estimator.ParamCred{P: 0.5, Index: 0},
	}
	boot, err := bootstrap.Resample(run, ests,
		bootstrap.WithDraws(f.draws), bootstrap.WithSeed(shrink.DeriveSeed(f.seed, 1)))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "estimator\tvalue\tbootstrap std\tanalytic")
	for i, est := range ests {
		v, err := est.Value(run, w)
		if err != nil {
			return err
		}
		_, std := boot.Summary(i)
		analytic := "-"
		if a, ok := est.(estimator.Analytic); ok {
			if av, err := a.Analytic(p); err == nil {
				analytic = fmt.Sprintf("%.6g", av)
			}
		}
		fmt.Fprintf(tw, "%s\t%.6g\t%.3g\t%s\n", est.Name(), v, std, analytic)
	}

	return tw.Flush()
}
