package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/CraigKelly/normgibbs/model"
)

// startupParams is everything a command needs, gathered from the flags.
type startupParams struct {
	verbose     bool
	dataFile    string
	outFile     string
	traceFile   string
	monitorAddr string
	samples     int
	randomSeed  int64
	timeout     time.Duration
	prior       model.Prior

	out   *log.Logger // user-facing progress, silent unless verbose
	trace *log.Logger // per-draw trace, nil unless a trace file was given
}

// setup builds the loggers. The returned func closes anything opened.
func (sp *startupParams) setup(stderr io.Writer) (func(), error) {
	if sp.verbose {
		sp.out = log.New(stderr, "", log.Ltime)
	} else {
		sp.out = log.New(io.Discard, "", 0)
	}

	if len(sp.traceFile) < 1 {
		return func() {}, nil
	}

	f, err := os.Create(sp.traceFile)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not create trace file %s", sp.traceFile)
	}
	sp.trace = log.New(f, "", 0)
	sp.trace.Printf("s\ttheta\tsigma2\n")

	return func() {
		if err := f.Close(); err != nil {
			sp.out.Printf("Error closing trace file %s: %v\n", sp.traceFile, err)
		}
	}, nil
}

func newRootCmd() *cobra.Command {
	sp := &startupParams{}

	rootCmd := &cobra.Command{
		Use:   "normgibbs",
		Short: "Gibbs sampling for a Normal population with conjugate priors",
		Long: `normgibbs draws from the joint posterior of the mean and variance of a
Normal population given i.i.d. observations, using the conjugate priors

  theta  ~ Normal(mu0, tau2_0)
  sigma2 ~ Inverse-Gamma(nu0/2, nu0*sigma2_0/2)

Each iteration draws theta from its Normal full conditional, then sigma2 from
its Inverse-Gamma full conditional given the new theta.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&sp.verbose, "verbose", "v", false, "Verbose logging (default is much more parsimonious)")
	rootCmd.PersistentFlags().Int64VarP(&sp.randomSeed, "seed", "r", 1, "Random seed to use")

	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Run the sampler over an observation file and write the draws as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cleanup, err := sp.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runSample(ctx, sp, cmd.OutOrStdout())
		},
	}

	fl := sampleCmd.Flags()
	fl.StringVarP(&sp.dataFile, "data", "d", "", "Observation file: reals separated by whitespace or commas, # comments")
	fl.IntVarP(&sp.samples, "samples", "S", 1000, "Number of joint draws, including the starting point")
	fl.Float64Var(&sp.prior.Mu0, "mu0", 0.0, "Prior mean of theta")
	fl.Float64Var(&sp.prior.Tau20, "tau2", 1e4, "Prior variance of theta")
	fl.Float64Var(&sp.prior.Sigma20, "sigma2", 1.0, "Prior scale of sigma2")
	fl.Float64Var(&sp.prior.Nu0, "nu0", 1.0, "Prior degrees of freedom of sigma2")
	fl.StringVarP(&sp.outFile, "output", "o", "", "JSON output file (default is stdout)")
	fl.StringVarP(&sp.traceFile, "trace", "t", "", "Optional tab separated trace of every draw")
	fl.StringVar(&sp.monitorAddr, "monitor", "", "Serve expvar progress at this address (e.g. :8000)")
	fl.DurationVar(&sp.timeout, "timeout", 0, "Stop after this long and write the draws completed so far (0 is no limit)")

	sampleCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(sampleCmd)
	return rootCmd
}

// Execute builds the command tree and runs it. This is called by main.main().
// An interrupt stops the chain early; the draws completed so far are still
// written.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
