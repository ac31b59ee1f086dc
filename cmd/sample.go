package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/natefinch/atomic"
	"github.com/pkg/errors"

	"github.com/CraigKelly/normgibbs/model"
	"github.com/CraigKelly/normgibbs/rand"
	"github.com/CraigKelly/normgibbs/sampler"
)

// runSample reads the observations, runs one chain and writes the posterior
// draws as JSON to sp.outFile (atomically) or stdout. A timeout or interrupt
// is not an error: the completed prefix of the chain is written.
func runSample(ctx context.Context, sp *startupParams, stdout io.Writer) error {
	sp.out.Printf("Reading observations from %s\n", sp.dataFile)
	obs, err := model.NewObservationsFromFile(sp.dataFile)
	if err != nil {
		return err
	}
	sp.out.Printf("Have %d observations: mean %.6g, variance %.6g\n", obs.Len(), obs.Mean(), obs.Variance())
	sp.out.Printf("Prior: %+v\n", sp.prior)

	gen, err := rand.NewGenerator(sp.randomSeed)
	if err != nil {
		return err
	}
	defer gen.Close()

	samp, err := sampler.NewNormalGibbs(gen, obs.Values(), sp.prior)
	if err != nil {
		return err
	}
	if sp.samples < 1 {
		return errors.Wrapf(sampler.ErrInvalidArgument, "sample count must be at least 1, have %d", sp.samples)
	}

	if sp.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sp.timeout)
		defer cancel()
	}

	var mon *monitor
	if len(sp.monitorAddr) > 0 {
		mon = &monitor{}
		if err = mon.Start(sp.monitorAddr, sp.out); err != nil {
			return err
		}
		defer mon.Stop()
		mon.Seed.Set(sp.randomSeed)
		mon.TargetSamples.Set(int64(sp.samples))
	}

	started := time.Now()
	observer := func(s int, theta float64, sigma2 float64) {
		if sp.trace != nil {
			sp.trace.Printf("%d\t%.17g\t%.17g\n", s, theta, sigma2)
		}
		if mon != nil {
			mon.Record(s, theta, sigma2, started)
		}
	}

	sp.out.Printf("Sampling %d draws with seed %d\n", sp.samples, sp.randomSeed)
	post, err := samp.Chain(ctx, sp.samples, observer)
	if err != nil {
		if post == nil || ctx.Err() == nil {
			return err
		}
		sp.out.Printf("Stopped early: %v\n", err)
	}
	sp.out.Printf("Drew %d samples in %v\n", post.Len(), time.Since(started))

	if sp.verbose {
		theta, sigma2, err := post.Summarize()
		if err != nil {
			return errors.Wrap(err, "Could not summarize posterior")
		}
		summaryReport(sp, "theta ", theta)
		summaryReport(sp, "sigma2", sigma2)
	}

	return writePosterior(sp, post, stdout)
}

func summaryReport(sp *startupParams, name string, s model.Summary) {
	sp.out.Printf(
		"%s | Mean:%10.5f SD:%10.5f 2.5%%:%10.5f 50%%:%10.5f 97.5%%:%10.5f\n",
		name, s.Mean, s.StdDev, s.Q025, s.Median, s.Q975,
	)
}

func writePosterior(sp *startupParams, post *model.Posterior, stdout io.Writer) error {
	data, err := json.Marshal(post)
	if err != nil {
		return errors.Wrap(err, "Could not encode posterior")
	}
	data = append(data, '\n')

	if len(sp.outFile) < 1 {
		_, err = stdout.Write(data)
		return errors.Wrap(err, "Could not write posterior")
	}

	if err = atomic.WriteFile(sp.outFile, bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "Could not write posterior to %s", sp.outFile)
	}
	sp.out.Printf("Wrote posterior to %s\n", sp.outFile)
	return nil
}
