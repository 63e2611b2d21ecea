package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/convplan/internal/cli"
	"github.com/agbru/convplan/internal/config"
	apperrors "github.com/agbru/convplan/internal/errors"
	"github.com/agbru/convplan/internal/logging"
	"github.com/agbru/convplan/internal/metrics"
	"github.com/agbru/convplan/internal/plan"
	"github.com/agbru/convplan/internal/ring"
	"github.com/agbru/convplan/internal/series"
)

// runCompile compiles a plan for the configured request and hands it to the
// presenter matching the run mode.
func (a *Application) runCompile(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	req := plan.Request{
		Idx1: plan.Identity(a.Config.N),
		Idx2: plan.Identity(a.Config.N),
		Mask: a.Config.MaskBits(),
	}
	opts := plan.Options{
		BaseThreshold: a.Config.BaseThreshold,
		ParallelDepth: a.Config.ParallelDepth,
	}

	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()
	start := time.Now()

	var p *plan.Plan
	sp := cli.NewSpinner(out, !a.Config.Quiet && a.Config.N >= 1024)
	err := cli.RunWithSpinner(sp, "compiling...", func() error {
		var err error
		p, err = a.Cache.GetOrCompile(ctx, req, opts)
		return err
	})
	compileTime := time.Since(start)
	delta := collector.Delta(before)

	if err != nil {
		return cli.HandleError(err, a.ErrWriter)
	}
	a.Log.Debug("plan compiled",
		logging.Int("n", p.N()),
		logging.Int("instructions", len(p.Instructions())),
		logging.String("duration", compileTime.String()))

	if err := cli.WritePlanToFile(p, compileTime, cli.OutputConfig{
		OutputFile: a.Config.Output,
		Quiet:      a.Config.Quiet,
	}); err != nil {
		return cli.HandleError(err, a.ErrWriter)
	}

	switch a.Config.Mode {
	case config.ModeStats:
		if a.Config.Quiet {
			cli.DisplayQuietStats(p, out)
		} else {
			cli.DisplayStats(p, compileTime, delta, out)
		}
	case config.ModeDemo:
		a.runDemo(p, out)
	default:
		cli.DisplaySource(p, out)
	}
	return apperrors.ExitSuccess
}

// runDemo evaluates the compiled plan over a fixed int64 input so the
// emitted instructions can be eyeballed against actual values.
func (a *Application) runDemo(p *plan.Plan, out io.Writer) {
	u := make([]int64, a.Config.N)
	v := make([]int64, a.Config.N)
	for i := range u {
		u[i] = int64(i + 1)
		v[i] = int64(i + 1)
	}
	results := plan.Execute(p, ring.Int64{}, u, v)
	cli.DisplayDemo(u, v, results, p.OutputDegrees(), out)
}

// runReciprocal demonstrates the series consumer: it inverts the all-ones
// series of length N, whose reciprocal is 1 - x.
func (a *Application) runReciprocal(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	coeffs := make([]int64, a.Config.N)
	for i := range coeffs {
		coeffs[i] = 1
	}

	iv := series.NewInverter[int64](ring.Int64{},
		series.WithCache[int64](a.Cache),
		series.WithPlanOptions[int64](plan.Options{
			BaseThreshold: a.Config.BaseThreshold,
			ParallelDepth: a.Config.ParallelDepth,
		}),
		series.WithLogger[int64](a.Log),
	)

	start := time.Now()
	recip, err := iv.Reciprocal(ctx, coeffs, 1, a.Config.N)
	if err != nil {
		return cli.HandleError(err, a.ErrWriter)
	}
	cli.DisplayReciprocal(recip, time.Since(start), out)
	return apperrors.ExitSuccess
}
