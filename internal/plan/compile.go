// Package plan implements a miniature special-purpose compiler for fast
// convolution of fixed-shape sequences over an arbitrary ring. A single
// compilation builds the full Karatsuba expression tree for one (idx1, idx2,
// mask) configuration, shares and prunes it, and lowers it to an immutable
// instruction sequence that can then be executed any number of times against
// fresh runtime sequences via ring dispatch.
package plan

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

var (
	compilationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convplan_compilations_total",
			Help: "The total number of plan compilations attempted",
		},
		[]string{"status"},
	)
	compileDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "convplan_compile_duration_seconds",
			Help: "The duration of plan compilations in seconds",
		},
	)
	planInstructions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "convplan_plan_instructions",
			Help:    "Instructions per successfully compiled plan",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		},
	)
	executionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "convplan_executions_total",
			Help: "The total number of plan executions",
		},
	)
)

// Options control how a plan is compiled. The zero value selects the
// defaults: fully recursive Karatsuba, sequential build.
type Options struct {
	// BaseThreshold is the size at or below which the builder emits the
	// direct schoolbook convolution. Zero selects DefaultBaseThreshold.
	BaseThreshold int

	// ParallelDepth bounds how many recursion levels fan their three
	// sub-builds out to goroutines. Zero builds sequentially; values above
	// MaxParallelDepth are clamped. Compilation output is identical either
	// way; only build latency changes.
	ParallelDepth int
}

func (o Options) normalize() Options {
	if o.BaseThreshold <= 0 {
		o.BaseThreshold = DefaultBaseThreshold
	}
	if o.ParallelDepth < 0 {
		o.ParallelDepth = 0
	}
	if o.ParallelDepth > MaxParallelDepth {
		o.ParallelDepth = MaxParallelDepth
	}
	return o
}

// Compile builds an executable convolution plan for the given request.
//
// The pipeline is: validate and normalize the request, build the full
// Karatsuba expression tree, share structurally identical subexpressions,
// prune everything only unwanted outputs need, and linearize the survivors.
// Build time is amortized over the plan's executions; the result is
// immutable and concurrency-safe.
//
// Parameters:
//   - ctx: Context used for trace span parenting only; compilation is a
//     single synchronous computation with no cancellation points.
//   - req: The index mappings and output mask to compile for.
//   - opts: Tuning knobs; the zero value is fine.
//
// Returns:
//   - *Plan: The compiled plan.
//   - error: An apperrors.ConfigError for structurally invalid requests.
func Compile(ctx context.Context, req Request, opts Options) (plan *Plan, err error) {
	tracer := otel.Tracer("convplan")
	_, span := tracer.Start(ctx, "plan.Compile")
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
		}
		compilationsTotal.WithLabelValues(status).Inc()
		compileDuration.Observe(duration)

		event := log.Debug().
			Int("n", len(req.Idx1)).
			Float64("duration", duration).
			Str("status", status)
		if plan != nil {
			event = event.
				Int("instructions", len(plan.code)).
				Int("muls", plan.stats.Muls).
				Int("outputs", len(plan.outputs))
		}
		event.Msg("plan compiled")
	}()

	mask, err := req.normalize()
	if err != nil {
		return nil, err
	}
	opts = opts.normalize()
	n := len(req.Idx1)

	a := newArena()
	u := leaves(a, SideU, req.Idx1)
	v := leaves(a, SideV, req.Idx2)

	b := &builder{a: a, base: opts.BaseThreshold}
	raw := b.conv(u, v, opts.ParallelDepth)

	// The builder pads its result to 2n; the convolution itself has 2n-1
	// degrees.
	allOutputs := raw[:2*n-1]

	a, allOutputs = cse(a, allOutputs)

	var wanted []int
	var degrees []int
	for d, keep := range mask {
		if keep {
			wanted = append(wanted, allOutputs[d])
			degrees = append(degrees, d)
		}
	}
	a, wanted = dce(a, wanted)

	code, tmps, outs, stats := emit(a, wanted, degrees)
	planInstructions.Observe(float64(len(code)))

	plan = &Plan{
		n:       n,
		idx1:    append([]int(nil), req.Idx1...),
		idx2:    append([]int(nil), req.Idx2...),
		mask:    mask,
		code:    code,
		tmps:    tmps,
		outputs: outs,
		degrees: degrees,
		stats:   stats,
	}
	return plan, nil
}
