// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their
// behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayStats], [DisplayDemo].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WritePlanToFile].

package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/convplan/internal/config"
	apperrors "github.com/agbru/convplan/internal/errors"
	"github.com/agbru/convplan/internal/format"
	"github.com/agbru/convplan/internal/metrics"
	"github.com/agbru/convplan/internal/plan"
	"github.com/agbru/convplan/internal/ui"
)

// PrintExecutionConfig displays the resolved configuration before a
// compilation run.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sCompiling convolution plan%s (n=%s%d%s, mask=%s%s%s, mode=%s)\n",
		ui.ColorBold(), ui.ColorReset(),
		ui.ColorPrimary(), cfg.N, ui.ColorReset(),
		ui.ColorPrimary(), cfg.Mask, ui.ColorReset(),
		cfg.Mode)
	if cfg.ParallelDepth != 0 {
		fmt.Fprintf(out, "Parallel build depth: %d\n", cfg.ParallelDepth)
	}
	if cfg.BaseThreshold > 0 {
		fmt.Fprintf(out, "Schoolbook base threshold: %d\n", cfg.BaseThreshold)
	}
}

// DisplaySource writes the plan's textual source form.
func DisplaySource(p *plan.Plan, out io.Writer) {
	io.WriteString(out, p.Source())
}

// DisplayStats displays the plan's operation counts as a table, followed by
// the compilation cost.
// Uses manual padding to correctly handle ANSI color codes.
func DisplayStats(p *plan.Plan, compileTime time.Duration, delta metrics.MemoryDelta, out io.Writer) {
	stats := p.Stats()
	rows := []struct {
		label string
		count int
	}{
		{"Multiplications", stats.Muls},
		{"Additions", stats.Adds},
		{"Subtractions", stats.Subs},
		{"Negations", stats.Negs},
		{"Total", stats.Total()},
	}

	fmt.Fprintf(out, "\n--- Plan Statistics ---\n")

	maxLabelLen := len("Operation")
	maxCountLen := len("Count")
	for _, row := range rows {
		if len(row.label) > maxLabelLen {
			maxLabelLen = len(row.label)
		}
		if c := format.FormatCount(row.count); len(c) > maxCountLen {
			maxCountLen = len(c)
		}
	}

	fmt.Fprintf(out, "%sOperation%s%s   %sCount%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxLabelLen-len("Operation")),
		ui.ColorUnderline(), ui.ColorReset())
	for _, row := range rows {
		count := format.FormatCount(row.count)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s\n",
			ui.ColorInfo(), row.label, ui.ColorReset(), padRight("", maxLabelLen-len(row.label)),
			ui.ColorWarning(), padRight("", maxCountLen-len(count))+count, ui.ColorReset())
	}

	fmt.Fprintf(out, "\nScratch slots: %d\n", p.Temps())
	fmt.Fprintf(out, "Output degrees: %d of %d\n", len(p.OutputDegrees()), 2*p.N()-1)
	fmt.Fprintf(out, "Compile time: %s%s%s\n",
		ui.ColorSuccess(), format.FormatExecutionDuration(compileTime), ui.ColorReset())
	fmt.Fprintf(out, "Compile allocations: %s (%d GC cycles)\n",
		format.FormatBytes(delta.AllocBytes), delta.GCCycles)
}

// DisplayQuietStats formats the plan's counters as a single line suitable
// for scripting.
func DisplayQuietStats(p *plan.Plan, out io.Writer) {
	stats := p.Stats()
	fmt.Fprintf(out, "mul=%d add=%d sub=%d neg=%d tmp=%d out=%d\n",
		stats.Muls, stats.Adds, stats.Subs, stats.Negs, p.Temps(), len(p.OutputDegrees()))
}

// DisplayDemo displays a demo evaluation: the two input vectors and the
// produced coefficients, each tagged with its degree.
func DisplayDemo(u, v, results []int64, degrees []int, out io.Writer) {
	fmt.Fprintf(out, "u = %v\n", u)
	fmt.Fprintf(out, "v = %v\n", v)
	for i, d := range degrees {
		fmt.Fprintf(out, "  (u*v)[%s%d%s] = %s%d%s\n",
			ui.ColorPrimary(), d, ui.ColorReset(),
			ui.ColorSuccess(), results[i], ui.ColorReset())
	}
}

// DisplayReciprocal displays the coefficients of a computed series
// reciprocal along with the elapsed time.
func DisplayReciprocal(coeffs []int64, elapsed time.Duration, out io.Writer) {
	fmt.Fprintf(out, "1/a = %v\n", coeffs)
	fmt.Fprintf(out, "Computed %d coefficients in %s\n",
		len(coeffs), format.FormatExecutionDuration(elapsed))
}

// HandleError prints err and returns the process exit code for it.
// Configuration problems map to a dedicated code so scripts can tell bad
// invocations from runtime failures.
func HandleError(err error, out io.Writer) int {
	fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())

	var cfgErr apperrors.ConfigError
	if errors.As(err, &cfgErr) {
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitErrorGeneric
}

// padRight returns a string of spaces with the given length appended to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}
