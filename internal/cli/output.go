package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/convplan/internal/plan"
)

// OutputConfig holds configuration for plan output.
type OutputConfig struct {
	// OutputFile is the path to save the plan's source form (empty for no
	// file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
}

// WritePlanToFile writes a compiled plan's source form to a file, preceded
// by a header recording what was compiled and when.
//
// Parameters:
//   - p: The compiled plan.
//   - compileTime: How long compilation took.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WritePlanToFile(p *plan.Plan, compileTime time.Duration, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	stats := p.Stats()
	fmt.Fprintf(file, "// Convolution plan\n")
	fmt.Fprintf(file, "// Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "// Input length: %d\n", p.N())
	fmt.Fprintf(file, "// Outputs: %d of %d\n", len(p.OutputDegrees()), 2*p.N()-1)
	fmt.Fprintf(file, "// Scratch slots: %d\n", p.Temps())
	fmt.Fprintf(file, "// Operations: %d\n", stats.Total())
	fmt.Fprintf(file, "// Compile time: %s\n", compileTime)
	fmt.Fprintf(file, "\n")

	if _, err := file.WriteString(p.Source()); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}
