// Package config holds the application configuration for the convplan CLI
// and the tuning knobs of the plan compiler. Values are resolved with the
// priority: CLI flags > environment variables > adaptive estimation > static
// defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/agbru/convplan/internal/errors"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "CONVPLAN_"

// Run modes accepted by the -mode flag.
const (
	ModeSource = "source" // print the compiled plan's source form
	ModeStats  = "stats"  // print operation statistics for the compiled plan
	ModeDemo   = "demo"   // compile and evaluate over a demo int64 input
	ModeRecip  = "recip"  // reciprocal power-series demonstration
)

// AppConfig holds the complete configuration of a convplan invocation.
type AppConfig struct {
	// N is the input length the plan is compiled for. Must be a power of two.
	N int
	// Mask is the textual output mask: "all" or a string of '1'/'0' runes of
	// length 2N-1 ('1' marks a wanted output degree).
	Mask string
	// Mode selects what to do with the compiled plan (source|stats|demo|recip).
	Mode string
	// BaseThreshold is the size at or below which the builder emits the
	// direct schoolbook convolution instead of recursing. Zero selects the
	// default.
	BaseThreshold int
	// ParallelDepth bounds the depth of parallel Karatsuba recursion.
	// Zero means sequential build; negative selects the adaptive estimate.
	ParallelDepth int
	// Output is an optional file path the compiled plan's source form is
	// written to.
	Output string
	// NoColor disables ANSI colors in terminal output.
	NoColor bool
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses informational output (results only).
	Quiet bool
}

// DefaultMode is the run mode used when none is specified.
const DefaultMode = ModeSource

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment overrides for flags that were not set explicitly.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The raw command-line arguments (without the program name).
//   - errWriter: Destination for flag parsing errors and usage text.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp if help was requested, or a ConfigError for
//     invalid values.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.IntVar(&cfg.N, "n", 8, "input length the plan is compiled for (power of two)")
	fs.StringVar(&cfg.Mask, "mask", "all", "output mask: \"all\" or a '1'/'0' string of length 2n-1")
	fs.StringVar(&cfg.Mode, "mode", DefaultMode, "run mode: source|stats|demo|recip")
	fs.IntVar(&cfg.BaseThreshold, "base-threshold", 0, "schoolbook base-case size (0 = default)")
	fs.IntVar(&cfg.ParallelDepth, "parallel-depth", 0, "parallel recursion depth (0 = sequential, -1 = adaptive)")
	fs.StringVar(&cfg.Output, "o", "", "write the plan's source form to this file")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable debug logging")
	fs.BoolVar(&cfg.Quiet, "q", false, "suppress informational output")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the rest of the application
// cannot work with. Index/mask shape validation proper is the compiler's
// responsibility; this only rejects what the CLI layer itself cannot map to
// a compilation request.
func (c AppConfig) Validate() error {
	if c.N <= 0 {
		return apperrors.NewConfigError("input length must be positive, got %d", c.N)
	}
	switch c.Mode {
	case ModeSource, ModeStats, ModeDemo, ModeRecip:
	default:
		return apperrors.NewConfigError("unknown mode %q (want source|stats|demo|recip)", c.Mode)
	}
	if c.Mask != "all" {
		for _, r := range c.Mask {
			if r != '0' && r != '1' {
				return apperrors.NewConfigError("mask must be \"all\" or consist of '0'/'1', got %q", c.Mask)
			}
		}
	}
	if c.BaseThreshold < 0 {
		return apperrors.NewConfigError("base threshold cannot be negative, got %d", c.BaseThreshold)
	}
	return nil
}

// MaskBits expands the textual mask into the boolean form expected by the
// compiler, or nil for "all".
func (c AppConfig) MaskBits() []bool {
	if strings.EqualFold(c.Mask, "all") {
		return nil
	}
	bits := make([]bool, len(c.Mask))
	for i, r := range c.Mask {
		bits[i] = r == '1'
	}
	return bits
}
