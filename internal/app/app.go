// Package app wires configuration, compilation, and presentation into the
// convplan command. It owns mode dispatch and process exit codes; all I/O
// goes through the writers handed to it, so the whole application is
// testable in-process.
package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/convplan/internal/config"
	"github.com/agbru/convplan/internal/logging"
	"github.com/agbru/convplan/internal/plancache"
	"github.com/agbru/convplan/internal/ui"
)

// Application represents the convplan application instance.
type Application struct {
	Config    config.AppConfig
	Cache     *plancache.Cache
	ErrWriter io.Writer
	Log       logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithCache sets a custom plan cache for the application.
func WithCache(c *plancache.Cache) AppOption {
	return func(a *Application) { a.Cache = c }
}

// WithLogger sets a custom logger for the application.
func WithLogger(log logging.Logger) AppOption {
	return func(a *Application) { a.Log = log }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name in args[0], matching os.Args.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Cache == nil {
		app.Cache = plancache.New(plancache.DefaultConfig())
	}

	programName := "convplan"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	cfg = config.ApplyAdaptiveThresholds(cfg)

	app.Config = cfg
	if app.Log == nil {
		app.Log = logging.NewLogger(errWriter, "app")
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	a.initLogging()
	ui.InitTheme(a.Config.NoColor)

	switch a.Config.Mode {
	case config.ModeRecip:
		return a.runReciprocal(ctx, out)
	default:
		return a.runCompile(ctx, out)
	}
}

// initLogging maps the verbosity flags onto the global zerolog level.
func (a *Application) initLogging() {
	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
