package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerRefreshRate is the animation interval for the terminal spinner.
const SpinnerRefreshRate = 100 * time.Millisecond

// Spinner abstracts the behavior of a terminal spinner so presentation code
// can be tested without driving a real terminal animation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to satisfy the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

// nopSpinner is used when animated output is unwanted (quiet mode, piped
// output).
type nopSpinner struct{}

func (nopSpinner) Start()                     {}
func (nopSpinner) Stop()                      {}
func (nopSpinner) UpdateSuffix(suffix string) {}

// NewSpinner creates a Spinner writing to out. When animate is false the
// returned spinner does nothing.
func NewSpinner(out io.Writer, animate bool) Spinner {
	if !animate {
		return nopSpinner{}
	}
	return &realSpinner{
		s: spinner.New(spinner.CharSets[14], SpinnerRefreshRate, spinner.WithWriter(out)),
	}
}

// RunWithSpinner runs fn while the spinner animates with the given message.
// The spinner is stopped before the function's error is returned, so callers
// can write to the same stream immediately afterwards.
func RunWithSpinner(sp Spinner, message string, fn func() error) error {
	sp.UpdateSuffix(" " + message)
	sp.Start()
	defer sp.Stop()
	return fn()
}
