package internal

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// UIManager handles user-facing output for the CLI surface (status
// messages, spinners). The HTTP and MCP surfaces never touch it.
type UIManager interface {
	NewSpinner(description string) Spinner
	Printf(format string, args ...any)
}

// Spinner abstracts an in-progress indicator.
type Spinner interface {
	Describe(description string)
	Finish()
}

// StandardUIManager writes to stdout unless quiet.
type StandardUIManager struct {
	quiet bool
}

// NewUIManager creates the default UI manager.
func NewUIManager(quiet bool) UIManager {
	return &StandardUIManager{quiet: quiet}
}

func (ui *StandardUIManager) NewSpinner(description string) Spinner {
	if ui.quiet {
		return silentSpinner{}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	return &visibleSpinner{bar: bar}
}

func (ui *StandardUIManager) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Printf(format, args...)
	}
}

type visibleSpinner struct {
	bar *progressbar.ProgressBar
}

func (s *visibleSpinner) Describe(description string) {
	s.bar.Describe(description)
}

func (s *visibleSpinner) Finish() {
	_ = s.bar.Finish()
}

type silentSpinner struct{}

func (silentSpinner) Describe(string) {}
func (silentSpinner) Finish()         {}
