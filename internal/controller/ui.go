// Package controller provides output adapters for displaying seeding progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "github.com/mouse-blink/spore/internal/model"
)

// UI defines the interface for displaying seeding progress.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Start initializes the UI before a run begins.
	Start(ctx context.Context) error
	// Close finalizes the UI after a run completes or fails.
	Close(ctx context.Context)
	// SeedStarted reports that a seed file is being processed.
	SeedStarted(ctx context.Context, seed m.Seed)
	// EntryWritten reports a persisted corpus entry. duplicate is true when
	// an entry with the same content address already existed.
	EntryWritten(ctx context.Context, entry m.Entry, duplicate bool)
	// DisplaySummary renders the final run manifest.
	DisplaySummary(ctx context.Context, manifest m.Manifest) error
	// DisplaySeedList renders the discovered seeds with projected entry counts.
	DisplaySeedList(ctx context.Context, seeds []m.Seed, trials int) error
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewUI picks the interactive TUI when attached to a terminal and the
// plain printer otherwise.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}
