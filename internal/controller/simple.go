package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/spore/internal/model"
)

// SimpleUI implements UI using cobra Command's Printf. It is used when
// stdout is not a terminal (CI, pipes) or when --plain is set.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// SeedStarted prints the seed file currently being processed.
func (s *SimpleUI) SeedStarted(ctx context.Context, seed m.Seed) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("seeding from %s (%d bytes)\n", seed.Path, seed.Size)
}

// EntryWritten prints each persisted corpus entry.
func (s *SimpleUI) EntryWritten(ctx context.Context, entry m.Entry, duplicate bool) {
	if err := ctx.Err(); err != nil {
		return
	}

	if duplicate {
		s.printf("  %s (%d bytes, duplicate)\n", entry.Address, entry.Length)
		return
	}

	s.printf("  %s (%d bytes)\n", entry.Address, entry.Length)
}

// DisplaySummary prints the final run counts.
func (s *SimpleUI) DisplaySummary(ctx context.Context, manifest m.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\nseeded %d entries from %d seed file(s) into %s (%d duplicate(s))\n",
		manifest.Entries, manifest.Seeds, manifest.TargetDir, manifest.Duplicates)

	return nil
}

// DisplaySeedList renders discovered seeds as a table with projected
// entry counts.
func (s *SimpleUI) DisplaySeedList(ctx context.Context, seeds []m.Seed, trials int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := make([]m.Seed, len(seeds))
	copy(sorted, seeds)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	s.printf("\n%s", renderSeedTable(sorted, trials))

	return nil
}

func renderSeedTable(seeds []m.Seed, trials int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Seed", "Size", "Entries"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER})

	for _, seed := range seeds {
		table.Append([]string{
			string(seed.Path),
			fmt.Sprintf("%d", seed.Size),
			fmt.Sprintf("%d", trials),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Seeds %d", len(seeds)),
		"",
		fmt.Sprintf("%d", len(seeds)*trials),
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.cmd.Printf(format, args...)
}
