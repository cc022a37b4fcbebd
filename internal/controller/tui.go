package controller

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/spore/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	counterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
	runErr  error
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress program in the background.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.done = make(chan struct{})
	t.program = tea.NewProgram(newSeedProgressModel(), tea.WithOutput(t.output))

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			t.runErr = err
		}
	}()

	return nil
}

// Close stops the progress program if it is still running.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Quit()
	<-t.done
	t.program = nil
}

// SeedStarted forwards the seed to the progress model.
func (t *TUI) SeedStarted(ctx context.Context, seed m.Seed) {
	if ctx.Err() != nil || t.program == nil {
		return
	}

	t.program.Send(seedStartedMsg{seed: seed})
}

// EntryWritten forwards the persisted entry to the progress model.
func (t *TUI) EntryWritten(ctx context.Context, entry m.Entry, duplicate bool) {
	if ctx.Err() != nil || t.program == nil {
		return
	}

	t.program.Send(entryWrittenMsg{entry: entry, duplicate: duplicate})
}

// DisplaySummary sends the final manifest, waits for the program to
// render it and exit, then reports any program error.
func (t *TUI) DisplaySummary(ctx context.Context, manifest m.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.program == nil {
		_, err := fmt.Fprint(t.output, renderSummary(manifest))
		return err
	}

	t.program.Send(summaryMsg{manifest: manifest})
	<-t.done
	t.program = nil

	return t.runErr
}

// DisplaySeedList renders the seed table directly; a short static list
// does not need an interactive program.
func (t *TUI) DisplaySeedList(ctx context.Context, seeds []m.Seed, trials int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sorted := make([]m.Seed, len(seeds))
	copy(sorted, seeds)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Path < sorted[j].Path
	})

	var b strings.Builder
	b.WriteString(titleStyle.Render("spore — seed files"))
	b.WriteString("\n")
	b.WriteString(renderSeedTable(sorted, trials))

	_, err := fmt.Fprint(t.output, b.String())

	return err
}

type seedStartedMsg struct {
	seed m.Seed
}

type entryWrittenMsg struct {
	entry     m.Entry
	duplicate bool
}

type summaryMsg struct {
	manifest m.Manifest
}

// seedProgressModel tracks counters for the live progress view.
type seedProgressModel struct {
	spin       spinner.Model
	current    m.Path
	seeds      int
	entries    int
	duplicates int
	manifest   m.Manifest
	finished   bool
}

func newSeedProgressModel() seedProgressModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = counterStyle

	return seedProgressModel{spin: spin}
}

func (sm seedProgressModel) Init() tea.Cmd {
	return sm.spin.Tick
}

func (sm seedProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return sm, tea.Quit
		}

	case seedStartedMsg:
		sm.seeds++
		sm.current = msg.seed.Path

		return sm, nil

	case entryWrittenMsg:
		if msg.duplicate {
			sm.duplicates++
		} else {
			sm.entries++
		}

		return sm, nil

	case summaryMsg:
		sm.manifest = msg.manifest
		sm.finished = true

		return sm, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		sm.spin, cmd = sm.spin.Update(msg)

		return sm, cmd
	}

	return sm, nil
}

func (sm seedProgressModel) View() string {
	if sm.finished {
		return renderSummary(sm.manifest)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("spore — seeding corpus"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", sm.spin.View(), dimStyle.Render(string(sm.current))))
	b.WriteString(counterStyle.Render(
		fmt.Sprintf("seeds %d · entries %d · duplicates %d", sm.seeds, sm.entries, sm.duplicates)))
	b.WriteString("\n")

	return b.String()
}

func renderSummary(manifest m.Manifest) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("spore — run complete"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("seeds      %d\n", manifest.Seeds))
	b.WriteString(fmt.Sprintf("entries    %d\n", manifest.Entries))
	b.WriteString(fmt.Sprintf("duplicates %d\n", manifest.Duplicates))
	b.WriteString(dimStyle.Render(fmt.Sprintf("corpus: %s", manifest.TargetDir)))
	b.WriteString("\n")

	return b.String()
}
