package domain

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mouse-blink/spore/internal/adapter"
	m "github.com/mouse-blink/spore/internal/model"
)

func writeStreamerFile(t *testing.T, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func drainSeeds(t *testing.T, seeds <-chan m.Seed, errs <-chan error) []m.Seed {
	t.Helper()

	var collected []m.Seed
	for seed := range seeds {
		collected = append(collected, seed)
	}

	if err := <-errs; err != nil {
		t.Fatalf("Stream() error = %v", err)
	}

	return collected
}

func TestSeedStreamer_FindsNestedSeeds(t *testing.T) {
	root := t.TempDir()
	writeStreamerFile(t, filepath.Join(root, "top.json"), "{}")
	writeStreamerFile(t, filepath.Join(root, "nested", "deep", "leaf.json"), "[]")
	writeStreamerFile(t, filepath.Join(root, "nested", "readme.md"), "not a seed")

	streamer := NewSeedStreamer(adapter.NewLocalCorpusFS())
	seeds, errs := streamer.Stream(context.Background(), m.Path(root), nil, 1)

	collected := drainSeeds(t, seeds, errs)
	if len(collected) != 2 {
		t.Fatalf("Stream() found %d seeds, want 2", len(collected))
	}

	for _, seed := range collected {
		if filepath.Ext(string(seed.Path)) != ".json" {
			t.Fatalf("Stream() yielded non-seed file %s", seed.Path)
		}
	}
}

func TestSeedStreamer_Restartable(t *testing.T) {
	root := t.TempDir()
	writeStreamerFile(t, filepath.Join(root, "a.json"), "{}")
	writeStreamerFile(t, filepath.Join(root, "b.json"), "[]")

	streamer := NewSeedStreamer(adapter.NewLocalCorpusFS())

	firstSeeds, firstErrs := streamer.Stream(context.Background(), m.Path(root), nil, 1)
	first := drainSeeds(t, firstSeeds, firstErrs)

	secondSeeds, secondErrs := streamer.Stream(context.Background(), m.Path(root), nil, 1)
	second := drainSeeds(t, secondSeeds, secondErrs)

	if len(first) != len(second) {
		t.Fatalf("re-scan yielded %d seeds, want %d", len(second), len(first))
	}
}

func TestSeedStreamer_ExcludeApplies(t *testing.T) {
	root := t.TempDir()
	writeStreamerFile(t, filepath.Join(root, "keep.json"), "{}")
	writeStreamerFile(t, filepath.Join(root, "golden", "skip.json"), "[]")

	streamer := NewSeedStreamer(adapter.NewLocalCorpusFS())
	seeds, errs := streamer.Stream(context.Background(), m.Path(root), []string{`golden/`}, 1)

	collected := drainSeeds(t, seeds, errs)
	if len(collected) != 1 {
		t.Fatalf("Stream() found %d seeds, want 1", len(collected))
	}

	if filepath.Base(string(collected[0].Path)) != "keep.json" {
		t.Fatalf("Stream() kept %s, want keep.json", collected[0].Path)
	}
}

func TestSeedStreamer_InvalidExcludePattern(t *testing.T) {
	root := t.TempDir()
	writeStreamerFile(t, filepath.Join(root, "a.json"), "{}")

	streamer := NewSeedStreamer(adapter.NewLocalCorpusFS())
	seeds, errs := streamer.Stream(context.Background(), m.Path(root), []string{`[`}, 1)

	for range seeds {
		t.Fatal("Stream() yielded a seed despite invalid pattern")
	}

	if err := <-errs; err == nil {
		t.Fatal("Stream() expected error for invalid exclude pattern")
	}
}

func TestSeedStreamer_MissingRoot(t *testing.T) {
	streamer := NewSeedStreamer(adapter.NewLocalCorpusFS())
	seeds, errs := streamer.Stream(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing")), nil, 1)

	for range seeds {
		t.Fatal("Stream() yielded a seed for a missing root")
	}

	if err := <-errs; err == nil {
		t.Fatal("Stream() expected error for missing root")
	}
}

func TestSeedStreamer_Cancellation(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeStreamerFile(t, filepath.Join(root, "seeds", string(rune('a'+i))+".json"), "{}")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	streamer := NewSeedStreamer(adapter.NewLocalCorpusFS())
	seeds, errs := streamer.Stream(ctx, m.Path(root), nil, 1)

	count := 0
	for range seeds {
		count++
	}

	if err := <-errs; err == nil {
		t.Fatal("Stream() expected cancellation error")
	}

	if count > 1 {
		t.Fatalf("Stream() yielded %d seeds after cancellation", count)
	}
}
