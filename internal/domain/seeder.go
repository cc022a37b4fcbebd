package domain

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/spore/internal/adapter"
	"github.com/mouse-blink/spore/internal/controller"
	m "github.com/mouse-blink/spore/internal/model"
)

// ManifestFileName is the name of the run manifest written next to the
// corpus directory.
const ManifestFileName = "manifest.yaml"

// RunArgs configures a seeding run.
type RunArgs struct {
	SourceRoot    m.Path
	TargetDir     m.Path
	Trials        int
	InsertByte    byte
	Exclude       []string
	Parallel      int
	RandSeed      int64
	WriteManifest bool
}

// ListArgs configures a seed listing.
type ListArgs struct {
	SourceRoot m.Path
	Exclude    []string
	Trials     int
}

// Seeder drives a full corpus seeding run.
type Seeder interface {
	Run(ctx context.Context, args RunArgs) (m.Manifest, error)
	List(ctx context.Context, args ListArgs) error
}

type seeder struct {
	adapter.CorpusFS
	adapter.ManifestStore
	controller.UI
	SeedStreamer
}

// NewSeeder creates a Seeder with the provided dependencies.
func NewSeeder(fs adapter.CorpusFS, manifests adapter.ManifestStore, ui controller.UI, streamer SeedStreamer) Seeder {
	return &seeder{
		CorpusFS:      fs,
		ManifestStore: manifests,
		UI:            ui,
		SeedStreamer:  streamer,
	}
}

// runCounters tracks totals across workers.
type runCounters struct {
	mu         sync.Mutex
	seeds      int
	entries    int
	duplicates int
}

func (c *runCounters) seedDone() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seeds++
}

func (c *runCounters) entryWritten(duplicate bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if duplicate {
		c.duplicates++
	} else {
		c.entries++
	}
}

// Run discovers every seed under args.SourceRoot and produces
// args.Trials mutated samples per seed in args.TargetDir. Any I/O error
// aborts the run; the seeder has no retry or partial-completion policy
// since a rerun is cheap and idempotent.
func (s *seeder) Run(ctx context.Context, args RunArgs) (m.Manifest, error) {
	args = normalizeArgs(args)

	slog.Info("starting seeding run",
		"source", args.SourceRoot, "target", args.TargetDir,
		"trials", args.Trials, "parallel", args.Parallel)

	if _, err := s.FileInfo(args.SourceRoot); err != nil {
		return m.Manifest{}, fmt.Errorf("source root %s: %w", args.SourceRoot, err)
	}

	// The target directory exists even when no seeds are found.
	if err := s.EnsureDir(args.TargetDir); err != nil {
		return m.Manifest{}, fmt.Errorf("create target dir %s: %w", args.TargetDir, err)
	}

	if err := s.UI.Start(ctx); err != nil {
		return m.Manifest{}, err
	}
	defer s.UI.Close(ctx)

	counters := &runCounters{}

	group, groupCtx := errgroup.WithContext(ctx)

	seeds, walkErrs := s.Stream(groupCtx, args.SourceRoot, args.Exclude, args.Parallel)

	for i := 0; i < args.Parallel; i++ {
		worker := i
		group.Go(func() error {
			return s.consumeSeeds(groupCtx, worker, args, seeds, counters)
		})
	}

	group.Go(func() error {
		select {
		case <-groupCtx.Done():
			return groupCtx.Err()
		case err, ok := <-walkErrs:
			if !ok || err == nil {
				return nil
			}

			return err
		}
	})

	if err := group.Wait(); err != nil {
		slog.Error("seeding run failed", "error", err)
		return m.Manifest{}, err
	}

	manifest := m.Manifest{
		GeneratedAt: time.Now().UTC(),
		SourceRoot:  string(args.SourceRoot),
		TargetDir:   string(args.TargetDir),
		Trials:      args.Trials,
		InsertByte:  args.InsertByte,
		Seeds:       counters.seeds,
		Entries:     counters.entries,
		Duplicates:  counters.duplicates,
	}

	if args.WriteManifest {
		manifestPath := ManifestPath(args.TargetDir)
		if err := s.Save(manifestPath, manifest); err != nil {
			return m.Manifest{}, err
		}

		slog.Debug("wrote run manifest", "path", manifestPath)
	}

	if err := s.DisplaySummary(ctx, manifest); err != nil {
		return m.Manifest{}, err
	}

	slog.Info("seeding run complete",
		"seeds", manifest.Seeds, "entries", manifest.Entries, "duplicates", manifest.Duplicates)

	return manifest, nil
}

// consumeSeeds drains the seed channel, producing all mutation trials for
// each seed it claims. Seeds are disjoint across workers, and entries land
// at content-addressed paths, so workers never race on a file.
func (s *seeder) consumeSeeds(ctx context.Context, worker int, args RunArgs, seeds <-chan m.Seed, counters *runCounters) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case seed, ok := <-seeds:
			if !ok {
				return nil
			}

			if err := s.processSeed(ctx, worker, args, seed, counters); err != nil {
				return err
			}
		}
	}
}

// processSeed reads a seed once and persists args.Trials mutated samples.
func (s *seeder) processSeed(ctx context.Context, worker int, args RunArgs, seed m.Seed, counters *runCounters) error {
	s.SeedStarted(ctx, seed)

	data, err := s.ReadFile(seed.Path)
	if err != nil {
		return fmt.Errorf("read seed %s: %w", seed.Path, err)
	}

	rng := seedRNG(args.RandSeed, seed.Path)

	for trial := 0; trial < args.Trials; trial++ {
		sample := Mutate(data, args.InsertByte, rng)
		address := ContentAddress(sample)

		entry, existed, err := s.WriteEntry(args.TargetDir, address, sample)
		if err != nil {
			return err
		}

		counters.entryWritten(existed)
		s.EntryWritten(ctx, entry, existed)

		slog.Debug("persisted corpus entry",
			"worker", worker, "seed", seed.Path, "trial", trial,
			"address", address, "duplicate", existed)
	}

	counters.seedDone()

	return nil
}

// List renders every seed under args.SourceRoot together with the number
// of entries a run would project per seed.
func (s *seeder) List(ctx context.Context, args ListArgs) error {
	if args.Trials <= 0 {
		args.Trials = DefaultTrials
	}

	if _, err := s.FileInfo(args.SourceRoot); err != nil {
		return fmt.Errorf("source root %s: %w", args.SourceRoot, err)
	}

	seeds, err := s.DiscoverSeeds(args.SourceRoot, args.Exclude...)
	if err != nil {
		slog.Error("seed listing failed", "root", args.SourceRoot, "error", err)
		return err
	}

	return s.DisplaySeedList(ctx, seeds, args.Trials)
}

// ManifestPath returns where the run manifest lives for a given corpus
// directory: a sibling of the corpus dir so fuzzers reading the corpus
// never pick it up as an input.
func ManifestPath(targetDir m.Path) m.Path {
	return m.Path(filepath.Join(filepath.Dir(string(targetDir)), ManifestFileName))
}

func normalizeArgs(args RunArgs) RunArgs {
	if args.Trials <= 0 {
		args.Trials = DefaultTrials
	}

	if args.Parallel <= 0 {
		args.Parallel = 1
	}

	return args
}

// seedRNG derives a per-seed random source. With a fixed base seed the
// run is fully reproducible regardless of worker scheduling, because each
// seed file owns an independent stream keyed by its path.
func seedRNG(base int64, path m.Path) *rand.Rand {
	if base == 0 {
		base = time.Now().UnixNano()
	}

	digest := sha256.Sum256([]byte(path))
	sub := int64(binary.LittleEndian.Uint64(digest[:8]))

	return rand.New(rand.NewSource(base ^ sub))
}
