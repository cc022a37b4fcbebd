package domain

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/mouse-blink/spore/internal/adapter"
	m "github.com/mouse-blink/spore/internal/model"
)

// SeedStreamer defines the interface for streaming seed discovery.
type SeedStreamer interface {
	Stream(ctx context.Context, root m.Path, exclude []string, buffer int) (<-chan m.Seed, <-chan error)
}

type seedStreamer struct {
	adapter.CorpusFS
}

// NewSeedStreamer creates a SeedStreamer backed by the provided filesystem.
func NewSeedStreamer(fs adapter.CorpusFS) SeedStreamer {
	return &seedStreamer{CorpusFS: fs}
}

// Stream walks root lazily and sends every seed file on the returned
// channel as it is found. The seed channel closes when the walk finishes
// or ctx is cancelled; the error channel carries at most one walk error.
func (s *seedStreamer) Stream(ctx context.Context, root m.Path, exclude []string, buffer int) (<-chan m.Seed, <-chan error) {
	slog.Debug("starting seed discovery", "root", root)

	seeds := make(chan m.Seed, normalizeBufferSize(buffer))
	errs := make(chan error, 1)

	filters := make([]*regexp.Regexp, 0, len(exclude))
	var compileErr error

	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			compileErr = err
			break
		}

		filters = append(filters, re)
	}

	go func() {
		defer close(seeds)
		defer close(errs)

		if compileErr != nil {
			errs <- compileErr
			return
		}

		count := 0

		err := s.Walk(root, func(seed m.Seed) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			for _, re := range filters {
				if re.MatchString(string(seed.Path)) {
					return nil
				}
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case seeds <- seed:
				count++
				return nil
			}
		})
		if err != nil {
			slog.Error("seed discovery failed", "root", root, "error", err)
			errs <- err

			return
		}

		slog.Debug("seed discovery finished", "root", root, "count", count)
	}()

	return seeds, errs
}

// normalizeBufferSize ensures the channel buffer is at least 1.
func normalizeBufferSize(buffer int) int {
	if buffer <= 0 {
		return 1
	}

	return buffer
}
