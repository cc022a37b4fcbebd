// Package adapter contains filesystem and storage adapters for the spore CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "github.com/mouse-blink/spore/internal/model"
)

// seedSuffix is the file suffix that marks a file as a mutation base.
const seedSuffix = ".json"

// entryFileMode is the permission applied to persisted corpus entries.
const entryFileMode = 0o644

// corpusDirMode is the permission applied to created corpus directories.
const corpusDirMode = 0o750

// CorpusFS abstracts the filesystem operations the seeding workflow relies
// on. It hides direct `os` access so the domain logic can be tested without
// touching the disk.
type CorpusFS interface {
	// Walk traverses the tree rooted at root, calling fn for every regular
	// file whose name carries the seed suffix. Walk is restartable: an
	// unchanged tree yields the same files on every call. No ordering is
	// guaranteed.
	Walk(root m.Path, fn SeedWalkFunc) error

	// DiscoverSeeds collects every seed under root, skipping paths matched
	// by any of the exclude regular expressions.
	DiscoverSeeds(root m.Path, exclude ...string) ([]m.Seed, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// EnsureDir creates dir and any missing parents. Safe to call when the
	// directory already exists, including concurrently.
	EnsureDir(dir m.Path) error

	// WriteEntry persists data under dir with the given content address as
	// its filename, overwriting any existing file of that name. It reports
	// whether an entry with that address already existed.
	WriteEntry(dir m.Path, address string, data []byte) (m.Entry, bool, error)

	// FileInfo returns metadata for a path so callers can check existence
	// or distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// SeedWalkFunc is the callback invoked by Walk for every discovered seed.
// Returning an error aborts the walk.
type SeedWalkFunc func(seed m.Seed) error

// LocalCorpusFS is the os-backed implementation of CorpusFS.
type LocalCorpusFS struct{}

// NewLocalCorpusFS constructs a LocalCorpusFS ready to be wired into the
// seeding workflow.
func NewLocalCorpusFS() *LocalCorpusFS {
	return &LocalCorpusFS{}
}

// Walk iterates over seed files under root.
func (a *LocalCorpusFS) Walk(root m.Path, fn SeedWalkFunc) error {
	return filepath.Walk(string(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !strings.HasSuffix(info.Name(), seedSuffix) {
			return nil
		}

		return fn(m.Seed{Path: m.Path(path), Size: info.Size()})
	})
}

// DiscoverSeeds collects seeds under root, filtered by the exclude patterns.
func (a *LocalCorpusFS) DiscoverSeeds(root m.Path, exclude ...string) ([]m.Seed, error) {
	filters, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	var seeds []m.Seed

	err = a.Walk(root, func(seed m.Seed) error {
		if matchesAny(filters, string(seed.Path)) {
			return nil
		}

		seeds = append(seeds, seed)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover seeds under %s: %w", root, err)
	}

	return seeds, nil
}

// ReadFile loads file contents from disk.
func (a *LocalCorpusFS) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// EnsureDir creates dir and any missing parents.
func (a *LocalCorpusFS) EnsureDir(dir m.Path) error {
	return os.MkdirAll(string(dir), corpusDirMode)
}

// WriteEntry persists a content-addressed entry, creating dir if it is
// missing. Rewriting identical content is a no-op in effect, so
// collisions across trials are benign.
func (a *LocalCorpusFS) WriteEntry(dir m.Path, address string, data []byte) (m.Entry, bool, error) {
	if err := a.EnsureDir(dir); err != nil {
		return m.Entry{}, false, fmt.Errorf("create corpus dir %s: %w", dir, err)
	}

	target := filepath.Join(string(dir), address)

	_, statErr := os.Stat(target)
	existed := statErr == nil

	if err := os.WriteFile(target, data, entryFileMode); err != nil {
		return m.Entry{}, existed, fmt.Errorf("write corpus entry %s: %w", address, err)
	}

	return m.Entry{Address: address, Path: m.Path(target), Length: len(data)}, existed, nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalCorpusFS) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	filters := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		filters = append(filters, re)
	}

	return filters, nil
}

func matchesAny(filters []*regexp.Regexp, path string) bool {
	for _, re := range filters {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}
