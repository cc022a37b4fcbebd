package adapter

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/spore/internal/model"
)

func writeTestBytes(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func containsSeed(seeds []m.Seed, path string) bool {
	for _, seed := range seeds {
		if string(seed.Path) == path {
			return true
		}
	}

	return false
}

func TestLocalCorpusFS_Walk(t *testing.T) {
	t.Run("visits nested seed files only", func(t *testing.T) {
		fs := NewLocalCorpusFS()

		root := t.TempDir()
		writeTestBytes(t, filepath.Join(root, "top.json"), []byte("{}"))
		writeTestBytes(t, filepath.Join(root, "nested", "child.json"), []byte("[]"))
		writeTestBytes(t, filepath.Join(root, "nested", "other.txt"), []byte("no"))

		var visited []m.Seed
		err := fs.Walk(m.Path(root), func(seed m.Seed) error {
			visited = append(visited, seed)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if len(visited) != 2 {
			t.Fatalf("Walk() visited %d files, want 2", len(visited))
		}

		if !containsSeed(visited, filepath.Join(root, "nested", "child.json")) {
			t.Fatalf("Walk() did not visit nested seed")
		}
	})

	t.Run("reports seed sizes", func(t *testing.T) {
		fs := NewLocalCorpusFS()

		root := t.TempDir()
		writeTestBytes(t, filepath.Join(root, "a.json"), []byte(`{"k":1}`))

		err := fs.Walk(m.Path(root), func(seed m.Seed) error {
			if seed.Size != 7 {
				t.Fatalf("Walk() seed size = %d, want 7", seed.Size)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
	})

	t.Run("missing root fails", func(t *testing.T) {
		fs := NewLocalCorpusFS()

		err := fs.Walk(m.Path(filepath.Join(t.TempDir(), "missing")), func(m.Seed) error {
			return nil
		})
		if err == nil {
			t.Fatal("Walk() expected error for missing root")
		}
	})
}

func TestLocalCorpusFS_DiscoverSeeds(t *testing.T) {
	fs := NewLocalCorpusFS()

	root := t.TempDir()
	writeTestBytes(t, filepath.Join(root, "keep.json"), []byte("{}"))
	writeTestBytes(t, filepath.Join(root, "skip.json"), []byte("[]"))

	seeds, err := fs.DiscoverSeeds(m.Path(root), `skip\.json$`)
	if err != nil {
		t.Fatalf("DiscoverSeeds() error = %v", err)
	}

	if len(seeds) != 1 {
		t.Fatalf("DiscoverSeeds() = %d seeds, want 1", len(seeds))
	}

	if !containsSeed(seeds, filepath.Join(root, "keep.json")) {
		t.Fatalf("DiscoverSeeds() missing keep.json")
	}
}

func TestLocalCorpusFS_DiscoverSeeds_InvalidPattern(t *testing.T) {
	fs := NewLocalCorpusFS()

	_, err := fs.DiscoverSeeds(m.Path(t.TempDir()), `[`)
	if err == nil {
		t.Fatal("DiscoverSeeds() expected error for invalid pattern")
	}
}

func TestLocalCorpusFS_ReadFile(t *testing.T) {
	fs := NewLocalCorpusFS()

	root := t.TempDir()
	path := filepath.Join(root, "a.json")
	content := []byte(`{"key": "value"}`)
	writeTestBytes(t, path, content)

	got, err := fs.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if !bytes.Equal(got, content) {
		t.Fatalf("ReadFile() = %q, want %q", got, content)
	}
}

func TestLocalCorpusFS_EnsureDir(t *testing.T) {
	fs := NewLocalCorpusFS()

	dir := filepath.Join(t.TempDir(), "fuzz", "corpus", "parse")

	if err := fs.EnsureDir(m.Path(dir)); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	// Idempotent when the directory already exists.
	if err := fs.EnsureDir(m.Path(dir)); err != nil {
		t.Fatalf("EnsureDir() second call error = %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	if !info.IsDir() {
		t.Fatalf("EnsureDir() did not create a directory")
	}
}

func TestLocalCorpusFS_WriteEntry(t *testing.T) {
	fs := NewLocalCorpusFS()

	dir := t.TempDir()
	content := []byte{0x7B, 0xFF, 0x7D}
	address := fmt.Sprintf("%x", sha256.Sum256(content))

	entry, existed, err := fs.WriteEntry(m.Path(dir), address, content)
	if err != nil {
		t.Fatalf("WriteEntry() error = %v", err)
	}

	if existed {
		t.Fatal("WriteEntry() reported existing entry on first write")
	}

	if entry.Address != address || entry.Length != len(content) {
		t.Fatalf("WriteEntry() entry = %+v", entry)
	}

	stored, err := os.ReadFile(filepath.Join(dir, address))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if !bytes.Equal(stored, content) {
		t.Fatalf("WriteEntry() stored %q, want %q", stored, content)
	}

	// Rewriting the same address is idempotent and reported as a duplicate.
	_, existed, err = fs.WriteEntry(m.Path(dir), address, content)
	if err != nil {
		t.Fatalf("WriteEntry() second call error = %v", err)
	}

	if !existed {
		t.Fatal("WriteEntry() did not report duplicate on rewrite")
	}

	rewritten, err := os.ReadFile(filepath.Join(dir, address))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if !bytes.Equal(rewritten, content) {
		t.Fatalf("WriteEntry() rewrite changed content to %q", rewritten)
	}
}

func TestLocalCorpusFS_WriteEntry_CreatesMissingDir(t *testing.T) {
	fs := NewLocalCorpusFS()

	dir := filepath.Join(t.TempDir(), "corpus", "parse")

	entry, existed, err := fs.WriteEntry(m.Path(dir), "abc", []byte("x"))
	if err != nil {
		t.Fatalf("WriteEntry() error = %v", err)
	}

	if existed {
		t.Fatal("WriteEntry() reported existing entry in a fresh directory")
	}

	if _, err := os.Stat(string(entry.Path)); err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
}

func TestLocalCorpusFS_FileInfo(t *testing.T) {
	fs := NewLocalCorpusFS()

	root := t.TempDir()
	path := filepath.Join(root, "a.json")
	writeTestBytes(t, path, []byte("{}"))

	info, err := fs.FileInfo(m.Path(path))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if info.IsDir() || info.Size() != 2 {
		t.Fatalf("FileInfo() = %+v", info)
	}
}
