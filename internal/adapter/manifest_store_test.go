package adapter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/spore/internal/model"
)

func TestManifestStore_RoundTrip(t *testing.T) {
	store := NewManifestStore()
	path := m.Path(filepath.Join(t.TempDir(), "manifest.yaml"))

	manifest := m.Manifest{
		GeneratedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		SourceRoot:  ".",
		TargetDir:   "fuzz/corpus/parse",
		Trials:      3,
		InsertByte:  0xFF,
		Seeds:       4,
		Entries:     11,
		Duplicates:  1,
	}

	require.NoError(t, store.Save(path, manifest))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	require.Equal(t, manifest, loaded)
}

func TestManifestStore_SaveOverwrites(t *testing.T) {
	store := NewManifestStore()
	path := m.Path(filepath.Join(t.TempDir(), "manifest.yaml"))

	require.NoError(t, store.Save(path, m.Manifest{Seeds: 1}))
	require.NoError(t, store.Save(path, m.Manifest{Seeds: 2}))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Seeds)
}

func TestManifestStore_LoadMissing(t *testing.T) {
	store := NewManifestStore()

	_, err := store.Load(m.Path(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
}

func TestManifestStore_LoadMalformed(t *testing.T) {
	store := NewManifestStore()
	path := filepath.Join(t.TempDir(), "manifest.yaml")

	writeTestBytes(t, path, []byte("seeds: [not a count\n"))

	_, err := store.Load(m.Path(path))
	require.Error(t, err)
}
