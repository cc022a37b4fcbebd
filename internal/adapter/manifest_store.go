package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/spore/internal/model"
)

const manifestFileMode = 0o644

// ManifestStore persists run manifests.
type ManifestStore interface {
	Save(path m.Path, manifest m.Manifest) error
	Load(path m.Path) (m.Manifest, error)
}

// YAMLManifestStore stores manifests as YAML files on the local filesystem.
type YAMLManifestStore struct{}

// NewManifestStore constructs a YAMLManifestStore.
func NewManifestStore() *YAMLManifestStore {
	return &YAMLManifestStore{}
}

// Save marshals the manifest and writes it to path, overwriting any
// previous run's manifest.
func (s *YAMLManifestStore) Save(path m.Path, manifest m.Manifest) error {
	out, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(string(path), out, manifestFileMode); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}

	return nil
}

// Load reads a manifest written by a previous run.
func (s *YAMLManifestStore) Load(path m.Path) (m.Manifest, error) {
	raw, err := os.ReadFile(string(path))
	if err != nil {
		return m.Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var manifest m.Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return m.Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	return manifest, nil
}
