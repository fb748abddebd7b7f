// Package manifest loads and atomically persists the manifest index
// artifact, following the teacher's create-temp-then-rename idiom from
// internal/export/manifest.go.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/steveyegge/brain/internal/types"
)

// Load reads and parses the manifest at path. A missing file returns the
// underlying error unchanged so callers can branch on os.IsNotExist — boot
// treats that as fatal, while BWT step 7 treats it as "initialize empty".
func Load(path string) (*types.Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 - fixed index-folder path
	if err != nil {
		return nil, err
	}
	var m types.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// LoadOrEmpty loads the manifest, returning a fresh empty one if absent.
func LoadOrEmpty(path string, now time.Time) (*types.Manifest, error) {
	m, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.EmptyManifest(now), nil
		}
		return nil, err
	}
	return m, nil
}

// Save writes the manifest to path directly (no tmp staging). Neither the
// initializer (which marshals its empty manifest itself) nor the BWT engine
// (which stages through its own .tmp path) calls Save.
func Save(path string, m *types.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// WriteAtomic marshals m and renames it onto path via a sibling temp file,
// matching the teacher's WriteManifest. The BWT engine does not use it (it
// renames its own pre-staged .tmp file in a fixed commit order instead, see
// internal/bwt).
func WriteAtomic(path string, m *types.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp manifest file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp manifest file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp manifest file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing manifest file: %w", err)
	}
	return os.Chmod(path, 0o600)
}
