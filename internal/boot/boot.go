// Package boot loads the store at process start: policy document, folder
// registry, tags config, manifest, and a drift check comparing the
// manifest's recorded hashes against what is actually on disk.
package boot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cenkalti/backoff/v4"
	"github.com/steveyegge/brain/internal/hashutil"
	"github.com/steveyegge/brain/internal/manifest"
	"github.com/steveyegge/brain/internal/types"
)

// PolicySettings is the policy document's optional TOML front matter,
// delimited by a leading and trailing "+++" line, the same comment-friendly
// front-matter convention the teacher's own settings file uses.
type PolicySettings struct {
	GrowthWarningThreshold int `toml:"growthWarningThreshold"`
}

// State is everything boot resolved about the store, handed to the rest of
// the process so nothing else needs to re-read these files.
type State struct {
	Root           string
	Policy         string
	PolicySettings PolicySettings
	TagsConfig     *types.TagsConfig
	FolderRegistry *types.FolderRegistry
	Manifest       *types.Manifest
}

// splitFrontMatter pulls a "+++"-delimited TOML block off the front of doc,
// if present, returning the settings and the remaining body.
func splitFrontMatter(doc string) (PolicySettings, string) {
	var settings PolicySettings
	const delim = "+++\n"
	if !strings.HasPrefix(doc, delim) {
		return settings, doc
	}
	rest := doc[len(delim):]
	end := strings.Index(rest, delim)
	if end < 0 {
		return settings, doc
	}
	_, _ = toml.Decode(rest[:end], &settings)
	return settings, rest[end+len(delim):]
}

// DriftEntry names one manifest entry whose on-disk bytes no longer match
// what boot expected.
type DriftEntry struct {
	Path   string
	Reason string
}

// Load reads the policy doc, tags config, folder registry, and manifest,
// with a short backoff-retried read of the manifest to ride out a
// concurrent BWT commit landing mid-read.
func Load(root string, retries int) (*State, error) {
	policyData, err := os.ReadFile(filepath.Join(root, "99_policy", "brainPolicy.md")) // #nosec G304 - fixed policy path
	if err != nil {
		return nil, fmt.Errorf("boot: reading policy: %w", err)
	}
	policySettings, policyBody := splitFrontMatter(string(policyData))

	tagsData, err := os.ReadFile(filepath.Join(root, "90_index", "tags.json")) // #nosec G304 - fixed index path
	if err != nil {
		return nil, fmt.Errorf("boot: reading tags config: %w", err)
	}
	var tagsCfg types.TagsConfig
	if err := json.Unmarshal(tagsData, &tagsCfg); err != nil {
		return nil, fmt.Errorf("boot: parsing tags config: %w", err)
	}

	registryData, err := os.ReadFile(filepath.Join(root, "90_index", "folderRegistry.json")) // #nosec G304 - fixed index path
	if err != nil {
		return nil, fmt.Errorf("boot: reading folder registry: %w", err)
	}
	var registry types.FolderRegistry
	if err := json.Unmarshal(registryData, &registry); err != nil {
		return nil, fmt.Errorf("boot: parsing folder registry: %w", err)
	}

	m, err := loadManifestWithRetry(filepath.Join(root, "90_index", "manifest.json"), retries)
	if err != nil {
		return nil, fmt.Errorf("boot: reading manifest: %w", err)
	}

	return &State{
		Root:           root,
		Policy:         policyBody,
		PolicySettings: policySettings,
		TagsConfig:     &tagsCfg,
		FolderRegistry: &registry,
		Manifest:       m,
	}, nil
}

// loadManifestWithRetry retries a transient read failure (e.g. the BWT
// engine is between the records and manifest renames of its fixed commit
// order) a bounded number of times with exponential backoff.
func loadManifestWithRetry(path string, retries int) (*types.Manifest, error) {
	if retries <= 0 {
		retries = 1
	}
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(retries))

	var m *types.Manifest
	op := func() error {
		loaded, err := manifest.Load(path)
		if err != nil {
			return err
		}
		m = loaded
		return nil
	}
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return m, nil
}

// DriftCheck compares every manifest entry's recorded hash against the
// document's current on-disk hash.
func DriftCheck(state *State) []DriftEntry {
	var drift []DriftEntry
	for _, entry := range state.Manifest.Files {
		docPath := filepath.Join(state.Root, entry.Path)
		actual, err := hashutil.File(docPath)
		switch {
		case err != nil:
			drift = append(drift, DriftEntry{Path: entry.Path, Reason: "file missing or unreadable"})
		case actual != entry.Hash:
			drift = append(drift, DriftEntry{Path: entry.Path, Reason: "hash mismatch — manual edit suspected"})
		}
	}
	return drift
}
