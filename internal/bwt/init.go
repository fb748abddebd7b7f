package bwt

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/steveyegge/brain/internal/digest"
	"github.com/steveyegge/brain/internal/types"
)

const defaultPolicy = `+++
growthWarningThreshold = 100
+++
# Brain Policy

This store holds durable, reusable knowledge as Markdown documents, indexed
by a sidecar JSONL/JSON index under 90_index. Records are minted and
retired only through the nine-step write protocol; nothing else may touch
90_index directly.
`

// Init idempotently creates the six category folders and four index
// artifacts under root. Anything already present is left untouched — this
// is safe to call on every boot.
func Init(root string, now time.Time) error {
	registry := types.DefaultFolderRegistry()
	for _, f := range registry.Folders {
		if err := os.MkdirAll(filepath.Join(root, f.Path), 0o755); err != nil {
			return err
		}
	}

	policyPath := filepath.Join(root, "99_policy", "brainPolicy.md")
	if err := writeIfAbsent(policyPath, []byte(defaultPolicy)); err != nil {
		return err
	}

	indexDir := filepath.Join(root, "90_index")

	tagsPath := filepath.Join(indexDir, "tags.json")
	tagsData, err := json.MarshalIndent(types.DefaultTagsConfig(), "", "  ")
	if err != nil {
		return err
	}
	if err := writeIfAbsent(tagsPath, tagsData); err != nil {
		return err
	}

	folderRegPath := filepath.Join(indexDir, "folderRegistry.json")
	folderData, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return err
	}
	if err := writeIfAbsent(folderRegPath, folderData); err != nil {
		return err
	}

	recordsPath := filepath.Join(indexDir, "records.jsonl")
	if err := writeIfAbsent(recordsPath, []byte{}); err != nil {
		return err
	}

	manifestPath := filepath.Join(indexDir, "manifest.json")
	manifestData, err := json.MarshalIndent(types.EmptyManifest(now), "", "  ")
	if err != nil {
		return err
	}
	if err := writeIfAbsent(manifestPath, manifestData); err != nil {
		return err
	}

	digestPath := filepath.Join(indexDir, "records_digest.txt")
	if err := writeIfAbsent(digestPath, digest.Render(nil)); err != nil {
		return err
	}

	return nil
}

func writeIfAbsent(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, data, 0o600)
}
