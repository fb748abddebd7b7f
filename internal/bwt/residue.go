package bwt

import (
	"os"
	"path/filepath"

	"github.com/steveyegge/brain/internal/brainerr"
	"github.com/steveyegge/brain/internal/types"
)

// residueCheck is BWT step 2: a prior call must have committed or rolled
// back cleanly before a new one may start. Any leftover .tmp or .bak file
// under 90_index means a previous call crashed mid-commit and needs manual
// recovery rather than silently being papered over.
func residueCheck(root string) error {
	indexDir := filepath.Join(root, "90_index")
	entries, err := os.ReadDir(indexDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if ext == ".tmp" || ext == ".bak" {
			return brainerr.Newf(types.KindResidue, "residue file %s present from an incomplete prior call", e.Name())
		}
	}
	return nil
}
