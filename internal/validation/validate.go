package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/steveyegge/brain/internal/digest"
	"github.com/steveyegge/brain/internal/hashutil"
	"github.com/steveyegge/brain/internal/jsonl"
	"github.com/steveyegge/brain/internal/lifecycle"
	"github.com/steveyegge/brain/internal/manifest"
	"github.com/steveyegge/brain/internal/types"
)

// Mode selects which generation of the index artifacts Validate inspects.
type Mode int

const (
	Committed Mode = iota
	Tmp
)

// artifactNames returns the three staged index artifact filenames for mode.
func artifactNames(mode Mode) (records, manifestFile, digestFile string) {
	if mode == Tmp {
		return "records.jsonl.tmp", "manifest.json.tmp", "records_digest.txt.tmp"
	}
	return "records.jsonl", "manifest.json", "records_digest.txt"
}

// Validate runs the structural and residue checks against root in the
// given mode. growthThreshold overrides DefaultGrowthWarningThreshold when
// positive (the policy document's growthWarningThreshold front matter,
// surfaced via internal/boot); callers with no policy context pass 0. It
// never mutates anything — a pure predicate over the filesystem.
func Validate(root string, mode Mode, full bool, growthThreshold int) (*types.Report, error) {
	report := &types.Report{}
	indexDir := filepath.Join(root, "90_index")
	recordsName, manifestName, digestName := artifactNames(mode)

	// check 1: required files present.
	required := []string{
		filepath.Join(root, "99_policy", "brainPolicy.md"),
		filepath.Join(indexDir, "tags.json"),
		filepath.Join(indexDir, "folderRegistry.json"),
		filepath.Join(indexDir, manifestName),
	}
	for _, p := range required {
		if _, err := os.Stat(p); err != nil {
			report.Errors = append(report.Errors, types.FieldError{Field: relOrBase(root, p), Reason: "required file is missing"})
		}
	}
	recordsPath := filepath.Join(indexDir, recordsName)
	if mode == Committed {
		if _, err := os.Stat(recordsPath); err != nil {
			report.Errors = append(report.Errors, types.FieldError{Field: recordsName, Reason: "required file is missing"})
		}
	}

	var records []types.Record
	if _, err := os.Stat(recordsPath); err == nil {
		records, err = jsonl.ReadFile(recordsPath)
		if err != nil {
			report.Errors = append(report.Errors, types.FieldError{Field: recordsName, Reason: err.Error()})
		}
	}

	// check 2: per-record structural + invariant checks.
	for _, r := range records {
		for _, fe := range RecordErrors(r) {
			report.Errors = append(report.Errors, types.FieldError{Field: r.RecordID + "." + fe.Field, Reason: fe.Reason})
		}
	}
	report.Errors = append(report.Errors, Sequence(records)...)

	// check 3: growth warning.
	report.Warnings = append(report.Warnings, GrowthWarning(records, growthThreshold)...)

	// check 4: manifest entries resolve to existing files with matching hash.
	// In Tmp mode the entry this call is writing is still staged at its
	// ".tmp" sibling (step 5 runs before the commit renames step 9's checks
	// guard), while every other entry's document is already committed —
	// so prefer the staged sibling when present and fall back to the final
	// path otherwise.
	if m, err := manifest.Load(filepath.Join(indexDir, manifestName)); err == nil {
		for _, entry := range m.Files {
			docPath := filepath.Join(root, entry.Path)
			if mode == Tmp {
				if _, err := os.Stat(docPath + ".tmp"); err == nil {
					docPath += ".tmp"
				}
			}
			actual, herr := hashutil.File(docPath)
			switch {
			case herr != nil:
				msg := fmt.Sprintf("manifest entry %s: file missing or unreadable: %v", entry.Path, herr)
				if mode == Tmp {
					report.Errors = append(report.Errors, types.FieldError{Field: entry.Path, Reason: msg})
				} else {
					report.Warnings = append(report.Warnings, msg)
				}
			case actual != entry.Hash:
				msg := fmt.Sprintf("manifest entry %s: hash mismatch (manual-edit suspected)", entry.Path)
				if mode == Tmp {
					report.Errors = append(report.Errors, types.FieldError{Field: entry.Path, Reason: fmt.Sprintf("hash mismatch: manifest=%s actual=%s", entry.Hash, actual)})
				} else {
					report.Warnings = append(report.Warnings, msg)
				}
			}
		}
	}

	// check 5: residue scan (committed mode only).
	if mode == Committed {
		if entries, err := os.ReadDir(indexDir); err == nil {
			for _, e := range entries {
				name := e.Name()
				if filepath.Ext(name) == ".bak" || filepath.Ext(name) == ".tmp" {
					report.Warnings = append(report.Warnings, fmt.Sprintf("residue file present: %s", name))
				}
			}
		}
	}

	// check 6: --full mode back-reference and contamination detectors.
	if full {
		for _, pair := range lifecycle.BackReferences(records) {
			report.Warnings = append(report.Warnings, fmt.Sprintf("active record %s references deprecated record %s", pair.Active.RecordID, pair.Deprecated.RecordID))
		}
		for _, r := range lifecycle.Contamination(records) {
			report.Warnings = append(report.Warnings, fmt.Sprintf("record %s: SSOT type %q has sourceType %q, expected user_confirmed", r.RecordID, r.Type, r.SourceType))
		}
	}

	// digest projection sanity: the digest of this mode must parse and carry
	// one data line per record. Only the line count is compared, not the
	// field values or order. A warning source, not a hard error — a
	// mismatch means something wrote outside the BWT engine.
	if digestPath := filepath.Join(indexDir, digestName); fileExists(digestPath) {
		raw, err := os.ReadFile(digestPath) // #nosec G304 - fixed index-folder path
		if err == nil {
			parsed, perr := digest.Parse(raw)
			if perr != nil {
				report.Warnings = append(report.Warnings, fmt.Sprintf("digest unparsable: %v", perr))
			} else if len(parsed) != len(records) {
				report.Warnings = append(report.Warnings, "digest record count does not match records.jsonl — projection drift suspected")
			}
		}
	}

	report.Message = "validation complete"
	return report, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func relOrBase(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return rel
}
