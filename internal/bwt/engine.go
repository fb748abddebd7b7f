// Package bwt implements the nine-step transactional write protocol that is
// the only path allowed to mutate the store: every create, update,
// deprecate, and delete goes through Engine.Execute, which stages every
// artifact under .tmp before committing any of them, and rolls back
// wholesale on the first failure, including a failed commit rename.
package bwt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/steveyegge/brain/internal/brainerr"
	"github.com/steveyegge/brain/internal/digest"
	"github.com/steveyegge/brain/internal/hashutil"
	"github.com/steveyegge/brain/internal/idgen"
	"github.com/steveyegge/brain/internal/jsonl"
	"github.com/steveyegge/brain/internal/lifecycle"
	"github.com/steveyegge/brain/internal/manifest"
	"github.com/steveyegge/brain/internal/telemetry"
	"github.com/steveyegge/brain/internal/types"
	"github.com/steveyegge/brain/internal/validation"
	"go.uber.org/zap"
)

// Engine runs BWT calls against Root. Clock is overridable for tests. Log
// is optional; a nil Log disables telemetry.
type Engine struct {
	Root  string
	Clock func() time.Time
	Log   *zap.Logger
}

// New returns an Engine with the real wall clock.
func New(root string) *Engine {
	return &Engine{Root: root, Clock: time.Now}
}

func (e *Engine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

// staged tracks every path this call created or modified, in the order it
// must be undone, so rollback can run regardless of which step failed.
type staged struct {
	tmpFiles []string // .tmp files to remove on rollback
	backups  []backupEntry
}

type backupEntry struct {
	original string // path that was backed up
	backup   string // the .bak sibling holding its pre-call bytes
	existed  bool   // false means original did not exist before this call
}

func (s *staged) rollback() {
	for _, t := range s.tmpFiles {
		_ = os.Remove(t)
	}
	for _, b := range s.backups {
		if b.existed {
			_ = os.Rename(b.backup, b.original)
		} else {
			_ = os.Remove(b.backup)
		}
	}
}

func (s *staged) cleanupBackups() {
	for _, b := range s.backups {
		if b.existed {
			_ = os.Remove(b.backup)
		}
	}
}

// Execute runs the full nine-step protocol for intent. It never panics;
// every failure path returns a Response with Success=false and a Report
// naming the step and kind that failed.
func (e *Engine) Execute(intent types.Intent) types.Response {
	root := e.Root
	if intent.DryRun {
		tmpRoot, cleanup, err := e.scratchCopy()
		if err != nil {
			return fail("0-dry-run-setup", brainerr.Newf(types.KindIOFault, "preparing dry-run scratch copy: %v", err))
		}
		defer cleanup()
		root = tmpRoot
	}
	return e.execute(root, intent)
}

func (e *Engine) execute(root string, intent types.Intent) types.Response {
	resp := e.executeSteps(root, intent)
	if e.Log != nil {
		var err error
		if !resp.Success {
			err = fmt.Errorf("%s: %s", resp.Report.Kind, resp.Report.Message)
		}
		telemetry.Event(e.Log, telemetry.CallID(), resp.Report.Step, string(intent.Action), resp.RecordID, err)
	}
	return resp
}

func (e *Engine) executeSteps(root string, intent types.Intent) types.Response {
	st := &staged{}

	// step 1: intent validation.
	if err := validateIntent(intent); err != nil {
		return fail("1-intent-validation", err)
	}

	// step 2: residue check — a prior call's leftovers must be cleared
	// before a new one starts.
	if err := residueCheck(root); err != nil {
		return fail("2-residue-check", err)
	}

	indexDir := filepath.Join(root, "90_index")
	recordsPath := filepath.Join(indexDir, "records.jsonl")
	manifestPath := filepath.Join(indexDir, "manifest.json")
	digestPath := filepath.Join(indexDir, "records_digest.txt")

	records, err := readRecordsOrEmpty(recordsPath)
	if err != nil {
		return fail("2-residue-check", brainerr.Newf(types.KindIOFault, "reading records.jsonl: %v", err))
	}
	m, err := manifest.LoadOrEmpty(manifestPath, e.now())
	if err != nil {
		return fail("2-residue-check", brainerr.Newf(types.KindIOFault, "reading manifest.json: %v", err))
	}

	// locate the target record for update/deprecate/delete before
	// mutating anything.
	var target *types.Record
	var targetIdx int
	if intent.Action != types.ActionCreate {
		for i := range records {
			if records[i].RecordID == intent.RecordID {
				target = &records[i]
				targetIdx = i
				break
			}
		}
		if target == nil {
			return fail("1-intent-validation", brainerr.Newf(types.KindNotFound, "record %q not found", intent.RecordID))
		}
	}

	// step 3: backups — snapshot every file this call might touch before
	// changing any of it, so rollback can restore exact prior bytes.
	var docPath string
	if intent.Action == types.ActionCreate {
		docPath = filepath.Join(intent.Record.ScopeType.ScopeFolder(), intent.SourceRef)
	} else {
		docPath = target.SourceRef
	}
	absDocPath := filepath.Join(root, docPath)

	if err := backupFile(st, absDocPath); err != nil {
		return fail("3-backups", brainerr.Newf(types.KindIOFault, "backing up %s: %v", docPath, err))
	}
	if err := backupFile(st, recordsPath); err != nil {
		return fail("3-backups", brainerr.Newf(types.KindIOFault, "backing up records.jsonl: %v", err))
	}
	if err := backupFile(st, manifestPath); err != nil {
		return fail("3-backups", brainerr.Newf(types.KindIOFault, "backing up manifest.json: %v", err))
	}
	if err := backupFile(st, digestPath); err != nil {
		return fail("3-backups", brainerr.Newf(types.KindIOFault, "backing up records_digest.txt: %v", err))
	}

	// step 4: directory preparation — the folder auto-create gate.
	targetDir := filepath.Dir(absDocPath)
	if _, err := os.Stat(targetDir); os.IsNotExist(err) {
		ok, reason := lifecycle.FolderAutoCreateAllowed(docPath, intent.AllowFolderCreate)
		if !ok {
			st.rollback()
			return fail("4-directory-preparation", brainerr.New(types.KindScopeViolation, reason))
		}
		if err := os.MkdirAll(targetDir, 0o755); err != nil {
			st.rollback()
			return fail("4-directory-preparation", brainerr.Newf(types.KindIOFault, "creating %s: %v", targetDir, err))
		}
	}

	// step 5: document staging. A create always carries content (step 1
	// requires it); an update only stages and rehashes the document when
	// the caller actually supplied new content — an update that only
	// touches record fields (title, tags, ...) must leave the document and
	// its contentHash untouched.
	now := e.now()
	var contentHash string
	var docStaged bool
	switch {
	case intent.Action == types.ActionCreate:
		contentHash = hashutil.String(*intent.Content)
		if err := os.WriteFile(absDocPath+".tmp", []byte(*intent.Content), 0o600); err != nil {
			st.rollback()
			return fail("5-document-staging", brainerr.Newf(types.KindIOFault, "staging document: %v", err))
		}
		st.tmpFiles = append(st.tmpFiles, absDocPath+".tmp")
		docStaged = true
	case intent.Action == types.ActionUpdate && intent.Content != nil:
		contentHash = hashutil.String(*intent.Content)
		if err := os.WriteFile(absDocPath+".tmp", []byte(*intent.Content), 0o600); err != nil {
			st.rollback()
			return fail("5-document-staging", brainerr.Newf(types.KindIOFault, "staging document: %v", err))
		}
		st.tmpFiles = append(st.tmpFiles, absDocPath+".tmp")
		docStaged = true
	default:
		if existing, err := os.ReadFile(absDocPath); err == nil { // #nosec G304 - path built from trusted root+record fields
			contentHash = hashutil.Bytes(existing)
		}
	}

	// step 6: records staging.
	switch intent.Action {
	case types.ActionCreate:
		id, err := idgen.Mint(intent.Record.ScopeType, intent.Record.ScopeID, records, now)
		if err != nil {
			st.rollback()
			return fail("6-records-staging", brainerr.Newf(types.KindIOFault, "minting recordId: %v", err))
		}
		rec := types.Record{
			RecordID:    id,
			ScopeType:   intent.Record.ScopeType,
			ScopeID:     intent.Record.ScopeID,
			Type:        intent.Record.Type,
			Title:       intent.Record.Title,
			Summary:     intent.Record.Summary,
			Tags:        intent.Record.Tags,
			SourceType:  intent.Record.SourceType,
			SourceRef:   docPath,
			Status:      types.StatusActive,
			UpdatedAt:   types.Now(now),
			ContentHash: contentHash,
		}
		records = append(records, rec)
		target = &records[len(records)-1]
	case types.ActionUpdate:
		if intent.Record != nil {
			applyPartialUpdate(target, *intent.Record)
		}
		target.ContentHash = contentHash
		target.UpdatedAt = types.Now(now)
	case types.ActionDeprecate:
		ok, reason := lifecycle.TransitionAllowed(target.Status, types.StatusDeprecated)
		if !ok {
			st.rollback()
			return fail("6-records-staging", brainerr.New(types.KindLifecycleDenied, reason))
		}
		target.Status = types.StatusDeprecated
		target.ReplacedBy = intent.ReplacedBy
		target.DeprecationReason = intent.DeprecationReason
		target.UpdatedAt = types.Now(now)
	case types.ActionDelete:
		sessionStart := now
		if intent.SessionStart != nil {
			sessionStart = *intent.SessionStart
		}
		req := lifecycle.DeleteRequest{Record: *target, CurrentSessionStart: sessionStart, UserConfirmed: intent.UserConfirmed}
		if reasons := lifecycle.DeletePreconditions(req); len(reasons) > 0 {
			st.rollback()
			return fail("6-records-staging", brainerr.New(types.KindLifecycleDenied, fmt.Sprintf("delete preconditions unmet: %v", reasons)))
		}
		records = append(records[:targetIdx], records[targetIdx+1:]...)
	}

	recordsData, err := jsonl.Marshal(records)
	if err != nil {
		st.rollback()
		return fail("6-records-staging", brainerr.Newf(types.KindIOFault, "encoding records: %v", err))
	}
	if err := os.WriteFile(recordsPath+".tmp", recordsData, 0o600); err != nil {
		st.rollback()
		return fail("6-records-staging", brainerr.Newf(types.KindIOFault, "staging records: %v", err))
	}
	st.tmpFiles = append(st.tmpFiles, recordsPath+".tmp")

	// step 7: manifest staging. Only touch the entry when the document
	// itself was staged this call — a deprecate or a content-free update
	// leaves the on-disk document untouched, so its manifest entry (hash,
	// size, updatedAt) must stay untouched too.
	if intent.Action == types.ActionDelete {
		m.Remove(docPath)
	} else if docStaged {
		info, statErr := os.Stat(absDocPath + ".tmp")
		var size int64
		if statErr == nil {
			size = info.Size()
		}
		m.Upsert(types.ManifestEntry{
			Path:      docPath,
			Hash:      contentHash,
			Size:      size,
			UpdatedAt: types.Now(now),
			Category:  types.CategoryForPath(docPath),
		})
	}
	m.Recompute(now)
	manifestData, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		st.rollback()
		return fail("7-manifest-staging", brainerr.Newf(types.KindIOFault, "encoding manifest: %v", err))
	}
	if err := os.WriteFile(manifestPath+".tmp", manifestData, 0o600); err != nil {
		st.rollback()
		return fail("7-manifest-staging", brainerr.Newf(types.KindIOFault, "staging manifest: %v", err))
	}
	st.tmpFiles = append(st.tmpFiles, manifestPath+".tmp")

	// step 8: digest staging.
	digestData := digest.Render(records)
	if err := os.WriteFile(digestPath+".tmp", digestData, 0o600); err != nil {
		st.rollback()
		return fail("8-digest-staging", brainerr.Newf(types.KindIOFault, "staging digest: %v", err))
	}
	st.tmpFiles = append(st.tmpFiles, digestPath+".tmp")

	// step 9: pre-commit validation against the staged .tmp artifacts.
	report, err := validation.Validate(root, validation.Tmp, false, 0)
	if err != nil {
		st.rollback()
		return fail("9-pre-commit-validation", brainerr.Newf(types.KindIOFault, "running pre-commit validation: %v", err))
	}
	if len(report.Errors) > 0 {
		st.rollback()
		return types.Response{
			Success: false,
			Report:  types.Report{Step: "9-pre-commit-validation", Kind: types.KindSchemaViolation, Message: "pre-commit validation failed", Errors: report.Errors, Warnings: report.Warnings},
		}
	}

	// commit: fixed rename order document -> records -> manifest -> digest.
	if _, err := os.Stat(absDocPath + ".tmp"); err == nil {
		if err := os.Rename(absDocPath+".tmp", absDocPath); err != nil {
			st.rollback()
			return fail("commit", brainerr.Newf(types.KindIOFault, "committing document: %v", err))
		}
	}
	if err := os.Rename(recordsPath+".tmp", recordsPath); err != nil {
		st.rollback()
		return fail("commit", brainerr.Newf(types.KindIOFault, "committing records: %v", err))
	}
	if err := os.Rename(manifestPath+".tmp", manifestPath); err != nil {
		// records already committed: rollback copies every .bak back over
		// its original, undoing the renames that already landed.
		st.rollback()
		return fail("commit", brainerr.Newf(types.KindIOFault, "committing manifest: %v", err))
	}
	if err := os.Rename(digestPath+".tmp", digestPath); err != nil {
		st.rollback()
		return fail("commit", brainerr.Newf(types.KindIOFault, "committing digest: %v", err))
	}

	if intent.Action == types.ActionDelete {
		_ = os.Remove(absDocPath)
	}

	st.cleanupBackups()

	resultID := ""
	if target != nil {
		resultID = target.RecordID
	}
	return types.Response{
		Success:  true,
		RecordID: resultID,
		Report:   types.Report{Step: "commit", Message: "committed", Warnings: report.Warnings},
	}
}

func fail(step string, err error) types.Response {
	be, ok := err.(*brainerr.Error)
	if !ok {
		be = brainerr.New(types.KindIOFault, err.Error())
	}
	return types.Response{
		Success: false,
		Report:  types.Report{Step: step, Kind: be.Kind, Message: be.Msg, Errors: be.Fields},
	}
}

func readRecordsOrEmpty(path string) ([]types.Record, error) {
	records, err := jsonl.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

func applyPartialUpdate(target *types.Record, fields types.RecordFields) {
	if fields.Title != "" {
		target.Title = fields.Title
	}
	if fields.Summary != "" {
		target.Summary = fields.Summary
	}
	if fields.Tags != nil {
		target.Tags = fields.Tags
	}
	if fields.SourceType != "" {
		target.SourceType = fields.SourceType
	}
}

func backupFile(st *staged, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - path built from trusted root+record fields
	backup := path + ".bak"
	if err != nil {
		if os.IsNotExist(err) {
			st.backups = append(st.backups, backupEntry{original: path, backup: backup, existed: false})
			return nil
		}
		return err
	}
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		return err
	}
	st.backups = append(st.backups, backupEntry{original: path, backup: backup, existed: true})
	return nil
}
