package bwt

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/steveyegge/brain/internal/hashutil"
	"github.com/steveyegge/brain/internal/jsonl"
	"github.com/steveyegge/brain/internal/types"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, Init(root, time.Now()))
	clock := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	return &Engine{Root: root, Clock: func() time.Time { return clock }}
}

func strptr(s string) *string { return &s }

func TestExecuteCreateCommitsAllFourArtifacts(t *testing.T) {
	e := newTestEngine(t)
	content := "決定事項について"
	resp := e.Execute(types.Intent{
		Action:    types.ActionCreate,
		SourceRef: "notes.md",
		Content:   &content,
		Record: &types.RecordFields{
			ScopeType:  types.ScopeTopic,
			ScopeID:    "api",
			Type:       types.TypeNote,
			Title:      "API design",
			Summary:    "notes on API design",
			Tags:       []string{"domain/infra"},
			SourceType: types.SourceChatLog,
		},
	})
	require.True(t, resp.Success, "%+v", resp.Report)
	require.NotEmpty(t, resp.RecordID)

	records, err := jsonl.ReadFile(filepath.Join(e.Root, "90_index", "records.jsonl"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, resp.RecordID, records[0].RecordID)
	require.Equal(t, types.StatusActive, records[0].Status)

	docBytes, err := os.ReadFile(filepath.Join(e.Root, "30_topics", "notes.md"))
	require.NoError(t, err)
	require.Equal(t, content, string(docBytes))

	for _, f := range []string{"manifest.json", "records_digest.txt"} {
		_, err := os.Stat(filepath.Join(e.Root, "90_index", f))
		require.NoError(t, err)
	}
	for _, f := range []string{"records.jsonl.tmp", "manifest.json.tmp", "records_digest.txt.tmp"} {
		_, err := os.Stat(filepath.Join(e.Root, "90_index", f))
		require.True(t, os.IsNotExist(err))
	}
}

func TestExecuteCreateRejectsSSOTWithWrongSource(t *testing.T) {
	e := newTestEngine(t)
	content := "x"
	resp := e.Execute(types.Intent{
		Action:    types.ActionCreate,
		SourceRef: "rule.md",
		Content:   &content,
		Record: &types.RecordFields{
			ScopeType:  types.ScopeTopic,
			ScopeID:    "api",
			Type:       types.TypeRule,
			Title:      "a rule",
			SourceType: types.SourceInference,
		},
	})
	require.False(t, resp.Success)
	require.Equal(t, types.KindIntentInvalid, resp.Report.Kind)
}

func TestExecuteCreateDeniesFolderAutoCreateWithoutFlag(t *testing.T) {
	e := newTestEngine(t)
	content := "x"
	resp := e.Execute(types.Intent{
		Action:    types.ActionCreate,
		SourceRef: "sub/dir/notes.md",
		Content:   &content,
		Record: &types.RecordFields{
			ScopeType:  types.ScopeProject,
			ScopeID:    "api",
			Type:       types.TypeNote,
			Title:      "t",
			SourceType: types.SourceChatLog,
		},
	})
	require.False(t, resp.Success)
	require.Equal(t, types.KindScopeViolation, resp.Report.Kind)

	_, err := os.Stat(filepath.Join(e.Root, "90_index", "records.jsonl.tmp"))
	require.True(t, os.IsNotExist(err), "rollback must remove staged tmp files")
}

func TestExecuteUpdateChangesContentHashAndSummary(t *testing.T) {
	e := newTestEngine(t)
	content := "v1"
	created := e.Execute(types.Intent{
		Action:    types.ActionCreate,
		SourceRef: "notes.md",
		Content:   &content,
		Record: &types.RecordFields{
			ScopeType:  types.ScopeTopic,
			ScopeID:    "api",
			Type:       types.TypeNote,
			Title:      "t",
			SourceType: types.SourceChatLog,
		},
	})
	require.True(t, created.Success)

	newContent := "v2"
	updated := e.Execute(types.Intent{
		Action:   types.ActionUpdate,
		RecordID: created.RecordID,
		Content:  &newContent,
		Record:   &types.RecordFields{Summary: "updated summary"},
	})
	require.True(t, updated.Success, "%+v", updated.Report)

	records, err := jsonl.ReadFile(filepath.Join(e.Root, "90_index", "records.jsonl"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "updated summary", records[0].Summary)
	require.Equal(t, hashutil.String(newContent), records[0].ContentHash)

	docBytes, err := os.ReadFile(filepath.Join(e.Root, "30_topics", "notes.md"))
	require.NoError(t, err)
	require.Equal(t, newContent, string(docBytes))
}

func TestExecuteUpdateWithoutContentLeavesDocumentAndHashUntouched(t *testing.T) {
	e := newTestEngine(t)
	content := "original bytes"
	created := e.Execute(types.Intent{
		Action:    types.ActionCreate,
		SourceRef: "notes.md",
		Content:   &content,
		Record: &types.RecordFields{
			ScopeType:  types.ScopeTopic,
			ScopeID:    "api",
			Type:       types.TypeNote,
			Title:      "t",
			SourceType: types.SourceChatLog,
		},
	})
	require.True(t, created.Success, "%+v", created.Report)

	before, err := jsonl.ReadFile(filepath.Join(e.Root, "90_index", "records.jsonl"))
	require.NoError(t, err)
	require.Len(t, before, 1)
	hashBefore := before[0].ContentHash

	// a field-only update carries no Content at all.
	updated := e.Execute(types.Intent{
		Action:   types.ActionUpdate,
		RecordID: created.RecordID,
		Record:   &types.RecordFields{Summary: "field-only update"},
	})
	require.True(t, updated.Success, "%+v", updated.Report)

	docBytes, err := os.ReadFile(filepath.Join(e.Root, "30_topics", "notes.md"))
	require.NoError(t, err)
	require.Equal(t, content, string(docBytes), "document bytes must survive a content-free update")

	after, err := jsonl.ReadFile(filepath.Join(e.Root, "90_index", "records.jsonl"))
	require.NoError(t, err)
	require.Len(t, after, 1)
	require.Equal(t, "field-only update", after[0].Summary)
	require.Equal(t, hashBefore, after[0].ContentHash, "contentHash must only refresh when content changes")
}

func TestExecuteDeprecateThenDeleteRequiresPriorSession(t *testing.T) {
	e := newTestEngine(t)
	content := "x"
	created := e.Execute(types.Intent{
		Action:    types.ActionCreate,
		SourceRef: "notes.md",
		Content:   &content,
		Record: &types.RecordFields{
			ScopeType:  types.ScopeTopic,
			ScopeID:    "api",
			Type:       types.TypeNote,
			Title:      "t",
			SourceType: types.SourceChatLog,
		},
	})
	require.True(t, created.Success)

	deprecated := e.Execute(types.Intent{
		Action:            types.ActionDeprecate,
		RecordID:          created.RecordID,
		ReplacedBy:        strptr(types.ReplacedByObsolete),
		DeprecationReason: strptr("superseded"),
	})
	require.True(t, deprecated.Success, "%+v", deprecated.Report)

	// same session: delete must be denied because updatedAt is not before
	// CurrentSessionStart (both use e.Clock()).
	denied := e.Execute(types.Intent{Action: types.ActionDelete, RecordID: created.RecordID, UserConfirmed: true})
	require.False(t, denied.Success)
	require.Equal(t, types.KindLifecycleDenied, denied.Report.Kind)

	// advance the clock past the deprecation to simulate a later session.
	e.Clock = func() time.Time { return time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC) }
	allowed := e.Execute(types.Intent{Action: types.ActionDelete, RecordID: created.RecordID, UserConfirmed: true})
	require.True(t, allowed.Success, "%+v", allowed.Report)

	records, err := jsonl.ReadFile(filepath.Join(e.Root, "90_index", "records.jsonl"))
	require.NoError(t, err)
	require.Empty(t, records)

	_, err = os.Stat(filepath.Join(e.Root, "30_topics", "notes.md"))
	require.True(t, os.IsNotExist(err))
}

func TestExecuteDryRunLeavesRootUntouched(t *testing.T) {
	e := newTestEngine(t)
	content := "x"
	resp := e.Execute(types.Intent{
		Action:    types.ActionCreate,
		SourceRef: "notes.md",
		Content:   &content,
		DryRun:    true,
		Record: &types.RecordFields{
			ScopeType:  types.ScopeTopic,
			ScopeID:    "api",
			Type:       types.TypeNote,
			Title:      "t",
			SourceType: types.SourceChatLog,
		},
	})
	require.True(t, resp.Success, "%+v", resp.Report)

	records, err := jsonl.ReadFile(filepath.Join(e.Root, "90_index", "records.jsonl"))
	require.NoError(t, err)
	require.Empty(t, records, "dry run must not mutate the real root")

	_, err = os.Stat(filepath.Join(e.Root, "30_topics", "notes.md"))
	require.True(t, os.IsNotExist(err))
}

func TestResidueCheckBlocksWhenTmpFilePresent(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, os.WriteFile(filepath.Join(e.Root, "90_index", "records.jsonl.tmp"), []byte("{}"), 0o600))

	content := "x"
	resp := e.Execute(types.Intent{
		Action:    types.ActionCreate,
		SourceRef: "notes.md",
		Content:   &content,
		Record: &types.RecordFields{
			ScopeType:  types.ScopeTopic,
			ScopeID:    "api",
			Type:       types.TypeNote,
			Title:      "t",
			SourceType: types.SourceChatLog,
		},
	})
	require.False(t, resp.Success)
	require.Equal(t, types.KindResidue, resp.Report.Kind)
}

// TestConcurrentWritersResolveCleanly launches two creates against the same
// root at once with errgroup, the way theRebelliousNerd-codenerd's campaign
// gatherer fans out independent calls. The engine holds no internal lock, so
// this only passes if the two writers land on different sourceRefs (and thus
// different staged filenames) — concurrent writes to the *same* document are
// outside the write protocol's contract — last rename wins, same as two
// `os.Rename` calls racing on any POSIX filesystem.
func TestConcurrentWritersResolveCleanly(t *testing.T) {
	e := newTestEngine(t)

	eg, _ := errgroup.WithContext(context.Background())
	results := make([]*types.Response, 2)
	refs := []string{"notes-a.md", "notes-b.md"}
	for i := range refs {
		i := i
		eg.Go(func() error {
			content := "concurrent"
			results[i] = e.Execute(types.Intent{
				Action:    types.ActionCreate,
				SourceRef: refs[i],
				Content:   &content,
				Record: &types.RecordFields{
					ScopeType:  types.ScopeTopic,
					ScopeID:    "api",
					Type:       types.TypeNote,
					Title:      "t" + refs[i],
					SourceType: types.SourceChatLog,
				},
			})
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	for _, resp := range results {
		require.True(t, resp.Success, "%+v", resp.Report)
	}

	records, err := jsonl.ReadFile(filepath.Join(e.Root, "90_index", "records.jsonl"))
	require.NoError(t, err)
	require.Len(t, records, 2)
}
