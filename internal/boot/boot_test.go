package boot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/steveyegge/brain/internal/bwt"
	"github.com/steveyegge/brain/internal/types"
	"github.com/stretchr/testify/require"
)

func bwtIntent(content string) types.Intent {
	return types.Intent{
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
	}
}

func setupStore(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, bwt.Init(root, time.Now()))
	return root
}

func TestLoadSucceedsOnFreshStore(t *testing.T) {
	root := setupStore(t)
	state, err := Load(root, 3)
	require.NoError(t, err)
	require.Equal(t, root, state.Root)
	require.NotEmpty(t, state.Policy)
	require.Len(t, state.FolderRegistry.Folders, 6)
	require.Empty(t, state.Manifest.Files)
}

func TestLoadParsesPolicyFrontMatter(t *testing.T) {
	root := setupStore(t)
	state, err := Load(root, 3)
	require.NoError(t, err)
	require.Equal(t, 100, state.PolicySettings.GrowthWarningThreshold)
	require.Contains(t, state.Policy, "# Brain Policy")
	require.NotContains(t, state.Policy, "+++")
}

func TestLoadDefaultsPolicySettingsWhenNoFrontMatter(t *testing.T) {
	root := setupStore(t)
	policyPath := filepath.Join(root, "99_policy", "brainPolicy.md")
	require.NoError(t, os.WriteFile(policyPath, []byte("# Brain Policy\n\nNo front matter here.\n"), 0o600))

	state, err := Load(root, 3)
	require.NoError(t, err)
	require.Zero(t, state.PolicySettings.GrowthWarningThreshold)
	require.Contains(t, state.Policy, "No front matter here.")
}

func TestLoadFailsWhenPolicyMissing(t *testing.T) {
	root := setupStore(t)
	require.NoError(t, os.Remove(filepath.Join(root, "99_policy", "brainPolicy.md")))
	_, err := Load(root, 3)
	require.Error(t, err)
}

func TestDriftCheckFlagsHandEditedDocument(t *testing.T) {
	root := setupStore(t)
	engine := bwt.New(root)
	content := "original"
	resp := engine.Execute(bwtIntent(content))
	require.True(t, resp.Success, "%+v", resp.Report)

	state, err := Load(root, 3)
	require.NoError(t, err)
	require.Empty(t, DriftCheck(state))

	docPath := filepath.Join(root, "30_topics", "notes.md")
	require.NoError(t, os.WriteFile(docPath, []byte("hand-edited without going through bwt"), 0o600))

	state, err = Load(root, 3)
	require.NoError(t, err)
	drift := DriftCheck(state)
	require.Len(t, drift, 1)
	require.Equal(t, "30_topics/notes.md", drift[0].Path)
}

func TestDoctorReportsOKOnFreshStore(t *testing.T) {
	root := setupStore(t)
	report, err := Doctor(root)
	require.NoError(t, err)
	require.True(t, report.OverallOK)
}

func TestDoctorFlagsDrift(t *testing.T) {
	root := setupStore(t)
	engine := bwt.New(root)
	resp := engine.Execute(bwtIntent("original"))
	require.True(t, resp.Success, "%+v", resp.Report)

	docPath := filepath.Join(root, "30_topics", "notes.md")
	require.NoError(t, os.WriteFile(docPath, []byte("tampered"), 0o600))

	report, err := Doctor(root)
	require.NoError(t, err)
	require.False(t, report.OverallOK)
}
