package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/steveyegge/brain/internal/types"
	"github.com/stretchr/testify/require"
)

func TestLoadOrEmptyReturnsEmptyWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadOrEmpty(filepath.Join(dir, "manifest.json"), time.Now())
	require.NoError(t, err)
	require.Equal(t, 0, m.Summary.TotalFiles)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	m := types.EmptyManifest(time.Now())
	m.Upsert(types.ManifestEntry{Path: "30_topics/x/notes.md", Hash: "sha256:x", Size: 10, Category: types.CategoryTopic})
	m.Recompute(time.Now())
	require.NoError(t, Save(path, m))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, got.Summary.TotalFiles)
	require.Equal(t, 1, got.Summary.ByCategory["topic"])
}

func TestWriteAtomicLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	m := types.EmptyManifest(time.Now())
	require.NoError(t, WriteAtomic(path, m))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "manifest.json", entries[0].Name())
}

func TestCategoryForPath(t *testing.T) {
	cases := map[string]types.Category{
		"00_user/profile.md":         types.CategoryUser,
		"10_projects/foo/rules.md":   types.CategoryProject,
		"20_agents/bar/profile.md":   types.CategoryAgent,
		"30_topics/baz/notes.md":     types.CategoryTopic,
		"90_index/records.jsonl":     types.CategoryIndex,
		"99_policy/brainPolicy.md":   types.CategoryPolicy,
		"weird/other.md":             types.CategoryOther,
	}
	for path, want := range cases {
		require.Equal(t, want, types.CategoryForPath(path), path)
	}
}
