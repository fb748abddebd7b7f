package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotifierSignalsOnRecordsWrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "90_index"), 0o755))

	n, err := New(root)
	require.NoError(t, err)
	defer n.Close()

	require.NoError(t, os.WriteFile(filepath.Join(root, "90_index", "records.jsonl"), []byte("{}\n"), 0o600))

	select {
	case name := <-n.Changed:
		require.Equal(t, "records.jsonl", name)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestNotifierIgnoresUnrelatedFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "90_index"), 0o755))

	n, err := New(root)
	require.NoError(t, err)
	defer n.Close()

	require.NoError(t, os.WriteFile(filepath.Join(root, "90_index", "tags.json"), []byte("{}"), 0o600))

	select {
	case name := <-n.Changed:
		t.Fatalf("unexpected notification for %s", name)
	case <-time.After(300 * time.Millisecond):
	}
}
