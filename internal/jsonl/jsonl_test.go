package jsonl

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/steveyegge/brain/internal/types"
	"github.com/stretchr/testify/require"
)

func sampleRecord(id string) types.Record {
	return types.Record{
		RecordID:    id,
		ScopeType:   types.ScopeTopic,
		ScopeID:     "v2-test",
		Type:        types.TypeNote,
		Title:       "V2 검증 노트",
		Summary:     "BWT V2 체크리스트 검증",
		Tags:        []string{"domain/memory", "intent/debug"},
		SourceType:  types.SourceCandidate,
		SourceRef:   "30_topics/v2-test/notes.md",
		Status:      types.StatusActive,
		UpdatedAt:   types.Now(time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)),
		ContentHash: "sha256:deadbeef",
	}
}

func TestMarshalEmptyIsEmptyBytes(t *testing.T) {
	data, err := Marshal(nil)
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestRoundTripRecords(t *testing.T) {
	recs := []types.Record{sampleRecord("rec_topic_v2-test_20260730_0001"), sampleRecord("rec_topic_v2-test_20260730_0002")}
	data, err := Marshal(recs)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, recs, got)
}

func TestUnmarshalSkipsBlankLines(t *testing.T) {
	data := []byte(`{"recordId":"rec_topic_a_20260730_0001","scopeType":"topic","scopeId":"a","type":"note","title":"t","summary":"s","tags":[],"sourceType":"candidate","sourceRef":"","status":"active","replacedBy":null,"deprecationReason":null,"updatedAt":"2026-07-30T00:00:00.000Z","contentHash":"sha256:x"}

`)
	got, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestUnmarshalReportsLineNumber(t *testing.T) {
	data := []byte("{}\nnot-json\n")
	_, err := Unmarshal(data)
	require.ErrorContains(t, err, "line 2")
}

func TestWriteFileThenReadFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.jsonl")
	recs := []types.Record{sampleRecord("rec_topic_v2-test_20260730_0001")}

	require.NoError(t, WriteFile(path, recs))
	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, recs, got)
}
