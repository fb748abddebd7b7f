package ifc

import (
	"encoding/json"
	"testing"

	"github.com/steveyegge/brain/internal/types"
	"github.com/stretchr/testify/require"
)

func TestDecodeIntentRoundTrips(t *testing.T) {
	content := "hello"
	want := types.Intent{
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

	data, err := json.Marshal(want)
	require.NoError(t, err)

	got, err := DecodeIntent(data)
	require.NoError(t, err)
	require.Equal(t, want.Action, got.Action)
	require.Equal(t, want.SourceRef, got.SourceRef)
	require.Equal(t, *want.Content, *got.Content)
	require.Equal(t, want.Record.Title, got.Record.Title)
}

func TestEncodeResponseProducesValidJSON(t *testing.T) {
	resp := types.Response{Success: true, RecordID: "rec_topic_api_20260730_0001", Report: types.Report{Step: "commit", Message: "committed"}}
	data, err := EncodeResponse(resp)
	require.NoError(t, err)
	require.Contains(t, string(data), "rec_topic_api_20260730_0001")
}

func TestDecodeQueryRequestRoundTrips(t *testing.T) {
	data := []byte(`{"scopeType":"topic","scopeId":"api","goal":"design","topK":5}`)
	req, err := DecodeQueryRequest(data)
	require.NoError(t, err)
	require.Equal(t, types.ScopeTopic, req.ScopeType)
	require.Equal(t, 5, req.TopK)
}
