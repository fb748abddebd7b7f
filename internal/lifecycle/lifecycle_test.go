package lifecycle

import (
	"testing"
	"time"

	"github.com/steveyegge/brain/internal/types"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestTransitionAllowed(t *testing.T) {
	ok, _ := TransitionAllowed(types.StatusActive, types.StatusDeprecated)
	require.True(t, ok)

	ok, _ = TransitionAllowed(types.StatusActive, types.StatusArchived)
	require.True(t, ok)

	ok, _ = TransitionAllowed(types.StatusDeprecated, types.StatusActive)
	require.True(t, ok)

	ok, reason := TransitionAllowed(types.StatusArchived, types.StatusActive)
	require.False(t, ok)
	require.NotEmpty(t, reason)

	ok, _ = TransitionAllowed(types.StatusDeprecated, types.StatusArchived)
	require.False(t, ok)
}

func TestDeletePreconditionsAllMissingReportedTogether(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	req := DeleteRequest{
		Record: types.Record{
			Status:    types.StatusActive,
			UpdatedAt: types.Now(now),
		},
		CurrentSessionStart: now.Add(-time.Hour),
		UserConfirmed:       false,
	}
	reasons := DeletePreconditions(req)
	require.Len(t, reasons, 4) // not deprecated, same-session, missing replacedBy, not confirmed
}

func TestDeletePreconditionsAllSatisfied(t *testing.T) {
	sessionStart := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	deprecatedAt := sessionStart.Add(-24 * time.Hour)
	req := DeleteRequest{
		Record: types.Record{
			Status:     types.StatusDeprecated,
			UpdatedAt:  types.Now(deprecatedAt),
			ReplacedBy: ptr(types.ReplacedByObsolete),
		},
		CurrentSessionStart: sessionStart,
		UserConfirmed:       true,
	}
	require.Empty(t, DeletePreconditions(req))
}

func TestDeletePreconditionsBlocksSameSessionDeprecate(t *testing.T) {
	sessionStart := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	req := DeleteRequest{
		Record: types.Record{
			Status:     types.StatusDeprecated,
			UpdatedAt:  types.Now(sessionStart.Add(time.Minute)),
			ReplacedBy: ptr("rec_topic_x_20260730_0002"),
		},
		CurrentSessionStart: sessionStart,
		UserConfirmed:       true,
	}
	reasons := DeletePreconditions(req)
	require.Len(t, reasons, 1)
}

func TestSSOTPromotionAllowed(t *testing.T) {
	ok, _ := SSOTPromotionAllowed(types.TypeRule, types.SourceUserConfirmed)
	require.True(t, ok)

	ok, reason := SSOTPromotionAllowed(types.TypeDecision, types.SourceCandidate)
	require.False(t, ok)
	require.NotEmpty(t, reason)

	ok, _ = SSOTPromotionAllowed(types.TypeNote, types.SourceCandidate)
	require.True(t, ok)
}

func TestFolderAutoCreateAllowed(t *testing.T) {
	ok, _ := FolderAutoCreateAllowed("30_topics/foo/notes.md", false)
	require.True(t, ok)

	ok, _ = FolderAutoCreateAllowed("40_new/foo/notes.md", false)
	require.False(t, ok)

	ok, _ = FolderAutoCreateAllowed("40_new/foo/notes.md", true)
	require.True(t, ok)
}

func TestContaminationFlagsSSOTWithWrongSource(t *testing.T) {
	records := []types.Record{
		{RecordID: "a", Status: types.StatusActive, Type: types.TypeRule, SourceType: types.SourceInference},
		{RecordID: "b", Status: types.StatusActive, Type: types.TypeRule, SourceType: types.SourceUserConfirmed},
		{RecordID: "c", Status: types.StatusActive, Type: types.TypeNote, SourceType: types.SourceInference},
		{RecordID: "d", Status: types.StatusDeprecated, Type: types.TypeDecision, SourceType: types.SourceCandidate},
	}
	got := Contamination(records)
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0].RecordID)
}

func TestBackReferences(t *testing.T) {
	a := types.Record{RecordID: "rec_topic_a_20260730_0001", Status: types.StatusActive, SourceRef: "x", Summary: "refers to rec_topic_a_20260730_0001? no"}
	depA := types.Record{RecordID: "rec_topic_target_20260730_0001", Status: types.StatusDeprecated}
	active := types.Record{RecordID: "rec_topic_b_20260730_0002", Status: types.StatusActive, Summary: "see rec_topic_target_20260730_0001 for history"}

	pairs := BackReferences([]types.Record{a, depA, active})
	require.Len(t, pairs, 1)
	require.Equal(t, "rec_topic_b_20260730_0002", pairs[0].Active.RecordID)
	require.Equal(t, "rec_topic_target_20260730_0001", pairs[0].Deprecated.RecordID)
}
