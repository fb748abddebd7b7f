package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEventLogsInfoOnSuccess(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	Event(log, CallID(), "commit", "create", "rec_topic_a_20260730_0001", nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zap.InfoLevel, entries[0].Level)
}

func TestCallIDIsNonEmptyAndVaries(t *testing.T) {
	a, b := CallID(), CallID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestEventLogsWarnOnFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	Event(log, CallID(), "6-records-staging", "delete", "", errors.New("delete preconditions unmet"))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zap.WarnLevel, entries[0].Level)
}
