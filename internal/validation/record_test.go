package validation

import (
	"testing"

	"github.com/steveyegge/brain/internal/types"
	"github.com/stretchr/testify/require"
)

func TestGrowthWarningUsesDefaultThresholdWhenUnset(t *testing.T) {
	records := make([]types.Record, DefaultGrowthWarningThreshold+1)
	require.Len(t, GrowthWarning(records, 0), 1)
	require.Empty(t, GrowthWarning(records[:DefaultGrowthWarningThreshold], 0))
}

func TestGrowthWarningHonorsCustomThreshold(t *testing.T) {
	records := make([]types.Record, 5)
	require.Empty(t, GrowthWarning(records, 10))
	require.Len(t, GrowthWarning(records, 4), 1)
}

func TestGrowthWarningNegativeThresholdFallsBackToDefault(t *testing.T) {
	records := make([]types.Record, 5)
	require.Empty(t, GrowthWarning(records, -1))
}
