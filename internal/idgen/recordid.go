// Package idgen mints recordId values: rec_{scopeAbbrev}_{scopeId}_{YYYYMMDD}_{NNNN},
// unique and immutable once assigned.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/steveyegge/brain/internal/types"
)

// Mint returns the next recordId for (scopeType, scopeId) on the given day,
// scanning existing for the highest numeric suffix sharing the same prefix.
// The first record of a scope-day is numbered 0001.
func Mint(scopeType types.ScopeType, scopeID string, existing []types.Record, today time.Time) (string, error) {
	abbrev := scopeType.Abbrev()
	if abbrev == "" {
		return "", fmt.Errorf("idgen: unknown scope type %q", scopeType)
	}
	prefix := fmt.Sprintf("rec_%s_%s_%s_", abbrev, scopeID, today.UTC().Format("20060102"))

	max := 0
	for _, r := range existing {
		suffix, ok := strings.CutPrefix(r.RecordID, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1), nil
}

// ScopeAbbrevSubstring returns the "_{abbrev}_" segment a recordId of
// scopeType encodes, the substring the digest-first query engine filters on.
func ScopeAbbrevSubstring(scopeType types.ScopeType) string {
	return "_" + scopeType.Abbrev() + "_"
}
