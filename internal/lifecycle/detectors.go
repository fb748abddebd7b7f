package lifecycle

import (
	"strings"

	"github.com/steveyegge/brain/internal/types"
)

// SSOTPromotionAllowed gates promotion to rule/decision: only a
// user_confirmed source may become an SSOT type. This is the one point
// where a wrong sourceType is rejected outright, at the moment a record is
// promoted into an SSOT type; Contamination below is the separate,
// non-blocking detector for a mismatch that already exists in the store.
func SSOTPromotionAllowed(t types.RecordType, source types.SourceType) (bool, string) {
	if !t.IsSSOT() {
		return true, ""
	}
	if source != types.SourceUserConfirmed {
		return false, "rule/decision records require sourceType=user_confirmed"
	}
	return true, ""
}

// FolderAutoCreateAllowed gates auto-creation of a document's parent
// directory: permitted only under 30_topics/, unless the caller explicitly
// allows it.
func FolderAutoCreateAllowed(sourceRef string, callerAllowed bool) (bool, string) {
	if strings.HasPrefix(sourceRef, "30_topics/") {
		return true, ""
	}
	if callerAllowed {
		return true, ""
	}
	return false, "auto-creating a folder outside 30_topics/ requires an explicit caller allow"
}

// Contamination flags active records of SSOT type whose sourceType is
// inference or candidate. It does not block writes — it is an advisory
// surfaced by boot and validate --full.
func Contamination(records []types.Record) []types.Record {
	var out []types.Record
	for _, r := range records {
		if r.Status != types.StatusActive {
			continue
		}
		if !r.Type.IsSSOT() {
			continue
		}
		if r.SourceType == types.SourceInference || r.SourceType == types.SourceCandidate {
			out = append(out, r)
		}
	}
	return out
}

// BackReferencePair is one active record referencing a deprecated one.
type BackReferencePair struct {
	Active     types.Record
	Deprecated types.Record
}

// BackReferences scans every active record for any deprecated record's
// recordId appearing as a substring of its sourceRef or summary.
// O(active * deprecated); fine at the store's expected scale — the growth
// warning fires well before this would matter.
func BackReferences(records []types.Record) []BackReferencePair {
	var deprecated []types.Record
	for _, r := range records {
		if r.Status == types.StatusDeprecated {
			deprecated = append(deprecated, r)
		}
	}
	if len(deprecated) == 0 {
		return nil
	}

	var pairs []BackReferencePair
	for _, active := range records {
		if active.Status != types.StatusActive {
			continue
		}
		for _, dep := range deprecated {
			if active.RecordID == dep.RecordID {
				continue
			}
			if strings.Contains(active.SourceRef, dep.RecordID) || strings.Contains(active.Summary, dep.RecordID) {
				pairs = append(pairs, BackReferencePair{Active: active, Deprecated: dep})
			}
		}
	}
	return pairs
}
