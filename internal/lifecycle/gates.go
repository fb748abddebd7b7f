// Package lifecycle implements the state-transition table, the delete
// precondition gates, SSOT promotion, folder auto-create, and the
// contamination/back-reference detectors. Every function here is a pure
// predicate — lifecycle never touches the filesystem or mutates a record;
// internal/bwt calls these and acts on the verdict.
package lifecycle

import (
	"time"

	"github.com/steveyegge/brain/internal/types"
)

// transitions enumerates every allowed Status -> Status move.
var transitions = map[types.Status]map[types.Status]bool{
	types.StatusActive: {
		types.StatusDeprecated: true,
		types.StatusArchived:   true,
	},
	types.StatusDeprecated: {
		types.StatusActive: true, // restore
	},
	types.StatusArchived: {},
}

// TransitionAllowed reports whether moving a record from `from` to `to` is
// permitted, with a reason string when it is not.
func TransitionAllowed(from, to types.Status) (bool, string) {
	if from == to {
		return false, "no-op transition"
	}
	allowed, ok := transitions[from]
	if !ok || !allowed[to] {
		return false, "status " + string(from) + " cannot transition to " + string(to)
	}
	return true, ""
}

// DeleteRequest carries everything the delete gate needs to evaluate its
// precondition checks.
type DeleteRequest struct {
	Record              types.Record
	CurrentSessionStart time.Time
	UserConfirmed       bool
}

// DeletePreconditions checks every gate independently and returns a reason
// string for each one that fails, so the caller can show all violations at
// once instead of failing fast on the first.
func DeletePreconditions(req DeleteRequest) []string {
	var reasons []string

	if req.Record.Status != types.StatusDeprecated {
		reasons = append(reasons, "record must be status=deprecated")
	}
	if !req.Record.UpdatedAt.Time().Before(req.CurrentSessionStart) {
		reasons = append(reasons, "record was deprecated in the current session — deprecate and delete cannot happen in the same session")
	}
	if req.Record.ReplacedBy == nil {
		reasons = append(reasons, "record must have a non-null replacedBy")
	}
	if !req.UserConfirmed {
		reasons = append(reasons, "caller must pass userConfirmed=true")
	}

	return reasons
}
