// Package validation implements the two-mode validator: structural
// record/invariant checks plus manifest/residue scans, run either against
// the committed index artifacts or the BWT engine's staged .tmp variants.
package validation

import (
	"fmt"

	"github.com/steveyegge/brain/internal/types"
)

// RecordErrors returns every structural and invariant violation for a
// single record. Uniqueness is checked across the whole sequence by
// Sequence, not here.
func RecordErrors(r types.Record) []types.FieldError {
	var errs []types.FieldError

	if r.RecordID == "" {
		errs = append(errs, types.FieldError{Field: "recordId", Reason: "must not be empty"})
	}
	if !r.ScopeType.Valid() {
		errs = append(errs, types.FieldError{Field: "scopeType", Reason: fmt.Sprintf("invalid scope type %q", r.ScopeType)})
	}
	if r.ScopeID == "" {
		errs = append(errs, types.FieldError{Field: "scopeId", Reason: "must not be empty"})
	}
	if !r.Type.Valid() {
		errs = append(errs, types.FieldError{Field: "type", Reason: fmt.Sprintf("invalid record type %q", r.Type)})
	}
	if r.Title == "" {
		errs = append(errs, types.FieldError{Field: "title", Reason: "must not be empty"})
	}
	if !r.SourceType.Valid() {
		errs = append(errs, types.FieldError{Field: "sourceType", Reason: fmt.Sprintf("invalid source type %q", r.SourceType)})
	}
	if !r.Status.Valid() {
		errs = append(errs, types.FieldError{Field: "status", Reason: fmt.Sprintf("invalid status %q", r.Status)})
	}
	if r.ContentHash == "" {
		errs = append(errs, types.FieldError{Field: "contentHash", Reason: "must not be empty"})
	}

	for _, tag := range r.Tags {
		if !types.ValidTag(tag) {
			errs = append(errs, types.FieldError{Field: "tags", Reason: fmt.Sprintf("tag %q has an axis outside domain/intent", tag)})
		}
	}

	// status=deprecated requires a non-null replacedBy; replacedBy="obsolete" additionally requires a non-empty deprecationReason.
	if r.Status == types.StatusDeprecated {
		if r.ReplacedBy == nil {
			errs = append(errs, types.FieldError{Field: "replacedBy", Reason: "required when status is deprecated"})
		} else if *r.ReplacedBy == types.ReplacedByObsolete {
			if r.DeprecationReason == nil || *r.DeprecationReason == "" {
				errs = append(errs, types.FieldError{Field: "deprecationReason", Reason: `required when replacedBy is "obsolete"`})
			}
		}
	}

	return errs
}

// Sequence returns every recordId that appears more than once.
func Sequence(records []types.Record) []types.FieldError {
	var errs []types.FieldError
	seen := map[string]int{}
	for _, r := range records {
		seen[r.RecordID]++
	}
	for id, count := range seen {
		if count > 1 {
			errs = append(errs, types.FieldError{Field: "recordId", Reason: fmt.Sprintf("%q appears %d times", id, count)})
		}
	}
	return errs
}

// DefaultGrowthWarningThreshold is used when the policy document carries no
// growthWarningThreshold front matter override.
const DefaultGrowthWarningThreshold = 100

// GrowthWarning returns a warning (never an error) when the record count
// exceeds threshold. threshold <= 0 falls back to
// DefaultGrowthWarningThreshold.
func GrowthWarning(records []types.Record, threshold int) []string {
	if threshold <= 0 {
		threshold = DefaultGrowthWarningThreshold
	}
	if len(records) > threshold {
		return []string{fmt.Sprintf("record count %d exceeds %d — consider archiving or splitting scopes", len(records), threshold)}
	}
	return nil
}
