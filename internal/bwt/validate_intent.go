package bwt

import (
	"github.com/steveyegge/brain/internal/brainerr"
	"github.com/steveyegge/brain/internal/lifecycle"
	"github.com/steveyegge/brain/internal/types"
)

// validateIntent is BWT step 1: structural checks on the caller-supplied
// intent before anything on disk is touched.
func validateIntent(intent types.Intent) error {
	var fields []types.FieldError

	switch intent.Action {
	case types.ActionCreate, types.ActionUpdate, types.ActionDeprecate, types.ActionDelete:
	default:
		fields = append(fields, types.FieldError{Field: "action", Reason: "must be one of create, update, deprecate, delete"})
	}

	switch intent.Action {
	case types.ActionCreate:
		if intent.SourceRef == "" {
			fields = append(fields, types.FieldError{Field: "sourceRef", Reason: "required for create"})
		}
		if intent.Content == nil {
			fields = append(fields, types.FieldError{Field: "content", Reason: "required for create"})
		}
		if intent.Record == nil {
			fields = append(fields, types.FieldError{Field: "record", Reason: "required for create"})
		} else {
			if !intent.Record.ScopeType.Valid() {
				fields = append(fields, types.FieldError{Field: "record.scopeType", Reason: "invalid scope type"})
			}
			if intent.Record.ScopeID == "" {
				fields = append(fields, types.FieldError{Field: "record.scopeId", Reason: "must not be empty"})
			}
			if !intent.Record.Type.Valid() {
				fields = append(fields, types.FieldError{Field: "record.type", Reason: "invalid record type"})
			}
			if intent.Record.Title == "" {
				fields = append(fields, types.FieldError{Field: "record.title", Reason: "must not be empty"})
			}
			if !intent.Record.SourceType.Valid() {
				fields = append(fields, types.FieldError{Field: "record.sourceType", Reason: "invalid source type"})
			}
			if ok, reason := sourceCheck(intent.Record.Type, intent.Record.SourceType); !ok {
				fields = append(fields, types.FieldError{Field: "record.sourceType", Reason: reason})
			}
			for _, tag := range intent.Record.Tags {
				if !types.ValidTag(tag) {
					fields = append(fields, types.FieldError{Field: "record.tags", Reason: "tag \"" + tag + "\" has an axis outside domain/intent"})
				}
			}
		}
	case types.ActionUpdate:
		if intent.RecordID == "" {
			fields = append(fields, types.FieldError{Field: "recordId", Reason: "required for update"})
		}
		if intent.Content == nil && intent.Record == nil {
			fields = append(fields, types.FieldError{Field: "content", Reason: "update requires content, record fields, or both"})
		}
	case types.ActionDeprecate:
		if intent.RecordID == "" {
			fields = append(fields, types.FieldError{Field: "recordId", Reason: "required for deprecate"})
		}
		if intent.ReplacedBy == nil {
			fields = append(fields, types.FieldError{Field: "replacedBy", Reason: "required for deprecate"})
		} else if *intent.ReplacedBy == types.ReplacedByObsolete && (intent.DeprecationReason == nil || *intent.DeprecationReason == "") {
			fields = append(fields, types.FieldError{Field: "deprecationReason", Reason: `required when replacedBy is "obsolete"`})
		}
	case types.ActionDelete:
		if intent.RecordID == "" {
			fields = append(fields, types.FieldError{Field: "recordId", Reason: "required for delete"})
		}
	}

	if len(fields) > 0 {
		return brainerr.New(types.KindIntentInvalid, "intent failed structural validation", fields...)
	}
	return nil
}

func sourceCheck(t types.RecordType, s types.SourceType) (bool, string) {
	return lifecycle.SSOTPromotionAllowed(t, s)
}
