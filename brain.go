// Package brain provides a minimal public API for extending the brain
// store with custom orchestration.
//
// Most extensions should invoke the brain CLI directly. This package
// exports only the essential types and functions needed for Go-based
// callers that want to drive the BWT engine programmatically instead of
// shelling out, mirroring the teacher's own beads.go extension surface.
package brain

import (
	"time"

	"github.com/steveyegge/brain/internal/boot"
	"github.com/steveyegge/brain/internal/bwt"
	"github.com/steveyegge/brain/internal/query"
	"github.com/steveyegge/brain/internal/types"
	"github.com/steveyegge/brain/internal/validation"
)

// Core types for working with records.
type (
	Record        = types.Record
	Status        = types.Status
	RecordType    = types.RecordType
	ScopeType     = types.ScopeType
	SourceType    = types.SourceType
	Intent        = types.Intent
	IntentAction  = types.IntentAction
	Response      = types.Response
	QueryRequest  = types.QueryRequest
	QueryResponse = types.QueryResponse
	Candidate     = types.Candidate
)

// Status constants.
const (
	StatusActive     = types.StatusActive
	StatusDeprecated = types.StatusDeprecated
	StatusArchived   = types.StatusArchived
)

// IntentAction constants.
const (
	ActionCreate    = types.ActionCreate
	ActionUpdate    = types.ActionUpdate
	ActionDeprecate = types.ActionDeprecate
	ActionDelete    = types.ActionDelete
)

// Engine is the BWT write engine, exported for callers that want to issue
// intents without going through the CLI.
type Engine = bwt.Engine

// NewEngine opens an Engine rooted at root, using the real wall clock.
func NewEngine(root string) *Engine {
	return bwt.New(root)
}

// Query runs the digest-first scoring pipeline against root.
func Query(root string, req types.QueryRequest) (*types.QueryResponse, error) {
	return query.Run(root, req)
}

// Show returns the full record for recordID, read from records.jsonl.
func Show(root, recordID string) (*types.Record, error) {
	return query.Detail(root, recordID)
}

// Doctor runs a combined health check against root: drift, contamination,
// back-references, and a full validation pass.
func Doctor(root string) (*boot.FullReport, error) {
	return boot.Doctor(root)
}

// Validate runs the committed-store validator against root.
func Validate(root string, full bool) (*types.Report, error) {
	return validation.Validate(root, validation.Committed, full, 0)
}

// Init idempotently bootstraps a fresh store root.
func Init(root string) error {
	return bwt.Init(root, time.Now())
}
