package types

import "time"

// IntentAction is the BWT engine's four supported write actions.
type IntentAction string

const (
	ActionCreate    IntentAction = "create"
	ActionUpdate    IntentAction = "update"
	ActionDeprecate IntentAction = "deprecate"
	ActionDelete    IntentAction = "delete"
)

// RecordFields carries the record metadata a create or update intent
// supplies. On create the validator requires ScopeType, ScopeID, Type,
// Title, and SourceType; Summary and Tags are optional. On update,
// applyPartialUpdate in internal/bwt applies Title, Summary, Tags, and
// SourceType when they are non-empty; ScopeType, ScopeID, and Type are
// ignored.
type RecordFields struct {
	ScopeType  ScopeType  `json:"scopeType,omitempty"`
	ScopeID    string     `json:"scopeId,omitempty"`
	Type       RecordType `json:"type,omitempty"`
	Title      string     `json:"title,omitempty"`
	Summary    string     `json:"summary,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	SourceType SourceType `json:"sourceType,omitempty"`
}

// Intent is the caller-supplied BWT request. Which fields apply depends on
// Action.
type Intent struct {
	Action IntentAction `json:"action"`

	// create
	SourceRef string        `json:"sourceRef,omitempty"`
	Content   *string       `json:"content,omitempty"`
	Record    *RecordFields `json:"record,omitempty"`

	// update / deprecate / delete
	RecordID string `json:"recordId,omitempty"`

	// deprecate
	ReplacedBy        *string `json:"replacedBy,omitempty"`
	DeprecationReason *string `json:"deprecationReason,omitempty"`

	// delete: the caller's explicit confirmation, required by the fourth
	// delete gate. The CLI sets this after its interactive prompt, or
	// without one when --yes is passed; library callers must pass it
	// deliberately.
	UserConfirmed bool `json:"userConfirmed,omitempty"`

	// delete: when the current session began, for the second delete gate
	// (updatedAt must precede it). Nil means "now" — the caller is in the
	// same session that is requesting the delete.
	SessionStart *time.Time `json:"sessionStart,omitempty"`

	// folder auto-create gate
	AllowFolderCreate bool `json:"allowFolderCreate,omitempty"`

	// run the nine-step protocol against a scratch copy of the index,
	// never touching the real tree.
	DryRun bool `json:"dryRun,omitempty"`
}

// FieldError names one structural violation, used by IntentInvalid and
// SchemaViolation reports so the caller can show every violation at once.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ErrKind enumerates the fixed set of error kinds a BWT call can report.
type ErrKind string

const (
	KindIntentInvalid   ErrKind = "IntentInvalid"
	KindResidue         ErrKind = "Residue"
	KindScopeViolation  ErrKind = "ScopeViolation"
	KindNotFound        ErrKind = "NotFound"
	KindSchemaViolation ErrKind = "SchemaViolation"
	KindIOFault         ErrKind = "IOFault"
	KindDriftWarning    ErrKind = "DriftWarning"
	KindLifecycleDenied ErrKind = "LifecycleDenied"
)

// Report is the structured outcome of a BWT call, validator run, or gate check.
type Report struct {
	Step     string       `json:"step,omitempty"`
	Kind     ErrKind      `json:"kind,omitempty"`
	Message  string       `json:"message,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
}

// Response is the BWT engine's return value.
type Response struct {
	Success  bool   `json:"success"`
	RecordID string `json:"recordId,omitempty"`
	Report   Report `json:"report"`
}

// QueryRequest is the digest-first query engine's input.
type QueryRequest struct {
	ScopeType ScopeType `json:"scopeType,omitempty"`
	ScopeID   string    `json:"scopeId,omitempty"`
	Goal      string    `json:"goal,omitempty"`
	TopK      int       `json:"topK,omitempty"`
}

// Candidate is one scored query result.
type Candidate struct {
	RecordID string   `json:"recordId"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Tags     []string `json:"tags"`
	Status   Status   `json:"status"`
	Score    int      `json:"score"`
}

// QueryResponse is the digest-first query engine's output.
type QueryResponse struct {
	Candidates []Candidate `json:"candidates"`
	Total      int         `json:"total"`
}
