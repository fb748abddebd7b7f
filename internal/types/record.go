// Package types defines the shapes the brain store persists and exchanges:
// records, the four index artifacts, and the intent/response envelopes the
// BWT engine accepts and returns.
package types

import (
	"fmt"
	"strings"
	"time"
)

// ScopeType selects which category folder a record's document lives under.
type ScopeType string

const (
	ScopeProject ScopeType = "project"
	ScopeAgent   ScopeType = "agent"
	ScopeUser    ScopeType = "user"
	ScopeTopic   ScopeType = "topic"
)

// scopeAbbrev is the fixed table encoding ScopeType into a recordId prefix.
// Load-bearing for digest substring filtering (see internal/query) — never
// relax without updating every consumer of the recordId shape.
var scopeAbbrev = map[ScopeType]string{
	ScopeProject: "proj",
	ScopeAgent:   "agent",
	ScopeUser:    "user",
	ScopeTopic:   "topic",
}

// Abbrev returns the recordId abbreviation for a scope type, or "" if unknown.
func (s ScopeType) Abbrev() string {
	return scopeAbbrev[s]
}

func (s ScopeType) Valid() bool {
	_, ok := scopeAbbrev[s]
	return ok
}

// ScopeFolder returns the category folder a record of this scope type lives under.
func (s ScopeType) ScopeFolder() string {
	switch s {
	case ScopeUser:
		return "00_user"
	case ScopeProject:
		return "10_projects"
	case ScopeAgent:
		return "20_agents"
	case ScopeTopic:
		return "30_topics"
	default:
		return ""
	}
}

// RecordType is the record's semantic kind.
type RecordType string

const (
	TypeRule         RecordType = "rule"
	TypeDecision     RecordType = "decision"
	TypeProfile      RecordType = "profile"
	TypeLog          RecordType = "log"
	TypeRef          RecordType = "ref"
	TypeNote         RecordType = "note"
	TypeCandidate    RecordType = "candidate"
	TypeReminder     RecordType = "reminder"
	TypeProjectState RecordType = "project_state"
)

var validRecordTypes = map[RecordType]bool{
	TypeRule: true, TypeDecision: true, TypeProfile: true, TypeLog: true,
	TypeRef: true, TypeNote: true, TypeCandidate: true, TypeReminder: true,
	TypeProjectState: true,
}

func (t RecordType) Valid() bool { return validRecordTypes[t] }

// IsSSOT reports whether t is one of the two source-of-truth types that
// require SourceType == SourceUserConfirmed.
func (t RecordType) IsSSOT() bool {
	return t == TypeRule || t == TypeDecision
}

// SourceType gates SSOT promotion and, combined with RecordType, contamination.
type SourceType string

const (
	SourceUserConfirmed SourceType = "user_confirmed"
	SourceCandidate     SourceType = "candidate"
	SourceChatLog       SourceType = "chat_log"
	SourceExternalDoc   SourceType = "external_doc"
	SourceInference     SourceType = "inference"
)

var validSourceTypes = map[SourceType]bool{
	SourceUserConfirmed: true, SourceCandidate: true, SourceChatLog: true,
	SourceExternalDoc: true, SourceInference: true,
}

func (t SourceType) Valid() bool { return validSourceTypes[t] }

// Status is the record's lifecycle state.
type Status string

const (
	StatusActive     Status = "active"
	StatusDeprecated Status = "deprecated"
	StatusArchived   Status = "archived"
)

var validStatuses = map[Status]bool{
	StatusActive: true, StatusDeprecated: true, StatusArchived: true,
}

func (s Status) Valid() bool { return validStatuses[s] }

// ReplacedByObsolete is the sentinel ReplacedBy value meaning "retired with
// no successor record" — it requires a non-empty DeprecationReason.
const ReplacedByObsolete = "obsolete"

// Allowed tag axes. Tags are "axis/value" strings restricted to these two.
const (
	TagAxisDomain = "domain"
	TagAxisIntent = "intent"
)

// ValidTag reports whether a tag string has an allowed axis prefix.
func ValidTag(tag string) bool {
	return strings.HasPrefix(tag, TagAxisDomain+"/") || strings.HasPrefix(tag, TagAxisIntent+"/")
}

// Record is the unit the index tracks. All fourteen fields are always
// present in encoded JSON; nullable fields marshal to JSON null rather than
// being omitted.
type Record struct {
	RecordID          string     `json:"recordId"`
	ScopeType         ScopeType  `json:"scopeType"`
	ScopeID           string     `json:"scopeId"`
	Type              RecordType `json:"type"`
	Title             string     `json:"title"`
	Summary           string     `json:"summary"`
	Tags              []string   `json:"tags"`
	SourceType        SourceType `json:"sourceType"`
	SourceRef         string     `json:"sourceRef"`
	Status            Status     `json:"status"`
	ReplacedBy        *string    `json:"replacedBy"`
	DeprecationReason *string    `json:"deprecationReason"`
	UpdatedAt         UnixMilli  `json:"updatedAt"`
	ContentHash       string     `json:"contentHash"`
}

// UnixMilli marshals a time.Time as an ISO-8601 UTC timestamp truncated to
// millisecond precision, the same wire format the manifest uses for its
// updatedAt fields.
type UnixMilli time.Time

const unixMilliLayout = "2006-01-02T15:04:05.000Z"

func (u UnixMilli) MarshalJSON() ([]byte, error) {
	t := time.Time(u).UTC().Truncate(time.Millisecond)
	return []byte(`"` + t.Format(unixMilliLayout) + `"`), nil
}

func (u *UnixMilli) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse(unixMilliLayout, s)
	if err != nil {
		// tolerate full nanosecond RFC3339 on read, e.g. hand-edited files
		t, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("parsing updatedAt %q: %w", s, err)
		}
	}
	*u = UnixMilli(t.UTC())
	return nil
}

func (u UnixMilli) Time() time.Time { return time.Time(u).UTC() }

func Now(t time.Time) UnixMilli { return UnixMilli(t.UTC().Truncate(time.Millisecond)) }
