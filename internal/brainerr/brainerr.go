// Package brainerr models the fixed set of error kinds as a typed error
// rather than leaning on exceptions-as-control-flow: every step failure in
// internal/bwt returns one of these, and the engine's top-level call
// converts a non-nil error into a rollback plus a structured Report.
package brainerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/steveyegge/brain/internal/types"
)

// Error is the store's structured error: a Kind plus a human message and
// optional per-field reasons.
type Error struct {
	Kind   types.ErrKind
	Msg    string
	Fields []types.FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Msg, strings.Join(parts, "; "))
}

// New constructs an *Error of the given kind.
func New(kind types.ErrKind, msg string, fields ...types.FieldError) *Error {
	return &Error{Kind: kind, Msg: msg, Fields: fields}
}

// Newf constructs an *Error with a formatted message.
func Newf(kind types.ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is a brainerr.Error of the given kind.
func Is(err error, kind types.ErrKind) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// KindOf extracts the kind from err, defaulting to IOFault for an
// unclassified error — every failure path from steps 1-9 must classify
// its own errors before returning, so this default only fires for truly
// unexpected underlying I/O failures.
func KindOf(err error) types.ErrKind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return types.KindIOFault
}
