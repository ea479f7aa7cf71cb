package registry

import (
	"errors"
	"fmt"

	"github.com/roach88/widl/internal/ir"
)

// ErrorCode categorizes registry errors.
type ErrorCode string

const (
	// ErrCodeKindConflict indicates two fragments share an identifier but
	// declare incompatible kinds. Recoverable: the offending fragment is
	// rejected, the first-registered draft stands.
	ErrCodeKindConflict ErrorCode = "KIND_CONFLICT"

	// ErrCodeDuplicateDefinition indicates a second non-partial fragment
	// for an identifier, or any second fragment of a kind that does not
	// accept partials.
	ErrCodeDuplicateDefinition ErrorCode = "DUPLICATE_DEFINITION"

	// ErrCodeNotFound indicates a lookup of an unregistered identifier.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeSealed indicates registration after the ingestion phase
	// ended.
	ErrCodeSealed ErrorCode = "REGISTRY_SEALED"

	// ErrCodeKindMismatch indicates a freeze requested against a
	// kind-incompatible concrete type. This is a dispatch bug in the
	// pipeline, never bad input: callers should halt the compilation
	// unit instead of continuing.
	ErrCodeKindMismatch ErrorCode = "KIND_MISMATCH"
)

// Error is a structured registry error.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Identifier is the affected declaration identifier.
	Identifier string

	// Expected and Actual carry kind context. For KIND_CONFLICT they are
	// the existing draft's kind and the incoming fragment's kind; for
	// KIND_MISMATCH the kind being constructed and the draft's kind.
	Expected ir.Kind
	Actual   ir.Kind

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Expected != "" || e.Actual != "" {
		return fmt.Sprintf("%s: %s (identifier=%q, expected=%s, actual=%s)",
			e.Code, e.Message, e.Identifier, e.Expected, e.Actual)
	}
	if e.Identifier != "" {
		return fmt.Sprintf("%s: %s (identifier=%q)", e.Code, e.Message, e.Identifier)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func hasCode(err error, code ErrorCode) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}

// IsKindConflict returns true for identifier/kind conflicts.
// Uses errors.As to handle wrapped errors.
func IsKindConflict(err error) bool { return hasCode(err, ErrCodeKindConflict) }

// IsDuplicateDefinition returns true for duplicate definition errors.
func IsDuplicateDefinition(err error) bool { return hasCode(err, ErrCodeDuplicateDefinition) }

// IsNotFound returns true for unregistered-identifier lookups.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsSealed returns true for registrations after Seal.
func IsSealed(err error) bool { return hasCode(err, ErrCodeSealed) }

// IsKindMismatch returns true for freeze dispatch bugs. Callers should
// treat these as fatal for the affected compilation unit.
func IsKindMismatch(err error) bool { return hasCode(err, ErrCodeKindMismatch) }

func newKindConflict(identifier string, existing, incoming ir.Kind) *Error {
	return &Error{
		Code:       ErrCodeKindConflict,
		Identifier: identifier,
		Expected:   existing,
		Actual:     incoming,
		Message:    "fragment kind conflicts with registered draft",
	}
}

func newDuplicateDefinition(identifier string, kind ir.Kind) *Error {
	return &Error{
		Code:       ErrCodeDuplicateDefinition,
		Identifier: identifier,
		Actual:     kind,
		Message:    "identifier is already fully defined",
	}
}

func newNotFound(identifier string) *Error {
	return &Error{
		Code:       ErrCodeNotFound,
		Identifier: identifier,
		Message:    "identifier is not registered",
	}
}

func newSealed(identifier string) *Error {
	return &Error{
		Code:       ErrCodeSealed,
		Identifier: identifier,
		Message:    "registry is sealed, ingestion phase is over",
	}
}

func newKindMismatch(identifier string, want, got ir.Kind) *Error {
	return &Error{
		Code:       ErrCodeKindMismatch,
		Identifier: identifier,
		Expected:   want,
		Actual:     got,
		Message:    "freeze dispatched against wrong concrete kind",
	}
}
