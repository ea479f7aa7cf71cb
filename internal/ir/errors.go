package ir

import (
	"errors"
	"fmt"
)

// MetadataError reports raw trait data that failed its normalization
// contract. It is local to one fragment: the offending fragment is
// rejected, sibling declarations are untouched.
type MetadataError struct {
	// Trait names the capability trait ("annotations" or "hints").
	Trait string

	// Key is the offending entry key, if one is identifiable.
	Key string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *MetadataError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s[%s]: %s", e.Trait, e.Key, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Trait, e.Message)
}

// IsMetadataError returns true if the error is a trait normalization
// failure. Uses errors.As to handle wrapped errors.
func IsMetadataError(err error) bool {
	var me *MetadataError
	return errors.As(err, &me)
}

// ArgumentOrderError reports a callable payload whose argument list
// violates the ordering invariant: an optional argument may not precede
// a required one without a default, and at most one variadic argument
// is allowed, which must be last. A declaration with this error is
// unusable and never reaches a frozen state.
type ArgumentOrderError struct {
	// Index is the position of the offending argument.
	Index int

	// Name is the offending argument's name.
	Name string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ArgumentOrderError) Error() string {
	return fmt.Sprintf("argument %d (%q): %s", e.Index, e.Name, e.Message)
}

// IsArgumentOrderError returns true if the error is an argument ordering
// violation. Uses errors.As to handle wrapped errors.
func IsArgumentOrderError(err error) bool {
	var ae *ArgumentOrderError
	return errors.As(err, &ae)
}
