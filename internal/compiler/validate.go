package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/widl/internal/ir"
	"github.com/roach88/widl/internal/registry"
)

// Validation error codes (E100-E199)
const (
	ErrIdentifierEmpty     = "E101" // fragment identifier is empty
	ErrUnknownKind         = "E102" // kind not in the closed set
	ErrPartialNotAllowed   = "E103" // partial on a non-partialable kind
	ErrDuplicateArgName    = "E104" // duplicate argument name in a callable
	ErrEnumEmpty           = "E105" // enumeration with no values
	ErrEnumDuplicateValue  = "E106" // duplicate enumeration value
	ErrTypedefNoTarget     = "E107" // typedef without a target type
	ErrDuplicateMemberName = "E108" // duplicate member name within a fragment
)

// ValidationError represents a fragment validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a fragment against schema rules before registration.
// Returns all errors found (does not fail-fast). The registry enforces
// the cross-fragment invariants (kind conflicts, argument ordering);
// this layer catches the per-fragment shape problems.
func Validate(frag *registry.Fragment) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(frag.Identifier) == "" {
		errs = append(errs, ValidationError{
			Field:   "identifier",
			Message: "identifier is required and must be non-empty",
			Code:    ErrIdentifierEmpty,
		})
	}

	if !frag.Kind.Valid() {
		errs = append(errs, ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown declaration kind %q", frag.Kind),
			Code:    ErrUnknownKind,
		})
		return errs // kind-specific checks are meaningless without a kind
	}

	if frag.Partial && !frag.Kind.Partialable() {
		errs = append(errs, ValidationError{
			Field:   "partial",
			Message: fmt.Sprintf("kind %q does not accept partial fragments", frag.Kind),
			Code:    ErrPartialNotAllowed,
		})
	}

	switch frag.Kind {
	case ir.KindCallbackFunction:
		errs = append(errs, validateArgNames(frag.Arguments, "args")...)
	case ir.KindInterface:
		errs = append(errs, validateInterfaceMembers(frag)...)
	case ir.KindNamespace:
		errs = append(errs, validateOperations(frag.Operations)...)
		errs = append(errs, validateAttributeNames(frag.Attributes)...)
	case ir.KindDictionary:
		errs = append(errs, validateDictionaryMembers(frag.Members)...)
	case ir.KindEnumeration:
		errs = append(errs, validateEnumValues(frag.Values)...)
	case ir.KindTypedef:
		if strings.TrimSpace(frag.AliasedType.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   "type",
				Message: "typedef requires a non-empty target type",
				Code:    ErrTypedefNoTarget,
			})
		}
	}

	return errs
}

func validateArgNames(args []ir.Argument, fieldPrefix string) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for i, arg := range args {
		if seen[arg.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s[%d].name", fieldPrefix, i),
				Message: fmt.Sprintf("duplicate argument name: %q", arg.Name),
				Code:    ErrDuplicateArgName,
			})
		}
		seen[arg.Name] = true
	}
	return errs
}

func validateOperations(ops []registry.RawOperation) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for i, op := range ops {
		if seen[op.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("operations[%d].name", i),
				Message: fmt.Sprintf("duplicate operation name: %q", op.Name),
				Code:    ErrDuplicateMemberName,
			})
		}
		seen[op.Name] = true
		errs = append(errs, validateArgNames(op.Arguments, fmt.Sprintf("operations[%d].args", i))...)
	}
	return errs
}

func validateAttributeNames(attrs []ir.Attribute) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for i, attr := range attrs {
		if seen[attr.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("attributes[%d].name", i),
				Message: fmt.Sprintf("duplicate attribute name: %q", attr.Name),
				Code:    ErrDuplicateMemberName,
			})
		}
		seen[attr.Name] = true
	}
	return errs
}

func validateInterfaceMembers(frag *registry.Fragment) []ValidationError {
	errs := validateOperations(frag.Operations)
	errs = append(errs, validateAttributeNames(frag.Attributes)...)

	seen := make(map[string]bool)
	for i, c := range frag.Constants {
		if seen[c.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("constants[%d].name", i),
				Message: fmt.Sprintf("duplicate constant name: %q", c.Name),
				Code:    ErrDuplicateMemberName,
			})
		}
		seen[c.Name] = true
	}
	return errs
}

func validateDictionaryMembers(members []ir.DictionaryMember) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for i, m := range members {
		if seen[m.Name] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("members[%d].name", i),
				Message: fmt.Sprintf("duplicate member name: %q", m.Name),
				Code:    ErrDuplicateMemberName,
			})
		}
		seen[m.Name] = true
	}
	return errs
}

func validateEnumValues(values []string) []ValidationError {
	var errs []ValidationError
	if len(values) == 0 {
		errs = append(errs, ValidationError{
			Field:   "values",
			Message: "enumeration requires at least one value",
			Code:    ErrEnumEmpty,
		})
	}
	seen := make(map[string]bool)
	for i, v := range values {
		if seen[v] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("values[%d]", i),
				Message: fmt.Sprintf("duplicate enumeration value: %q", v),
				Code:    ErrEnumDuplicateValue,
			})
		}
		seen[v] = true
	}
	return errs
}
