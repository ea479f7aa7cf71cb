package compiler

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/widl/internal/ir"
	"github.com/roach88/widl/internal/registry"
)

// CompileFragments parses the declarations of one CUE schema document
// into registry fragments. Uses the CUE SDK's Go API directly (not a CLI
// subprocess).
//
// The document root is expected to carry a "declarations" struct whose
// labels are declaration identifiers:
//
//	declarations: {
//		Predicate: {
//			kind:   "callback_function"
//			return: "boolean"
//			args: [{name: "item", type: "any"}]
//		}
//	}
//
// module is the originating-module name attached to every fragment.
func CompileFragments(v cue.Value, module string) ([]*registry.Fragment, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	declsVal := v.LookupPath(cue.ParsePath("declarations"))
	if !declsVal.Exists() {
		return nil, &CompileError{
			Field:   "declarations",
			Message: "schema document has no declarations struct",
			Pos:     v.Pos(),
		}
	}

	iter, err := declsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var frags []*registry.Fragment
	for iter.Next() {
		frag, err := compileFragment(iter.Label(), iter.Value(), module)
		if err != nil {
			return nil, err
		}
		frags = append(frags, frag)
	}
	return frags, nil
}

// compileFragment parses one declaration struct into a fragment.
func compileFragment(identifier string, v cue.Value, module string) (*registry.Fragment, error) {
	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return nil, &CompileError{
			Field:   identifier + ".kind",
			Message: "kind is required",
			Pos:     v.Pos(),
		}
	}
	kindStr, err := kindVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	kind, err := ir.ParseKind(kindStr)
	if err != nil {
		return nil, &CompileError{
			Field:   identifier + ".kind",
			Message: err.Error(),
			Pos:     kindVal.Pos(),
		}
	}

	frag := &registry.Fragment{
		Identifier: identifier,
		Kind:       kind,
		Module:     module,
		Location:   locationOf(v),
	}

	partialVal := v.LookupPath(cue.ParsePath("partial"))
	if partialVal.Exists() {
		partial, err := partialVal.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		frag.Partial = partial
	}

	frag.Annotations, err = parseAnnotations(v)
	if err != nil {
		return nil, err
	}
	frag.Hints, err = parseHints(v)
	if err != nil {
		return nil, err
	}

	inheritsVal := v.LookupPath(cue.ParsePath("inherits"))
	if inheritsVal.Exists() {
		if frag.Inherits, err = inheritsVal.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}

	switch kind {
	case ir.KindCallbackFunction:
		frag.Arguments, err = parseArguments(v.LookupPath(cue.ParsePath("args")))
		if err != nil {
			return nil, err
		}
		frag.ReturnType, err = parseReturnType(v)
		if err != nil {
			return nil, err
		}
	case ir.KindInterface:
		if err := parseCallableMembers(v, frag); err != nil {
			return nil, err
		}
		frag.Constants, err = parseConstants(v)
		if err != nil {
			return nil, err
		}
	case ir.KindNamespace:
		if err := parseCallableMembers(v, frag); err != nil {
			return nil, err
		}
	case ir.KindDictionary:
		frag.Members, err = parseMembers(v)
		if err != nil {
			return nil, err
		}
	case ir.KindEnumeration:
		frag.Values, err = parseEnumValues(v)
		if err != nil {
			return nil, err
		}
	case ir.KindTypedef:
		typeVal := v.LookupPath(cue.ParsePath("type"))
		if !typeVal.Exists() {
			return nil, &CompileError{
				Field:   identifier + ".type",
				Message: "typedef requires a target type",
				Pos:     v.Pos(),
			}
		}
		target, err := typeVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		frag.AliasedType = parseTypeRef(target)
	}

	return frag, nil
}

// parseCallableMembers fills the operations and attributes shared by
// interface and namespace declarations.
func parseCallableMembers(v cue.Value, frag *registry.Fragment) error {
	opsVal := v.LookupPath(cue.ParsePath("operations"))
	if opsVal.Exists() {
		iter, err := opsVal.Fields()
		if err != nil {
			return formatCUEError(err)
		}
		for iter.Next() {
			op := registry.RawOperation{Name: iter.Label()}
			opVal := iter.Value()
			op.Arguments, err = parseArguments(opVal.LookupPath(cue.ParsePath("args")))
			if err != nil {
				return err
			}
			op.ReturnType, err = parseReturnType(opVal)
			if err != nil {
				return err
			}
			frag.Operations = append(frag.Operations, op)
		}
	}

	attrsVal := v.LookupPath(cue.ParsePath("attributes"))
	if attrsVal.Exists() {
		iter, err := attrsVal.Fields()
		if err != nil {
			return formatCUEError(err)
		}
		for iter.Next() {
			attrVal := iter.Value()
			typeStr, err := attrVal.LookupPath(cue.ParsePath("type")).String()
			if err != nil {
				return formatCUEError(err)
			}
			attr := ir.Attribute{Name: iter.Label(), Type: parseTypeRef(typeStr)}
			roVal := attrVal.LookupPath(cue.ParsePath("readonly"))
			if roVal.Exists() {
				if attr.ReadOnly, err = roVal.Bool(); err != nil {
					return formatCUEError(err)
				}
			}
			frag.Attributes = append(frag.Attributes, attr)
		}
	}
	return nil
}

// parseArguments parses an ordered argument list. A missing list yields
// a nullary callable.
func parseArguments(v cue.Value) ([]ir.Argument, error) {
	if !v.Exists() {
		return nil, nil
	}
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var args []ir.Argument
	for iter.Next() {
		argVal := iter.Value()
		name, err := argVal.LookupPath(cue.ParsePath("name")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		typeStr, err := argVal.LookupPath(cue.ParsePath("type")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		arg := ir.Argument{Name: name, Type: parseTypeRef(typeStr)}

		optVal := argVal.LookupPath(cue.ParsePath("optional"))
		if optVal.Exists() {
			if arg.Optional, err = optVal.Bool(); err != nil {
				return nil, formatCUEError(err)
			}
		}
		varVal := argVal.LookupPath(cue.ParsePath("variadic"))
		if varVal.Exists() {
			if arg.Variadic, err = varVal.Bool(); err != nil {
				return nil, formatCUEError(err)
			}
		}
		defVal := argVal.LookupPath(cue.ParsePath("default"))
		if defVal.Exists() {
			lit, err := defVal.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			arg.Default = &ir.DefaultValue{Literal: lit}
		}
		args = append(args, arg)
	}
	return args, nil
}

// parseReturnType parses the return type of a callable, defaulting to
// "undefined" when absent.
func parseReturnType(v cue.Value) (ir.TypeRef, error) {
	retVal := v.LookupPath(cue.ParsePath("return"))
	if !retVal.Exists() {
		return ir.TypeRef{Name: "undefined"}, nil
	}
	s, err := retVal.String()
	if err != nil {
		return ir.TypeRef{}, formatCUEError(err)
	}
	return parseTypeRef(s), nil
}

// parseAnnotations parses the annotations struct. An entry value may be
// a string ([Key=Value]), a list of strings ([Key=(a,b)]), or the bool
// true for a bare marker ([Key]).
func parseAnnotations(v cue.Value) ([]ir.RawAnnotation, error) {
	annVal := v.LookupPath(cue.ParsePath("annotations"))
	if !annVal.Exists() {
		return nil, nil
	}
	iter, err := annVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var raw []ir.RawAnnotation
	for iter.Next() {
		entry := ir.RawAnnotation{Name: iter.Label()}
		entryVal := iter.Value()
		if s, err := entryVal.String(); err == nil {
			entry.Value = s
		} else if b, err := entryVal.Bool(); err == nil {
			if !b {
				return nil, &CompileError{
					Field:   "annotations." + iter.Label(),
					Message: "bare annotation marker must be true",
					Pos:     entryVal.Pos(),
				}
			}
		} else {
			listIter, err := entryVal.List()
			if err != nil {
				return nil, &CompileError{
					Field:   "annotations." + iter.Label(),
					Message: "annotation value must be a string, true, or a list of strings",
					Pos:     entryVal.Pos(),
				}
			}
			for listIter.Next() {
				s, err := listIter.Value().String()
				if err != nil {
					return nil, formatCUEError(err)
				}
				entry.Values = append(entry.Values, s)
			}
		}
		raw = append(raw, entry)
	}
	return raw, nil
}

// parseHints parses the generator-hints struct (string keys and values).
func parseHints(v cue.Value) (map[string]string, error) {
	hintsVal := v.LookupPath(cue.ParsePath("hints"))
	if !hintsVal.Exists() {
		return nil, nil
	}
	iter, err := hintsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	hints := make(map[string]string)
	for iter.Next() {
		value, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		hints[iter.Label()] = value
	}
	return hints, nil
}

// parseConstants parses the constants struct of an interface.
func parseConstants(v cue.Value) ([]ir.Constant, error) {
	constsVal := v.LookupPath(cue.ParsePath("constants"))
	if !constsVal.Exists() {
		return nil, nil
	}
	iter, err := constsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var consts []ir.Constant
	for iter.Next() {
		constVal := iter.Value()
		typeStr, err := constVal.LookupPath(cue.ParsePath("type")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		value, err := constVal.LookupPath(cue.ParsePath("value")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		consts = append(consts, ir.Constant{
			Name:  iter.Label(),
			Type:  parseTypeRef(typeStr),
			Value: value,
		})
	}
	return consts, nil
}

// parseMembers parses the members struct of a dictionary.
func parseMembers(v cue.Value) ([]ir.DictionaryMember, error) {
	membersVal := v.LookupPath(cue.ParsePath("members"))
	if !membersVal.Exists() {
		return nil, nil
	}
	iter, err := membersVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var members []ir.DictionaryMember
	for iter.Next() {
		memberVal := iter.Value()
		typeStr, err := memberVal.LookupPath(cue.ParsePath("type")).String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		member := ir.DictionaryMember{Name: iter.Label(), Type: parseTypeRef(typeStr)}

		reqVal := memberVal.LookupPath(cue.ParsePath("required"))
		if reqVal.Exists() {
			if member.Required, err = reqVal.Bool(); err != nil {
				return nil, formatCUEError(err)
			}
		}
		defVal := memberVal.LookupPath(cue.ParsePath("default"))
		if defVal.Exists() {
			lit, err := defVal.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			member.Default = &ir.DefaultValue{Literal: lit}
		}
		members = append(members, member)
	}
	return members, nil
}

// parseEnumValues parses the values list of an enumeration.
func parseEnumValues(v cue.Value) ([]string, error) {
	valuesVal := v.LookupPath(cue.ParsePath("values"))
	if !valuesVal.Exists() {
		return nil, nil
	}
	iter, err := valuesVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var values []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		values = append(values, s)
	}
	return values, nil
}

// parseTypeRef converts a type string into a TypeRef. A trailing "?"
// marks the type nullable.
func parseTypeRef(s string) ir.TypeRef {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "?") {
		return ir.TypeRef{Name: strings.TrimSuffix(s, "?"), Nullable: true}
	}
	return ir.TypeRef{Name: s}
}

// locationOf converts a CUE position into a source location record.
func locationOf(v cue.Value) ir.SourceLocation {
	pos := v.Pos()
	if !pos.IsValid() {
		return ir.SourceLocation{}
	}
	return ir.SourceLocation{
		File:   pos.Filename(),
		Line:   pos.Line(),
		Column: pos.Column(),
	}
}

// CompileError represents a schema compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	// CUE errors may contain multiple errors
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
