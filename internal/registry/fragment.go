package registry

import "github.com/roach88/widl/internal/ir"

// Fragment is one parsed piece of a declaration as delivered by the
// upstream front-end. A declaration may arrive as a single fragment or,
// for partialable kinds, as a base fragment plus any number of partials
// sharing its identifier.
//
// Payload fields are kind-specific; only the group matching Kind is
// consulted. Annotation and hint data is raw: normalization happens when
// the fragment is registered.
type Fragment struct {
	Identifier string
	Kind       ir.Kind
	Partial    bool

	Annotations []ir.RawAnnotation
	Hints       map[string]string
	Module      string
	Location    ir.SourceLocation

	// callback_function payload
	Arguments  []ir.Argument
	ReturnType ir.TypeRef

	// interface and namespace payload
	Inherits   string
	Operations []RawOperation
	Attributes []ir.Attribute
	Constants  []ir.Constant

	// dictionary payload
	Members []ir.DictionaryMember

	// enumeration payload
	Values []string

	// typedef payload
	AliasedType ir.TypeRef
}

// RawOperation is an operation member before its argument list has been
// validated into a FunctionLike shape.
type RawOperation struct {
	Name       string
	Arguments  []ir.Argument
	ReturnType ir.TypeRef
}
