// Package testutil provides fragment constructors for registry and
// pipeline tests.
//
// The constructors produce minimal valid fragments for each declaration
// kind. Tests adjust the returned struct directly when a scenario needs
// more: fragments are plain data until registration normalizes them.
package testutil

import (
	"github.com/roach88/widl/internal/ir"
	"github.com/roach88/widl/internal/registry"
)

// Type builds a non-nullable type reference.
func Type(name string) ir.TypeRef {
	return ir.TypeRef{Name: name}
}

// NullableType builds a nullable type reference.
func NullableType(name string) ir.TypeRef {
	return ir.TypeRef{Name: name, Nullable: true}
}

// Arg builds a required argument.
func Arg(name, typ string) ir.Argument {
	return ir.Argument{Name: name, Type: Type(typ)}
}

// OptionalArg builds an optional argument.
func OptionalArg(name, typ string) ir.Argument {
	return ir.Argument{Name: name, Type: Type(typ), Optional: true}
}

// VariadicArg builds a variadic argument.
func VariadicArg(name, typ string) ir.Argument {
	return ir.Argument{Name: name, Type: Type(typ), Variadic: true}
}

// DefaultedArg builds an argument with a default value. Arguments with
// defaults satisfy the required-after-optional ordering rule.
func DefaultedArg(name, typ, literal string) ir.Argument {
	return ir.Argument{
		Name:    name,
		Type:    Type(typ),
		Default: &ir.DefaultValue{Literal: literal},
	}
}

// Annotation builds a raw single-valued annotation. An empty value
// produces a bare annotation.
func Annotation(name, value string) ir.RawAnnotation {
	return ir.RawAnnotation{Name: name, Value: value}
}

// ListAnnotation builds a raw list-valued annotation.
func ListAnnotation(name string, values ...string) ir.RawAnnotation {
	return ir.RawAnnotation{Name: name, Values: values}
}

// CallbackFragment builds a callback_function fragment.
func CallbackFragment(id string, ret ir.TypeRef, args ...ir.Argument) *registry.Fragment {
	return &registry.Fragment{
		Identifier: id,
		Kind:       ir.KindCallbackFunction,
		Arguments:  args,
		ReturnType: ret,
	}
}

// InterfaceFragment builds a non-partial interface fragment.
func InterfaceFragment(id string, ops ...registry.RawOperation) *registry.Fragment {
	return &registry.Fragment{
		Identifier: id,
		Kind:       ir.KindInterface,
		Operations: ops,
	}
}

// PartialInterfaceFragment builds a partial interface fragment.
func PartialInterfaceFragment(id string, ops ...registry.RawOperation) *registry.Fragment {
	frag := InterfaceFragment(id, ops...)
	frag.Partial = true
	return frag
}

// Operation builds a raw operation member.
func Operation(name string, ret ir.TypeRef, args ...ir.Argument) registry.RawOperation {
	return registry.RawOperation{Name: name, Arguments: args, ReturnType: ret}
}

// DictionaryFragment builds a non-partial dictionary fragment.
func DictionaryFragment(id string, members ...ir.DictionaryMember) *registry.Fragment {
	return &registry.Fragment{
		Identifier: id,
		Kind:       ir.KindDictionary,
		Members:    members,
	}
}

// PartialDictionaryFragment builds a partial dictionary fragment.
func PartialDictionaryFragment(id string, members ...ir.DictionaryMember) *registry.Fragment {
	frag := DictionaryFragment(id, members...)
	frag.Partial = true
	return frag
}

// Member builds an optional dictionary member.
func Member(name, typ string) ir.DictionaryMember {
	return ir.DictionaryMember{Name: name, Type: Type(typ)}
}

// RequiredMember builds a required dictionary member.
func RequiredMember(name, typ string) ir.DictionaryMember {
	return ir.DictionaryMember{Name: name, Type: Type(typ), Required: true}
}

// EnumFragment builds an enumeration fragment.
func EnumFragment(id string, values ...string) *registry.Fragment {
	return &registry.Fragment{
		Identifier: id,
		Kind:       ir.KindEnumeration,
		Values:     values,
	}
}

// TypedefFragment builds a typedef fragment.
func TypedefFragment(id string, aliased ir.TypeRef) *registry.Fragment {
	return &registry.Fragment{
		Identifier:  id,
		Kind:        ir.KindTypedef,
		AliasedType: aliased,
	}
}

// NamespaceFragment builds a non-partial namespace fragment.
func NamespaceFragment(id string, ops ...registry.RawOperation) *registry.Fragment {
	return &registry.Fragment{
		Identifier: id,
		Kind:       ir.KindNamespace,
		Operations: ops,
	}
}

// PartialNamespaceFragment builds a partial namespace fragment.
func PartialNamespaceFragment(id string, ops ...registry.RawOperation) *registry.Fragment {
	frag := NamespaceFragment(id, ops...)
	frag.Partial = true
	return frag
}

// At attaches a source location and module to a fragment, returning it
// for chaining in table-driven tests.
func At(frag *registry.Fragment, module, file string, line int) *registry.Fragment {
	frag.Module = module
	frag.Location = ir.SourceLocation{File: file, Line: line, Column: 1}
	return frag
}
