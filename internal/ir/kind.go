package ir

import "fmt"

// Kind classifies a top-level declaration. The set is closed: downstream
// passes dispatch on Kind with exhaustive switches instead of reflection,
// so adding a kind is a compile-time-visible change here.
type Kind string

const (
	KindCallbackFunction Kind = "callback_function"
	KindInterface        Kind = "interface"
	KindDictionary       Kind = "dictionary"
	KindEnumeration      Kind = "enumeration"
	KindTypedef          Kind = "typedef"
	KindNamespace        Kind = "namespace"
)

// Kinds lists all declaration kinds in a stable order.
// Used for deterministic iteration in reports and stats.
var Kinds = []Kind{
	KindCallbackFunction,
	KindInterface,
	KindDictionary,
	KindEnumeration,
	KindTypedef,
	KindNamespace,
}

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool {
	switch k {
	case KindCallbackFunction, KindInterface, KindDictionary,
		KindEnumeration, KindTypedef, KindNamespace:
		return true
	}
	return false
}

// Partialable reports whether a kind accepts partial fragments.
// Interfaces, dictionaries, and namespaces merge partials; a second
// fragment for any other kind is a duplicate definition.
func (k Kind) Partialable() bool {
	switch k {
	case KindInterface, KindDictionary, KindNamespace:
		return true
	case KindCallbackFunction, KindEnumeration, KindTypedef:
		return false
	}
	return false
}

// ParseKind converts a kind string from a schema document into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown declaration kind %q", s)
	}
	return k, nil
}
