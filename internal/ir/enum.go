package ir

import "slices"

// Enumeration is a frozen enumeration declaration: an ordered list of
// distinct string values.
type Enumeration struct {
	declBase
	values []string
}

// NewEnumeration freezes an enumeration declaration. The value list is
// copied in declaration order.
func NewEnumeration(id string, values []string, tr Traits) *Enumeration {
	return &Enumeration{
		declBase: newDeclBase(id, KindEnumeration, tr),
		values:   slices.Clone(values),
	}
}

// IsEnumeration reports true for this kind.
func (e *Enumeration) IsEnumeration() bool { return true }

// Len returns the number of enumeration values.
func (e *Enumeration) Len() int { return len(e.values) }

// Values returns an independent copy of the value list.
func (e *Enumeration) Values() []string { return slices.Clone(e.values) }

// Has reports whether the enumeration contains the value.
func (e *Enumeration) Has(value string) bool { return slices.Contains(e.values, value) }
