package ir

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// The four capability traits are independent metadata concerns attachable
// to any declaration kind. Annotations and GeneratorHints are
// normalization boundaries: raw parser values are validated and re-wrapped
// here, so malformed entries fail fast instead of reaching consumers.
// The module set and source location are already plain values and pass
// through unmodified.

// RawAnnotation is an annotation entry as produced by the upstream
// parser, before normalization. Exactly one of Value and Values may be
// set; both empty means a bare marker annotation like [Exposed].
type RawAnnotation struct {
	Name   string
	Value  string
	Values []string
}

// Annotation is one normalized annotation entry.
type Annotation struct {
	Name   string
	Value  string
	Values []string
}

// Annotations is the normalized, immutable annotation table of one
// declaration. The zero value is an empty table.
type Annotations struct {
	entries map[string]Annotation
	order   []string
}

// NewAnnotations validates and re-wraps raw annotation entries.
// Rejected shapes: empty names, duplicate names, and entries carrying
// both a scalar value and a value list.
func NewAnnotations(raw []RawAnnotation) (Annotations, error) {
	if len(raw) == 0 {
		return Annotations{}, nil
	}

	entries := make(map[string]Annotation, len(raw))
	order := make([]string, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return Annotations{}, &MetadataError{
				Trait:   "annotations",
				Message: "annotation name must be non-empty",
			}
		}
		if r.Value != "" && len(r.Values) > 0 {
			return Annotations{}, &MetadataError{
				Trait:   "annotations",
				Key:     name,
				Message: "annotation cannot carry both a value and a value list",
			}
		}
		if _, ok := entries[name]; ok {
			return Annotations{}, &MetadataError{
				Trait:   "annotations",
				Key:     name,
				Message: "duplicate annotation name",
			}
		}
		entries[name] = Annotation{
			Name:   name,
			Value:  r.Value,
			Values: slices.Clone(r.Values),
		}
		order = append(order, name)
	}

	return Annotations{entries: entries, order: order}, nil
}

// Len returns the number of annotation entries.
func (a Annotations) Len() int {
	return len(a.order)
}

// Has reports whether an annotation with the given name exists.
func (a Annotations) Has(name string) bool {
	_, ok := a.entries[name]
	return ok
}

// Get returns the annotation with the given name.
// The returned entry is an independent copy.
func (a Annotations) Get(name string) (Annotation, bool) {
	e, ok := a.entries[name]
	if !ok {
		return Annotation{}, false
	}
	e.Values = slices.Clone(e.Values)
	return e, true
}

// Names returns annotation names in declaration order.
func (a Annotations) Names() []string {
	return slices.Clone(a.order)
}

// Merge combines two annotation tables into a new one. Entries unique to
// either side are kept; an entry present in both must be identical, else
// the merge fails with a MetadataError. Neither input is mutated.
func (a Annotations) Merge(other Annotations) (Annotations, error) {
	if other.Len() == 0 {
		return a.clone(), nil
	}
	if a.Len() == 0 {
		return other.clone(), nil
	}

	merged := a.clone()
	for _, name := range other.order {
		incoming := other.entries[name]
		existing, ok := merged.entries[name]
		if !ok {
			incoming.Values = slices.Clone(incoming.Values)
			merged.entries[name] = incoming
			merged.order = append(merged.order, name)
			continue
		}
		if existing.Value != incoming.Value || !slices.Equal(existing.Values, incoming.Values) {
			return Annotations{}, &MetadataError{
				Trait:   "annotations",
				Key:     name,
				Message: "conflicting annotation values across fragments",
			}
		}
	}
	return merged, nil
}

// clone returns an independently owned copy of the table.
func (a Annotations) clone() Annotations {
	if a.Len() == 0 {
		return Annotations{}
	}
	entries := make(map[string]Annotation, len(a.entries))
	for name, e := range a.entries {
		e.Values = slices.Clone(e.Values)
		entries[name] = e
	}
	return Annotations{entries: entries, order: slices.Clone(a.order)}
}

// GeneratorHints is the normalized table of code-generator hints for one
// declaration. The zero value is an empty table.
type GeneratorHints struct {
	entries map[string]string
	order   []string
}

// NewGeneratorHints validates and re-wraps a raw hint map. Keys must be
// non-empty and free of whitespace; values must be non-empty. Keys are
// recorded in sorted order since the raw source is an unordered map.
func NewGeneratorHints(raw map[string]string) (GeneratorHints, error) {
	if len(raw) == 0 {
		return GeneratorHints{}, nil
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make(map[string]string, len(raw))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" || strings.ContainsAny(k, " \t\n") {
			return GeneratorHints{}, &MetadataError{
				Trait:   "hints",
				Key:     k,
				Message: "hint key must be non-empty and contain no whitespace",
			}
		}
		if raw[k] == "" {
			return GeneratorHints{}, &MetadataError{
				Trait:   "hints",
				Key:     k,
				Message: "hint value must be non-empty",
			}
		}
		entries[k] = raw[k]
	}

	return GeneratorHints{entries: entries, order: keys}, nil
}

// Len returns the number of hint entries.
func (h GeneratorHints) Len() int {
	return len(h.order)
}

// Get returns the hint value for a key.
func (h GeneratorHints) Get(key string) (string, bool) {
	v, ok := h.entries[key]
	return v, ok
}

// Keys returns hint keys in sorted order.
func (h GeneratorHints) Keys() []string {
	return slices.Clone(h.order)
}

// Merge combines two hint tables into a new one. A key present in both
// with different values is a conflict. Neither input is mutated.
func (h GeneratorHints) Merge(other GeneratorHints) (GeneratorHints, error) {
	if other.Len() == 0 {
		return h.clone(), nil
	}
	if h.Len() == 0 {
		return other.clone(), nil
	}

	merged := h.clone()
	for _, key := range other.order {
		incoming := other.entries[key]
		existing, ok := merged.entries[key]
		if !ok {
			merged.entries[key] = incoming
			merged.order = append(merged.order, key)
			continue
		}
		if existing != incoming {
			return GeneratorHints{}, &MetadataError{
				Trait:   "hints",
				Key:     key,
				Message: "conflicting hint values across fragments",
			}
		}
	}
	sort.Strings(merged.order)
	return merged, nil
}

// clone returns an independently owned copy of the table.
func (h GeneratorHints) clone() GeneratorHints {
	if h.Len() == 0 {
		return GeneratorHints{}
	}
	entries := make(map[string]string, len(h.entries))
	for k, v := range h.entries {
		entries[k] = v
	}
	return GeneratorHints{entries: entries, order: slices.Clone(h.order)}
}

// ModuleSet is the ordered set of modules a declaration originates from.
// A non-partial declaration has one module; partial fragments discovered
// in other modules extend the set. The zero value is an empty set.
type ModuleSet struct {
	names []string
}

// NewModuleSet builds a module set from names, de-duplicating while
// preserving first-seen order. Empty names are skipped.
func NewModuleSet(names ...string) ModuleSet {
	var set ModuleSet
	for _, n := range names {
		if n == "" || set.Has(n) {
			continue
		}
		set.names = append(set.names, n)
	}
	return set
}

// Len returns the number of modules in the set.
func (m ModuleSet) Len() int {
	return len(m.names)
}

// Has reports whether the set contains the module name.
func (m ModuleSet) Has(name string) bool {
	return slices.Contains(m.names, name)
}

// Names returns the module names in first-seen order.
func (m ModuleSet) Names() []string {
	return slices.Clone(m.names)
}

// Merge unions two module sets into a new one, preserving order.
func (m ModuleSet) Merge(other ModuleSet) ModuleSet {
	return NewModuleSet(append(m.Names(), other.names...)...)
}

// clone returns an independently owned copy of the set.
func (m ModuleSet) clone() ModuleSet {
	return ModuleSet{names: slices.Clone(m.names)}
}

// SourceLocation records where a declaration's defining fragment was
// parsed from. It is a plain value: copying the struct is a deep copy.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// IsValid reports whether the location carries any position info.
func (l SourceLocation) IsValid() bool {
	return l.File != "" || l.Line > 0
}

// String formats the location as "file:line:column".
func (l SourceLocation) String() string {
	if !l.IsValid() {
		return "<unknown>"
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}
