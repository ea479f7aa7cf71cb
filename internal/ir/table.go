package ir

import (
	"fmt"
	"slices"
)

// Table is the frozen-declaration lookup table produced by the freeze
// phase. Once built it is read-only: no writer remains, so downstream
// consumers share it without synchronization.
type Table struct {
	decls map[string]Declaration
	order []string
}

// NewTable builds a table from frozen declarations, preserving input
// order. Duplicate identifiers indicate a bug in the producing registry.
func NewTable(decls []Declaration) (*Table, error) {
	t := &Table{
		decls: make(map[string]Declaration, len(decls)),
		order: make([]string, 0, len(decls)),
	}
	for _, d := range decls {
		id := d.Identifier()
		if _, ok := t.decls[id]; ok {
			return nil, fmt.Errorf("duplicate frozen identifier %q", id)
		}
		t.decls[id] = d
		t.order = append(t.order, id)
	}
	return t, nil
}

// Len returns the number of frozen declarations.
func (t *Table) Len() int {
	return len(t.order)
}

// Lookup returns the frozen declaration for an identifier.
func (t *Table) Lookup(identifier string) (Declaration, bool) {
	d, ok := t.decls[identifier]
	return d, ok
}

// Identifiers returns all identifiers in freeze order.
func (t *Table) Identifiers() []string {
	return slices.Clone(t.order)
}

// Declarations returns all frozen declarations in freeze order.
func (t *Table) Declarations() []Declaration {
	out := make([]Declaration, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.decls[id])
	}
	return out
}

// ByKind returns the frozen declarations of one kind in freeze order.
func (t *Table) ByKind(kind Kind) []Declaration {
	var out []Declaration
	for _, id := range t.order {
		if d := t.decls[id]; d.Kind() == kind {
			out = append(out, d)
		}
	}
	return out
}
