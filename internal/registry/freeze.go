package registry

import (
	"fmt"

	"github.com/roach88/widl/internal/ir"
)

// The freeze protocol converts one completed draft into one immutable
// declaration. The kind-typed constructors check the draft's kind tag
// first: a mismatch is a dispatch bug (KIND_MISMATCH), never a
// user-input error. Composite fields are deep-copied by the ir
// constructors, so mutating the draft afterwards (a later partial merge,
// a second freeze) cannot be observed through an already-frozen object.

// FreezeCallbackFunction freezes a callback-function draft.
func FreezeCallbackFunction(d *Draft) (*ir.CallbackFunction, error) {
	if d.kind != ir.KindCallbackFunction {
		return nil, newKindMismatch(d.id, ir.KindCallbackFunction, d.kind)
	}
	if err := d.checkUsable(); err != nil {
		return nil, err
	}
	return ir.NewCallbackFunction(d.id, d.fn, d.traits), nil
}

// FreezeInterface freezes an interface draft.
func FreezeInterface(d *Draft) (*ir.Interface, error) {
	if d.kind != ir.KindInterface {
		return nil, newKindMismatch(d.id, ir.KindInterface, d.kind)
	}
	if err := d.checkUsable(); err != nil {
		return nil, err
	}
	return ir.NewInterface(d.id, d.inherits, d.ops, d.attrs, d.consts, d.traits), nil
}

// FreezeDictionary freezes a dictionary draft.
func FreezeDictionary(d *Draft) (*ir.Dictionary, error) {
	if d.kind != ir.KindDictionary {
		return nil, newKindMismatch(d.id, ir.KindDictionary, d.kind)
	}
	if err := d.checkUsable(); err != nil {
		return nil, err
	}
	return ir.NewDictionary(d.id, d.inherits, d.members, d.traits), nil
}

// FreezeEnumeration freezes an enumeration draft.
func FreezeEnumeration(d *Draft) (*ir.Enumeration, error) {
	if d.kind != ir.KindEnumeration {
		return nil, newKindMismatch(d.id, ir.KindEnumeration, d.kind)
	}
	if err := d.checkUsable(); err != nil {
		return nil, err
	}
	return ir.NewEnumeration(d.id, d.values, d.traits), nil
}

// FreezeTypedef freezes a typedef draft.
func FreezeTypedef(d *Draft) (*ir.Typedef, error) {
	if d.kind != ir.KindTypedef {
		return nil, newKindMismatch(d.id, ir.KindTypedef, d.kind)
	}
	if err := d.checkUsable(); err != nil {
		return nil, err
	}
	return ir.NewTypedef(d.id, d.aliased, d.traits), nil
}

// FreezeNamespace freezes a namespace draft.
func FreezeNamespace(d *Draft) (*ir.Namespace, error) {
	if d.kind != ir.KindNamespace {
		return nil, newKindMismatch(d.id, ir.KindNamespace, d.kind)
	}
	if err := d.checkUsable(); err != nil {
		return nil, err
	}
	return ir.NewNamespace(d.id, d.ops, d.attrs, d.traits), nil
}

// Freeze dispatches a draft to its kind's freeze constructor. The switch
// is exhaustive over the closed kind set; Register guarantees the kind
// is valid, so the default arm is unreachable by construction.
func Freeze(d *Draft) (ir.Declaration, error) {
	switch d.kind {
	case ir.KindCallbackFunction:
		return FreezeCallbackFunction(d)
	case ir.KindInterface:
		return FreezeInterface(d)
	case ir.KindDictionary:
		return FreezeDictionary(d)
	case ir.KindEnumeration:
		return FreezeEnumeration(d)
	case ir.KindTypedef:
		return FreezeTypedef(d)
	case ir.KindNamespace:
		return FreezeNamespace(d)
	default:
		return nil, fmt.Errorf("freeze %q: unknown kind %q", d.id, d.kind)
	}
}

// checkUsable rejects drafts whose payload failed validation.
func (d *Draft) checkUsable() error {
	if d.invalid != nil {
		return fmt.Errorf("freeze %q: draft is unusable: %w", d.id, d.invalid)
	}
	return nil
}

// Diagnostic records a draft that was skipped during FreezeAll.
type Diagnostic struct {
	Identifier string
	Err        error
}

// FreezeAll seals the registry if needed and freezes every usable draft
// in registration order. Drafts poisoned by payload validation failures
// are skipped and reported as diagnostics; they never reach the table.
//
// After FreezeAll the registry is dead: only the returned table is live,
// and it is safe for shared read-only access.
func (r *Registry) FreezeAll() (*ir.Table, []Diagnostic, error) {
	r.Seal()

	decls := make([]ir.Declaration, 0, len(r.order))
	var diags []Diagnostic
	for _, id := range r.order {
		d := r.drafts[id]
		if d.invalid != nil {
			diags = append(diags, Diagnostic{Identifier: id, Err: d.invalid})
			continue
		}
		decl, err := Freeze(d)
		if err != nil {
			// KIND_MISMATCH class: a dispatch bug, fatal for the unit.
			return nil, diags, err
		}
		decls = append(decls, decl)
	}

	table, err := ir.NewTable(decls)
	if err != nil {
		return nil, diags, err
	}
	return table, diags, nil
}
