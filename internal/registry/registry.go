package registry

import (
	"fmt"
	"slices"

	"github.com/roach88/widl/internal/ir"
)

// Registry is the draft arena for one compilation scope. Drafts are
// keyed by identifier; registration is the sole mutator and is
// append/merge-only. Single-threaded by design.
type Registry struct {
	drafts map[string]*Draft
	order  []string
	base   map[string]bool // identifiers whose non-partial fragment arrived
	sealed bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		drafts: make(map[string]*Draft),
		base:   make(map[string]bool),
	}
}

// Len returns the number of registered drafts, invalid ones included.
func (r *Registry) Len() int {
	return len(r.order)
}

// Identifiers returns registered identifiers in registration order.
func (r *Registry) Identifiers() []string {
	return slices.Clone(r.order)
}

// Sealed reports whether the ingestion phase has ended.
func (r *Registry) Sealed() bool {
	return r.sealed
}

// Seal ends the ingestion phase. Registration fails afterwards; sealing
// twice is a no-op.
func (r *Registry) Seal() {
	r.sealed = true
}

// Lookup returns the draft for an identifier.
func (r *Registry) Lookup(identifier string) (*Draft, error) {
	d, ok := r.drafts[identifier]
	if !ok {
		return nil, newNotFound(identifier)
	}
	return d, nil
}

// KindOf returns the kind tag for an identifier without exposing the
// draft payload.
func (r *Registry) KindOf(identifier string) (ir.Kind, error) {
	d, ok := r.drafts[identifier]
	if !ok {
		return "", newNotFound(identifier)
	}
	return d.kind, nil
}

// Register creates a draft for the fragment's identifier, or merges the
// fragment into the existing draft. The merge is atomic: a rejected
// fragment never leaves a draft half-mutated, and errors for one
// identifier never affect the drafts of others.
//
// Error classes, all local to this fragment:
//   - KIND_CONFLICT: existing draft has a different kind; the
//     first-registered kind stands
//   - DUPLICATE_DEFINITION: identifier already fully defined
//   - ir.MetadataError: raw annotations or hints failed normalization;
//     the fragment is dropped entirely
//   - ir.ArgumentOrderError: callable payload invalid; a new draft is
//     recorded but poisoned, so the declaration is visible to KindOf yet
//     excluded from freezing
func (r *Registry) Register(frag *Fragment) error {
	if r.sealed {
		return newSealed(frag.Identifier)
	}
	if frag.Identifier == "" {
		return fmt.Errorf("register: fragment identifier must be non-empty")
	}
	if !frag.Kind.Valid() {
		return fmt.Errorf("register %q: unknown kind %q", frag.Identifier, frag.Kind)
	}

	existing := r.drafts[frag.Identifier]
	if existing != nil {
		if existing.kind != frag.Kind {
			return newKindConflict(frag.Identifier, existing.kind, frag.Kind)
		}
		if !frag.Kind.Partialable() {
			return newDuplicateDefinition(frag.Identifier, frag.Kind)
		}
		if !frag.Partial && r.base[frag.Identifier] {
			return newDuplicateDefinition(frag.Identifier, frag.Kind)
		}
	}

	// Normalize traits first: malformed metadata drops the fragment
	// before any draft is touched or created.
	traits, err := normalizeTraits(frag)
	if err != nil {
		return fmt.Errorf("register %q: %w", frag.Identifier, err)
	}

	state, payloadErr := buildPayload(frag)
	state.traits = traits

	if existing == nil {
		d := &Draft{
			id:   frag.Identifier,
			kind: frag.Kind,
		}
		if payloadErr != nil {
			// The declaration exists (its kind is known) but is unusable:
			// it will be skipped at freeze time.
			d.invalid = payloadErr
		}
		d.commit(state)
		r.drafts[frag.Identifier] = d
		r.order = append(r.order, frag.Identifier)
		if !frag.Partial {
			r.base[frag.Identifier] = true
		}
		if payloadErr != nil {
			return fmt.Errorf("register %q: %w", frag.Identifier, payloadErr)
		}
		return nil
	}

	if payloadErr != nil {
		// Merging fragment is bad: reject it, keep the draft usable.
		return fmt.Errorf("register %q: %w", frag.Identifier, payloadErr)
	}

	merged, err := mergeStates(existing, state)
	if err != nil {
		return fmt.Errorf("register %q: %w", frag.Identifier, err)
	}
	existing.commit(merged)
	if !frag.Partial {
		r.base[frag.Identifier] = true
	}
	return nil
}

// normalizeTraits re-wraps the fragment's raw metadata through the trait
// normalization boundaries.
func normalizeTraits(frag *Fragment) (ir.Traits, error) {
	ann, err := ir.NewAnnotations(frag.Annotations)
	if err != nil {
		return ir.Traits{}, err
	}
	hints, err := ir.NewGeneratorHints(frag.Hints)
	if err != nil {
		return ir.Traits{}, err
	}
	return ir.Traits{
		Annotations: ann,
		Hints:       hints,
		Modules:     ir.NewModuleSet(frag.Module),
		Location:    frag.Location,
	}, nil
}

// buildPayload constructs the kind-specific payload for one fragment.
// Callable payloads are validated here; a validation error makes the
// whole fragment unusable.
func buildPayload(frag *Fragment) (draftState, error) {
	var state draftState
	switch frag.Kind {
	case ir.KindCallbackFunction:
		fn, err := ir.NewFunctionLike(frag.Arguments, frag.ReturnType)
		if err != nil {
			return state, err
		}
		state.fn = fn
	case ir.KindInterface:
		ops, err := buildOperations(frag.Operations)
		if err != nil {
			return state, err
		}
		state.inherits = frag.Inherits
		state.ops = ops
		state.attrs = slices.Clone(frag.Attributes)
		state.consts = slices.Clone(frag.Constants)
	case ir.KindDictionary:
		state.inherits = frag.Inherits
		state.members = slices.Clone(frag.Members)
	case ir.KindEnumeration:
		state.values = slices.Clone(frag.Values)
	case ir.KindTypedef:
		state.aliased = frag.AliasedType
	case ir.KindNamespace:
		ops, err := buildOperations(frag.Operations)
		if err != nil {
			return state, err
		}
		state.ops = ops
		state.attrs = slices.Clone(frag.Attributes)
	}
	return state, nil
}

// buildOperations validates each raw operation's argument list into a
// FunctionLike shape.
func buildOperations(raw []RawOperation) ([]ir.Operation, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ops := make([]ir.Operation, 0, len(raw))
	for _, op := range raw {
		fn, err := ir.NewFunctionLike(op.Arguments, op.ReturnType)
		if err != nil {
			return nil, fmt.Errorf("operation %q: %w", op.Name, err)
		}
		ops = append(ops, ir.Operation{Name: op.Name, FunctionLike: fn})
	}
	return ops, nil
}

// mergeStates combines an existing draft with the candidate state of a
// partial fragment. Trait tables merge with conflict detection; member
// lists append in arrival order; the first fragment's source location
// stays primary.
func mergeStates(d *Draft, incoming draftState) (draftState, error) {
	ann, err := d.traits.Annotations.Merge(incoming.traits.Annotations)
	if err != nil {
		return draftState{}, err
	}
	hints, err := d.traits.Hints.Merge(incoming.traits.Hints)
	if err != nil {
		return draftState{}, err
	}

	merged := draftState{
		traits: ir.Traits{
			Annotations: ann,
			Hints:       hints,
			Modules:     d.traits.Modules.Merge(incoming.traits.Modules),
			Location:    d.traits.Location,
		},
		fn:      d.fn,
		values:  d.values,
		aliased: d.aliased,
	}

	merged.inherits = d.inherits
	if incoming.inherits != "" {
		if d.inherits != "" && d.inherits != incoming.inherits {
			return draftState{}, &Error{
				Code:       ErrCodeDuplicateDefinition,
				Identifier: d.id,
				Actual:     d.kind,
				Message: fmt.Sprintf("conflicting inheritance: %q vs %q",
					d.inherits, incoming.inherits),
			}
		}
		merged.inherits = incoming.inherits
	}

	merged.ops = append(slices.Clone(d.ops), incoming.ops...)
	merged.attrs = append(slices.Clone(d.attrs), incoming.attrs...)
	merged.consts = append(slices.Clone(d.consts), incoming.consts...)
	merged.members = append(slices.Clone(d.members), incoming.members...)
	return merged, nil
}
