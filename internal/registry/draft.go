package registry

import "github.com/roach88/widl/internal/ir"

// Draft is the mutable, in-progress representation of one declaration.
// It is owned exclusively by the registry: fragments mutate it only
// through Register, and the kind tag is fixed at creation.
type Draft struct {
	id   string
	kind ir.Kind

	traits    ir.Traits
	fragments int

	// kind-specific payload; only the group matching kind is populated
	fn       ir.FunctionLike
	inherits string
	ops      []ir.Operation
	attrs    []ir.Attribute
	consts   []ir.Constant
	members  []ir.DictionaryMember
	values   []string
	aliased  ir.TypeRef

	// invalid records the payload validation failure that made this
	// declaration unusable; an invalid draft is excluded from freezing.
	invalid error
}

// Identifier returns the draft's identifier.
func (d *Draft) Identifier() string { return d.id }

// Kind returns the kind tag fixed at draft creation.
func (d *Draft) Kind() ir.Kind { return d.kind }

// Fragments returns how many fragments have been merged into the draft.
func (d *Draft) Fragments() int { return d.fragments }

// Err returns the payload validation failure, or nil for a usable draft.
func (d *Draft) Err() error { return d.invalid }

// draftState is the candidate content of a draft, built and validated
// completely before it is committed. Register constructs one from the
// incoming fragment (merged with the existing draft, if any) so that a
// rejected fragment never leaves a draft half-mutated.
type draftState struct {
	traits   ir.Traits
	fn       ir.FunctionLike
	inherits string
	ops      []ir.Operation
	attrs    []ir.Attribute
	consts   []ir.Constant
	members  []ir.DictionaryMember
	values   []string
	aliased  ir.TypeRef
}

// commit applies a validated candidate state to the draft.
func (d *Draft) commit(s draftState) {
	d.traits = s.traits
	d.fn = s.fn
	d.inherits = s.inherits
	d.ops = s.ops
	d.attrs = s.attrs
	d.consts = s.consts
	d.members = s.members
	d.values = s.values
	d.aliased = s.aliased
	d.fragments++
}
