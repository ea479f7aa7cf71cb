package ir

// Declaration is the common surface of every frozen top-level
// declaration. Downstream passes branch on the declared kind through the
// predicates instead of inspecting runtime types.
type Declaration interface {
	// Identifier returns the declaration's name, unique within its kind
	// and scope.
	Identifier() string

	// Kind returns the kind tag fixed at draft creation.
	Kind() Kind

	// Annotations returns the normalized annotation table.
	Annotations() Annotations

	// GeneratorHints returns the normalized generator-hint table.
	GeneratorHints() GeneratorHints

	// Modules returns the originating-module set.
	Modules() ModuleSet

	// Location returns where the defining fragment was parsed from.
	Location() SourceLocation

	// One predicate per kind. Exactly one returns true.
	IsCallbackFunction() bool
	IsInterface() bool
	IsDictionary() bool
	IsEnumeration() bool
	IsTypedef() bool
	IsNamespace() bool
}

// Traits bundles the four capability trait values of one declaration for
// constructor plumbing. The traits stay mutually independent; the bundle
// is only a parameter grouping.
type Traits struct {
	Annotations Annotations
	Hints       GeneratorHints
	Modules     ModuleSet
	Location    SourceLocation
}

// clone returns an independently owned copy of every composite trait.
// SourceLocation is a plain value and copies with the struct.
func (t Traits) clone() Traits {
	return Traits{
		Annotations: t.Annotations.clone(),
		Hints:       t.Hints.clone(),
		Modules:     t.Modules.clone(),
		Location:    t.Location,
	}
}

// declBase carries the identifier, kind tag, and trait values shared by
// every frozen kind. Concrete kinds embed it and shadow their own
// predicate; all predicates default to false here.
type declBase struct {
	id     string
	kind   Kind
	traits Traits
}

// newDeclBase deep-copies the trait bundle so the frozen declaration owns
// its composite fields independently of the source draft.
func newDeclBase(id string, kind Kind, tr Traits) declBase {
	return declBase{id: id, kind: kind, traits: tr.clone()}
}

func (b *declBase) Identifier() string             { return b.id }
func (b *declBase) Kind() Kind                     { return b.kind }
func (b *declBase) Annotations() Annotations       { return b.traits.Annotations }
func (b *declBase) GeneratorHints() GeneratorHints { return b.traits.Hints }
func (b *declBase) Modules() ModuleSet             { return b.traits.Modules }
func (b *declBase) Location() SourceLocation       { return b.traits.Location }

func (b *declBase) IsCallbackFunction() bool { return false }
func (b *declBase) IsInterface() bool        { return false }
func (b *declBase) IsDictionary() bool       { return false }
func (b *declBase) IsEnumeration() bool      { return false }
func (b *declBase) IsTypedef() bool          { return false }
func (b *declBase) IsNamespace() bool        { return false }
