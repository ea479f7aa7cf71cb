package ir

// Typedef is a frozen type alias declaration.
type Typedef struct {
	declBase
	aliased TypeRef
}

// NewTypedef freezes a typedef declaration.
func NewTypedef(id string, aliased TypeRef, tr Traits) *Typedef {
	return &Typedef{
		declBase: newDeclBase(id, KindTypedef, tr),
		aliased:  aliased,
	}
}

// IsTypedef reports true for this kind.
func (t *Typedef) IsTypedef() bool { return true }

// AliasedType returns the type the alias stands for.
func (t *Typedef) AliasedType() TypeRef { return t.aliased }
