package ir

// Namespace is a frozen namespace declaration: operations and read-only
// attributes accumulated across the base fragment and any partials.
type Namespace struct {
	declBase
	ops   []Operation
	attrs []Attribute
}

// NewNamespace freezes a namespace declaration. Member lists are
// deep-copied in declaration order.
func NewNamespace(id string, ops []Operation, attrs []Attribute, tr Traits) *Namespace {
	return &Namespace{
		declBase: newDeclBase(id, KindNamespace, tr),
		ops:      cloneOperations(ops),
		attrs:    append([]Attribute(nil), attrs...),
	}
}

// IsNamespace reports true for this kind.
func (n *Namespace) IsNamespace() bool { return true }

// Operations returns an independent copy of the operation list.
func (n *Namespace) Operations() []Operation { return cloneOperations(n.ops) }

// Attributes returns an independent copy of the attribute list.
func (n *Namespace) Attributes() []Attribute { return append([]Attribute(nil), n.attrs...) }
