package ir

// Operation is a named callable member of an interface or namespace.
type Operation struct {
	Name string
	FunctionLike
}

// clone returns an independent copy of the operation.
func (o Operation) clone() Operation {
	return Operation{Name: o.Name, FunctionLike: o.FunctionLike.clone()}
}

// Attribute is a named, typed member of an interface or namespace.
type Attribute struct {
	Name     string
	Type     TypeRef
	ReadOnly bool
}

// Constant is a named constant member with its literal value.
type Constant struct {
	Name  string
	Type  TypeRef
	Value string
}

// Interface is a frozen interface declaration: operations, attributes,
// and constants accumulated across the base fragment and any partials.
type Interface struct {
	declBase
	inherits string
	ops      []Operation
	attrs    []Attribute
	consts   []Constant
}

// NewInterface freezes an interface declaration. Member lists are
// deep-copied in declaration order.
func NewInterface(id, inherits string, ops []Operation, attrs []Attribute, consts []Constant, tr Traits) *Interface {
	return &Interface{
		declBase: newDeclBase(id, KindInterface, tr),
		inherits: inherits,
		ops:      cloneOperations(ops),
		attrs:    append([]Attribute(nil), attrs...),
		consts:   append([]Constant(nil), consts...),
	}
}

// IsInterface reports true for this kind.
func (i *Interface) IsInterface() bool { return true }

// Inherits returns the parent interface name, or "" for none.
func (i *Interface) Inherits() string { return i.inherits }

// Operations returns an independent copy of the operation list.
func (i *Interface) Operations() []Operation { return cloneOperations(i.ops) }

// Attributes returns an independent copy of the attribute list.
func (i *Interface) Attributes() []Attribute { return append([]Attribute(nil), i.attrs...) }

// Constants returns an independent copy of the constant list.
func (i *Interface) Constants() []Constant { return append([]Constant(nil), i.consts...) }

func cloneOperations(ops []Operation) []Operation {
	if len(ops) == 0 {
		return nil
	}
	out := make([]Operation, len(ops))
	for i, op := range ops {
		out[i] = op.clone()
	}
	return out
}
