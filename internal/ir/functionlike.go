package ir

// TypeRef is an unresolved reference to a declared type by name.
// Resolution against the frozen table is a downstream pass; the kernel
// only records what the parser saw.
type TypeRef struct {
	Name     string
	Nullable bool
}

// String formats the reference the way the schema language spells it.
func (t TypeRef) String() string {
	if t.Nullable {
		return t.Name + "?"
	}
	return t.Name
}

// DefaultValue is the literal default of an optional argument or
// dictionary member, as spelled in the source.
type DefaultValue struct {
	Literal string
}

// Argument is one entry of a callable's ordered argument list.
type Argument struct {
	Name     string
	Type     TypeRef
	Optional bool
	Variadic bool
	Default  *DefaultValue
}

// clone returns an independent copy of the argument.
func (a Argument) clone() Argument {
	if a.Default != nil {
		d := *a.Default
		a.Default = &d
	}
	return a
}

// FunctionLike is the shared argument-list/return-type shape of any
// callable declaration: callback functions, interface operations, and
// namespace operations all carry one. The zero value is a nullary
// callable with an empty return type.
type FunctionLike struct {
	args []Argument
	ret  TypeRef
}

// NewFunctionLike validates the argument ordering invariant and builds
// the shape. The input slice is copied; the caller keeps ownership.
//
// Ordering rules:
//   - once an optional argument appears, every later non-variadic
//     argument must be optional or carry a default value
//   - at most one variadic argument, which must be last
//   - a variadic argument cannot be optional or carry a default
func NewFunctionLike(args []Argument, ret TypeRef) (FunctionLike, error) {
	seenOptional := false
	for i, arg := range args {
		if arg.Variadic {
			if i != len(args)-1 {
				return FunctionLike{}, &ArgumentOrderError{
					Index:   i,
					Name:    arg.Name,
					Message: "variadic argument must be last",
				}
			}
			if arg.Optional || arg.Default != nil {
				return FunctionLike{}, &ArgumentOrderError{
					Index:   i,
					Name:    arg.Name,
					Message: "variadic argument cannot be optional or defaulted",
				}
			}
			continue
		}
		if arg.Optional {
			seenOptional = true
			continue
		}
		if seenOptional && arg.Default == nil {
			return FunctionLike{}, &ArgumentOrderError{
				Index:   i,
				Name:    arg.Name,
				Message: "required argument follows an optional one",
			}
		}
	}

	fn := FunctionLike{ret: ret}
	if len(args) > 0 {
		fn.args = make([]Argument, len(args))
		for i, arg := range args {
			fn.args[i] = arg.clone()
		}
	}
	return fn, nil
}

// Arity returns the number of declared arguments, variadic included.
func (f FunctionLike) Arity() int {
	return len(f.args)
}

// Argument returns the argument at index i as an independent copy.
// Panics if i is out of range, matching slice indexing semantics.
func (f FunctionLike) Argument(i int) Argument {
	return f.args[i].clone()
}

// Arguments returns an independent copy of the full argument list.
func (f FunctionLike) Arguments() []Argument {
	if len(f.args) == 0 {
		return nil
	}
	out := make([]Argument, len(f.args))
	for i, arg := range f.args {
		out[i] = arg.clone()
	}
	return out
}

// ReturnType returns the declared return type.
func (f FunctionLike) ReturnType() TypeRef {
	return f.ret
}

// clone returns an independently owned copy of the shape.
func (f FunctionLike) clone() FunctionLike {
	out := FunctionLike{ret: f.ret}
	out.args = f.Arguments()
	return out
}
