package ir

// CallbackFunction is a frozen callback-function declaration: a named,
// annotatable FunctionLike shape.
type CallbackFunction struct {
	declBase
	fn FunctionLike
}

// NewCallbackFunction freezes a callback-function declaration. The shape
// and traits are deep-copied; later mutation of the source draft cannot
// be observed through the returned object.
func NewCallbackFunction(id string, fn FunctionLike, tr Traits) *CallbackFunction {
	return &CallbackFunction{
		declBase: newDeclBase(id, KindCallbackFunction, tr),
		fn:       fn.clone(),
	}
}

// IsCallbackFunction reports true for this kind.
func (c *CallbackFunction) IsCallbackFunction() bool { return true }

// Arity returns the number of declared arguments.
func (c *CallbackFunction) Arity() int { return c.fn.Arity() }

// Argument returns the argument at index i as an independent copy.
func (c *CallbackFunction) Argument(i int) Argument { return c.fn.Argument(i) }

// Arguments returns an independent copy of the argument list.
func (c *CallbackFunction) Arguments() []Argument { return c.fn.Arguments() }

// ReturnType returns the declared return type.
func (c *CallbackFunction) ReturnType() TypeRef { return c.fn.ReturnType() }
