package ir

import "fmt"

// Describe renders a frozen declaration as a plain map for JSON output
// and golden comparison. Dispatch is an exhaustive switch over the
// closed kind set; an unknown concrete type is a programmer error.
func Describe(d Declaration) (map[string]any, error) {
	return describe(d, true)
}

func describe(d Declaration, withLocation bool) (map[string]any, error) {
	m := map[string]any{
		"identifier":  d.Identifier(),
		"kind":        string(d.Kind()),
		"annotations": describeAnnotations(d.Annotations()),
		"hints":       describeHints(d.GeneratorHints()),
		"modules":     toAnySlice(d.Modules().Names()),
	}
	if withLocation && d.Location().IsValid() {
		m["location"] = d.Location().String()
	}

	switch decl := d.(type) {
	case *CallbackFunction:
		m["args"] = describeArguments(decl.Arguments())
		m["return"] = decl.ReturnType().String()
	case *Interface:
		if decl.Inherits() != "" {
			m["inherits"] = decl.Inherits()
		}
		m["operations"] = describeOperations(decl.Operations())
		m["attributes"] = describeAttributes(decl.Attributes())
		m["constants"] = describeConstants(decl.Constants())
	case *Dictionary:
		if decl.Inherits() != "" {
			m["inherits"] = decl.Inherits()
		}
		m["members"] = describeMembers(decl.Members())
	case *Enumeration:
		m["values"] = toAnySlice(decl.Values())
	case *Typedef:
		m["type"] = decl.AliasedType().String()
	case *Namespace:
		m["operations"] = describeOperations(decl.Operations())
		m["attributes"] = describeAttributes(decl.Attributes())
	default:
		return nil, fmt.Errorf("describe: unknown declaration type %T (kind %q)", d, d.Kind())
	}

	return m, nil
}

func describeAnnotations(a Annotations) map[string]any {
	out := make(map[string]any, a.Len())
	for _, name := range a.Names() {
		e, _ := a.Get(name)
		switch {
		case len(e.Values) > 0:
			out[name] = toAnySlice(e.Values)
		default:
			out[name] = e.Value
		}
	}
	return out
}

func describeHints(h GeneratorHints) map[string]any {
	out := make(map[string]any, h.Len())
	for _, key := range h.Keys() {
		v, _ := h.Get(key)
		out[key] = v
	}
	return out
}

func describeArguments(args []Argument) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		m := map[string]any{
			"name":     arg.Name,
			"type":     arg.Type.String(),
			"optional": arg.Optional,
			"variadic": arg.Variadic,
		}
		if arg.Default != nil {
			m["default"] = arg.Default.Literal
		}
		out[i] = m
	}
	return out
}

func describeOperations(ops []Operation) []any {
	out := make([]any, len(ops))
	for i, op := range ops {
		out[i] = map[string]any{
			"name":   op.Name,
			"args":   describeArguments(op.Arguments()),
			"return": op.ReturnType().String(),
		}
	}
	return out
}

func describeAttributes(attrs []Attribute) []any {
	out := make([]any, len(attrs))
	for i, attr := range attrs {
		out[i] = map[string]any{
			"name":     attr.Name,
			"type":     attr.Type.String(),
			"readonly": attr.ReadOnly,
		}
	}
	return out
}

func describeConstants(consts []Constant) []any {
	out := make([]any, len(consts))
	for i, c := range consts {
		out[i] = map[string]any{
			"name":  c.Name,
			"type":  c.Type.String(),
			"value": c.Value,
		}
	}
	return out
}

func describeMembers(members []DictionaryMember) []any {
	out := make([]any, len(members))
	for i, m := range members {
		entry := map[string]any{
			"name":     m.Name,
			"type":     m.Type.String(),
			"required": m.Required,
		}
		if m.Default != nil {
			entry["default"] = m.Default.Literal
		}
		out[i] = entry
	}
	return out
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
