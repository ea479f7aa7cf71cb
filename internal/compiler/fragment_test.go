package compiler

import (
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/widl/internal/ir"
	"github.com/roach88/widl/internal/registry"
)

func compileSource(t *testing.T, src, module string) []*registry.Fragment {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	frags, err := CompileFragments(v, module)
	require.NoError(t, err)
	return frags
}

func compileSourceErr(t *testing.T, src string) error {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	_, err := CompileFragments(v, "test")
	require.Error(t, err)
	return err
}

func TestCompileCallbackFunction(t *testing.T) {
	frags := compileSource(t, `
declarations: Predicate: {
	kind:   "callback_function"
	return: "boolean"
	args: [
		{name: "item", type: "any"},
		{name: "index", type: "unsigned long", optional: true, default: "0"},
		{name: "rest", type: "any", variadic: true},
	]
}
`, "core")

	require.Len(t, frags, 1)
	frag := frags[0]
	assert.Equal(t, "Predicate", frag.Identifier)
	assert.Equal(t, ir.KindCallbackFunction, frag.Kind)
	assert.False(t, frag.Partial)
	assert.Equal(t, "core", frag.Module)
	assert.Equal(t, "boolean", frag.ReturnType.Name)

	require.Len(t, frag.Arguments, 3)
	assert.Equal(t, "item", frag.Arguments[0].Name)
	assert.True(t, frag.Arguments[1].Optional)
	require.NotNil(t, frag.Arguments[1].Default)
	assert.Equal(t, "0", frag.Arguments[1].Default.Literal)
	assert.True(t, frag.Arguments[2].Variadic)
}

func TestCompileReturnTypeDefaultsToUndefined(t *testing.T) {
	frags := compileSource(t, `
declarations: Callback: {
	kind: "callback_function"
}
`, "test")
	require.Len(t, frags, 1)
	assert.Equal(t, "undefined", frags[0].ReturnType.Name)
	assert.Empty(t, frags[0].Arguments)
}

func TestCompileInterface(t *testing.T) {
	frags := compileSource(t, `
declarations: Store: {
	kind:     "interface"
	inherits: "Base"
	operations: get: {
		args: [{name: "key", type: "DOMString"}]
		return: "any?"
	}
	attributes: size: {type: "unsigned long", readonly: true}
	constants: MAX: {type: "unsigned long", value: "65535"}
}
`, "test")

	require.Len(t, frags, 1)
	frag := frags[0]
	assert.Equal(t, ir.KindInterface, frag.Kind)
	assert.Equal(t, "Base", frag.Inherits)

	require.Len(t, frag.Operations, 1)
	op := frag.Operations[0]
	assert.Equal(t, "get", op.Name)
	assert.Equal(t, "any", op.ReturnType.Name)
	assert.True(t, op.ReturnType.Nullable)
	require.Len(t, op.Arguments, 1)

	require.Len(t, frag.Attributes, 1)
	assert.True(t, frag.Attributes[0].ReadOnly)

	require.Len(t, frag.Constants, 1)
	assert.Equal(t, "65535", frag.Constants[0].Value)
}

func TestCompilePartialDictionary(t *testing.T) {
	frags := compileSource(t, `
declarations: Options: {
	kind:    "dictionary"
	partial: true
	members: mode: {type: "Mode", default: "auto"}
	members: limit: {type: "unsigned long", required: true}
}
`, "test")

	require.Len(t, frags, 1)
	frag := frags[0]
	assert.Equal(t, ir.KindDictionary, frag.Kind)
	assert.True(t, frag.Partial)
	require.Len(t, frag.Members, 2)
}

func TestCompileEnumerationAndTypedef(t *testing.T) {
	frags := compileSource(t, `
declarations: {
	Mode: {
		kind: "enumeration"
		values: ["auto", "manual"]
	}
	Score: {
		kind: "typedef"
		type: "double?"
	}
}
`, "test")

	require.Len(t, frags, 2)
	assert.Equal(t, []string{"auto", "manual"}, frags[0].Values)
	assert.Equal(t, "double", frags[1].AliasedType.Name)
	assert.True(t, frags[1].AliasedType.Nullable)
}

func TestCompileAnnotationForms(t *testing.T) {
	frags := compileSource(t, `
declarations: Widget: {
	kind: "interface"
	annotations: {
		Exposed:       "Window"
		SecureContext: true
		Targets: ["a", "b"]
	}
	hints: impl: "fast"
}
`, "test")

	require.Len(t, frags, 1)
	frag := frags[0]
	require.Len(t, frag.Annotations, 3)

	byName := make(map[string]ir.RawAnnotation)
	for _, a := range frag.Annotations {
		byName[a.Name] = a
	}
	assert.Equal(t, "Window", byName["Exposed"].Value)
	assert.Empty(t, byName["SecureContext"].Value)
	assert.Empty(t, byName["SecureContext"].Values)
	assert.Equal(t, []string{"a", "b"}, byName["Targets"].Values)

	assert.Equal(t, map[string]string{"impl": "fast"}, frag.Hints)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "no declarations struct",
			src:     `other: {}`,
			wantMsg: "no declarations struct",
		},
		{
			name:    "missing kind",
			src:     `declarations: X: {values: ["a"]}`,
			wantMsg: "kind is required",
		},
		{
			name:    "unknown kind",
			src:     `declarations: X: {kind: "widget"}`,
			wantMsg: "unknown declaration kind",
		},
		{
			name:    "false bare annotation",
			src:     `declarations: X: {kind: "interface", annotations: Bad: false}`,
			wantMsg: "bare annotation marker must be true",
		},
		{
			name:    "typedef without target",
			src:     `declarations: X: {kind: "typedef"}`,
			wantMsg: "typedef requires a target type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compileSourceErr(t, tt.src)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCompileErrorCarriesPosition(t *testing.T) {
	err := compileSourceErr(t, `declarations: X: {kind: "widget"}`)
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "X.kind", compileErr.Field)
}

func TestCompileRecordsLocation(t *testing.T) {
	frags := compileSource(t, `
declarations: Mode: {
	kind: "enumeration"
	values: ["a"]
}
`, "test")
	require.Len(t, frags, 1)
	assert.True(t, frags[0].Location.IsValid())
}
