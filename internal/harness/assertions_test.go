package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	result := NewResult()
	result.Declarations = []DeclaredEvent{
		{Identifier: "Widget", Kind: "interface", Digest: "d1", Modules: []string{"core", "extras"}},
		{Identifier: "Mode", Kind: "enumeration", Digest: "d2", Modules: []string{"core"}},
	}
	result.Described = map[string]map[string]any{
		"Widget": {
			"identifier": "Widget",
			"kind":       "interface",
			"annotations": map[string]any{
				"Exposed":        "Window",
				"SecureContext":  "",
				"RuntimeEnabled": []any{"FeatureA", "FeatureB"},
			},
		},
		"Mode": {
			"identifier": "Mode",
			"kind":       "enumeration",
		},
	}
	result.Skipped = []SkipEvent{
		{Identifier: "Broken", Reason: "[E106] values: duplicate value \"x\""},
	}
	return result
}

func TestEvaluateAssertionsAllPass(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{
		{Type: AssertDeclared, Identifier: "Widget", Kind: "interface"},
		{Type: AssertCount, Count: 2},
		{Type: AssertModules, Identifier: "Widget", Modules: []string{"core", "extras"}},
		{Type: AssertSkipped, Identifier: "Broken", Match: "E106"},
		{Type: AssertAnnotation, Identifier: "Widget", Name: "Exposed", Value: "Window"},
	})
	assert.Empty(t, errs)
}

func TestAssertDeclaredFailures(t *testing.T) {
	result := sampleResult()

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertDeclared, Identifier: "Missing", Kind: "interface"},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "not in frozen table")

	errs = EvaluateAssertions(result, []Assertion{
		{Type: AssertDeclared, Identifier: "Widget", Kind: "dictionary"},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "declared as interface")
}

func TestAssertSkippedMatchesSubstring(t *testing.T) {
	result := sampleResult()

	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertSkipped, Identifier: "Broken"},
	})
	assert.Empty(t, errs)

	errs = EvaluateAssertions(result, []Assertion{
		{Type: AssertSkipped, Identifier: "Broken", Match: "E104"},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `reason containing "E104"`)
}

func TestAssertCountMismatch(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{
		{Type: AssertCount, Count: 3},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "Expected: 3 declaration(s)")
	assert.Contains(t, errs[0], "Actual: 2 declaration(s)")
}

func TestAssertAnnotationForms(t *testing.T) {
	result := sampleResult()

	// bare annotation: empty expected value matches
	errs := EvaluateAssertions(result, []Assertion{
		{Type: AssertAnnotation, Identifier: "Widget", Name: "SecureContext"},
	})
	assert.Empty(t, errs)

	// list annotation: membership match
	errs = EvaluateAssertions(result, []Assertion{
		{Type: AssertAnnotation, Identifier: "Widget", Name: "RuntimeEnabled", Value: "FeatureB"},
	})
	assert.Empty(t, errs)

	errs = EvaluateAssertions(result, []Assertion{
		{Type: AssertAnnotation, Identifier: "Widget", Name: "RuntimeEnabled", Value: "FeatureC"},
	})
	require.Len(t, errs, 1)

	// declaration carries no annotations at all
	errs = EvaluateAssertions(result, []Assertion{
		{Type: AssertAnnotation, Identifier: "Mode", Name: "Exposed"},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "annotations present: []")
}

func TestAssertModulesOrderMatters(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{
		{Type: AssertModules, Identifier: "Widget", Modules: []string{"extras", "core"}},
	})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "modules [core extras]")
}

func TestAssertionErrorListsFrozenTable(t *testing.T) {
	err := &AssertionError{
		Type:     AssertDeclared,
		Expected: "Missing declared as interface",
		Actual:   "not in frozen table",
		Declared: []DeclaredEvent{
			{Identifier: "Widget", Kind: "interface"},
			{Identifier: "Mode", Kind: "enumeration"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: declared")
	assert.Contains(t, msg, "Expected: Missing declared as interface")
	assert.Contains(t, msg, "[1] interface Widget")
	assert.Contains(t, msg, "[2] enumeration Mode")
}

func TestUnknownAssertionTypeReported(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{{Type: "bogus"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], `unknown assertion type "bogus"`)
}
