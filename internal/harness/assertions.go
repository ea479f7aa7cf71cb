package harness

import (
	"fmt"
	"slices"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the declared identifiers to help debug the failure.
type AssertionError struct {
	Type     string          // Assertion type for categorization
	Expected string          // Human-readable expected outcome
	Actual   string          // Human-readable actual outcome
	Declared []DeclaredEvent // Frozen table contents for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFrozen table:\n")
	for i, decl := range e.Declared {
		fmt.Fprintf(&buf, "  [%d] %s %s\n", i+1, decl.Kind, decl.Identifier)
	}

	return buf.String()
}

// EvaluateAssertions runs all assertions against the scenario result.
// Returns a list of failure messages; empty means all passed.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, assertion := range assertions {
		var err error
		switch assertion.Type {
		case AssertDeclared:
			err = assertDeclared(result, assertion)
		case AssertSkipped:
			err = assertSkipped(result, assertion)
		case AssertCount:
			err = assertCount(result, assertion)
		case AssertAnnotation:
			err = assertAnnotation(result, assertion)
		case AssertModules:
			err = assertModules(result, assertion)
		default:
			err = fmt.Errorf("unknown assertion type %q", assertion.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// assertDeclared checks that the identifier is in the frozen table with
// the expected kind.
func assertDeclared(result *Result, assertion Assertion) error {
	for _, decl := range result.Declarations {
		if decl.Identifier != assertion.Identifier {
			continue
		}
		if decl.Kind != assertion.Kind {
			return &AssertionError{
				Type:     AssertDeclared,
				Expected: fmt.Sprintf("%s declared as %s", assertion.Identifier, assertion.Kind),
				Actual:   fmt.Sprintf("declared as %s", decl.Kind),
				Declared: result.Declarations,
			}
		}
		return nil
	}

	return &AssertionError{
		Type:     AssertDeclared,
		Expected: fmt.Sprintf("%s declared as %s", assertion.Identifier, assertion.Kind),
		Actual:   "not in frozen table",
		Declared: result.Declarations,
	}
}

// assertSkipped checks that the identifier was rejected, optionally
// requiring the reason to contain a substring.
func assertSkipped(result *Result, assertion Assertion) error {
	for _, skip := range result.Skipped {
		if skip.Identifier != assertion.Identifier {
			continue
		}
		if assertion.Match == "" || strings.Contains(skip.Reason, assertion.Match) {
			return nil
		}
	}

	expected := fmt.Sprintf("%s skipped", assertion.Identifier)
	if assertion.Match != "" {
		expected += fmt.Sprintf(" with reason containing %q", assertion.Match)
	}
	return &AssertionError{
		Type:     AssertSkipped,
		Expected: expected,
		Actual:   fmt.Sprintf("skip list: %v", result.Skipped),
		Declared: result.Declarations,
	}
}

// assertCount checks the frozen table size.
func assertCount(result *Result, assertion Assertion) error {
	if len(result.Declarations) == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertCount,
		Expected: fmt.Sprintf("%d declaration(s)", assertion.Count),
		Actual:   fmt.Sprintf("%d declaration(s)", len(result.Declarations)),
		Declared: result.Declarations,
	}
}

// assertAnnotation checks a declared identifier carries the annotation
// with the expected value.
func assertAnnotation(result *Result, assertion Assertion) error {
	described, ok := result.Described[assertion.Identifier]
	if !ok {
		return &AssertionError{
			Type:     AssertAnnotation,
			Expected: fmt.Sprintf("%s declared with annotation %s", assertion.Identifier, assertion.Name),
			Actual:   "identifier not in frozen table",
			Declared: result.Declarations,
		}
	}

	annotations, _ := described["annotations"].(map[string]any)
	value, ok := annotations[assertion.Name]
	if !ok {
		return &AssertionError{
			Type:     AssertAnnotation,
			Expected: fmt.Sprintf("annotation %s on %s", assertion.Name, assertion.Identifier),
			Actual:   fmt.Sprintf("annotations present: %v", annotationNames(annotations)),
			Declared: result.Declarations,
		}
	}

	// Bare annotations render as an empty value; list-valued
	// annotations are matched by membership.
	switch v := value.(type) {
	case string:
		if assertion.Value == "" || v == assertion.Value {
			return nil
		}
	case []any:
		if assertion.Value == "" {
			return nil
		}
		for _, elem := range v {
			if s, ok := elem.(string); ok && s == assertion.Value {
				return nil
			}
		}
	}

	return &AssertionError{
		Type:     AssertAnnotation,
		Expected: fmt.Sprintf("annotation %s=%s on %s", assertion.Name, assertion.Value, assertion.Identifier),
		Actual:   fmt.Sprintf("annotation %s=%v", assertion.Name, value),
		Declared: result.Declarations,
	}
}

// assertModules checks a declared identifier's module set, in
// first-seen order.
func assertModules(result *Result, assertion Assertion) error {
	for _, decl := range result.Declarations {
		if decl.Identifier != assertion.Identifier {
			continue
		}
		if slices.Equal(decl.Modules, assertion.Modules) {
			return nil
		}
		return &AssertionError{
			Type:     AssertModules,
			Expected: fmt.Sprintf("%s from modules %v", assertion.Identifier, assertion.Modules),
			Actual:   fmt.Sprintf("modules %v", decl.Modules),
			Declared: result.Declarations,
		}
	}

	return &AssertionError{
		Type:     AssertModules,
		Expected: fmt.Sprintf("%s from modules %v", assertion.Identifier, assertion.Modules),
		Actual:   "not in frozen table",
		Declared: result.Declarations,
	}
}

func annotationNames(annotations map[string]any) []string {
	names := make([]string, 0, len(annotations))
	for name := range annotations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
