package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios compile a set of schema documents through the registry and
// assert on the frozen declaration table.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Module is the default originating-module name for schema
	// documents that do not set their own.
	Module string `yaml:"module,omitempty"`

	// Schemas lists the CUE schema documents to compile, in order.
	// Registration order follows document order, so merge semantics
	// are deterministic. Paths are relative to the scenario file.
	Schemas []SchemaRef `yaml:"schemas"`

	// Assertions validate the frozen table and the skip list.
	// Supported types: declared, skipped, count, annotation, modules.
	Assertions []Assertion `yaml:"assertions"`
}

// SchemaRef names one schema document and the module it belongs to.
type SchemaRef struct {
	// Path is the CUE file path, relative to the scenario file.
	Path string `yaml:"path"`

	// Module overrides the scenario's default module for this
	// document. Partial-merge scenarios use different modules per
	// document to exercise module-set accumulation.
	Module string `yaml:"module,omitempty"`
}

// Assertion validates the frozen table or the skip list.
type Assertion struct {
	// Type specifies the assertion type:
	// - "declared": identifier is in the frozen table with the kind
	// - "skipped": identifier was rejected, reason contains Match
	// - "count": the frozen table has exactly Count declarations
	// - "annotation": declared identifier carries the annotation
	// - "modules": declared identifier's module set equals Modules
	Type string `yaml:"type"`

	// Identifier names the declaration under test (all types except
	// count).
	Identifier string `yaml:"identifier,omitempty"`

	// Kind is the expected declaration kind (used by declared).
	Kind string `yaml:"kind,omitempty"`

	// Match is a substring the skip reason must contain (used by
	// skipped). Error codes like DUPLICATE_DEFINITION work well here.
	Match string `yaml:"match,omitempty"`

	// Count is the expected table size (used by count).
	Count int `yaml:"count,omitempty"`

	// Name and Value identify an expected annotation (used by
	// annotation). Value may be empty for bare annotations.
	Name  string `yaml:"name,omitempty"`
	Value string `yaml:"value,omitempty"`

	// Modules is the expected module set in first-seen order (used by
	// modules).
	Modules []string `yaml:"modules,omitempty"`
}

// Assertion type constants.
const (
	AssertDeclared   = "declared"
	AssertSkipped    = "skipped"
	AssertCount      = "count"
	AssertAnnotation = "annotation"
	AssertModules    = "modules"
)

// LoadScenario reads and parses a scenario YAML file. Schema paths are
// resolved relative to the scenario file's directory. Returns an error
// if the file is malformed, contains unknown fields (typos), or is
// missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve schema paths relative to the scenario file
	base := filepath.Dir(path)
	for i, ref := range scenario.Schemas {
		if !filepath.IsAbs(ref.Path) {
			scenario.Schemas[i].Path = filepath.Join(base, ref.Path)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Schemas) == 0 {
		return fmt.Errorf("schemas list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, ref := range s.Schemas {
		if ref.Path == "" {
			return fmt.Errorf("schemas[%d]: path is required", i)
		}
		if _, err := os.Stat(ref.Path); os.IsNotExist(err) {
			return fmt.Errorf("schemas[%d]: schema file not found: %s", i, ref.Path)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertDeclared:
		if a.Identifier == "" {
			return fmt.Errorf("assertions[%d]: identifier is required for declared", index)
		}
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for declared", index)
		}
	case AssertSkipped:
		if a.Identifier == "" {
			return fmt.Errorf("assertions[%d]: identifier is required for skipped", index)
		}
	case AssertCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertAnnotation:
		if a.Identifier == "" {
			return fmt.Errorf("assertions[%d]: identifier is required for annotation", index)
		}
		if a.Name == "" {
			return fmt.Errorf("assertions[%d]: name is required for annotation", index)
		}
	case AssertModules:
		if a.Identifier == "" {
			return fmt.Errorf("assertions[%d]: identifier is required for modules", index)
		}
		if len(a.Modules) == 0 {
			return fmt.Errorf("assertions[%d]: modules list is required for modules", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
