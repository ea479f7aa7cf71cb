package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/widl/internal/ir"
)

// TableSnapshot captures the frozen table for a scenario execution.
// It serializes via canonical JSON for deterministic comparison.
type TableSnapshot struct {
	ScenarioName string
	Declarations []DeclaredEvent
	Described    map[string]map[string]any
	Skipped      []SkipEvent
}

// toCanonicalMap converts the snapshot to plain maps and slices so
// ir.MarshalCanonical can serialize it. Source locations are dropped:
// golden files must not change when the checkout path or file layout
// moves, only when declared content does.
func (s *TableSnapshot) toCanonicalMap() map[string]any {
	declList := make([]any, len(s.Declarations))
	for i, decl := range s.Declarations {
		declList[i] = map[string]any{
			"identifier":  decl.Identifier,
			"digest":      decl.Digest,
			"declaration": withoutLocation(s.Described[decl.Identifier]),
		}
	}

	result := map[string]any{
		"scenario_name": s.ScenarioName,
		"declarations":  declList,
	}

	if len(s.Skipped) > 0 {
		skipList := make([]any, len(s.Skipped))
		for i, skip := range s.Skipped {
			skipList[i] = map[string]any{
				"identifier": skip.Identifier,
				"reason":     skip.Reason,
			}
		}
		result["skipped"] = skipList
	}

	return result
}

// withoutLocation copies a declaration rendering minus its location
// entry.
func withoutLocation(described map[string]any) map[string]any {
	out := make(map[string]any, len(described))
	for k, v := range described {
		if k == "location" {
			continue
		}
		out[k] = v
	}
	return out
}

// RunWithGolden executes a scenario and compares the frozen table
// against a golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for merge order, trait
// propagation, and digest input. Returns an error if scenario execution
// fails; a table mismatch fails the test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-computed result's frozen table
// against a golden file, without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot := TableSnapshot{
		ScenarioName: scenarioName,
		Declarations: result.Declarations,
		Described:    result.Described,
		Skipped:      result.Skipped,
	}

	tableJSON, err := ir.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, tableJSON)

	return nil
}
