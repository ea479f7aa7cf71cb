package harness

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/widl/internal/compiler"
	"github.com/roach88/widl/internal/ir"
	"github.com/roach88/widl/internal/registry"
)

// Run executes a conformance scenario and returns the result.
//
// Each scenario runs against a fresh registry for isolation.
// Registration follows schema document order, so the merge semantics
// under test are deterministic.
//
// Execution flow:
//  1. Compile every schema document to fragments
//  2. Register fragments in document order, recording rejections
//  3. Freeze the registry, recording poisoned drafts
//  4. Evaluate assertions against the frozen table and skip list
func Run(scenario *Scenario) (*Result, error) {
	ctx := cuecontext.New()
	reg := registry.New()
	result := NewResult()

	for i, ref := range scenario.Schemas {
		module := ref.Module
		if module == "" {
			module = scenario.Module
		}

		frags, err := compileSchema(ctx, ref.Path, module)
		if err != nil {
			return nil, fmt.Errorf("schema %d (%s): %w", i, ref.Path, err)
		}

		// Fragment-local rejections are part of the behavior under
		// test: record them and keep going.
		for _, frag := range frags {
			if verrs := compiler.Validate(frag); len(verrs) > 0 {
				for _, verr := range verrs {
					result.Skipped = append(result.Skipped, SkipEvent{
						Identifier: frag.Identifier,
						Reason:     verr.Error(),
					})
				}
				continue
			}
			if err := reg.Register(frag); err != nil {
				result.Skipped = append(result.Skipped, SkipEvent{
					Identifier: frag.Identifier,
					Reason:     err.Error(),
				})
			}
		}
	}

	table, diags, err := reg.FreezeAll()
	if err != nil {
		return nil, fmt.Errorf("freeze failed: %w", err)
	}
	for _, diag := range diags {
		result.Skipped = append(result.Skipped, SkipEvent{
			Identifier: diag.Identifier,
			Reason:     diag.Err.Error(),
		})
	}

	if err := recordTable(result, table); err != nil {
		return nil, err
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// compileSchema compiles one CUE schema document into fragments.
func compileSchema(ctx *cue.Context, path, module string) ([]*registry.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to build CUE value: %w", err)
	}

	return compiler.CompileFragments(value, module)
}

// recordTable renders the frozen table into the result, in freeze
// order.
func recordTable(result *Result, table *ir.Table) error {
	for _, decl := range table.Declarations() {
		digest, err := ir.DeclarationDigest(decl)
		if err != nil {
			return fmt.Errorf("digest for %q: %w", decl.Identifier(), err)
		}
		described, err := ir.Describe(decl)
		if err != nil {
			return fmt.Errorf("describe for %q: %w", decl.Identifier(), err)
		}

		result.Declarations = append(result.Declarations, DeclaredEvent{
			Identifier: decl.Identifier(),
			Kind:       string(decl.Kind()),
			Digest:     digest,
			Modules:    decl.Modules().Names(),
		})
		result.Described[decl.Identifier()] = described
	}
	return nil
}
