package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/widl/internal/compiler"
	"github.com/roach88/widl/internal/ir"
	"github.com/roach88/widl/internal/registry"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompiledDeclaration is one frozen declaration in the compile output.
type CompiledDeclaration struct {
	Digest      string         `json:"digest"`
	Declaration map[string]any `json:"declaration"`
}

// SkippedDeclaration reports a declaration excluded from the frozen
// table, with the reason.
type SkippedDeclaration struct {
	Identifier string `json:"identifier"`
	Reason     string `json:"reason"`
}

// CompilationResult holds the frozen-declaration table of one run.
type CompilationResult struct {
	Module       string                `json:"module"`
	Declarations []CompiledDeclaration `json:"declarations"`
	Skipped      []SkippedDeclaration  `json:"skipped,omitempty"`
}

// CompilationStats holds summary statistics.
type CompilationStats struct {
	FileCount        int
	FragmentCount    int
	DeclarationCount int
	SkippedCount     int
	KindCounts       map[ir.Kind]int
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <schemas-dir>",
		Short: "Compile schema declarations to frozen IR",
		Long: `Compile CUE schema declarations into the frozen intermediate representation.

The compiler parses declaration fragments, merges partials by identifier,
validates payloads, and freezes the result into an immutable declaration
table printed as JSON.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, schemasDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
		TraceID:   uuid.Must(uuid.NewV7()).String(),
	}

	manifest, err := LoadManifest(schemasDir)
	if err != nil {
		return outputCompileError(formatter, ErrCodeManifest, err.Error(), nil)
	}
	formatter.VerboseLog("Module: %s", manifest.Module)

	loadResult, loadErrors := LoadSchemas(schemasDir, manifest.Module, LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputCompileError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputCompileError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}
	if len(loadErrors) > 0 {
		return outputCompileError(formatter, ErrCodeLoadFailed, loadErrors[0].Error(), loadErrors)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, schemasDir)

	// Ingestion phase: register every fragment. Fragment-local failures
	// (validation errors, kind conflicts, malformed metadata) are
	// reported and skipped without aborting unrelated identifiers.
	reg := registry.New()
	var skipped []SkippedDeclaration
	for _, frag := range loadResult.Fragments {
		frag.Hints = manifest.ApplyHintDefaults(frag.Hints)

		if verrs := compiler.Validate(frag); len(verrs) > 0 {
			for _, verr := range verrs {
				skipped = append(skipped, SkippedDeclaration{
					Identifier: frag.Identifier,
					Reason:     verr.Error(),
				})
			}
			continue
		}

		formatter.VerboseLog("Registering %s %q", frag.Kind, frag.Identifier)
		if err := reg.Register(frag); err != nil {
			skipped = append(skipped, SkippedDeclaration{
				Identifier: frag.Identifier,
				Reason:     err.Error(),
			})
		}
	}

	// Freeze phase: one immutable declaration per usable draft.
	table, diags, err := reg.FreezeAll()
	if err != nil {
		// KIND_MISMATCH class: dispatch bug, halt the unit with context.
		return outputCompileError(formatter, ErrCodeInternal, err.Error(), nil)
	}
	for _, diag := range diags {
		skipped = append(skipped, SkippedDeclaration{
			Identifier: diag.Identifier,
			Reason:     diag.Err.Error(),
		})
	}

	result, err := buildResult(manifest.Module, table, skipped)
	if err != nil {
		return outputCompileError(formatter, ErrCodeInternal, err.Error(), nil)
	}
	stats := calculateStats(loadResult, table, skipped)

	// Write to file if --output specified
	if opts.Output != "" {
		if err := writeResultToFile(result, opts.Output); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	return outputCompileSuccess(formatter, result, stats, opts.Output)
}

// buildResult renders the frozen table in freeze order with digests.
func buildResult(module string, table *ir.Table, skipped []SkippedDeclaration) (*CompilationResult, error) {
	result := &CompilationResult{Module: module, Skipped: skipped}
	for _, decl := range table.Declarations() {
		described, err := ir.Describe(decl)
		if err != nil {
			return nil, err
		}
		digest, err := ir.DeclarationDigest(decl)
		if err != nil {
			return nil, err
		}
		result.Declarations = append(result.Declarations, CompiledDeclaration{
			Digest:      digest,
			Declaration: described,
		})
	}
	return result, nil
}

// calculateStats computes summary statistics for one run.
func calculateStats(loadResult *LoadResult, table *ir.Table, skipped []SkippedDeclaration) CompilationStats {
	stats := CompilationStats{
		FileCount:        loadResult.FileCount,
		FragmentCount:    len(loadResult.Fragments),
		DeclarationCount: table.Len(),
		SkippedCount:     len(skipped),
		KindCounts:       make(map[ir.Kind]int),
	}
	for _, kind := range ir.Kinds {
		if n := len(table.ByKind(kind)); n > 0 {
			stats.KindCounts[kind] = n
		}
	}
	return stats
}

// outputCompileSuccess outputs compilation results. A run with skipped
// declarations still prints the table but exits with a failure code.
func outputCompileSuccess(formatter *OutputFormatter, result *CompilationResult, stats CompilationStats, outputFile string) error {
	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(formatter.Writer, "Compiled %d declaration(s) from %d fragment(s) in %d file(s)\n",
			stats.DeclarationCount, stats.FragmentCount, stats.FileCount)
		for _, kind := range ir.Kinds {
			if n, ok := stats.KindCounts[kind]; ok {
				fmt.Fprintf(formatter.Writer, "  %-18s %d\n", kind, n)
			}
		}
		for _, s := range result.Skipped {
			fmt.Fprintf(formatter.Writer, "Skipped %q: %s\n", s.Identifier, s.Reason)
		}
		if outputFile != "" {
			fmt.Fprintf(formatter.Writer, "Wrote %s\n", outputFile)
		}
	}

	if stats.SkippedCount > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d declaration(s) skipped", stats.SkippedCount))
	}
	return nil
}

// outputCompileError outputs an error and returns an ExitError.
func outputCompileError(formatter *OutputFormatter, code, message string, details interface{}) error {
	if err := formatter.Error(code, message, details); err != nil {
		return err
	}
	return NewExitError(ExitCommandError, message)
}

// writeResultToFile writes the compilation result as indented JSON.
func writeResultToFile(result *CompilationResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
