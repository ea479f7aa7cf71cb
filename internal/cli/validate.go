package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/widl/internal/compiler"
	"github.com/roach88/widl/internal/registry"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidationResult holds the outcome of validating a schema directory.
type ValidationResult struct {
	Valid         bool                       `json:"valid"`
	Module        string                     `json:"module"`
	FragmentCount int                        `json:"fragment_count"`
	Errors        []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <schemas-dir>",
		Short: "Validate schema declarations without compiling",
		Long: `Validate CUE schema declarations against the declaration rules.

Runs payload validation on every fragment and a dry-run registration
pass so kind conflicts and duplicate definitions across fragments are
reported, without producing frozen output.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, schemasDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
		TraceID:   uuid.Must(uuid.NewV7()).String(),
	}

	manifest, err := LoadManifest(schemasDir)
	if err != nil {
		return outputValidateError(formatter, ErrCodeManifest, err.Error())
	}

	loadResult, loadErrors := LoadSchemas(schemasDir, manifest.Module, LoadModeFailFast)
	if len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message)
		}
		return outputValidateError(formatter, ErrCodeGeneric, loadErrors[0].Error())
	}

	formatter.VerboseLog("Validating %d fragment(s) from %d file(s)", len(loadResult.Fragments), loadResult.FileCount)

	result := &ValidationResult{
		Module:        manifest.Module,
		FragmentCount: len(loadResult.Fragments),
	}

	// Payload validation plus a dry-run registration so cross-fragment
	// failures (kind conflicts, duplicate definitions) surface too.
	reg := registry.New()
	for _, frag := range loadResult.Fragments {
		verrs := compiler.Validate(frag)
		result.Errors = append(result.Errors, verrs...)
		if len(verrs) > 0 {
			continue
		}
		if err := reg.Register(frag); err != nil {
			result.Errors = append(result.Errors, compiler.ValidationError{
				Field:   frag.Identifier,
				Message: err.Error(),
				Code:    ErrCodeRegister,
			})
		}
	}
	result.Valid = len(result.Errors) == 0

	return outputValidateResult(formatter, result)
}

// outputValidateResult outputs the validation result and returns an
// ExitError when the schemas are invalid.
func outputValidateResult(formatter *OutputFormatter, result *ValidationResult) error {
	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		if result.Valid {
			fmt.Fprintf(formatter.Writer, "Valid: %d fragment(s) in module %q\n", result.FragmentCount, result.Module)
		} else {
			fmt.Fprintf(formatter.Writer, "Invalid: %d error(s)\n", len(result.Errors))
			for _, verr := range result.Errors {
				fmt.Fprintf(formatter.Writer, "  [%s] %s: %s\n", verr.Code, verr.Field, verr.Message)
			}
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(result.Errors)))
	}
	return nil
}

// outputValidateError outputs an error and returns an ExitError.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	if err := formatter.Error(code, message, nil); err != nil {
		return err
	}
	return NewExitError(ExitCommandError, message)
}
