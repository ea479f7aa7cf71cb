package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	err := NewExitError(ExitFailure, "something failed")
	assert.Equal(t, "something failed", err.Error())
	assert.Equal(t, ExitFailure, err.Code)

	wrapped := &ExitError{Code: ExitCommandError, Message: "outer", Err: errors.New("inner")}
	assert.Equal(t, "outer: inner", wrapped.Error())
	assert.Equal(t, "inner", errors.Unwrap(wrapped).Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "x")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))

	// wrapped ExitError is still found
	wrapped := fmt.Errorf("context: %w", NewExitError(ExitCommandError, "x"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))

	// non-ExitError defaults to failure
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}

func TestOutputFormatterSuccessJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf, TraceID: "trace-1"}

	require.NoError(t, f.Success(map[string]string{"key": "value"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "trace-1", resp.TraceID)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatterSuccessText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success("all done"))
	assert.Equal(t, "all done\n", buf.String())
}

func TestOutputFormatterErrorJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf, TraceID: "trace-2"}

	require.NoError(t, f.Error("E005", "directory not found", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
	assert.Equal(t, "directory not found", resp.Error.Message)
	assert.Equal(t, "trace-2", resp.TraceID)
}

func TestOutputFormatterErrorText(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Error("E005", "directory not found", nil))
	assert.Equal(t, "Error [E005]: directory not found\n", buf.String())
}

func TestVerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	f := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut, Verbose: false}
	f.VerboseLog("hidden %d", 1)
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())

	f.Verbose = true
	f.VerboseLog("visible %d", 2)
	// verbose output goes to the error writer, not stdout
	assert.Empty(t, out.String())
	assert.Equal(t, "visible 2\n", errOut.String())
}

func TestVerboseLogFallsBackToWriter(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out, Verbose: true}
	f.VerboseLog("note")
	assert.Equal(t, "note\n", out.String())
}
