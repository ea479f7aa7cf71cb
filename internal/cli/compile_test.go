package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSchemas populates a temp directory with CUE schema documents and
// returns its path.
func writeSchemas(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func runCompileCommand(t *testing.T, format string, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewCompileCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

const validSchema = `package schemas

declarations: {
	Mode: {
		kind: "enumeration"
		values: ["auto", "manual"]
	}
	Predicate: {
		kind:   "callback_function"
		return: "boolean"
		args: [{name: "item", type: "any"}]
	}
}
`

func TestCompileValidSchemasJSON(t *testing.T) {
	dir := writeSchemas(t, map[string]string{"schema.cue": validSchema})

	buf, err := runCompileCommand(t, "json", dir)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.TraceID)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result CompilationResult
	require.NoError(t, json.Unmarshal(data, &result))

	require.Len(t, result.Declarations, 2)
	assert.Empty(t, result.Skipped)
	for _, decl := range result.Declarations {
		assert.Len(t, decl.Digest, 64)
		assert.NotEmpty(t, decl.Declaration["identifier"])
	}
}

func TestCompileValidSchemasText(t *testing.T) {
	dir := writeSchemas(t, map[string]string{"schema.cue": validSchema})

	buf, err := runCompileCommand(t, "text", dir)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Compiled 2 declaration(s)")
	assert.Contains(t, output, "enumeration")
	assert.Contains(t, output, "callback_function")
}

func TestCompileUsesManifestModuleAndHints(t *testing.T) {
	dir := writeSchemas(t, map[string]string{
		"schema.cue":    validSchema,
		"manifest.yaml": "module: core\nhints:\n  impl: fast\n",
	})

	buf, err := runCompileCommand(t, "json", dir)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result CompilationResult
	require.NoError(t, json.Unmarshal(data, &result))

	assert.Equal(t, "core", result.Module)
	require.NotEmpty(t, result.Declarations)
	first := result.Declarations[0].Declaration
	assert.Equal(t, []any{"core"}, first["modules"])
	hints, ok := first["hints"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fast", hints["impl"])
}

func TestCompileSkipsInvalidDeclarations(t *testing.T) {
	dir := writeSchemas(t, map[string]string{"schema.cue": `package schemas

declarations: {
	Good: {
		kind: "enumeration"
		values: ["a"]
	}
	Bad: {
		kind: "enumeration"
		values: ["x", "x"]
	}
}
`})

	buf, err := runCompileCommand(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	output := buf.String()
	assert.Contains(t, output, "Compiled 1 declaration(s)")
	assert.Contains(t, output, `Skipped "Bad"`)
}

func TestCompileNonExistentDirectory(t *testing.T) {
	buf, err := runCompileCommand(t, "text", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "not found")
}

func TestCompileEmptyDirectory(t *testing.T) {
	buf, err := runCompileCommand(t, "text", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "no CUE files found")
}

func TestCompileWritesOutputFile(t *testing.T) {
	dir := writeSchemas(t, map[string]string{"schema.cue": validSchema})
	outPath := filepath.Join(t.TempDir(), "out.json")

	_, err := runCompileCommand(t, "json", dir, "--output", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var result CompilationResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Len(t, result.Declarations, 2)
}
