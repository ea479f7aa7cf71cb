package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifestMissingFileDefaultsToDirName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "geometry")
	require.NoError(t, os.Mkdir(dir, 0o755))

	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "geometry", m.Module)
	assert.Empty(t, m.Hints)
}

func TestLoadManifestParsesModuleAndHints(t *testing.T) {
	dir := t.TempDir()
	manifest := `
module: core
hints:
  impl: fast
  target: v8
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644))

	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "core", m.Module)
	assert.Equal(t, map[string]string{"impl": "fast", "target": "v8"}, m.Hints)
}

func TestLoadManifestEmptyModuleFallsBack(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fallback")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte("hints: {impl: x}\n"), 0o644))

	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "fallback", m.Module)
}

func TestLoadManifestMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte("module: [unclosed"), 0o644))

	_, err := LoadManifest(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestApplyHintDefaults(t *testing.T) {
	m := &Manifest{Hints: map[string]string{"impl": "default", "target": "v8"}}

	// declaration's own hint wins
	hints := m.ApplyHintDefaults(map[string]string{"impl": "custom"})
	assert.Equal(t, "custom", hints["impl"])
	assert.Equal(t, "v8", hints["target"])

	// nil input gets all defaults
	hints = m.ApplyHintDefaults(nil)
	assert.Equal(t, map[string]string{"impl": "default", "target": "v8"}, hints)

	// no defaults passes through untouched
	empty := &Manifest{}
	assert.Nil(t, empty.ApplyHintDefaults(nil))
}
