package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes a schema directory: the module name its
// declarations originate from and generator-hint defaults applied to
// every declaration that does not set the hint itself.
type Manifest struct {
	// Module is the originating-module name for all declarations in
	// the directory. Defaults to the directory basename.
	Module string `yaml:"module"`

	// Hints are default generator hints. A declaration's own hint for
	// the same key wins.
	Hints map[string]string `yaml:"hints,omitempty"`
}

// manifestFileName is looked up in the schema directory root.
const manifestFileName = "manifest.yaml"

// LoadManifest reads the directory manifest if present. A missing
// manifest is not an error: the module name falls back to the
// directory basename and no default hints apply.
func LoadManifest(dir string) (*Manifest, error) {
	m := &Manifest{Module: filepath.Base(dir)}

	path := filepath.Join(dir, manifestFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if m.Module == "" {
		m.Module = filepath.Base(dir)
	}
	return m, nil
}

// ApplyHintDefaults merges the manifest's default hints into a raw hint
// map, without overriding keys the declaration set itself.
func (m *Manifest) ApplyHintDefaults(hints map[string]string) map[string]string {
	if len(m.Hints) == 0 {
		return hints
	}
	if hints == nil {
		hints = make(map[string]string, len(m.Hints))
	}
	for k, v := range m.Hints {
		if _, ok := hints[k]; !ok {
			hints[k] = v
		}
	}
	return hints
}
