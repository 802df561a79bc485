package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cmmoran/propgen/pkg/propgen"
)

// DefaultPath is where the manifest is kept when no path is given.
const DefaultPath = "propgen.manifest.yaml"

// Manifest records every file generated by propgen together with the options
// that produced it, so the whole set can be regenerated or checked.
type Manifest struct {
	Generated []propgen.Options `yaml:"generated" json:"generated"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// Add records the options of a generated file, replacing any entry that
// writes the same output file.
func (m *Manifest) Add(opts propgen.Options) {
	for i := range m.Generated {
		if filepath.Clean(m.Generated[i].OutFile) == filepath.Clean(opts.OutFile) {
			m.Generated[i] = opts
			return
		}
	}

	m.Generated = append(m.Generated, opts)
}

// Lookup returns the entry that writes out, if present.
func (m *Manifest) Lookup(out string) (propgen.Options, bool) {
	for _, o := range m.Generated {
		if filepath.Clean(o.OutFile) == filepath.Clean(out) {
			return o, true
		}
	}
	return propgen.Options{}, false
}
