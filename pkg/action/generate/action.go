package generate

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cmmoran/propgen/pkg/manifest"
	"github.com/cmmoran/propgen/pkg/propgen"
)

// Generate parses opts.InFile and writes the generated file. The output is
// rendered in memory first, so a failed run leaves no file behind. When
// manifestPath is set the run is recorded there.
func Generate(opts *propgen.Options, manifestPath string) (string, error) {
	p, err := propgen.NewWithOpts(opts)
	if err != nil {
		return "", err
	}
	if err = p.Parse(); err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err = p.Render(buf); err != nil {
		return "", err
	}

	outFile := filepath.Clean(p.Opts.OutFile)
	if err = os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err = os.WriteFile(outFile, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outFile, err)
	}
	slog.With("in", p.Opts.InFile, "out", outFile, "properties", len(p.Properties)).Info("generated properties")

	if manifestPath != "" {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return "", err
		}
		m.Add(p.Opts)
		if err = m.Save(manifestPath); err != nil {
			return "", err
		}
	}

	return outFile, nil
}
