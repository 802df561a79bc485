package check

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/propgen/pkg/manifest"
	"github.com/cmmoran/propgen/pkg/propgen"
)

// ErrStale is returned when a generated file differs from what propgen
// would generate now.
var ErrStale = errors.New("generated file is out of date")

// Check regenerates opts.OutFile in memory and diffs it against the file on
// disk. A missing file counts as empty.
func Check(opts *propgen.Options) (string, error) {
	p, err := propgen.NewWithOpts(opts)
	if err != nil {
		return "", err
	}
	if err = p.Parse(); err != nil {
		return "", err
	}
	want := new(bytes.Buffer)
	if err = p.Render(want); err != nil {
		return "", err
	}

	outFile := filepath.Clean(p.Opts.OutFile)
	got, err := os.ReadFile(outFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("read %s: %w", outFile, err)
	}

	if diff := cmp.Diff(string(got), want.String()); diff != "" {
		return diff, fmt.Errorf("%s: %w", outFile, ErrStale)
	}
	return "", nil
}

// CheckManifest checks every file recorded in the manifest at manifestPath.
// It returns the diff of each stale file keyed by output path.
func CheckManifest(manifestPath string) (map[string]string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}
	if len(m.Generated) == 0 {
		return nil, fmt.Errorf("no generated files recorded in %s", manifestPath)
	}

	var (
		diffs = make(map[string]string)
		errs  []error
	)
	for _, entry := range m.Generated {
		opts := entry
		diff, err := Check(&opts)
		if diff != "" {
			diffs[opts.OutFile] = diff
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return diffs, errors.Join(errs...)
}
