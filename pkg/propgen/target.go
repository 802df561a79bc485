package propgen

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/tools/go/packages"
)

// resolveTarget fills Package and PackagePath from the directory OutFile
// lives in: first by asking the go tool, then from the enclosing go.mod.
func (p *Propgen) resolveTarget() error {
	if p.Opts.Package != "" {
		return nil
	}
	dir := "."
	if p.Opts.OutFile != "" {
		dir = filepath.Dir(p.Opts.OutFile)
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	l := p.log.With("dir", dir)

	pkgs, err := packages.Load(&packages.Config{Mode: packages.NeedName, Dir: dir}, ".")
	if err == nil && len(pkgs) == 1 && pkgs[0].Name != "" {
		p.Opts.Package, p.Opts.PackagePath = pkgs[0].Name, pkgs[0].PkgPath
		l.With("package", p.Opts.Package, "path", p.Opts.PackagePath).Debug("resolved target package")
		return nil
	}

	pkgPath, err := modulePackagePath(dir)
	if err != nil {
		l.With("error", err).Debug("no module for target directory")
		p.Opts.Package = packageName(filepath.Base(dir))
		return nil
	}
	p.Opts.PackagePath = pkgPath
	if prefix, _, ok := module.SplitPathVersion(pkgPath); ok {
		pkgPath = prefix
	}
	p.Opts.Package = packageName(path.Base(pkgPath))
	l.With("package", p.Opts.Package, "path", p.Opts.PackagePath).Debug("resolved target package from go.mod")
	return nil
}

// modulePackagePath joins the enclosing module path with dir's location in it.
func modulePackagePath(dir string) (string, error) {
	modDir, err := findGoModDir(dir)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(modDir, "go.mod"))
	if err != nil {
		return "", err
	}
	modPath := modfile.ModulePath(data)
	if modPath == "" {
		return "", fmt.Errorf("no module directive in %s", filepath.Join(modDir, "go.mod"))
	}
	rel, err := filepath.Rel(modDir, dir)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return modPath, nil
	}
	return path.Join(modPath, filepath.ToSlash(rel)), nil
}

// findGoModDir walks up from dir until it finds go.mod.
func findGoModDir(from string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(from, "go.mod")); err == nil {
			return from, nil
		}
		parent := filepath.Dir(from)
		if parent == from {
			return "", fmt.Errorf("no go.mod found")
		}
		from = parent
	}
}

func packageName(base string) string {
	name := strings.Map(func(r rune) rune {
		if r == '-' || r == '.' {
			return '_'
		}
		return r
	}, base)
	if name == "" || name == "/" {
		return "main"
	}
	return name
}
