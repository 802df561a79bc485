package propgen

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/cmmoran/propgen/internal/generator"
)

var ErrMissingType = errors.New("target type is required")

// Options control parsing and generation.
//
// InFile      – property declaration file to read
// OutFile     – generated Go file; defaults to <InFile without ext>_props.go
// Package     – package clause of OutFile; resolved from its directory when empty
// PackagePath – import path of that package; resolved alongside Package
// Type        – receiver type of the generated methods (required)
// Receiver    – receiver identifier used by get/set fragments (default: first letter of Type, lowered)
// Host        – import path of the host object system package
// Imports     – package alias → import path for object(...) element types
// FixImports  – run goimports over the rendered file so fragments may use any package
type Options struct {
	InFile      string            `json:"in_file,omitempty" yaml:"in_file,omitempty" toml:"in_file,omitempty" mapstructure:"in_file,omitempty"`
	OutFile     string            `json:"out_file,omitempty" yaml:"out_file,omitempty" toml:"out_file,omitempty" mapstructure:"out_file,omitempty"`
	Package     string            `json:"package,omitempty" yaml:"package,omitempty" toml:"package,omitempty" mapstructure:"package,omitempty"`
	PackagePath string            `json:"package_path,omitempty" yaml:"package_path,omitempty" toml:"package_path,omitempty" mapstructure:"package_path,omitempty"`
	Type        string            `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty" mapstructure:"type,omitempty"`
	Receiver    string            `json:"receiver,omitempty" yaml:"receiver,omitempty" toml:"receiver,omitempty" mapstructure:"receiver,omitempty"`
	Host        string            `json:"host,omitempty" yaml:"host,omitempty" toml:"host,omitempty" mapstructure:"host,omitempty"`
	Imports     map[string]string `json:"imports,omitempty" yaml:"imports,omitempty" toml:"imports,omitempty" mapstructure:"imports,omitempty"`
	FixImports  bool              `json:"fix_imports,omitempty" yaml:"fix_imports,omitempty" toml:"fix_imports,omitempty" mapstructure:"fix_imports,omitempty"`
}

// NewOptions returns options with the default host and goimports enabled.
func NewOptions() *Options {
	return &Options{
		Host:       generator.DefaultHost,
		Imports:    map[string]string{},
		FixImports: true,
	}
}

// Normalize fills defaults and validates the options.
func (o *Options) Normalize() error {
	if strings.TrimSpace(o.Type) == "" {
		return ErrMissingType
	}
	if o.Host == "" {
		o.Host = generator.DefaultHost
	}
	if o.Imports == nil {
		o.Imports = map[string]string{}
	}
	if o.Receiver == "" {
		r := []rune(o.Type)
		o.Receiver = string(unicode.ToLower(r[0]))
	}
	if o.OutFile == "" && o.InFile != "" {
		o.OutFile = strings.TrimSuffix(o.InFile, filepath.Ext(o.InFile)) + "_props.go"
	}
	return nil
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithInFile(f string) Option      { return func(o *Options) { o.InFile = f } }
func WithOutFile(f string) Option     { return func(o *Options) { o.OutFile = f } }
func WithPackage(name string) Option  { return func(o *Options) { o.Package = name } }
func WithPackagePath(p string) Option { return func(o *Options) { o.PackagePath = p } }
func WithType(t string) Option        { return func(o *Options) { o.Type = t } }
func WithReceiver(r string) Option    { return func(o *Options) { o.Receiver = r } }
func WithHost(h string) Option        { return func(o *Options) { o.Host = h } }
func WithImport(alias, path string) Option {
	return func(o *Options) {
		if o.Imports == nil {
			o.Imports = map[string]string{}
		}
		o.Imports[alias] = path
	}
}
func WithoutFixImports() Option { return func(o *Options) { o.FixImports = false } }
