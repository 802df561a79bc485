// Package propgen generates GObject-style property registration for a Go
// type from a property declaration file.
//
// A declaration file lists properties, each with optional documentation, a
// type declaration and get/set fragments of Go code:
//
//	/// Name of this object
//	#[string(construct, explicit_notify, nick = "Object Name")]
//	"name" => {
//		get { o.name.Value() }
//		set { o.setName(value) }
//	}
//
// The generated file holds the lazily built descriptor list and the Property
// and SetProperty dispatchers, keyed by 1-based declaration order.
package propgen

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/cmmoran/propgen/internal/generator"
	"github.com/cmmoran/propgen/internal/model"
	"github.com/cmmoran/propgen/internal/parser"
)

// Propgen holds the state of one generation run.
type Propgen struct {
	Opts Options

	Properties []*model.Property

	source string
	log    *slog.Logger
}

// New builds a Propgen from functional options.
func New(opts ...Option) (*Propgen, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

// NewWithOpts normalizes opts and builds a Propgen from them.
func NewWithOpts(opts *Options) (*Propgen, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	return &Propgen{
		Opts:       *opts,
		Properties: make([]*model.Property, 0),
		log:        slog.Default().With("type", opts.Type),
	}, nil
}

// Parse reads and parses Opts.InFile.
func (p *Propgen) Parse() error {
	props, err := parser.ParseFile(p.Opts.InFile)
	if err != nil {
		return err
	}
	p.Properties = props
	p.source = filepath.Base(p.Opts.InFile)
	p.log.With("file", p.Opts.InFile, "properties", len(props)).Debug("parsed property file")
	return nil
}

// ParseSource parses declarations held in memory; name is used in positions.
func (p *Propgen) ParseSource(name string, src []byte) error {
	props, err := parser.Parse(name, src)
	if err != nil {
		return err
	}
	p.Properties = props
	p.source = filepath.Base(name)
	return nil
}

// GenerateFile generates the output file for the parsed properties.
func (p *Propgen) GenerateFile() (*jen.File, error) {
	if err := p.resolveTarget(); err != nil {
		return nil, fmt.Errorf("resolve target package: %w", err)
	}
	g := generator.New(generator.Config{
		Host:    p.Opts.Host,
		Imports: p.Opts.Imports,
	})
	outs, err := g.Generate(p.Properties)
	if err != nil {
		return nil, err
	}
	return g.File(generator.Target{
		PkgName:  p.Opts.Package,
		PkgPath:  p.Opts.PackagePath,
		TypeName: p.Opts.Type,
		Receiver: p.Opts.Receiver,
		Source:   p.source,
	}, outs), nil
}

// Render writes the generated Go source to w.
func (p *Propgen) Render(w io.Writer) error {
	f, err := p.GenerateFile()
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	if err = f.Render(buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	src := buf.Bytes()
	if p.Opts.FixImports {
		filename := p.Opts.OutFile
		if filename == "" {
			filename = "props_gen.go"
		}
		if src, err = imports.Process(filename, src, nil); err != nil {
			return fmt.Errorf("fix imports: %w", err)
		}
	}
	_, err = w.Write(src)
	return err
}
