// Package generator turns parsed property declarations into param-spec
// descriptors and get/set dispatch arms for a GObject-style host.
package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/propgen/internal/model"
)

// DefaultHost is the import path of the host object system package.
const DefaultHost = "github.com/diamondburned/gotk4/pkg/core/glib"

// Config controls how descriptors reference the host.
//
// Host    – import path providing ParamSpec builders, flags, Object and Value.
// Imports – package alias → import path, used to qualify object element types.
type Config struct {
	Host    string
	Imports map[string]string
}

// Generator renders properties. It holds no per-property state.
type Generator struct {
	cfg Config
}

// New returns a Generator for cfg, defaulting Host to DefaultHost.
func New(cfg Config) *Generator {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Imports == nil {
		cfg.Imports = map[string]string{}
	}
	return &Generator{cfg: cfg}
}

// Output is everything generated for one property.
type Output struct {
	ID         int
	Name       string
	Descriptor *jen.Statement
	Flags      []Flag // rendered flags, deduplicated, in order
	Getter     *Arm
	Setter     *Arm
}

// Property generates the descriptor and dispatch arms of prop, keyed by id.
func (g *Generator) Property(id int, prop *model.Property) (*Output, error) {
	ps, err := g.newParamSpec(prop)
	if err != nil {
		return nil, err
	}

	var getter, setter *Arm
	for _, block := range prop.Blocks {
		switch block.Name {
		case "get":
			if getter != nil {
				return nil, model.Errorf(block.NamePos, model.ErrDuplicateBlock, "duplicate get")
			}
			getter = &Arm{ID: id, Kind: ArmGet, Body: block.Body}
		case "set":
			if setter != nil {
				return nil, model.Errorf(block.NamePos, model.ErrDuplicateBlock, "duplicate set")
			}
			setter = &Arm{ID: id, Kind: ArmSet, Body: block.Body}
		default:
			return nil, model.Errorf(block.NamePos, model.ErrUnsupportedBlock, "unsupported block: %s", block.Name)
		}
	}

	switch {
	case getter != nil && setter == nil:
		err = ps.flagReadOnly()
	case getter == nil && setter != nil:
		err = ps.flagWriteOnly()
	case getter != nil && setter != nil:
		ps.flagReadWrite()
	default:
		return nil, model.Errorf(prop.NamePos, model.ErrMissingBlock, "at least one block ('get' or 'set') is required")
	}
	if err != nil {
		return nil, err
	}

	descriptor, flags := ps.generate()
	return &Output{
		ID:         id,
		Name:       prop.Name,
		Descriptor: descriptor,
		Flags:      flags,
		Getter:     getter,
		Setter:     setter,
	}, nil
}
