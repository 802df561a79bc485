package generator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/propgen/internal/model"
)

// primitiveTags map a declaration tag to the suffix of its host constructor.
var primitiveTags = map[string]string{
	"boolean": "Boolean",
	"char":    "Char",
	"double":  "Double",
	"float":   "Float",
	"int":     "Int",
	"int64":   "Int64",
	"long":    "Long",
	"string":  "String",
}

// builderStep is a `key = value` argument turned into a builder call.
type builderStep struct {
	method string
	value  model.Literal
}

// paramSpec accumulates everything needed to render one descriptor. It is
// built from a property, amended by flag inference and consumed once by
// generate.
type paramSpec struct {
	host    string
	name    string
	builder *jen.Statement
	steps   []builderStep
	flags   []flagEntry
	docs    string
}

func (g *Generator) newParamSpec(prop *model.Property) (*paramSpec, error) {
	decl := prop.Head.Declaration
	ps := &paramSpec{
		host: g.cfg.Host,
		name: prop.Name,
		docs: strings.TrimSpace(strings.Join(prop.Head.Doc, "\n")),
	}

	args := append([]model.DeclarationArg(nil), decl.Args...)

	tag := decl.Tag.String()
	switch {
	case primitiveTags[tag] != "":
		ps.builder = jen.Qual(g.cfg.Host, "NewParamSpec"+primitiveTags[tag]).Call(jen.Lit(prop.Name))
	case tag == "object":
		if len(args) == 0 {
			return nil, model.Errorf(decl.Tag.Pos, model.ErrObjectType,
				"property of type 'object' requires an object type as first argument")
		}
		objType, ok := args[0].(*model.TagArg)
		if !ok {
			return nil, model.Errorf(args[0].Position(), model.ErrObjectType, "expected object type, not key/value")
		}
		args = args[1:]
		ps.builder = jen.Qual(g.cfg.Host, "NewParamSpecObject").Call(
			jen.Lit(prop.Name),
			jen.Qual(g.cfg.Host, "TypeFor").Types(g.typeRef(objType.Path)).Call(),
		)
	default:
		return nil, model.Errorf(decl.Tag.Pos, model.ErrUnimplementedTag, "not yet implemented: %s", tag)
	}

	for _, arg := range args {
		switch a := arg.(type) {
		case *model.TagArg:
			f, err := ParseFlag(a.Path)
			if err != nil {
				return nil, err
			}
			ps.flags = append(ps.flags, flagEntry{flag: f, source: FlagSource{Explicit: true, Path: a.Path}})
		case *model.KeyValArg:
			ps.steps = append(ps.steps, builderStep{method: methodName(a.Key), value: a.Value})
		}
	}

	return ps, nil
}

// typeRef resolves an object element type. `Name` is a type of the generated
// package; `alias.Name` is qualified through the configured import map and
// left as written when the alias is unknown.
func (g *Generator) typeRef(path model.Path) jen.Code {
	segs := path.Segments
	if len(segs) == 1 {
		return jen.Id(segs[0])
	}
	name := strings.Join(segs[1:], ".")
	if pkgPath, ok := g.cfg.Imports[segs[0]]; ok {
		return jen.Qual(pkgPath, name)
	}
	return jen.Id(segs[0]).Dot(name)
}

// flagReadOnly applies the implied flag of a property with only a get block.
func (ps *paramSpec) flagReadOnly() error {
	if err := ps.checkConflict("set", FlagWritable, FlagReadwrite, FlagConstruct, FlagConstructOnly); err != nil {
		return err
	}
	ps.flags = append(ps.flags, flagEntry{flag: FlagReadable})
	return nil
}

// flagWriteOnly applies the implied flag of a property with only a set block.
func (ps *paramSpec) flagWriteOnly() error {
	if err := ps.checkConflict("get", FlagReadable, FlagReadwrite); err != nil {
		return err
	}
	ps.flags = append(ps.flags, flagEntry{flag: FlagWritable})
	return nil
}

// flagReadWrite never conflicts: explicit flags are kept alongside readwrite.
func (ps *paramSpec) flagReadWrite() {
	ps.flags = append(ps.flags, flagEntry{flag: FlagReadwrite})
}

func (ps *paramSpec) checkConflict(missing string, conflicting ...Flag) error {
	for _, e := range ps.flags {
		for _, c := range conflicting {
			if e.flag != c {
				continue
			}
			if !e.source.Explicit {
				return nil
			}
			name := e.source.Path.String()
			return &model.Error{
				Pos:  e.source.Path.Pos,
				Msg:  fmt.Sprintf("property %q is marked %s, but does not have a '%s' block", ps.name, name, missing),
				Help: fmt.Sprintf("remove %q flag, or add a '%s' block below", name, missing),
				Err:  model.ErrFlagConflict,
			}
		}
	}
	return nil
}

// generate renders builder, flags, blurb, custom steps and build, in that
// order, and reports the flags that were rendered.
func (ps *paramSpec) generate() (*jen.Statement, []Flag) {
	expr := ps.builder
	flags := dedupeFlags(ps.flags)
	if len(flags) > 0 {
		expr.Dot("Flags").Call(flagsExpr(ps.host, flags))
	}
	if ps.docs != "" {
		expr.Dot("Blurb").Call(jen.Lit(ps.docs))
	}
	for _, step := range ps.steps {
		expr.Dot(step.method).Call(jen.Op(step.value.Value))
	}
	expr.Dot("Build").Call()
	return expr, flags
}

// methodName turns a snake_case key into an exported method name.
func methodName(key model.Path) string {
	var b strings.Builder
	for _, seg := range key.Segments {
		for _, part := range strings.Split(seg, "_") {
			if part == "" {
				continue
			}
			r := []rune(part)
			r[0] = unicode.ToUpper(r[0])
			b.WriteString(string(r))
		}
	}
	return b.String()
}
