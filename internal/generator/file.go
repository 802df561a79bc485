package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/propgen/internal/model"
)

// Target names the object the generated procedures belong to.
type Target struct {
	PkgName  string // package clause of the generated file
	PkgPath  string // import path of that package; may be empty
	TypeName string // receiver type, e.g. "MyObject"
	Receiver string // receiver identifier visible to get/set fragments
	Source   string // input file, for the header comment
}

// Generate numbers props 1..N in declaration order and generates each one.
// Flag conflicts are collected across all properties and returned together;
// any other error stops generation immediately. Nothing is returned on error.
func (g *Generator) Generate(props []*model.Property) ([]*Output, error) {
	var (
		outs      = make([]*Output, 0, len(props))
		conflicts []error
		seen      = make(map[string]int, len(props))
	)
	for i, prop := range props {
		id := i + 1
		if first, ok := seen[prop.Name]; ok {
			slog.With("property", prop.Name, "id", id, "first", first).Warn("property name declared more than once")
		} else {
			seen[prop.Name] = id
		}
		out, err := g.Property(id, prop)
		if errors.Is(err, model.ErrFlagConflict) {
			conflicts = append(conflicts, err)
			continue
		}
		if err != nil {
			return nil, err
		}
		outs = append(outs, out)
	}
	if len(conflicts) > 0 {
		return nil, errors.Join(conflicts...)
	}
	return outs, nil
}

// File renders the registry, getter and setter for t.
func (g *Generator) File(t Target, outs []*Output) *jen.File {
	var f *jen.File
	if t.PkgPath != "" {
		f = jen.NewFilePathName(t.PkgPath, t.PkgName)
	} else {
		f = jen.NewFile(t.PkgName)
	}
	f.HeaderComment(fmt.Sprintf("Code generated by propgen from %s. DO NOT EDIT.", t.Source))

	host := g.cfg.Host
	paramSpecs := func() *jen.Statement {
		return jen.Index().Op("*").Qual(host, "ParamSpec")
	}
	recv := func() *jen.Statement {
		return jen.Id(t.Receiver).Op("*").Id(t.TypeName)
	}
	registry := registryName(t.TypeName)

	f.Var().Id(registry).Op("=").Qual("sync", "OnceValue").Call(
		jen.Func().Params().Add(paramSpecs()).Block(
			jen.Return(paramSpecs().CustomFunc(jen.Options{
				Open:      "{",
				Close:     "}",
				Separator: ",",
				Multi:     true,
			}, func(grp *jen.Group) {
				for _, out := range outs {
					grp.Add(out.Descriptor)
				}
			})),
		),
	)

	f.Comment(fmt.Sprintf("Properties returns the param specs of %s, in property id order.", t.TypeName))
	f.Func().Params(recv()).Id("Properties").Params().Add(paramSpecs()).Block(
		jen.Return(jen.Id(registry).Call()),
	)

	f.Func().Params(recv()).Id("Property").Params(
		jen.Id("object").Op("*").Qual(host, "Object"),
		jen.Id("id").Uint(),
		jen.Id("pspec").Op("*").Qual(host, "ParamSpec"),
	).Op("*").Qual(host, "Value").Block(
		dispatch(outs, func(out *Output) *Arm { return out.Getter }),
	)

	f.Func().Params(recv()).Id("SetProperty").Params(
		jen.Id("object").Op("*").Qual(host, "Object"),
		jen.Id("id").Uint(),
		jen.Id("value").Op("*").Qual(host, "Value"),
		jen.Id("pspec").Op("*").Qual(host, "ParamSpec"),
	).Block(
		dispatch(outs, func(out *Output) *Arm { return out.Setter }),
	)

	return f
}

func dispatch(outs []*Output, pick func(*Output) *Arm) jen.Code {
	return jen.Switch(jen.Id("id")).BlockFunc(func(grp *jen.Group) {
		for _, out := range outs {
			if arm := pick(out); arm != nil {
				grp.Add(arm.Code())
			}
		}
		grp.Default().Block(jen.Panic(jen.Lit("not implemented")))
	})
}

func registryName(typeName string) string {
	if typeName == "" {
		return "properties"
	}
	r := []rune(typeName)
	r[0] = unicode.ToLower(r[0])
	return string(r) + "Properties"
}
