package generator

import (
	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/propgen/internal/model"
)

// Flag mirrors the host object system's param flags.
type Flag uint8

const (
	FlagReadable Flag = iota
	FlagWritable
	FlagReadwrite
	FlagConstruct
	FlagConstructOnly
	FlagLaxValidation
	FlagStaticName
	FlagPrivate
	FlagStaticNick
	FlagStaticBlurb
	FlagExplicitNotify
	FlagDeprecated
)

var flagNames = [...]string{
	FlagReadable:       "readable",
	FlagWritable:       "writable",
	FlagReadwrite:      "readwrite",
	FlagConstruct:      "construct",
	FlagConstructOnly:  "construct_only",
	FlagLaxValidation:  "lax_validation",
	FlagStaticName:     "static_name",
	FlagPrivate:        "private",
	FlagStaticNick:     "static_nick",
	FlagStaticBlurb:    "static_blurb",
	FlagExplicitNotify: "explicit_notify",
	FlagDeprecated:     "deprecated",
}

// hostFlags are the constant names in the host package.
var hostFlags = [...]string{
	FlagReadable:       "ParamReadable",
	FlagWritable:       "ParamWritable",
	FlagReadwrite:      "ParamReadwrite",
	FlagConstruct:      "ParamConstruct",
	FlagConstructOnly:  "ParamConstructOnly",
	FlagLaxValidation:  "ParamLaxValidation",
	FlagStaticName:     "ParamStaticName",
	FlagPrivate:        "ParamPrivate",
	FlagStaticNick:     "ParamStaticNick",
	FlagStaticBlurb:    "ParamStaticBlurb",
	FlagExplicitNotify: "ParamExplicitNotify",
	FlagDeprecated:     "ParamDeprecated",
}

var flagsByName = func() map[string]Flag {
	m := make(map[string]Flag, len(flagNames))
	for f, name := range flagNames {
		m[name] = Flag(f)
	}
	return m
}()

// String returns the flag as it is written in a declaration.
func (f Flag) String() string {
	if int(f) < len(flagNames) {
		return flagNames[f]
	}
	return "unknown"
}

// HostName returns the host package constant for f.
func (f Flag) HostName() string {
	return hostFlags[f]
}

// ParseFlag resolves a declaration tag to a Flag.
func ParseFlag(path model.Path) (Flag, error) {
	if f, ok := flagsByName[path.String()]; ok {
		return f, nil
	}
	return 0, model.Errorf(path.Pos, model.ErrUnsupportedFlag, "unsupported flag: %s", path)
}

// FlagSource records where a flag came from. Explicit flags keep their path
// for diagnostics; implied flags come from the get/set blocks present.
type FlagSource struct {
	Explicit bool
	Path     model.Path
}

type flagEntry struct {
	flag   Flag
	source FlagSource
}

// dedupeFlags keeps the first occurrence of each flag.
func dedupeFlags(entries []flagEntry) []Flag {
	seen := make(map[Flag]bool, len(entries))
	out := make([]Flag, 0, len(entries))
	for _, e := range entries {
		if seen[e.flag] {
			continue
		}
		seen[e.flag] = true
		out = append(out, e.flag)
	}
	return out
}

// flagsExpr renders flags as a bitwise OR of host constants.
func flagsExpr(host string, flags []Flag) *jen.Statement {
	var expr *jen.Statement
	for _, f := range flags {
		if expr == nil {
			expr = jen.Qual(host, f.HostName())
			continue
		}
		expr.Op("|").Qual(host, f.HostName())
	}
	return expr
}
