package model

import (
	"go/token"
	"strings"
)

// Property is one declared attribute of a host object:
//
//	/// blurb
//	#[string(construct, nick = "Name")]
//	"name" => { get { … } set { … } }
type Property struct {
	Head    Head           `yaml:"head"`
	Name    string         `yaml:"name"` // unquoted property name
	NamePos token.Position `yaml:"-"`
	Arrow   token.Position `yaml:"-"`
	Blocks  []*Block       `yaml:"blocks"`
}

// Head holds the documentation lines and the single type declaration that
// precede a property name.
type Head struct {
	Doc         []string     `yaml:"doc,omitempty"`
	Declaration *Declaration `yaml:"declaration"`
}

// Declaration is the non-doc attribute of a property, e.g. `#[object(gtk.Button)]`.
type Declaration struct {
	Tag  Path             `yaml:"tag"`
	Args []DeclarationArg `yaml:"args,omitempty"`
}

// DeclarationArg is either a *TagArg or a *KeyValArg. Whether a tag names a
// flag or a type is decided by the generator from its position.
type DeclarationArg interface {
	argNode()
	Position() token.Position
}

// TagArg is a bare path argument: a flag name, or the element type of an
// object declaration when it comes first.
type TagArg struct {
	Path Path `yaml:"tag"`
}

// KeyValArg is a `key = literal` argument, rendered as a builder call.
type KeyValArg struct {
	Key   Path    `yaml:"key"`
	Value Literal `yaml:"value"`
}

func (*TagArg) argNode()    {}
func (*KeyValArg) argNode() {}

func (a *TagArg) Position() token.Position    { return a.Path.Pos }
func (a *KeyValArg) Position() token.Position { return a.Key.Pos }

// Path is a dotted identifier path.
type Path struct {
	Segments []string
	Pos      token.Position
}

func (p Path) String() string {
	return strings.Join(p.Segments, ".")
}

func (p Path) MarshalYAML() (any, error) {
	return p.String(), nil
}

// Literal keeps the literal exactly as written so it can be spliced back.
type Literal struct {
	Kind  token.Token
	Value string
	Pos   token.Position
}

func (l Literal) MarshalYAML() (any, error) {
	return l.Value, nil
}

// Block is a named accessor fragment. Only "get" and "set" are meaningful;
// the parser accepts any identifier.
type Block struct {
	Name    string         `yaml:"name"`
	NamePos token.Position `yaml:"-"`
	Body    Fragment       `yaml:"body"`
}

// Fragment is an opaque piece of Go code carried through verbatim.
type Fragment struct {
	Text string         `yaml:"text"`
	Pos  token.Position `yaml:"-"` // position of the first byte of Text
}
