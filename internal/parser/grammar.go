package parser

import (
	"fmt"
	"go/token"
	"os"
	"strconv"
	"strings"

	"github.com/cmmoran/propgen/internal/model"
)

// ParseFile reads and parses the property file at path.
func ParseFile(path string) ([]*model.Property, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(path, src)
}

// Parse turns src into the ordered list of declared properties. The first
// malformed construct aborts parsing; no partial result is returned.
func Parse(filename string, src []byte) ([]*model.Property, error) {
	p := &grammar{lx: newLexer(token.NewFileSet(), filename, src)}
	if err := p.lx.next(); err != nil {
		return nil, err
	}
	return p.properties()
}

// grammar is a recursive-descent parser over the lexer's token stream.
type grammar struct {
	lx *lexer
}

func (p *grammar) tok() token.Token { return p.lx.cur.tok }
func (p *grammar) lit() string      { return p.lx.cur.lit }
func (p *grammar) pos() token.Position {
	return p.lx.position(p.lx.cur.pos)
}

func (p *grammar) errorf(format string, args ...any) error {
	return model.Errorf(p.pos(), model.ErrSyntax, format, args...)
}

func (p *grammar) unexpected(what string) error {
	found := p.tok().String()
	switch {
	case p.tok() == token.EOF:
		found = "EOF"
	case p.lit() != "" && p.lit() != "\n":
		found = p.lit()
	}
	return p.errorf("expected %s, found '%s'", what, found)
}

// expect consumes tok or fails.
func (p *grammar) expect(tok token.Token) (item, error) {
	it := p.lx.cur
	if it.tok != tok {
		return it, p.unexpected("'" + tok.String() + "'")
	}
	return it, p.lx.next()
}

// separator consumes one optional ',' or ';'.
func (p *grammar) separator() error {
	if p.tok() == token.COMMA || (p.tok() == token.SEMICOLON && p.lit() == ";") {
		return p.lx.next()
	}
	return nil
}

func (p *grammar) properties() ([]*model.Property, error) {
	props := make([]*model.Property, 0)
	for p.tok() != token.EOF {
		prop, err := p.property()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
		if err = p.separator(); err != nil {
			return nil, err
		}
	}
	return props, nil
}

func (p *grammar) property() (*model.Property, error) {
	head, err := p.head()
	if err != nil {
		return nil, err
	}
	prop := &model.Property{Head: head, NamePos: p.pos()}
	if prop.Name, err = p.stringLit("property name"); err != nil {
		return nil, err
	}
	if prop.Arrow, err = p.arrow(); err != nil {
		return nil, err
	}
	if _, err = p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	for p.tok() != token.RBRACE {
		if p.tok() == token.EOF {
			return nil, p.unexpected("'}'")
		}
		block, err := p.block()
		if err != nil {
			return nil, err
		}
		prop.Blocks = append(prop.Blocks, block)
		if err = p.separator(); err != nil {
			return nil, err
		}
	}
	if _, err = p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return prop, nil
}

func (p *grammar) arrow() (token.Position, error) {
	at := p.pos()
	eq := p.lx.cur
	if eq.tok != token.ASSIGN {
		return at, p.unexpected("'=>'")
	}
	if err := p.lx.next(); err != nil {
		return at, err
	}
	if p.tok() != token.GTR || p.lx.cur.pos != eq.pos+1 {
		return at, p.unexpected("'=>'")
	}
	return at, p.lx.next()
}

// head parses doc attributes and the single declaration attribute.
func (p *grammar) head() (model.Head, error) {
	var head model.Head
	for {
		switch {
		case p.tok() == token.COMMENT:
			head.Doc = append(head.Doc, strings.TrimPrefix(p.lit(), "///"))
			if err := p.lx.next(); err != nil {
				return head, err
			}
		case p.tok() == token.ILLEGAL && p.lit() == "#":
			if err := p.attribute(&head); err != nil {
				return head, err
			}
		default:
			if head.Declaration == nil {
				return head, model.Errorf(p.pos(), model.ErrMissingDeclaration, "missing declaration")
			}
			return head, nil
		}
	}
}

// attribute parses `#[doc = "…"]` or `#[tag(args…)]` into head.
func (p *grammar) attribute(head *model.Head) error {
	if err := p.lx.next(); err != nil {
		return err
	}
	if _, err := p.expect(token.LBRACK); err != nil {
		return err
	}
	path, err := p.path()
	if err != nil {
		return err
	}
	if path.String() == "doc" {
		if _, err = p.expect(token.ASSIGN); err != nil {
			return err
		}
		doc, err := p.stringLit("doc string")
		if err != nil {
			return err
		}
		head.Doc = append(head.Doc, doc)
		_, err = p.expect(token.RBRACK)
		return err
	}
	if head.Declaration != nil {
		return model.Errorf(path.Pos, model.ErrDuplicateDeclaration, "duplicate type declaration")
	}
	decl := &model.Declaration{Tag: path}
	if p.tok() == token.LPAREN {
		if decl.Args, err = p.args(); err != nil {
			return err
		}
	}
	if _, err = p.expect(token.RBRACK); err != nil {
		return err
	}
	head.Declaration = decl
	return nil
}

func (p *grammar) args() ([]model.DeclarationArg, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var args []model.DeclarationArg
	for {
		arg, err := p.arg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.tok() != token.COMMA {
			break
		}
		if err = p.lx.next(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *grammar) arg() (model.DeclarationArg, error) {
	key, err := p.path()
	if err != nil {
		return nil, err
	}
	if p.tok() != token.ASSIGN {
		return &model.TagArg{Path: key}, nil
	}
	if err = p.lx.next(); err != nil {
		return nil, err
	}
	value, err := p.literal()
	if err != nil {
		return nil, err
	}
	return &model.KeyValArg{Key: key, Value: value}, nil
}

// path parses Ident ('.' Ident)*. Go keywords are accepted as identifiers.
func (p *grammar) path() (model.Path, error) {
	path := model.Path{Pos: p.pos()}
	for {
		if p.tok() != token.IDENT && !p.tok().IsKeyword() {
			return path, p.unexpected("identifier")
		}
		path.Segments = append(path.Segments, p.lit())
		if err := p.lx.next(); err != nil {
			return path, err
		}
		if p.tok() != token.PERIOD {
			return path, nil
		}
		if err := p.lx.next(); err != nil {
			return path, err
		}
	}
}

func (p *grammar) literal() (model.Literal, error) {
	lit := model.Literal{Pos: p.pos()}
	sign := ""
	if p.tok() == token.SUB {
		sign = "-"
		if err := p.lx.next(); err != nil {
			return lit, err
		}
		switch p.tok() {
		case token.INT, token.FLOAT, token.IMAG:
		default:
			return lit, p.unexpected("numeric literal")
		}
	}
	switch {
	case p.tok().IsLiteral() && p.tok() != token.IDENT:
	case p.tok() == token.IDENT && (p.lit() == "true" || p.lit() == "false"):
	default:
		return lit, p.unexpected("literal")
	}
	lit.Kind = p.tok()
	lit.Value = sign + p.lit()
	return lit, p.lx.next()
}

func (p *grammar) stringLit(what string) (string, error) {
	if p.tok() != token.STRING {
		return "", p.unexpected(what)
	}
	s, err := strconv.Unquote(p.lit())
	if err != nil {
		return "", p.errorf("invalid %s %s: %v", what, p.lit(), err)
	}
	return s, p.lx.next()
}

// block parses `name { fragment }`.
func (p *grammar) block() (*model.Block, error) {
	if p.tok() != token.IDENT && !p.tok().IsKeyword() {
		return nil, p.unexpected("block name")
	}
	b := &model.Block{Name: p.lit(), NamePos: p.pos()}
	if err := p.lx.next(); err != nil {
		return nil, err
	}
	if p.tok() != token.LBRACE {
		return nil, p.unexpected("'{'")
	}
	body, err := p.lx.fragment()
	if err != nil {
		return nil, err
	}
	b.Body = body
	return b, nil
}
