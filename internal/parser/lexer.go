package parser

import (
	"go/scanner"
	"go/token"
	"strings"

	"github.com/cmmoran/propgen/internal/model"
)

// item is a single scanned token.
type item struct {
	pos token.Pos
	tok token.Token
	lit string
}

// lexer wraps go/scanner: property files share Go's lexical grammar so that
// accessor fragments are plain Go. The only foreign character is the '#' that
// opens an attribute, which the scanner reports as ILLEGAL and we accept.
type lexer struct {
	file *token.File
	src  []byte
	sc   scanner.Scanner
	err  *model.Error
	cur  item
}

func newLexer(fset *token.FileSet, filename string, src []byte) *lexer {
	l := &lexer{src: src}
	l.file = fset.AddFile(filename, -1, len(src))
	l.sc.Init(l.file, src, l.onError, scanner.ScanComments)
	return l
}

func (l *lexer) onError(pos token.Position, msg string) {
	if pos.Offset < len(l.src) && l.src[pos.Offset] == '#' {
		return
	}
	if l.err == nil {
		l.err = model.Errorf(pos, model.ErrSyntax, "%s", msg)
	}
}

func (l *lexer) scan() (item, error) {
	pos, tok, lit := l.sc.Scan()
	if l.err != nil {
		return item{}, l.err
	}
	return item{pos: pos, tok: tok, lit: lit}, nil
}

// next advances to the next significant token. Doc comments are significant;
// plain comments and automatically inserted semicolons are not.
func (l *lexer) next() error {
	for {
		it, err := l.scan()
		if err != nil {
			return err
		}
		if it.tok == token.SEMICOLON && it.lit == "\n" {
			continue
		}
		if it.tok == token.COMMENT && !isDocComment(it.lit) {
			continue
		}
		l.cur = it
		return nil
	}
}

// fragment consumes a balanced code fragment. The current token must be the
// opening brace; on return the current token is the one after the closing
// brace. Brackets and parentheses inside must balance too.
func (l *lexer) fragment() (model.Fragment, error) {
	open := l.cur
	start := l.file.Offset(open.pos) + 1
	stack := []token.Token{token.RBRACE}
	end := start
	for len(stack) > 0 {
		it, err := l.scan()
		if err != nil {
			return model.Fragment{}, err
		}
		switch it.tok {
		case token.EOF:
			return model.Fragment{}, model.Errorf(l.position(open.pos), model.ErrSyntax, "unclosed '{'")
		case token.LBRACE:
			stack = append(stack, token.RBRACE)
		case token.LPAREN:
			stack = append(stack, token.RPAREN)
		case token.LBRACK:
			stack = append(stack, token.RBRACK)
		case token.RBRACE, token.RPAREN, token.RBRACK:
			if want := stack[len(stack)-1]; want != it.tok {
				return model.Fragment{}, model.Errorf(l.position(it.pos), model.ErrSyntax, "expected '%s', found '%s'", want, it.tok)
			}
			stack = stack[:len(stack)-1]
			end = l.file.Offset(it.pos)
		}
	}
	frag := model.Fragment{
		Text: string(l.src[start:end]),
		Pos:  l.file.Position(l.file.Pos(start)),
	}
	return frag, l.next()
}

func (l *lexer) position(pos token.Pos) token.Position {
	return l.file.Position(pos)
}

func isDocComment(lit string) bool {
	return strings.HasPrefix(lit, "///") && !strings.HasPrefix(lit, "////")
}
