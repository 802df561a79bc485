package generator

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/cmmoran/propgen/internal/model"
)

type ArmKind int

const (
	ArmGet ArmKind = iota
	ArmSet
)

// Arm is one case of the generated getter or setter switch.
type Arm struct {
	ID   int
	Kind ArmKind
	Body model.Fragment
}

// Code renders the arm as a case clause.
//
// A getter whose body is a single expression returns it; any other body,
// or a call to panic, is spliced as statements and must return on its own.
// A setter never yields a value: a bare non-call expression is assigned to
// the blank identifier.
func (a *Arm) Code() jen.Code {
	text := strings.TrimSpace(a.Body.Text)
	expr, isExpr := parseExpr(text)

	var body jen.Code
	switch {
	case a.Kind == ArmGet && isExpr && !isPanic(expr):
		body = jen.Return(returnValue(text))
	case a.Kind == ArmSet && isExpr && !isEffect(expr):
		body = jen.Id("_").Op("=").Op(text)
	default:
		body = jen.Op(text)
	}
	return jen.Case(jen.Lit(a.ID)).Block(body)
}

func parseExpr(text string) (ast.Expr, bool) {
	if text == "" {
		return nil, false
	}
	expr, err := parser.ParseExpr(text)
	if err != nil {
		return nil, false
	}
	return expr, true
}

// returnValue keeps a commented expression on the return line by wrapping it
// in parentheses; a line comment right after return would end the statement.
func returnValue(text string) jen.Code {
	if strings.Contains(text, "//") || strings.Contains(text, "/*") {
		return jen.Parens(jen.Op("\n" + text + "\n"))
	}
	return jen.Op(text)
}

func unparen(expr ast.Expr) ast.Expr {
	for {
		p, ok := expr.(*ast.ParenExpr)
		if !ok {
			return expr
		}
		expr = p.X
	}
}

// isPanic reports whether expr calls the panic builtin, which has no value.
func isPanic(expr ast.Expr) bool {
	call, ok := unparen(expr).(*ast.CallExpr)
	if !ok {
		return false
	}
	id, ok := unparen(call.Fun).(*ast.Ident)
	return ok && id.Name == "panic"
}

// isEffect reports whether expr is valid as an expression statement.
func isEffect(expr ast.Expr) bool {
	switch e := unparen(expr).(type) {
	case *ast.CallExpr:
		return true
	case *ast.UnaryExpr:
		return e.Op == token.ARROW
	}
	return false
}
