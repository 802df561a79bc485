package model

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// Parser errors.
var (
	ErrSyntax               = errors.New("syntax error")
	ErrDuplicateDeclaration = errors.New("duplicate type declaration")
	ErrMissingDeclaration   = errors.New("missing declaration")
)

// Generator errors.
var (
	ErrDuplicateBlock   = errors.New("duplicate block")
	ErrMissingBlock     = errors.New("missing block")
	ErrUnsupportedBlock = errors.New("unsupported block")
	ErrObjectType       = errors.New("invalid object type")
	ErrUnimplementedTag = errors.New("unimplemented type tag")
	ErrUnsupportedFlag  = errors.New("unsupported flag")
	ErrFlagConflict     = errors.New("flag conflict")
)

// Error is a diagnostic tied to a source position. Err is the sentinel it
// belongs to; Help, when set, suggests a fix.
type Error struct {
	Pos  token.Position
	Msg  string
	Help string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Help != "" {
		b.WriteString("\n\thelp: ")
		b.WriteString(e.Help)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an *Error at pos wrapping sentinel.
func Errorf(pos token.Position, sentinel error, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...), Err: sentinel}
}
