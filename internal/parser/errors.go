package parser

import (
	"errors"
	"fmt"

	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/token"
)

// Sentinel errors wrapped by every *Error. Use errors.Is to classify.
var (
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrSelector        = errors.New("invalid selector")
	ErrRecursion       = errors.New("recursive expansion")
	ErrArguments       = errors.New("invalid arguments")
)

// Error is a fatal parse error. Line and Column are zero-based and -1 when
// the position is unknown.
type Error struct {
	Message string
	Line    int
	Column  int
	Token   *token.Token // offending token, if any
	Err     error        // one of the sentinel errors
}

func (e *Error) Error() string {
	if e.Line < 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds an *Error positioned at tok, or without a position when
// tok is nil.
func newError(err error, tok *token.Token, format string, args ...any) *Error {
	e := &Error{
		Message: fmt.Sprintf(format, args...),
		Line:    -1,
		Column:  -1,
		Err:     err,
	}
	if tok != nil {
		t := *tok
		e.Token = &t
		e.Line = t.Line
		e.Column = t.Column
	}
	return e
}

// errorAt builds an *Error positioned at the first token of v.
func errorAt(err error, v ast.ComponentValue, format string, args ...any) *Error {
	if v != nil {
		if t, ok := ast.FirstToken(v); ok {
			return newError(err, &t, format, args...)
		}
	}
	return newError(err, nil, format, args...)
}

// describe renders a component value for error messages.
func describe(v ast.ComponentValue) string {
	switch v := v.(type) {
	case nil:
		return "end of input"
	case ast.Token:
		if v.Type == token.EOF {
			return "end of input"
		}
		return fmt.Sprintf("%q", v.Lexeme)
	case *ast.SimpleBlock:
		return fmt.Sprintf("%q block", v.Open.Lexeme)
	case *ast.FunctionCall:
		return fmt.Sprintf("function %q", v.Name.Lexeme)
	}
	return v.Kind().String()
}
