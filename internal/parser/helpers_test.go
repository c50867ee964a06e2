package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/token"
)

// componentValues tokenizes src and groups the tokens into component values
// without resolving anything.
func componentValues(t *testing.T, src string) []ast.ComponentValue {
	t.Helper()
	p := New(src)
	var out []ast.ComponentValue
	for !p.atEnd() {
		v, err := p.ConsumeComponentValue()
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

// text renders values with single spaces between them.
func text(values []ast.ComponentValue) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, textOf(v))
	}
	return strings.Join(parts, " ")
}

func textOf(v ast.ComponentValue) string {
	switch v := v.(type) {
	case ast.Token:
		switch v.Type {
		case token.Dimension:
			return v.Lexeme + v.Flag(token.FlagUnit)
		case token.Percentage:
			return v.Lexeme + "%"
		case token.Hash:
			return "#" + v.Lexeme
		case token.String:
			return v.Flag(token.FlagQuote) + v.Lexeme + v.Flag(token.FlagQuote)
		}
		return v.Lexeme
	case *ast.SimpleBlock:
		s := v.Open.Lexeme + text(v.Values)
		if v.Close != nil {
			s += v.Close.Lexeme
		}
		return s
	case *ast.FunctionCall:
		args := make([]string, len(v.Arguments))
		for i, arg := range v.Arguments {
			args[i] = text(arg)
		}
		return v.Name.Lexeme + "(" + strings.Join(args, ", ") + ")"
	}
	return v.Kind().String()
}

// parseBlock parses src as a stylesheet and fails the test on error.
func parseBlock(t *testing.T, src string) ast.StyleBlock {
	t.Helper()
	block, err := NewStyleBlockParser(src).Parse()
	require.NoError(t, err)
	return block
}

// decl renders a declaration as "name: value" with "!important" appended
// when set.
func decl(e ast.Entry) string {
	d, ok := e.(*ast.Declaration)
	if !ok {
		return "<not a declaration>"
	}
	s := d.Name.Lexeme + ": " + text(d.Value)
	if d.Important {
		s += " !important"
	}
	return s
}

func decls(block ast.StyleBlock) []string {
	out := make([]string, len(block))
	for i, e := range block {
		out[i] = decl(e)
	}
	return out
}
