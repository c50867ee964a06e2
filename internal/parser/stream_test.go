package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/lexer"
	"github.com/yacobolo/hcss/internal/token"
)

func TestStreamConsume(t *testing.T) {
	s := NewTokenStream(lexer.Tokenize("a b"))
	require.Equal(t, 3, s.Len())

	v, err := s.Consume()
	require.NoError(t, err)
	assert.True(t, ast.IsToken(v, token.Ident, "a"))
	assert.Equal(t, 2, s.Len())

	_, _ = s.Consume()
	_, _ = s.Consume()
	assert.True(t, s.Empty())

	_, err = s.Consume()
	require.ErrorIs(t, err, ErrUnexpectedToken)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 0, perr.Line)
	assert.Equal(t, 3, perr.Column, "positioned at the last consumed token")
}

func TestStreamPeek(t *testing.T) {
	s := NewTokenStream(lexer.Tokenize("a:b"))

	assert.True(t, ast.IsToken(s.Peek(0), token.Ident, "a"))
	assert.True(t, ast.IsToken(s.Peek(1), token.Colon))
	assert.Nil(t, s.Peek(10))
	assert.Nil(t, s.Peek(-1))
	assert.True(t, s.Check(token.Colon, 1))
	assert.False(t, s.Check(token.Colon, 0))
	assert.True(t, s.CheckLexeme("b", 2))
	assert.Equal(t, 4, s.Len(), "peeking does not consume")
}

func TestStreamPushFront(t *testing.T) {
	s := NewTokenStream(lexer.Tokenize("c"))
	a := ast.NewToken(token.Token{Type: token.Ident, Lexeme: "a"})
	b := ast.NewToken(token.Token{Type: token.Ident, Lexeme: "b"})

	s.PushFront(a, b)

	require.Equal(t, "a b c", text(s.Values()[:3]))
	assert.Equal(t, 4, s.Len(), "Values does not consume")
}

func TestStreamValues(t *testing.T) {
	s := NewStream(nil)
	assert.Empty(t, s.Values())

	for _, lexeme := range []string{"a", "b", "c"} {
		s.PushBack(ast.NewToken(token.Token{Type: token.Ident, Lexeme: lexeme}))
	}
	_, err := s.Consume()
	require.NoError(t, err)
	s.PushFront(ast.NewToken(token.Token{Type: token.Ident, Lexeme: "z"}))

	assert.Equal(t, "z b c", text(s.Values()))
	assert.Equal(t, 3, s.Len())
}

func TestStreamConsumeToken(t *testing.T) {
	s := NewTokenStream(lexer.Tokenize("a b"))

	tok, err := s.ConsumeToken(token.Ident, "expected name")
	require.NoError(t, err)
	assert.Equal(t, "a", tok.Lexeme)

	_, err = s.ConsumeToken(token.Colon, "expected ':'")
	require.ErrorIs(t, err, ErrUnexpectedToken)
	assert.Equal(t, `0:2: expected ':', got "b"`, err.Error())
	assert.Equal(t, 2, s.Len(), "a failed consume leaves the stream alone")
}

func TestConsumeAs(t *testing.T) {
	s := NewStream(componentValues(t, "(a) b"))

	block, err := ConsumeAs[*ast.SimpleBlock](s)
	require.NoError(t, err)
	assert.Equal(t, token.LeftParen, block.Open.Type)

	_, err = ConsumeAs[*ast.SimpleBlock](s)
	require.ErrorIs(t, err, ErrTypeMismatch)
	assert.Contains(t, err.Error(), `expected SimpleBlock, got "b"`)

	_, ok := PeekAs[ast.Token](s, 0)
	assert.True(t, ok)
}

func TestStreamAtBlock(t *testing.T) {
	raw := NewTokenStream(lexer.Tokenize("{}"))
	assert.True(t, raw.atBlock())

	built := NewStream(componentValues(t, "{}"))
	assert.True(t, built.atBlock())

	paren := NewStream(componentValues(t, "()"))
	assert.False(t, paren.atBlock())
}

func TestStreamAtEnd(t *testing.T) {
	s := NewTokenStream(lexer.Tokenize(""))
	assert.True(t, s.atEnd(), "EOF token counts as the end")
	assert.False(t, s.Empty())

	assert.True(t, NewStream(nil).atEnd())
}
