// Package hcss parses an extended CSS syntax with variables, mixins and
// function macros resolved at parse time.
//
// # Tokenizing
//
//	tokens := hcss.Tokenize("a { color: red }")
//
// Tokens follow CSS Syntax Level 3. Whitespace and comments are not emitted;
// a token preceded by whitespace carries the "space" flag.
//
// # Parsing
//
// ParseStylesheet returns the resolved tree of a whole stylesheet:
//
//	$brand: #0af;
//
//	@mixin button($size: 1rem) {
//		padding: $size;
//		color: $brand;
//	}
//
//	.btn {
//		@include button(2rem);
//		&:hover { color: black !important; }
//	}
//
// Declarations come out with variables substituted and @include expanded in
// place. Nested rules keep their selector list; selectors using '&' carry an
// :is() pseudo-class holding the enclosing selectors.
//
// ParseRules stops one level earlier and returns the top-level rules with
// raw blocks; ParseSelectors parses a selector list on its own.
//
// # Errors
//
// Malformed tokens never fail. Grammar and expansion problems are returned
// as *Error with a zero-based position; classify them with errors.Is against
// ErrUnexpectedToken, ErrTypeMismatch, ErrSelector, ErrRecursion and
// ErrArguments.
package hcss

import (
	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/lexer"
	"github.com/yacobolo/hcss/internal/parser"
	"github.com/yacobolo/hcss/internal/token"
)

type (
	// Token is a lexical token.
	Token = token.Token
	// ComponentValue is a token or a parsed grammar node.
	ComponentValue = ast.ComponentValue
	// StyleBlock is the ordered content of a rule body.
	StyleBlock = ast.StyleBlock
	// SelectorList is a parsed selector list.
	SelectorList = ast.SelectorList
	// Error is a fatal parse error.
	Error = parser.Error
)

// Error classes, see Error.Err.
var (
	ErrTypeMismatch    = parser.ErrTypeMismatch
	ErrUnexpectedToken = parser.ErrUnexpectedToken
	ErrSelector        = parser.ErrSelector
	ErrRecursion       = parser.ErrRecursion
	ErrArguments       = parser.ErrArguments
)

// Tokenize returns the tokens of src, ending with an EOF token.
func Tokenize(src string) []Token {
	return lexer.Tokenize(src)
}

// ParseRules parses the top-level rules of src. Definitions are consumed;
// at-rules and qualified rules are returned with resolved preludes and raw
// blocks.
func ParseRules(src string) ([]ComponentValue, error) {
	return parser.New(src).Parse()
}

// ParseStylesheet parses src into a fully resolved style block.
func ParseStylesheet(src string) (StyleBlock, error) {
	return parser.NewStyleBlockParser(src).Parse()
}

// ParseSelectors parses src as a selector list.
func ParseSelectors(src string) (SelectorList, error) {
	tokens := lexer.Tokenize(src)
	values := make([]ast.ComponentValue, 0, len(tokens))
	p := parser.NewFromTokens(tokens)
	for !p.Empty() && !p.Check(token.EOF, 0) {
		v, err := p.ConsumeComponentValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return parser.NewSelectorParser(values).Parse()
}
