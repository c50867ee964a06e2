// Package ast defines the component values and grammar nodes produced by the
// hcss parser.
//
// A ComponentValue is the unit passed between parsing layers: either a raw
// token or a parsed node. The set of variants is closed; consumers switch on
// the concrete type (or on Kind) and every variant is listed below.
package ast

import (
	"strconv"

	"github.com/yacobolo/hcss/internal/token"
)

// Kind names a ComponentValue variant.
type Kind int

// ComponentValue variants.
const (
	KindEmpty Kind = iota
	KindToken
	KindAtRule
	KindFunctionCall
	KindQualifiedRule
	KindSimpleBlock
	KindStyleRule
)

var kindNames = [...]string{
	KindEmpty:         "Empty",
	KindToken:         "Token",
	KindAtRule:        "AtRule",
	KindFunctionCall:  "FunctionCall",
	KindQualifiedRule: "QualifiedRule",
	KindSimpleBlock:   "SimpleBlock",
	KindStyleRule:     "StyleRule",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ComponentValue is a token or a parsed grammar node.
type ComponentValue interface {
	Kind() Kind
}

func (Empty) Kind() Kind          { return KindEmpty }
func (Token) Kind() Kind          { return KindToken }
func (*AtRule) Kind() Kind        { return KindAtRule }
func (*FunctionCall) Kind() Kind  { return KindFunctionCall }
func (*QualifiedRule) Kind() Kind { return KindQualifiedRule }
func (*SimpleBlock) Kind() Kind   { return KindSimpleBlock }
func (*StyleRule) Kind() Kind     { return KindStyleRule }

// Empty is the absent component value.
type Empty struct{}

// Token wraps a lexical token as a component value.
type Token struct {
	token.Token
}

// NewToken wraps t.
func NewToken(t token.Token) Token {
	return Token{Token: t}
}

// SimpleBlock is a bracketed run of component values.
type SimpleBlock struct {
	Open   token.Token
	Values []ComponentValue
	Close  *token.Token // nil when the input ended before the block closed
}

// FunctionCall is a function token followed by its comma-separated
// arguments.
type FunctionCall struct {
	Name      token.Token
	Arguments [][]ComponentValue
}

// Parameter is a named parameter of a function definition.
type Parameter struct {
	Name    string           // without the leading '$'
	Default []ComponentValue // nil when the parameter has no default
}

// FunctionDefinition is the signature and body of a parameterized mixin or
// function macro.
type FunctionDefinition struct {
	Name       token.Token
	Parameters []Parameter
	Body       []ComponentValue
}

// AtRule is an at-keyword with its prelude and optional block.
type AtRule struct {
	Name    token.Token
	Prelude []ComponentValue
	Block   *SimpleBlock

	// Rules holds the block parsed as a nested style block. It is only
	// filled in by the style-block parser.
	Rules StyleBlock
}

// QualifiedRule is a prelude with an optional block, before its prelude is
// interpreted as selectors.
type QualifiedRule struct {
	Prelude []ComponentValue
	Block   *SimpleBlock
}

// StyleRule is a qualified rule whose prelude was parsed as a selector list
// and whose block was parsed as a style block.
type StyleRule struct {
	Prelude   []ComponentValue
	Selectors SelectorList
	Block     StyleBlock
}

// Declaration is a property/value pair inside a style block.
type Declaration struct {
	Name      token.Token
	Colon     token.Token
	Value     []ComponentValue
	Important bool
}

// Entry is an item of a StyleBlock: *Declaration, *AtRule, *QualifiedRule or
// *StyleRule.
type Entry interface {
	entry()
}

func (*Declaration) entry()   {}
func (*AtRule) entry()        {}
func (*QualifiedRule) entry() {}
func (*StyleRule) entry()     {}

// StyleBlock is the ordered content of a rule body. Order is significant.
type StyleBlock []Entry

// Declarations returns the declarations of b in order.
func (b StyleBlock) Declarations() []*Declaration {
	var out []*Declaration
	for _, e := range b {
		if d, ok := e.(*Declaration); ok {
			out = append(out, d)
		}
	}
	return out
}

// FirstToken returns the token a component value starts with.
func FirstToken(v ComponentValue) (token.Token, bool) {
	switch v := v.(type) {
	case Token:
		return v.Token, true
	case *SimpleBlock:
		return v.Open, true
	case *FunctionCall:
		return v.Name, true
	case *AtRule:
		return v.Name, true
	case *QualifiedRule:
		if len(v.Prelude) > 0 {
			return FirstToken(v.Prelude[0])
		}
		if v.Block != nil {
			return v.Block.Open, true
		}
	case *StyleRule:
		if len(v.Prelude) > 0 {
			return FirstToken(v.Prelude[0])
		}
	}
	return token.Token{}, false
}

// SpaceBefore reports whether whitespace preceded v in the source.
func SpaceBefore(v ComponentValue) bool {
	t, ok := FirstToken(v)
	return ok && t.SpaceBefore()
}

// IsToken reports whether v is a token of type typ, optionally with one of
// the given lexemes.
func IsToken(v ComponentValue, typ token.Type, lexeme ...string) bool {
	t, ok := v.(Token)
	return ok && t.Is(typ, lexeme...)
}
