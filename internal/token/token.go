// Package token defines the lexical tokens produced by the hcss tokenizer.
package token

import "strconv"

// Type identifies the kind of a token.
type Type int

const (
	// Punctuation
	LeftParen Type = iota
	RightParen
	LeftBracket
	RightBracket
	LeftBrace
	RightBrace

	String
	BadString
	Hash
	Number
	Percentage
	Dimension
	Function
	Ident
	URL
	BadURL
	AtKeyword
	CDO
	CDC
	Comma
	Colon
	Semicolon
	EOF
	Delim
)

var names = [...]string{
	LeftParen:    "(",
	RightParen:   ")",
	LeftBracket:  "[",
	RightBracket: "]",
	LeftBrace:    "{",
	RightBrace:   "}",
	String:       "STRING",
	BadString:    "BAD_STRING",
	Hash:         "HASH",
	Number:       "NUMBER",
	Percentage:   "PERCENTAGE",
	Dimension:    "DIMENSION",
	Function:     "FUNCTION",
	Ident:        "IDENT",
	URL:          "URL",
	BadURL:       "BAD_URL",
	AtKeyword:    "AT_KEYWORD",
	CDO:          "CDO",
	CDC:          "CDC",
	Comma:        "COMMA",
	Colon:        "COLON",
	Semicolon:    "SEMICOLON",
	EOF:          "EOF",
	Delim:        "DELIM",
}

// String returns the display name of the type.
func (t Type) String() string {
	if t >= 0 && int(t) < len(names) {
		return names[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// IsOpen reports whether t opens a simple block.
func (t Type) IsOpen() bool {
	return t == LeftParen || t == LeftBracket || t == LeftBrace
}

// Mirror returns the closing type matching an opening bracket type.
// Any other type is returned unchanged.
func Mirror(t Type) Type {
	switch t {
	case LeftParen:
		return RightParen
	case LeftBracket:
		return RightBracket
	case LeftBrace:
		return RightBrace
	}
	return t
}

// Flag keys stored in Token.Flags.
const (
	FlagQuote = "quote" // opening quote of a string
	FlagType  = "type"  // "integer"/"number" for numerics, "id"/"unrestricted" for hashes
	FlagUnit  = "unit"  // unit of a dimension
	FlagSpace = "space" // "before" when whitespace preceded the token
)

// Flag values.
const (
	TypeInteger      = "integer"
	TypeNumber       = "number"
	TypeID           = "id"
	TypeUnrestricted = "unrestricted"
	SpaceBefore      = "before"
)

// Token is a single lexical token. Tokens are values and are never
// modified once emitted.
type Token struct {
	Type   Type
	Lexeme string
	Line   int // zero-based
	Column int // zero-based, in code points
	Flags  map[string]string
}

// Flag returns the flag stored under key, or "".
func (t Token) Flag(key string) string {
	return t.Flags[key]
}

// SpaceBefore reports whether whitespace preceded the token in the source.
func (t Token) SpaceBefore() bool {
	return t.Flags[FlagSpace] == SpaceBefore
}

// Is reports whether the token has type typ and, for delimiters, the given
// lexeme when one is supplied.
func (t Token) Is(typ Type, lexeme ...string) bool {
	if t.Type != typ {
		return false
	}
	for _, l := range lexeme {
		if t.Lexeme == l {
			return true
		}
	}
	return len(lexeme) == 0
}

// String returns a short debugging form such as IDENT("color").
func (t Token) String() string {
	return t.Type.String() + "(" + strconv.Quote(t.Lexeme) + ")"
}

// Pos returns the zero-based line and column of the token.
func (t Token) Pos() Pos {
	return Pos{Line: t.Line, Column: t.Column}
}

// Pos specifies a zero-based line and column in the source.
type Pos struct {
	Line   int
	Column int
}
