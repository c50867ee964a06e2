// Package lexer implements the hcss tokenizer.
//
// The tokenizer follows the CSS Syntax Level 3 tokenization algorithm with a
// few simplifications: whitespace is not emitted as tokens (it is recorded as
// a flag on the following token instead), only block comments are
// recognized, and url( followed by a quoted string is left to the grammar
// layer as a function call. Malformed input never fails; it produces
// BadString and BadURL tokens.
package lexer

import (
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/yacobolo/hcss/internal/token"
)

// eof is returned by the lookahead helpers past the end of input.
const eof rune = -1

const (
	replacement  = '\uFFFD'
	maxCodePoint = 0x10FFFF
)

var punctuation = map[rune]token.Type{
	'(': token.LeftParen,
	')': token.RightParen,
	'[': token.LeftBracket,
	']': token.RightBracket,
	'{': token.LeftBrace,
	'}': token.RightBrace,
	',': token.Comma,
	':': token.Colon,
	';': token.Semicolon,
}

// Lexer converts stylesheet source into tokens.
type Lexer struct {
	r     *parse.Input
	src   []byte
	lines []int // byte offset at which each line starts

	tokens []token.Token
	start  int  // offset of the token being scanned
	space  bool // whitespace seen since the last emitted token
}

// New returns a Lexer reading all of r.
func New(r io.Reader) *Lexer {
	return newLexer(parse.NewInput(r))
}

// NewString returns a Lexer over s.
func NewString(s string) *Lexer {
	return newLexer(parse.NewInputString(s))
}

func newLexer(in *parse.Input) *Lexer {
	src := in.Bytes()
	return &Lexer{
		r:     in,
		src:   src,
		lines: lineStarts(src),
	}
}

// Tokenize is a shorthand for NewString(s).Lex().
func Tokenize(s string) []token.Token {
	return NewString(s).Lex()
}

// Lex consumes the whole input and returns its tokens. The last token is
// always EOF.
func (l *Lexer) Lex() []token.Token {
	for {
		l.start = l.r.Pos()
		c := l.peek(0)

		switch {
		case c == eof:
			l.emit(token.EOF, "", nil)
			return l.tokens
		case isSpace(c):
			for isSpace(l.peek(0)) {
				l.next()
			}
			l.space = true
		case c == '"' || c == '\'':
			l.consumeString()
		case c == '#':
			l.consumeHash()
		case c == '+' || c == '.':
			if l.startsNumber() {
				l.consumeNumeric()
			} else {
				l.delim()
			}
		case c == '-':
			switch {
			case l.startsNumber():
				l.consumeNumeric()
			case l.peek(1) == '-' && l.peek(2) == '>':
				l.skip(3)
				l.emit(token.CDC, "-->", nil)
			case l.startsIdent(0):
				l.consumeIdentLike()
			default:
				l.delim()
			}
		case c == '<':
			if l.peek(1) == '!' && l.peek(2) == '-' && l.peek(3) == '-' {
				l.skip(4)
				l.emit(token.CDO, "<!--", nil)
			} else {
				l.delim()
			}
		case c == '@':
			if l.startsIdent(1) {
				l.next()
				l.emit(token.AtKeyword, l.consumeName(), nil)
			} else {
				l.delim()
			}
		case c == '\\':
			if l.validEscape(0) {
				l.consumeIdentLike()
			} else {
				l.delim()
			}
		case c == '/':
			if l.peek(1) == '*' {
				l.consumeComment()
			} else {
				l.delim()
			}
		case isDigit(c):
			l.consumeNumeric()
		case isIdentStart(c):
			l.consumeIdentLike()
		default:
			if typ, ok := punctuation[c]; ok {
				l.next()
				l.emit(typ, string(c), nil)
			} else {
				l.delim()
			}
		}
	}
}

// emit appends a token starting at l.start.
func (l *Lexer) emit(typ token.Type, lexeme string, flags map[string]string) {
	if l.space {
		if flags == nil {
			flags = make(map[string]string, 1)
		}
		flags[token.FlagSpace] = token.SpaceBefore
		l.space = false
	}
	line, col := l.position(l.start)
	l.tokens = append(l.tokens, token.Token{
		Type:   typ,
		Lexeme: lexeme,
		Line:   line,
		Column: col,
		Flags:  flags,
	})
}

func (l *Lexer) delim() {
	l.emit(token.Delim, string(l.next()), nil)
}

// consumeComment skips a block comment. The opening "/*" is at the current
// position. An unterminated comment runs to the end of input.
func (l *Lexer) consumeComment() {
	l.skip(2)
	for {
		switch l.next() {
		case eof:
			return
		case '*':
			if l.peek(0) == '/' {
				l.next()
				return
			}
		}
	}
}

// consumeString scans a string delimited by the quote at the current
// position.
func (l *Lexer) consumeString() {
	quote := l.next()
	flags := map[string]string{token.FlagQuote: string(quote)}

	var b strings.Builder
	for {
		c := l.peek(0)
		switch {
		case c == eof:
			l.emit(token.String, b.String(), flags)
			return
		case c == quote:
			l.next()
			l.emit(token.String, b.String(), flags)
			return
		case c == '\n':
			// The newline is left for the next token.
			l.emit(token.BadString, b.String(), flags)
			return
		case c == '\\':
			l.next()
			switch l.peek(0) {
			case eof:
			case '\n':
				l.next()
			default:
				b.WriteRune(l.consumeEscape())
			}
		default:
			b.WriteRune(l.next())
		}
	}
}

// consumeHash scans a hash token or falls back to a '#' delimiter.
func (l *Lexer) consumeHash() {
	if !isIdentChar(l.peek(1)) && !l.validEscape(1) {
		l.delim()
		return
	}
	l.next()

	typ := token.TypeUnrestricted
	if l.startsIdent(0) {
		typ = token.TypeID
	}
	l.emit(token.Hash, l.consumeName(), map[string]string{token.FlagType: typ})
}

// consumeNumeric scans a number, percentage or dimension.
func (l *Lexer) consumeNumeric() {
	repr, typ := l.consumeNumber()
	flags := map[string]string{token.FlagType: typ}

	switch {
	case l.startsIdent(0):
		flags[token.FlagUnit] = l.consumeName()
		l.emit(token.Dimension, repr, flags)
	case l.peek(0) == '%':
		l.next()
		l.emit(token.Percentage, repr, flags)
	default:
		l.emit(token.Number, repr, flags)
	}
}

// consumeNumber returns the textual representation of a number and its type
// flag ("integer" or "number").
func (l *Lexer) consumeNumber() (string, string) {
	var b strings.Builder
	typ := token.TypeInteger

	if c := l.peek(0); c == '+' || c == '-' {
		b.WriteRune(l.next())
	}
	l.consumeDigits(&b)

	// The fraction is only consumed when a digit follows the dot.
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		b.WriteRune(l.next())
		l.consumeDigits(&b)
		typ = token.TypeNumber
	}

	if c := l.peek(0); c == 'e' || c == 'E' {
		c1 := l.peek(1)
		signed := (c1 == '+' || c1 == '-') && isDigit(l.peek(2))
		if isDigit(c1) || signed {
			b.WriteRune(l.next())
			if signed {
				b.WriteRune(l.next())
			}
			l.consumeDigits(&b)
			typ = token.TypeNumber
		}
	}

	return b.String(), typ
}

func (l *Lexer) consumeDigits(b *strings.Builder) {
	for isDigit(l.peek(0)) {
		b.WriteRune(l.next())
	}
}

// consumeIdentLike scans an identifier, function or url token.
func (l *Lexer) consumeIdentLike() {
	name := l.consumeName()
	if l.peek(0) != '(' {
		l.emit(token.Ident, name, nil)
		return
	}
	l.next()

	if !strings.EqualFold(name, "url") {
		l.emit(token.Function, name, nil)
		return
	}

	for isSpace(l.peek(0)) {
		l.next()
	}
	// A quoted url is a plain function call with a string argument.
	if c := l.peek(0); c == '"' || c == '\'' {
		l.emit(token.Function, name, nil)
		return
	}
	l.consumeURL()
}

// consumeURL scans an unquoted url. "url(" has been consumed.
func (l *Lexer) consumeURL() {
	var b strings.Builder
	for {
		c := l.next()
		switch {
		case c == ')' || c == eof:
			l.emit(token.URL, b.String(), nil)
			return
		case isSpace(c):
		case c == '"' || c == '\'' || c == '(':
			l.consumeBadURL()
			l.emit(token.BadURL, b.String(), nil)
			return
		case c == '\\':
			if l.peek(0) == '\n' {
				l.consumeBadURL()
				l.emit(token.BadURL, b.String(), nil)
				return
			}
			b.WriteRune(l.consumeEscape())
		default:
			b.WriteRune(c)
		}
	}
}

// consumeBadURL discards input up to the next unescaped ')' or end of input.
func (l *Lexer) consumeBadURL() {
	for {
		c := l.next()
		switch {
		case c == ')' || c == eof:
			return
		case c == '\\' && l.peek(0) != '\n':
			l.consumeEscape()
		}
	}
}

// consumeName consumes identifier code points and escapes.
func (l *Lexer) consumeName() string {
	var b strings.Builder
	for {
		switch c := l.peek(0); {
		case isIdentChar(c):
			b.WriteRune(l.next())
		case l.validEscape(0):
			l.next()
			b.WriteRune(l.consumeEscape())
		default:
			return b.String()
		}
	}
}

// consumeEscape decodes an escaped code point. The backslash has already
// been consumed and is known not to be followed by a newline.
func (l *Lexer) consumeEscape() rune {
	c := l.next()
	switch {
	case c == eof:
		return replacement
	case isHexDigit(c):
		v := hexValue(c)
		for i := 1; i < 6 && isHexDigit(l.peek(0)); i++ {
			v = v*16 + hexValue(l.next())
		}
		if isSpace(l.peek(0)) {
			l.next()
		}
		if v == 0 || v > maxCodePoint || (v >= 0xD800 && v <= 0xDFFF) {
			return replacement
		}
		return v
	}
	return c
}

// startsIdent reports whether the three code points starting n code points
// ahead would start an identifier sequence.
func (l *Lexer) startsIdent(n int) bool {
	c0, c1 := l.peek(n), l.peek(n+1)
	switch {
	case c0 == '-':
		return c1 == '-' || isIdentStart(c1) || isValidEscape(c1, l.peek(n+2))
	case isIdentStart(c0):
		return true
	}
	return isValidEscape(c0, c1)
}

// startsNumber reports whether the next code points start a number.
func (l *Lexer) startsNumber() bool {
	c0, c1 := l.peek(0), l.peek(1)
	switch c0 {
	case '+', '-':
		return isDigit(c1) || (c1 == '.' && isDigit(l.peek(2)))
	case '.':
		return isDigit(c1)
	}
	return isDigit(c0)
}

func (l *Lexer) validEscape(n int) bool {
	return isValidEscape(l.peek(n), l.peek(n+1))
}

// peekAt decodes the code point off bytes past the current position and
// returns it with its encoded width. Newline variants are normalized to
// '\n' and NUL to U+FFFD.
func (l *Lexer) peekAt(off int) (rune, int) {
	if l.r.PeekErr(off) != nil {
		return eof, 0
	}
	c, n := l.r.PeekRune(off)
	switch c {
	case '\r':
		if l.r.Peek(off+1) == '\n' {
			return '\n', 2
		}
		return '\n', 1
	case '\f':
		return '\n', 1
	case 0:
		return replacement, 1
	}
	return c, n
}

// peek returns the code point n positions ahead without consuming it.
func (l *Lexer) peek(n int) rune {
	off := 0
	for ; n > 0; n-- {
		_, w := l.peekAt(off)
		if w == 0 {
			return eof
		}
		off += w
	}
	c, _ := l.peekAt(off)
	return c
}

// next consumes one code point.
func (l *Lexer) next() rune {
	c, w := l.peekAt(0)
	l.r.Move(w)
	return c
}

func (l *Lexer) skip(n int) {
	for ; n > 0; n-- {
		l.next()
	}
}

// position converts a byte offset into a zero-based line and column. The
// column counts code points.
func (l *Lexer) position(off int) (int, int) {
	line := sort.Search(len(l.lines), func(i int) bool { return l.lines[i] > off }) - 1
	return line, utf8.RuneCount(l.src[l.lines[line]:off])
}

// lineStarts returns the offsets at which each line of src begins.
func lineStarts(src []byte) []int {
	lines := []int{0}
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				i++
			}
			lines = append(lines, i+1)
		case '\n', '\f':
			lines = append(lines, i+1)
		}
	}
	return lines
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c rune) rune {
	switch {
	case isDigit(c):
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	}
	return c - 'A' + 10
}

func isIdentStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80 || c == '_'
}

func isIdentChar(c rune) bool {
	return isIdentStart(c) || isDigit(c) || c == '-'
}

func isValidEscape(c0, c1 rune) bool {
	return c0 == '\\' && c1 != '\n'
}
