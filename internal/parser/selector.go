package parser

import (
	"strings"

	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/token"
)

// SelectorParser parses a rule prelude into a selector list.
type SelectorParser struct {
	*Stream
}

// NewSelectorParser returns a selector parser over a resolved prelude.
func NewSelectorParser(values []ast.ComponentValue) *SelectorParser {
	return &SelectorParser{Stream: NewStream(values)}
}

// Parse consumes the whole prelude as a selector list.
func (p *SelectorParser) Parse() (ast.SelectorList, error) {
	return p.consumeSelectorList(false)
}

func (p *SelectorParser) consumeSelectorList(relative bool) (ast.SelectorList, error) {
	var list ast.SelectorList
	for {
		complex, err := p.consumeComplexSelector(relative)
		if err != nil {
			return nil, err
		}
		list = append(list, complex)

		switch {
		case p.atEnd():
			return list, nil
		case p.Check(token.Comma, 0):
			p.Consume() //nolint:errcheck // front is known to exist
		default:
			return nil, p.unexpected()
		}
	}
}

func (p *SelectorParser) consumeComplexSelector(relative bool) (ast.ComplexSelector, error) {
	var complex ast.ComplexSelector
	comb := ast.CombinatorNone
	if relative {
		if c, ok := p.peekCombinator(); ok {
			p.Consume() //nolint:errcheck // front is known to exist
			comb = c
		}
	}

	for {
		compound, err := p.consumeCompoundSelector()
		if err != nil {
			return complex, err
		}
		if compound.Empty() {
			return complex, p.unexpected()
		}
		complex.Parts = append(complex.Parts, ast.ComplexPart{Combinator: comb, Compound: compound})

		if p.atEnd() || p.Check(token.Comma, 0) {
			return complex, nil
		}
		if c, ok := p.peekCombinator(); ok {
			p.Consume() //nolint:errcheck // front is known to exist
			comb = c
		} else if ast.SpaceBefore(p.Peek(0)) {
			comb = ast.CombinatorDescendant
		} else {
			return complex, p.unexpected()
		}
	}
}

func (p *SelectorParser) peekCombinator() (ast.Combinator, bool) {
	t, ok := p.PeekToken(0)
	if !ok || t.Type != token.Delim {
		return ast.CombinatorNone, false
	}
	switch t.Lexeme {
	case ">":
		return ast.CombinatorChild, true
	case "+":
		return ast.CombinatorNextSibling, true
	case "~":
		return ast.CombinatorSubsequentSibling, true
	}
	return ast.CombinatorNone, false
}

// consumeCompoundSelector reads selectors up to whitespace, a combinator, a
// comma or the end of the prelude.
func (p *SelectorParser) consumeCompoundSelector() (ast.CompoundSelector, error) {
	var c ast.CompoundSelector
	for !p.atEnd() {
		v := p.Peek(0)
		if !c.Empty() && ast.SpaceBefore(v) {
			break
		}
		if _, ok := p.peekCombinator(); ok || p.Check(token.Comma, 0) {
			break
		}

		switch {
		case p.CheckDelim("&"):
			p.Consume() //nolint:errcheck // front is known to exist
			c.Nesting = true
		case p.atTypeSelector():
			if c.Type != nil || len(c.Subclasses) > 0 || len(c.PseudoElements) > 0 {
				return c, p.errorf(v, "type selector must come first in a compound selector")
			}
			name, err := p.consumeWqName(true)
			if err != nil {
				return c, err
			}
			c.Type = &ast.TypeSelector{Name: name}
		case p.Check(token.Colon, 0):
			if err := p.consumePseudo(&c); err != nil {
				return c, err
			}
		default:
			if len(c.PseudoElements) > 0 {
				return c, p.errorf(v, "unexpected %s after pseudo-element", describe(v))
			}
			sub, err := p.consumeSubclass()
			if err != nil {
				return c, err
			}
			c.Subclasses = append(c.Subclasses, sub)
		}
	}
	return c, nil
}

// consumeSubclass reads an id, class or attribute selector.
func (p *SelectorParser) consumeSubclass() (ast.SubclassSelector, error) {
	v := p.Peek(0)
	switch v := v.(type) {
	case ast.Token:
		switch {
		case v.Type == token.Hash:
			if v.Flag(token.FlagType) != token.TypeID {
				return nil, p.errorf(v, "invalid id selector #%s", v.Lexeme)
			}
			p.Consume() //nolint:errcheck // front is known to exist
			return ast.IDSelector{Name: v.Lexeme}, nil
		case v.Is(token.Delim, "."):
			p.Consume() //nolint:errcheck // front is known to exist
			name, err := p.consumeAdjacent(token.Ident, "expected class name after '.'")
			if err != nil {
				return nil, err
			}
			return ast.ClassSelector{Name: name.Lexeme}, nil
		}
	case *ast.SimpleBlock:
		if v.Open.Type == token.LeftBracket {
			p.Consume() //nolint:errcheck // front is known to exist
			return consumeAttribute(v)
		}
	}
	return nil, p.unexpected()
}

// consumePseudo reads a pseudo-class or pseudo-element. A pseudo-class that
// follows a pseudo-element belongs to it.
func (p *SelectorParser) consumePseudo(c *ast.CompoundSelector) error {
	p.Consume() //nolint:errcheck // ':' is known to exist
	if p.Check(token.Colon, 0) && !ast.SpaceBefore(p.Peek(0)) {
		p.Consume() //nolint:errcheck // front is known to exist
		name, args, err := p.consumePseudoName()
		if err != nil {
			return err
		}
		c.PseudoElements = append(c.PseudoElements, ast.PseudoElementSelector{Name: name, Arguments: args})
		return nil
	}

	pc, err := p.consumePseudoClass()
	if err != nil {
		return err
	}
	if n := len(c.PseudoElements); n > 0 {
		c.PseudoElements[n-1].PseudoClasses = append(c.PseudoElements[n-1].PseudoClasses, pc)
		return nil
	}
	c.Subclasses = append(c.Subclasses, pc)
	return nil
}

// consumePseudoClass reads the name and arguments following ':'. Selector
// pseudo-classes get their arguments parsed as selector lists.
func (p *SelectorParser) consumePseudoClass() (ast.PseudoClassSelector, error) {
	name, args, err := p.consumePseudoName()
	if err != nil {
		return ast.PseudoClassSelector{}, err
	}
	pc := ast.PseudoClassSelector{Name: name, Arguments: args}

	switch strings.ToLower(name) {
	case "is", "where", "not", "matches", "has":
		if len(args) == 0 {
			return pc, p.errorf(nil, "%s() requires a selector argument", name)
		}
		pc.Relative = strings.EqualFold(name, "has")
		for _, arg := range args {
			list, err := NewSelectorParser(arg).consumeSelectorList(pc.Relative)
			if err != nil {
				return pc, err
			}
			pc.Selectors = append(pc.Selectors, list...)
		}
	}
	return pc, nil
}

// consumePseudoName reads an identifier or a function call directly after
// the colon. Arguments are nil for the identifier form.
func (p *SelectorParser) consumePseudoName() (string, [][]ast.ComponentValue, error) {
	v := p.Peek(0)
	if v == nil || ast.SpaceBefore(v) {
		return "", nil, p.unexpected()
	}
	switch v := v.(type) {
	case ast.Token:
		if v.Type == token.Ident {
			p.Consume() //nolint:errcheck // front is known to exist
			return v.Lexeme, nil, nil
		}
	case *ast.FunctionCall:
		p.Consume() //nolint:errcheck // front is known to exist
		args := v.Arguments
		if args == nil {
			args = [][]ast.ComponentValue{}
		}
		return v.Name.Lexeme, args, nil
	}
	return "", nil, p.unexpected()
}

// atTypeSelector reports whether the front starts a type selector or a
// namespace-qualified name: ident, '*', or '|'.
func (p *SelectorParser) atTypeSelector() bool {
	return p.Check(token.Ident, 0) || p.CheckDelim("*") || (p.CheckDelim("|") && p.namePartAt(1))
}

// consumeWqName reads [prefix '|'] local. A '|' only separates a namespace
// when an identifier (or '*' if allowed) follows without whitespace, so the
// attribute operator '|=' is left alone. star allows '*' as local name.
func (p *SelectorParser) consumeWqName(star bool) (ast.WqName, error) {
	var name ast.WqName
	switch {
	case p.CheckDelim("|") && p.namePartAt(1):
		p.Consume() //nolint:errcheck // front is known to exist
		name.Prefix = &ast.NsPrefix{}
	case (p.Check(token.Ident, 0) || p.CheckDelim("*")) && p.adjacentDelim("|", 1) && p.namePartAt(2):
		t, _ := p.PeekToken(0)
		p.Consume() //nolint:errcheck // front is known to exist
		p.Consume() //nolint:errcheck // '|' is known to exist
		name.Prefix = &ast.NsPrefix{Name: t.Lexeme}
	}

	t, ok := p.PeekToken(0)
	switch {
	case ok && t.Type == token.Ident:
	case ok && star && t.Is(token.Delim, "*"):
	default:
		return name, p.unexpected()
	}
	if name.Prefix != nil && t.SpaceBefore() {
		return name, p.unexpected()
	}
	p.Consume() //nolint:errcheck // front is known to exist
	name.Local = t.Lexeme
	return name, nil
}

// namePartAt reports whether the value at i is an identifier or '*' with no
// whitespace before it.
func (p *SelectorParser) namePartAt(i int) bool {
	t, ok := p.PeekToken(i)
	return ok && !t.SpaceBefore() && (t.Type == token.Ident || t.Is(token.Delim, "*"))
}

func (p *SelectorParser) adjacentDelim(lexeme string, i int) bool {
	t, ok := p.PeekToken(i)
	return ok && !t.SpaceBefore() && t.Is(token.Delim, lexeme)
}

// CheckDelim reports whether the front value is the delimiter lexeme.
func (p *SelectorParser) CheckDelim(lexeme string) bool {
	return p.Check(token.Delim, 0) && p.CheckLexeme(lexeme, 0)
}

// consumeAdjacent consumes a token of type typ directly attached to the
// previous one.
func (p *SelectorParser) consumeAdjacent(typ token.Type, msg string) (token.Token, error) {
	t, ok := p.PeekToken(0)
	if ok && t.SpaceBefore() {
		return token.Token{}, p.errorf(p.Peek(0), "%s", msg)
	}
	return p.ConsumeToken(typ, msg)
}

func (p *SelectorParser) unexpected() *Error {
	v := p.Peek(0)
	if v == nil || ast.IsToken(v, token.EOF) {
		return p.errorAtEnd(ErrSelector, "unexpected end of selector")
	}
	return errorAt(ErrSelector, v, "unexpected %s in selector", describe(v))
}

func (p *SelectorParser) errorf(v ast.ComponentValue, format string, args ...any) *Error {
	if v == nil {
		return p.errorAtEnd(ErrSelector, format, args...)
	}
	return errorAt(ErrSelector, v, format, args...)
}

// consumeAttribute parses the content of a '[' block:
// name [op value [modifier]].
func consumeAttribute(block *ast.SimpleBlock) (ast.AttributeSelector, error) {
	var attr ast.AttributeSelector
	if block.Close == nil {
		return attr, newError(ErrSelector, &block.Open, "unterminated attribute selector")
	}
	p := NewSelectorParser(block.Values)
	p.last = ast.NewToken(block.Open)

	name, err := p.consumeWqName(false)
	if err != nil {
		return attr, err
	}
	attr.Name = name
	if p.atEnd() {
		return attr, nil
	}

	matcher, err := p.consumeAttrMatcher()
	if err != nil {
		return attr, err
	}
	attr.Matcher = matcher

	t, ok := p.PeekToken(0)
	if !ok || (t.Type != token.Ident && t.Type != token.String) {
		return attr, p.unexpected()
	}
	p.Consume() //nolint:errcheck // front is known to exist
	attr.Value = t.Lexeme
	attr.Quoted = t.Type == token.String

	if t, ok := p.PeekToken(0); ok && t.Type == token.Ident {
		switch m := strings.ToLower(t.Lexeme); m {
		case "i", "s":
			p.Consume() //nolint:errcheck // front is known to exist
			attr.Modifier = m
		}
	}
	if !p.atEnd() {
		return attr, p.unexpected()
	}
	return attr, nil
}

func (p *SelectorParser) consumeAttrMatcher() (ast.AttrMatcher, error) {
	t, ok := p.PeekToken(0)
	if !ok || t.Type != token.Delim {
		return "", p.unexpected()
	}
	if t.Lexeme == "=" {
		p.Consume() //nolint:errcheck // front is known to exist
		return ast.AttrEquals, nil
	}
	switch t.Lexeme {
	case "~", "|", "^", "$", "*":
		if !p.adjacentDelim("=", 1) {
			break
		}
		p.Consume() //nolint:errcheck // front is known to exist
		p.Consume() //nolint:errcheck // '=' is known to exist
		return ast.AttrMatcher(t.Lexeme + "="), nil
	}
	return "", p.unexpected()
}
