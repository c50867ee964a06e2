package parser

import (
	"strings"

	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/lexer"
	"github.com/yacobolo/hcss/internal/token"
)

// StyleBlockParser builds a style block: declarations, nested style rules
// and at-rules, with variables resolved and @include expanded.
type StyleBlockParser struct {
	*Parser

	parent ast.SelectorList // selectors of the enclosing style rule
}

// NewStyleBlockParser tokenizes src and returns a style-block parser over it
// in a fresh root scope.
func NewStyleBlockParser(src string) *StyleBlockParser {
	return &StyleBlockParser{Parser: NewFromTokens(lexer.Tokenize(src))}
}

// StyleBlock returns a style-block parser over values resolving in scope,
// sharing p's arena. parent holds the selectors '&' refers to.
func (p *Parser) StyleBlock(values []ast.ComponentValue, scope ScopeID, parent ast.SelectorList) *StyleBlockParser {
	return &StyleBlockParser{Parser: p.child(values, scope), parent: parent}
}

// Parse consumes the whole stream into a style block.
func (p *StyleBlockParser) Parse() (ast.StyleBlock, error) {
	var block ast.StyleBlock
	for {
		switch {
		case p.atEnd():
			return block, nil
		case p.Check(token.Semicolon, 0), p.Check(token.CDO, 0), p.Check(token.CDC, 0):
			p.Consume() //nolint:errcheck // front is known to exist
		case p.Check(token.AtKeyword, 0):
			entries, err := p.consumeAtRuleEntries()
			if err != nil {
				return nil, err
			}
			block = append(block, entries...)
		case p.atVariable():
			if err := p.consumeVariable(); err != nil {
				return nil, err
			}
		case p.declarationAhead():
			decl, err := p.ConsumeDeclaration()
			if err != nil {
				return nil, err
			}
			block = append(block, decl)
		default:
			rule, err := p.consumeStyleRule()
			if err != nil {
				return nil, err
			}
			block = append(block, rule)
		}
	}
}

// declarationAhead reports whether the front values start a declaration
// rather than a nested rule: an identifier and a colon with no '{' block
// before the next ';'. Custom properties are always declarations.
func (p *StyleBlockParser) declarationAhead() bool {
	name, ok := p.PeekToken(0)
	if !ok || name.Type != token.Ident || !p.Check(token.Colon, 1) {
		return false
	}
	if strings.HasPrefix(name.Lexeme, "--") {
		return true
	}
	for i := 2; ; i++ {
		switch v := p.Peek(i).(type) {
		case nil:
			return true
		case ast.Token:
			switch v.Type {
			case token.Semicolon, token.EOF:
				return true
			case token.LeftBrace:
				return false
			}
		case *ast.SimpleBlock:
			if v.Open.Type == token.LeftBrace {
				return false
			}
		}
	}
}

// ConsumeDeclaration consumes "name: value [!important]" up to the next
// top-level ';'. The value is resolved before the important marker is
// stripped, so a variable may carry it.
func (p *StyleBlockParser) ConsumeDeclaration() (*ast.Declaration, error) {
	name, err := p.ConsumeToken(token.Ident, "expected property name")
	if err != nil {
		return nil, err
	}
	colon, err := p.ConsumeToken(token.Colon, "expected ':' after property name")
	if err != nil {
		return nil, err
	}

	var value []ast.ComponentValue
	for !p.atEnd() && !p.Check(token.Semicolon, 0) {
		v, err := p.ConsumeComponentValue()
		if err != nil {
			return nil, err
		}
		value = append(value, v)
	}
	if p.Check(token.Semicolon, 0) {
		p.Consume() //nolint:errcheck // front is known to exist
	}

	if value, err = p.resolve(value); err != nil {
		return nil, err
	}
	decl := &ast.Declaration{Name: name, Colon: colon}
	decl.Value, decl.Important = stripFlag(value, "important")
	return decl, nil
}

// consumeAtRuleEntries consumes an at-rule. Definitions are bound and
// produce nothing, @include produces the entries of its expansion, and any
// other at-rule is returned with its '{' block parsed in a child scope.
func (p *StyleBlockParser) consumeAtRuleEntries() (ast.StyleBlock, error) {
	rule, err := p.ConsumeAtRule()
	if err != nil {
		return nil, err
	}
	ok, err := p.consumeDefinition(rule)
	if err != nil || ok {
		return nil, err
	}
	if strings.EqualFold(rule.Name.Lexeme, "include") {
		return p.consumeInclude(rule)
	}

	if rule.Prelude, err = p.resolvePrelude(rule.Prelude); err != nil {
		return nil, err
	}
	if rule.Block != nil {
		scope := p.scopes.Push(p.scope)
		defer p.scopes.Release(scope)
		if rule.Rules, err = p.StyleBlock(rule.Block.Values, scope, p.parent).Parse(); err != nil {
			return nil, err
		}
	}
	return ast.StyleBlock{rule}, nil
}

// consumeInclude expands "@include a, b(args)". Names that are undefined or
// bound to a function macro expand to nothing.
func (p *StyleBlockParser) consumeInclude(rule *ast.AtRule) (ast.StyleBlock, error) {
	if len(rule.Prelude) == 0 {
		return nil, errorAt(ErrUnexpectedToken, rule, "expected mixin name after @%s", rule.Name.Lexeme)
	}

	var out ast.StyleBlock
	for _, item := range splitCommas(rule.Prelude) {
		if len(item) != 1 {
			return nil, errorAt(ErrUnexpectedToken, firstOr(item, rule), "expected mixin name or call in @%s", rule.Name.Lexeme)
		}

		var name token.Token
		var args [][]ast.ComponentValue
		switch v := item[0].(type) {
		case ast.Token:
			if v.Type != token.Ident {
				return nil, errorAt(ErrUnexpectedToken, v, "expected mixin name, got %s", describe(v))
			}
			name = v.Token
		case *ast.FunctionCall:
			name = v.Name
			for _, arg := range v.Arguments {
				resolved, err := p.resolve(arg)
				if err != nil {
					return nil, err
				}
				args = append(args, resolved)
			}
		default:
			return nil, errorAt(ErrUnexpectedToken, v, "expected mixin name, got %s", describe(v))
		}

		m, ok := p.scopes.FindMixin(p.scope, name.Lexeme)
		if !ok || m.Kind != MixinMacro {
			continue
		}
		entries, err := p.includeMixin(name, m, args)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	return out, nil
}

// includeMixin parses the body of m. A mixin with a parameter list runs in
// a child scope binding its parameters; one without shares the including
// scope, as if its body were written in place.
func (p *StyleBlockParser) includeMixin(name token.Token, m *Mixin, args [][]ast.ComponentValue) (ast.StyleBlock, error) {
	if err := p.expansions.enter(name.Lexeme, name); err != nil {
		return nil, err
	}
	defer p.expansions.leave(name.Lexeme)

	scope := p.scope
	switch {
	case m.Function != nil:
		scope = p.scopes.Push(p.scope)
		defer p.scopes.Release(scope)
		if err := p.bindArguments(scope, m.Function, args, name); err != nil {
			return nil, err
		}
	case len(args) > 0:
		return nil, newError(ErrArguments, &name, "mixin %q takes no arguments", name.Lexeme)
	}
	return p.StyleBlock(m.Body, scope, p.parent).Parse()
}

// consumeStyleRule consumes a qualified rule, parses its prelude as a
// selector list and its block as a nested style block in a child scope.
func (p *StyleBlockParser) consumeStyleRule() (*ast.StyleRule, error) {
	qr, err := p.consumeQualifiedRule(true)
	if err != nil {
		return nil, err
	}
	prelude, err := p.resolve(qr.Prelude)
	if err != nil {
		return nil, err
	}
	if len(prelude) == 0 {
		v := ast.ComponentValue(qr.Block)
		if qr.Block == nil {
			v = nil
		}
		return nil, errorAt(ErrSelector, v, "expected selector")
	}

	selectors, err := NewSelectorParser(prelude).Parse()
	if err != nil {
		return nil, err
	}
	rule := &ast.StyleRule{
		Prelude:   prelude,
		Selectors: selectors.ResolveNesting(p.parent),
	}
	if qr.Block == nil {
		return rule, nil
	}

	scope := p.scopes.Push(p.scope)
	defer p.scopes.Release(scope)
	if rule.Block, err = p.StyleBlock(qr.Block.Values, scope, rule.Selectors).Parse(); err != nil {
		return nil, err
	}
	return rule, nil
}
