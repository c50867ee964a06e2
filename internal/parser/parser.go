// Package parser turns hcss tokens into component values, resolves
// variables and macros against a chain of lexical scopes, and builds style
// blocks and selector lists.
//
// The layers share a Stream of component values:
//
//	Parser            grammar rules: blocks, functions, at-rules, qualified rules
//	StyleBlockParser  declarations, nested rules, @include expansion
//	SelectorParser    selector lists of a rule prelude
//
// Fatal problems are returned as *Error; malformed tokens and unclosed
// blocks are kept as values.
package parser

import (
	"slices"
	"strings"

	"github.com/ahrtr/gocontainer/set"

	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/lexer"
	"github.com/yacobolo/hcss/internal/token"
)

// Parser consumes component values at the grammar level. It resolves names
// against its scope in a Scopes arena shared with every child parser.
type Parser struct {
	*Stream

	scopes     *Scopes
	scope      ScopeID
	expansions *expansions
}

// New tokenizes src and returns a parser over its tokens in a fresh root
// scope.
func New(src string) *Parser {
	return NewFromTokens(lexer.Tokenize(src))
}

// NewFromTokens returns a parser over tokens in a fresh root scope.
func NewFromTokens(tokens []token.Token) *Parser {
	scopes := NewScopes()
	return &Parser{
		Stream:     NewTokenStream(tokens),
		scopes:     scopes,
		scope:      scopes.Root(),
		expansions: newExpansions(),
	}
}

// Scopes returns the arena the parser resolves names in.
func (p *Parser) Scopes() *Scopes {
	return p.scopes
}

// Scope returns the scope the parser resolves names in.
func (p *Parser) Scope() ScopeID {
	return p.scope
}

// child returns a parser over values resolving in scope, sharing the arena
// and the expansion state.
func (p *Parser) child(values []ast.ComponentValue, scope ScopeID) *Parser {
	return &Parser{
		Stream:     NewStream(values),
		scopes:     p.scopes,
		scope:      scope,
		expansions: p.expansions,
	}
}

// Parse consumes a list of top-level rules. Definitions (@mixin, @function,
// @custom-media and variables) are bound in the parser's scope and not
// returned; other at-rules and qualified rules are returned with their
// preludes resolved and their blocks raw.
func (p *Parser) Parse() ([]ast.ComponentValue, error) {
	var rules []ast.ComponentValue
	for {
		switch {
		case p.atEnd():
			return rules, nil
		case p.Check(token.CDO, 0), p.Check(token.CDC, 0), p.Check(token.Semicolon, 0):
			p.Consume() //nolint:errcheck // front is known to exist
		case p.Check(token.AtKeyword, 0):
			rule, err := p.ConsumeAtRule()
			if err != nil {
				return nil, err
			}
			ok, err := p.consumeDefinition(rule)
			if err != nil {
				return nil, err
			}
			if ok {
				continue
			}
			if rule.Prelude, err = p.resolvePrelude(rule.Prelude); err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		case p.atVariable():
			if err := p.consumeVariable(); err != nil {
				return nil, err
			}
		default:
			rule, err := p.ConsumeQualifiedRule()
			if err != nil {
				return nil, err
			}
			if rule.Prelude, err = p.resolve(rule.Prelude); err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
	}
}

// ConsumeComponentValue consumes the front value, building a simple block
// for an opening bracket and a function call for a function token.
func (p *Parser) ConsumeComponentValue() (ast.ComponentValue, error) {
	v, err := p.Consume()
	if err != nil {
		return nil, err
	}
	t, ok := v.(ast.Token)
	switch {
	case !ok:
		return v, nil
	case t.Type.IsOpen():
		return p.consumeSimpleBlock(t.Token)
	case t.Type == token.Function:
		return p.consumeFunctionCall(t.Token)
	}
	return v, nil
}

// consumeSimpleBlock reads values up to the bracket mirroring open. Running
// out of input leaves the block without a close token.
func (p *Parser) consumeSimpleBlock(open token.Token) (*ast.SimpleBlock, error) {
	block := &ast.SimpleBlock{Open: open}
	closing := token.Mirror(open.Type)
	for {
		if p.atEnd() {
			return block, nil
		}
		if p.Check(closing, 0) {
			t, _ := p.PeekToken(0)
			p.Consume() //nolint:errcheck // front is known to exist
			block.Close = &t
			return block, nil
		}
		v, err := p.ConsumeComponentValue()
		if err != nil {
			return nil, err
		}
		block.Values = append(block.Values, v)
	}
}

// consumeFunctionCall reads comma-separated arguments up to the closing
// parenthesis.
func (p *Parser) consumeFunctionCall(name token.Token) (*ast.FunctionCall, error) {
	call := &ast.FunctionCall{Name: name}
	var arg []ast.ComponentValue
	for {
		switch {
		case p.atEnd():
			if arg != nil || call.Arguments != nil {
				call.Arguments = append(call.Arguments, arg)
			}
			return call, nil
		case p.Check(token.RightParen, 0):
			p.Consume() //nolint:errcheck // front is known to exist
			if arg != nil || call.Arguments != nil {
				call.Arguments = append(call.Arguments, arg)
			}
			return call, nil
		case p.Check(token.Comma, 0):
			p.Consume() //nolint:errcheck // front is known to exist
			call.Arguments = append(call.Arguments, arg)
			arg = []ast.ComponentValue{}
		default:
			v, err := p.ConsumeComponentValue()
			if err != nil {
				return nil, err
			}
			arg = append(arg, v)
		}
	}
}

// ConsumeQualifiedRule reads a prelude up to a '{' block or the end of
// input.
func (p *Parser) ConsumeQualifiedRule() (*ast.QualifiedRule, error) {
	return p.consumeQualifiedRule(false)
}

// consumeQualifiedRule reads a qualified rule. In nested mode a top-level
// ';' also ends the prelude, leaving the rule without a block.
func (p *Parser) consumeQualifiedRule(nested bool) (*ast.QualifiedRule, error) {
	rule := &ast.QualifiedRule{}
	for {
		switch {
		case p.atEnd():
			return rule, nil
		case nested && p.Check(token.Semicolon, 0):
			p.Consume() //nolint:errcheck // front is known to exist
			return rule, nil
		case p.atBlock():
			block, err := p.consumeBlock()
			if err != nil {
				return nil, err
			}
			rule.Block = block
			return rule, nil
		}
		v, err := p.ConsumeComponentValue()
		if err != nil {
			return nil, err
		}
		rule.Prelude = append(rule.Prelude, v)
	}
}

// ConsumeAtRule reads an at-keyword, its prelude and an optional '{' block.
// The prelude ends at ';', a block or the end of input.
func (p *Parser) ConsumeAtRule() (*ast.AtRule, error) {
	name, err := p.ConsumeToken(token.AtKeyword, "expected at-keyword")
	if err != nil {
		return nil, err
	}
	rule := &ast.AtRule{Name: name}
	for {
		switch {
		case p.atEnd():
			return rule, nil
		case p.Check(token.Semicolon, 0):
			p.Consume() //nolint:errcheck // front is known to exist
			return rule, nil
		case p.atBlock():
			block, err := p.consumeBlock()
			if err != nil {
				return nil, err
			}
			rule.Block = block
			return rule, nil
		}
		v, err := p.ConsumeComponentValue()
		if err != nil {
			return nil, err
		}
		rule.Prelude = append(rule.Prelude, v)
	}
}

// consumeBlock consumes the '{' block at the front, which is either a raw
// token or a block built by an enclosing parse.
func (p *Parser) consumeBlock() (*ast.SimpleBlock, error) {
	v, err := p.ConsumeComponentValue()
	if err != nil {
		return nil, err
	}
	block, ok := v.(*ast.SimpleBlock)
	if !ok {
		return nil, errorAt(ErrTypeMismatch, v, "expected block, got %s", describe(v))
	}
	return block, nil
}

// ConsumeFunctionDefinition reads the parameter list of a macro signature
// such as name($a, $b: 1px).
func (p *Parser) ConsumeFunctionDefinition(call *ast.FunctionCall) (*ast.FunctionDefinition, error) {
	def := &ast.FunctionDefinition{Name: call.Name}
	seen := map[string]bool{}
	for _, arg := range call.Arguments {
		if len(arg) < 2 || !isVariableRef(arg[0], arg[1]) {
			return nil, errorAt(ErrUnexpectedToken, firstOr(arg, call), "expected parameter name in %q", call.Name.Lexeme)
		}
		name := arg[1].(ast.Token).Lexeme
		if seen[name] {
			return nil, errorAt(ErrArguments, arg[1], "duplicate parameter $%s", name)
		}
		seen[name] = true

		param := ast.Parameter{Name: name}
		switch rest := arg[2:]; {
		case len(rest) == 0:
		case ast.IsToken(rest[0], token.Colon):
			param.Default = rest[1:]
			if param.Default == nil {
				param.Default = []ast.ComponentValue{}
			}
		default:
			return nil, errorAt(ErrUnexpectedToken, rest[0], "expected ':' or ',' after parameter $%s", name)
		}
		def.Parameters = append(def.Parameters, param)
	}
	return def, nil
}

// consumeDefinition binds rule when it is a macro or custom at-rule
// definition and reports whether it was one.
func (p *Parser) consumeDefinition(rule *ast.AtRule) (bool, error) {
	switch strings.ToLower(rule.Name.Lexeme) {
	case "mixin":
		return true, p.defineMacro(rule, MixinMacro)
	case "function":
		return true, p.defineMacro(rule, FunctionMacro)
	case "custom-media":
		return true, p.defineCustomMedia(rule)
	}
	return false, nil
}

func (p *Parser) defineMacro(rule *ast.AtRule, kind MixinKind) error {
	if len(rule.Prelude) != 1 {
		return errorAt(ErrUnexpectedToken, firstOr(rule.Prelude, rule), "expected a single name after @%s", rule.Name.Lexeme)
	}
	if rule.Block == nil {
		return errorAt(ErrUnexpectedToken, rule, "expected '{' after @%s", rule.Name.Lexeme)
	}

	var name string
	var def *ast.FunctionDefinition
	switch v := rule.Prelude[0].(type) {
	case ast.Token:
		if v.Type != token.Ident {
			return errorAt(ErrUnexpectedToken, v, "expected name after @%s, got %s", rule.Name.Lexeme, describe(v))
		}
		name = v.Lexeme
		if kind == FunctionMacro {
			def = &ast.FunctionDefinition{Name: v.Token}
		}
	case *ast.FunctionCall:
		d, err := p.ConsumeFunctionDefinition(v)
		if err != nil {
			return err
		}
		if err := p.resolveDefaults(d); err != nil {
			return err
		}
		name, def = v.Name.Lexeme, d
	default:
		return errorAt(ErrUnexpectedToken, v, "expected name after @%s, got %s", rule.Name.Lexeme, describe(v))
	}

	body := rule.Block.Values
	if kind == FunctionMacro {
		body = trimSemicolons(body)
	}
	if def != nil {
		def.Body = body
	}
	p.scopes.SetMixin(p.scope, name, &Mixin{Kind: kind, Function: def, Body: body})
	return nil
}

// resolveDefaults resolves parameter defaults at definition time. References
// to the definition's own parameters stay literal until expansion.
func (p *Parser) resolveDefaults(def *ast.FunctionDefinition) error {
	names := make([]string, len(def.Parameters))
	for i, param := range def.Parameters {
		names[i] = param.Name
	}
	scope := p.scopes.Push(p.scope)
	defer p.scopes.Release(scope)
	p.scopes.SetParameters(scope, names)

	resolver := p.child(nil, scope)
	for i, param := range def.Parameters {
		if param.Default == nil {
			continue
		}
		value, err := resolver.resolve(param.Default)
		if err != nil {
			return err
		}
		def.Parameters[i].Default = value
	}
	return nil
}

func (p *Parser) defineCustomMedia(rule *ast.AtRule) error {
	if len(rule.Prelude) == 0 {
		return errorAt(ErrUnexpectedToken, rule, "expected name after @%s", rule.Name.Lexeme)
	}
	name, ok := rule.Prelude[0].(ast.Token)
	if !ok || name.Type != token.Ident || !strings.HasPrefix(name.Lexeme, "--") {
		return errorAt(ErrUnexpectedToken, rule.Prelude[0], "expected --name after @%s, got %s", rule.Name.Lexeme, describe(rule.Prelude[0]))
	}
	value, err := p.resolvePrelude(rule.Prelude[1:])
	if err != nil {
		return err
	}
	p.scopes.SetAtRule(p.scope, name.Lexeme, value)
	return nil
}

// atVariable reports whether the front values declare a variable:
// '$' name ':'.
func (p *Parser) atVariable() bool {
	return isVariableRef(p.Peek(0), p.Peek(1)) && p.Check(token.Colon, 2)
}

// consumeVariable consumes "$name: value [!default];" and binds name in the
// parser's scope. With !default the binding is skipped when name is already
// visible.
func (p *Parser) consumeVariable() error {
	p.Consume() //nolint:errcheck // '$' is known to exist
	name, err := p.ConsumeToken(token.Ident, "expected variable name")
	if err != nil {
		return err
	}
	if _, err := p.ConsumeToken(token.Colon, "expected ':' after variable name"); err != nil {
		return err
	}

	var value []ast.ComponentValue
	for !p.atEnd() && !p.Check(token.Semicolon, 0) {
		v, err := p.ConsumeComponentValue()
		if err != nil {
			return err
		}
		value = append(value, v)
	}
	if p.Check(token.Semicolon, 0) {
		p.Consume() //nolint:errcheck // front is known to exist
	}

	value, isDefault := stripFlag(value, "default")
	if isDefault {
		if _, ok := p.scopes.FindVariable(p.scope, name.Lexeme); ok {
			return nil
		}
	}
	value, err = p.resolve(value)
	if err != nil {
		return err
	}
	p.scopes.SetVariable(p.scope, name.Lexeme, value)
	return nil
}

// isVariableRef reports whether a and b spell a variable reference: a '$'
// delimiter immediately followed by an identifier.
func isVariableRef(a, b ast.ComponentValue) bool {
	if !ast.IsToken(a, token.Delim, "$") {
		return false
	}
	t, ok := b.(ast.Token)
	return ok && t.Type == token.Ident && !t.SpaceBefore()
}

// stripFlag removes a trailing "!name" (case-insensitive) from values and
// reports whether it was present.
func stripFlag(values []ast.ComponentValue, name string) ([]ast.ComponentValue, bool) {
	n := len(values)
	if n < 2 || !ast.IsToken(values[n-2], token.Delim, "!") {
		return values, false
	}
	t, ok := values[n-1].(ast.Token)
	if !ok || t.Type != token.Ident || !strings.EqualFold(t.Lexeme, name) {
		return values, false
	}
	return values[:n-2], true
}

// splitCommas splits values on top-level comma tokens.
func splitCommas(values []ast.ComponentValue) [][]ast.ComponentValue {
	if len(values) == 0 {
		return nil
	}
	var out [][]ast.ComponentValue
	var cur []ast.ComponentValue
	for _, v := range values {
		if ast.IsToken(v, token.Comma) {
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, v)
	}
	return append(out, cur)
}

func trimSemicolons(values []ast.ComponentValue) []ast.ComponentValue {
	for len(values) > 0 && ast.IsToken(values[len(values)-1], token.Semicolon) {
		values = values[:len(values)-1]
	}
	return values
}

// firstOr returns the first of values, or fallback when there is none.
func firstOr(values []ast.ComponentValue, fallback ast.ComponentValue) ast.ComponentValue {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}

// expansions tracks the macros being expanded on the current call path.
type expansions struct {
	active set.Interface
	path   []string
}

func newExpansions() *expansions {
	return &expansions{active: set.New()}
}

// enter marks name as expanding. Re-entering a name that is already on the
// path is a recursion error.
func (e *expansions) enter(name string, at token.Token) error {
	if e.active.Contains(name) {
		path := append(slices.Clone(e.path), name)
		return newError(ErrRecursion, &at, "recursive expansion of %q: %s", name, strings.Join(path, " -> "))
	}
	e.active.Add(name)
	e.path = append(e.path, name)
	return nil
}

func (e *expansions) leave(name string) {
	e.active.Remove(name)
	e.path = e.path[:len(e.path)-1]
}
