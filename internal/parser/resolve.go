package parser

import (
	"strings"

	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/token"
)

// resolve substitutes variable references and expands function macros in
// values, returning a new slice. Parenthesized and bracketed blocks and
// function arguments are resolved recursively; '{' blocks are left for the
// style-block parser that owns their scope. Unbound references are kept
// literally.
//
// Substituted values are not rescanned, so a binding that mentions its own
// name cannot loop.
func (p *Parser) resolve(values []ast.ComponentValue) ([]ast.ComponentValue, error) {
	if len(values) == 0 {
		return values, nil
	}
	out := make([]ast.ComponentValue, 0, len(values))
	for i := 0; i < len(values); i++ {
		switch v := values[i].(type) {
		case ast.Token:
			if i+1 < len(values) && isVariableRef(v, values[i+1]) {
				name := values[i+1].(ast.Token).Lexeme
				if bound, ok := p.scopes.FindVariable(p.scope, name); ok {
					out = append(out, bound...)
					i++
					continue
				}
			}
			out = append(out, v)
		case *ast.SimpleBlock:
			if v.Open.Type == token.LeftBrace {
				out = append(out, v)
				continue
			}
			inner, err := p.resolve(v.Values)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.SimpleBlock{Open: v.Open, Values: inner, Close: v.Close})
		case *ast.FunctionCall:
			expanded, err := p.resolveCall(v)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		default:
			out = append(out, v)
		}
	}
	return out, nil
}

// resolveCall resolves the arguments of call and expands it when it names a
// function macro.
func (p *Parser) resolveCall(call *ast.FunctionCall) ([]ast.ComponentValue, error) {
	var args [][]ast.ComponentValue
	if call.Arguments != nil {
		args = make([][]ast.ComponentValue, len(call.Arguments))
	}
	for i, arg := range call.Arguments {
		resolved, err := p.resolve(arg)
		if err != nil {
			return nil, err
		}
		args[i] = resolved
	}

	m, ok := p.scopes.FindMixin(p.scope, call.Name.Lexeme)
	if !ok || m.Kind != FunctionMacro {
		return []ast.ComponentValue{&ast.FunctionCall{Name: call.Name, Arguments: args}}, nil
	}
	return p.expandFunction(call.Name, m, args)
}

// expandFunction resolves the body of a function macro in a child scope
// binding its parameters.
func (p *Parser) expandFunction(name token.Token, m *Mixin, args [][]ast.ComponentValue) ([]ast.ComponentValue, error) {
	if err := p.expansions.enter(name.Lexeme, name); err != nil {
		return nil, err
	}
	defer p.expansions.leave(name.Lexeme)

	scope := p.scopes.Push(p.scope)
	defer p.scopes.Release(scope)
	if err := p.bindArguments(scope, m.Function, args, name); err != nil {
		return nil, err
	}
	return p.child(nil, scope).resolve(m.Body)
}

// bindArguments binds the parameters of def in scope: positionally from
// args, falling back to the parameter default. A parameter with neither
// stays unbound and its references are kept literally.
func (p *Parser) bindArguments(scope ScopeID, def *ast.FunctionDefinition, args [][]ast.ComponentValue, at token.Token) error {
	var params []ast.Parameter
	if def != nil {
		params = def.Parameters
	}
	if len(args) > len(params) {
		return newError(ErrArguments, &at, "%q takes %d argument(s), got %d", at.Lexeme, len(params), len(args))
	}

	names := make([]string, len(params))
	for i, param := range params {
		names[i] = param.Name
	}
	p.scopes.SetParameters(scope, names)

	resolver := p.child(nil, scope)
	for i, param := range params {
		switch {
		case i < len(args) && len(args[i]) > 0:
			p.scopes.SetVariable(scope, param.Name, args[i])
		case param.Default != nil:
			value, err := resolver.resolve(param.Default)
			if err != nil {
				return err
			}
			p.scopes.SetVariable(scope, param.Name, value)
		}
	}
	return nil
}

// resolvePrelude resolves an at-rule prelude and substitutes custom media
// references such as (--narrow).
func (p *Parser) resolvePrelude(values []ast.ComponentValue) ([]ast.ComponentValue, error) {
	resolved, err := p.resolve(values)
	if err != nil {
		return nil, err
	}
	return p.substituteCustomMedia(resolved), nil
}

func (p *Parser) substituteCustomMedia(values []ast.ComponentValue) []ast.ComponentValue {
	var out []ast.ComponentValue
	for _, v := range values {
		block, ok := v.(*ast.SimpleBlock)
		if !ok || block.Open.Type != token.LeftParen {
			out = append(out, v)
			continue
		}
		if len(block.Values) == 1 {
			if t, ok := block.Values[0].(ast.Token); ok && t.Type == token.Ident && strings.HasPrefix(t.Lexeme, "--") {
				if bound, ok := p.scopes.FindAtRule(p.scope, t.Lexeme); ok {
					out = append(out, bound...)
					continue
				}
			}
		}
		out = append(out, &ast.SimpleBlock{
			Open:   block.Open,
			Values: p.substituteCustomMedia(block.Values),
			Close:  block.Close,
		})
	}
	return out
}
