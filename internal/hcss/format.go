package hcss

import (
	"strings"

	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/token"
)

// FormatValues renders component values as compact source text for
// display. Whitespace is reproduced from the space flag only.
func FormatValues(values []ast.ComponentValue) string {
	var b strings.Builder
	writeValues(&b, values)
	return strings.TrimSpace(b.String())
}

func writeValues(b *strings.Builder, values []ast.ComponentValue) {
	for i, v := range values {
		if i > 0 && ast.SpaceBefore(v) {
			b.WriteByte(' ')
		}
		writeValue(b, v)
	}
}

func writeValue(b *strings.Builder, v ast.ComponentValue) {
	switch v := v.(type) {
	case ast.Token:
		b.WriteString(FormatToken(v.Token))
	case *ast.SimpleBlock:
		b.WriteString(v.Open.Lexeme)
		writeValues(b, v.Values)
		if v.Close != nil {
			b.WriteString(v.Close.Lexeme)
		}
	case *ast.FunctionCall:
		b.WriteString(v.Name.Lexeme)
		b.WriteByte('(')
		for i, arg := range v.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatValues(arg))
		}
		b.WriteByte(')')
	case *ast.AtRule:
		b.WriteString("@" + v.Name.Lexeme)
		if len(v.Prelude) > 0 {
			b.WriteByte(' ')
			writeValues(b, v.Prelude)
		}
		if v.Block != nil {
			b.WriteString(" {…}")
		}
	case *ast.QualifiedRule:
		writeValues(b, v.Prelude)
		if v.Block != nil {
			b.WriteString(" {…}")
		}
	case *ast.StyleRule:
		b.WriteString(FormatSelectors(v.Selectors))
		b.WriteString(" {…}")
	}
}

// FormatToken renders a token as it would appear in source.
func FormatToken(t token.Token) string {
	switch t.Type {
	case token.String, token.BadString:
		q := t.Flag(token.FlagQuote)
		return q + t.Lexeme + q
	case token.Hash:
		return "#" + t.Lexeme
	case token.AtKeyword:
		return "@" + t.Lexeme
	case token.Function:
		return t.Lexeme + "("
	case token.Percentage:
		return t.Lexeme + "%"
	case token.Dimension:
		return t.Lexeme + t.Flag(token.FlagUnit)
	case token.URL, token.BadURL:
		return "url(" + t.Lexeme + ")"
	case token.EOF:
		return ""
	}
	return t.Lexeme
}

// FormatSelectors renders a selector list.
func FormatSelectors(list ast.SelectorList) string {
	parts := make([]string, len(list))
	for i, complex := range list {
		parts[i] = formatComplex(complex)
	}
	return strings.Join(parts, ", ")
}

func formatComplex(c ast.ComplexSelector) string {
	var b strings.Builder
	for i, part := range c.Parts {
		switch {
		case part.Combinator == ast.CombinatorDescendant:
			b.WriteByte(' ')
		case part.Combinator != ast.CombinatorNone:
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(part.Combinator.String())
			b.WriteByte(' ')
		}
		writeCompound(&b, part.Compound)
	}
	return b.String()
}

func writeCompound(b *strings.Builder, c ast.CompoundSelector) {
	if c.Nesting {
		b.WriteByte('&')
	}
	if c.Type != nil {
		b.WriteString(formatWqName(c.Type.Name))
	}
	for _, sub := range c.Subclasses {
		switch s := sub.(type) {
		case ast.IDSelector:
			b.WriteString("#" + s.Name)
		case ast.ClassSelector:
			b.WriteString("." + s.Name)
		case ast.AttributeSelector:
			b.WriteString("[" + formatWqName(s.Name))
			if s.Matcher != ast.AttrExists {
				b.WriteString(string(s.Matcher))
				if s.Quoted {
					b.WriteString(`"` + s.Value + `"`)
				} else {
					b.WriteString(s.Value)
				}
				if s.Modifier != "" {
					b.WriteString(" " + s.Modifier)
				}
			}
			b.WriteByte(']')
		case ast.PseudoClassSelector:
			writePseudoClass(b, s)
		}
	}
	for _, pe := range c.PseudoElements {
		b.WriteString("::" + pe.Name)
		if pe.Arguments != nil {
			writeArguments(b, pe.Arguments)
		}
		for _, pc := range pe.PseudoClasses {
			writePseudoClass(b, pc)
		}
	}
}

func writePseudoClass(b *strings.Builder, pc ast.PseudoClassSelector) {
	b.WriteString(":" + pc.Name)
	switch {
	case len(pc.Selectors) > 0:
		b.WriteString("(" + FormatSelectors(pc.Selectors) + ")")
	case pc.Arguments != nil:
		writeArguments(b, pc.Arguments)
	}
}

func writeArguments(b *strings.Builder, args [][]ast.ComponentValue) {
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatValues(arg))
	}
	b.WriteByte(')')
}

func formatWqName(n ast.WqName) string {
	if n.Prefix == nil {
		return n.Local
	}
	return n.Prefix.Name + "|" + n.Local
}
