package hcss_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/hcss"
	"github.com/yacobolo/hcss/internal/ast"
	internal "github.com/yacobolo/hcss/internal/hcss"
	"github.com/yacobolo/hcss/internal/token"
)

func TestTokenize(t *testing.T) {
	tokens := hcss.Tokenize("a { color: red }")

	types := make([]token.Type, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	assert.Equal(t, []token.Type{
		token.Ident, token.LeftBrace, token.Ident, token.Colon, token.Ident, token.RightBrace, token.EOF,
	}, types)
	assert.True(t, tokens[1].SpaceBefore())
	assert.False(t, tokens[3].SpaceBefore())
}

func TestParseStylesheet(t *testing.T) {
	block, err := hcss.ParseStylesheet(`
$brand: #0af;

@mixin button($size: 1rem) {
	padding: $size;
	color: $brand;
}

.btn {
	@include button(2rem);
	&:hover { color: black !important; }
}
`)
	require.NoError(t, err)
	require.Len(t, block, 1)

	btn, ok := block[0].(*ast.StyleRule)
	require.True(t, ok)
	assert.Equal(t, ".btn", internal.FormatSelectors(btn.Selectors))

	decls := btn.Block.Declarations()
	require.Len(t, decls, 2)
	assert.Equal(t, "padding", decls[0].Name.Lexeme)
	assert.Equal(t, "2rem", internal.FormatValues(decls[0].Value))
	assert.Equal(t, "color", decls[1].Name.Lexeme)
	assert.Equal(t, "#0af", internal.FormatValues(decls[1].Value))

	require.Len(t, btn.Block, 3)
	hover, ok := btn.Block[2].(*ast.StyleRule)
	require.True(t, ok)
	assert.Equal(t, "&:is(.btn):hover", internal.FormatSelectors(hover.Selectors))

	hoverDecls := hover.Block.Declarations()
	require.Len(t, hoverDecls, 1)
	assert.Equal(t, "black", internal.FormatValues(hoverDecls[0].Value))
	assert.True(t, hoverDecls[0].Important)
}

func TestParseRules(t *testing.T) {
	rules, err := hcss.ParseRules("$w: 2px; @media print { a { b: $w } } .x $w {}")
	require.NoError(t, err)
	require.Len(t, rules, 2)

	media, ok := rules[0].(*ast.AtRule)
	require.True(t, ok)
	assert.Equal(t, "media", media.Name.Lexeme)
	assert.Nil(t, media.Rules, "blocks are not parsed")

	qr, ok := rules[1].(*ast.QualifiedRule)
	require.True(t, ok)
	assert.Equal(t, ".x 2px", internal.FormatValues(qr.Prelude))
}

func TestParseSelectors(t *testing.T) {
	list, err := hcss.ParseSelectors("ul > li:not(.done), a[href^=http]::after")
	require.NoError(t, err)
	assert.Equal(t, "ul > li:not(.done), a[href^=http]::after", internal.FormatSelectors(list))

	_, err = hcss.ParseSelectors("a >")
	require.ErrorIs(t, err, hcss.ErrSelector)
}

func TestErrorClasses(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"recursion", "@mixin a { @include a; } x { @include a; }", hcss.ErrRecursion},
		{"arguments", "@mixin m($a) {} x { @include m(1, 2); }", hcss.ErrArguments},
		{"selector", "a > > b { }", hcss.ErrSelector},
		{"unexpected token", "@mixin { }", hcss.ErrUnexpectedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hcss.ParseStylesheet(tt.src)
			require.ErrorIs(t, err, tt.want)

			var perr *hcss.Error
			require.True(t, errors.As(err, &perr))
			assert.NotNil(t, perr.Token)
		})
	}
}

func TestMalformedTokensDoNotFail(t *testing.T) {
	block, err := hcss.ParseStylesheet(`a { content: "unterminated
; b: url(bad url) }`)
	require.NoError(t, err)
	require.Len(t, block, 1)
}
