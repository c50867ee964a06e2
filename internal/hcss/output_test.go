package hcss

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/lexer"
	"github.com/yacobolo/hcss/internal/parser"
	"github.com/yacobolo/hcss/internal/token"
)

func mustParse(t *testing.T, src string) ast.StyleBlock {
	t.Helper()
	block, err := parser.NewStyleBlockParser(src).Parse()
	require.NoError(t, err)
	return block
}

func componentValues(t *testing.T, src string) []ast.ComponentValue {
	t.Helper()
	p := parser.New(src)
	var values []ast.ComponentValue
	for !p.Empty() && !p.Check(token.EOF, 0) {
		v, err := p.ConsumeComponentValue()
		require.NoError(t, err)
		values = append(values, v)
	}
	return values
}

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		formatFlag string
		quiet      bool
		expected   OutputFormat
	}{
		{name: "explicit quiet flag", quiet: true, expected: OutputIssues},
		{name: "explicit issues format", formatFlag: "issues", expected: OutputIssues},
		{name: "explicit summary format", formatFlag: "summary", expected: OutputSummary},
		{name: "explicit full format", formatFlag: "full", expected: OutputFull},
		{name: "explicit json format", formatFlag: "json", expected: OutputJSON},
		{name: "unknown format falls back to issues", formatFlag: "markdown", expected: OutputIssues},
		{name: "default format is issues", expected: OutputIssues},
		{name: "quiet overrides format flag", formatFlag: "full", quiet: true, expected: OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineOutputFormat(tt.formatFlag, tt.quiet))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	result := &CheckResult{
		FilesScanned: 3,
		FilesSkipped: 1,
		FilesFailed:  1,
		Rules:        7,
		AtRules:      2,
		Declarations: 12,
		Issues: []Issue{{
			FromLinter:  LinterName,
			Text:        `recursive expansion of "a": a -> a`,
			Severity:    SeverityError,
			SourceLines: []string{"  @include a;"},
			Pos:         IssuePos{Filename: "styles/a.hcss", Line: 2, Column: 12},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.NotEmpty(t, output.Timestamp)

	assert.Equal(t, JSONSummary{
		TotalIssues:  1,
		FilesScanned: 3,
		FilesSkipped: 1,
		FilesFailed:  1,
		Rules:        7,
		AtRules:      2,
		Declarations: 12,
	}, output.Summary)

	require.Len(t, output.Issues, 1)
	assert.Equal(t, JSONIssue{
		File:     "styles/a.hcss",
		Line:     2,
		Column:   12,
		Severity: "error",
		Message:  `recursive expansion of "a": a -> a`,
		Linter:   "hcss",
		Source:   "  @include a;",
	}, output.Issues[0])
}

func TestWriteJSONEmptyIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &CheckResult{}))
	assert.Contains(t, buf.String(), `"issues": []`)
}

func TestWriteOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	WriteOutput(&buf, &CheckResult{FilesScanned: 2}, OutputJSON, Config{})

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, 2, output.Summary.FilesScanned)
}

func TestWriteOutputSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteOutput(&buf, &CheckResult{FilesScanned: 2}, OutputSummary, Config{})
	assert.Contains(t, buf.String(), "Files Checked:    2")
	assert.NotContains(t, buf.String(), "issues:")
}

func TestWriteTokens(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTokens(&buf, lexer.Tokenize(`a {
  w: 2px "x"`), false))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	got := make([][]string, len(lines))
	for i, line := range lines {
		got[i] = strings.Fields(line)
	}

	want := [][]string{
		{"1:1", "IDENT", "a"},
		{"1:3", "{", "{", "[space=before]"},
		{"2:3", "IDENT", "w", "[space=before]"},
		{"2:4", "COLON", ":"},
		{"2:6", "DIMENSION", "2px", "[space=before", "type=integer", "unit=px]"},
		{"2:10", "STRING", `"x"`, "[quote=\"", "space=before]"},
		{"2:13", "EOF"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteOutline(t *testing.T) {
	block := mustParse(t, `
@import "base.css";
$pad: 4px;
.card {
  padding: $pad;
  &:hover { color: red !important; }
}
@media print {
  .card { display: none; }
}
`)

	var buf bytes.Buffer
	require.NoError(t, WriteOutline(&buf, block, false))

	want := `@import "base.css";
.card {
  padding: 4px;
  &:is(.card):hover {
    color: red !important;
  }
}
@media print {
  .card {
    display: none;
  }
}
`
	assert.Equal(t, want, buf.String())
}

func TestBuildTree(t *testing.T) {
	block := mustParse(t, `a, b {
  color: blue;
  @media (min-width: 10px) { gap: 1px; }
}`)

	want := []TreeNode{{
		Type:      "rule",
		Selectors: []string{"a", "b"},
		Prelude:   "a, b",
		Line:      1,
		Children: []TreeNode{
			{Type: "declaration", Name: "color", Value: "blue", Line: 2},
			{
				Type:    "at-rule",
				Name:    "media",
				Prelude: "(min-width: 10px)",
				Line:    3,
				Children: []TreeNode{
					{Type: "declaration", Name: "gap", Value: "1px", Line: 3},
				},
			},
		},
	}}
	if diff := cmp.Diff(want, BuildTree(block)); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, mustParse(t, "a { b: c !important }")))

	var nodes []TreeNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &nodes))
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Children, 1)
	assert.True(t, nodes[0].Children[0].Important)
	assert.Equal(t, "c", nodes[0].Children[0].Value)
}

func TestFormatValues(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1px solid #fff", "1px solid #fff"},
		{"rgb(1, 2,3)", "rgb(1, 2, 3)"},
		{"50%", "50%"},
		{`'a' "b"`, `'a' "b"`},
		{"url(x.png)", "url(x.png)"},
		{"(a [b])", "(a [b])"},
		{"  calc(1 +2)", "calc(1 +2)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValues(componentValues(t, tt.src)))
		})
	}
}

func TestFormatSelectors(t *testing.T) {
	tests := []string{
		"a.b#c",
		"ul > li + li ~ p",
		"a b",
		"[lang|=en], [data-x=\"y\" i]",
		"svg|rect, *|*, |a",
		"p::first-line, a::before:hover",
		":not(.a, .b):nth-child(2n +1)",
		":has(> img)",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			list, err := parser.NewSelectorParser(componentValues(t, src)).Parse()
			require.NoError(t, err)
			assert.Equal(t, src, FormatSelectors(list))
		})
	}
}

func TestFormatResolvedNesting(t *testing.T) {
	parent, err := parser.NewSelectorParser(componentValues(t, ".card")).Parse()
	require.NoError(t, err)

	tests := []struct {
		src  string
		want string
	}{
		{"&:hover", "&:is(.card):hover"},
		{"& > .title", "&:is(.card) > .title"},
		{":not(&)", ":not(&:is(.card))"},
		{"a::before:not(& .x)", "a::before:not(&:is(.card) .x)"},
		{".plain", ".plain"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			list, err := parser.NewSelectorParser(componentValues(t, tt.src)).Parse()
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatSelectors(list.ResolveNesting(parent)))
		})
	}
}
