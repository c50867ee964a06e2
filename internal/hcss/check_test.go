package hcss

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/hcss/internal/parser"
)

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"good.hcss": `$c: red;
a {
  color: $c;
  b { x: y; }
}
@media print {
  a { z: 1; }
}
`,
		"bad.hcss":    "a > > b { }\n",
		"app.min.css": "a{b:c}",
		"notes.txt":   "ignored",
		"empty.hcss":  "",
		"legacy.hcss": "@import 'x.css';\n.old { float: left }",
	})

	result, err := Check(Config{Paths: []string{filepath.Join(dir, "*.hcss"), filepath.Join(dir, "*.css")}})
	require.NoError(t, err)

	assert.Equal(t, 5, result.FilesDiscovered)
	assert.Equal(t, 4, result.FilesScanned)
	assert.Equal(t, 1, result.FilesSkipped)
	assert.Equal(t, 1, result.FilesFailed)
	assert.Equal(t, 4, result.Rules)
	assert.Equal(t, 2, result.AtRules)
	assert.Equal(t, 4, result.Declarations)
	assert.Equal(t, 1, result.ErrorCount())

	require.Len(t, result.Issues, 1)
	issue := result.Issues[0]
	assert.Equal(t, filepath.Join(dir, "bad.hcss"), issue.Pos.Filename)
	assert.Equal(t, 1, issue.Pos.Line)
	assert.Equal(t, 5, issue.Pos.Column)
	assert.Equal(t, `unexpected ">" in selector`, issue.Text)
	assert.Equal(t, []string{"a > > b { }"}, issue.SourceLines)
	assert.Equal(t, LinterName, issue.FromLinter)
	assert.Equal(t, SeverityError, issue.Severity)
}

func TestCheckPerFileCounts(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.hcss": "@mixin m { x: 1; y: 2; }\n.a { @include m; }",
	})

	result, err := Check(Config{Paths: []string{filepath.Join(dir, "*.hcss")}})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Equal(t, FileResult{
		Path:         filepath.Join(dir, "a.hcss"),
		Rules:        1,
		Declarations: 2,
	}, result.Files[0])
	assert.Empty(t, result.Issues)
}

func TestCheckMaxIssues(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.hcss": "@mixin a { @include a; }\nx { @include a; }",
		"b.hcss": "@mixin m($a) {}\nx { @include m(1, 2); }",
		"c.hcss": "a. b {}",
	})

	result, err := Check(Config{Paths: []string{filepath.Join(dir, "*.hcss")}, MaxIssues: 2})
	require.NoError(t, err)

	assert.Len(t, result.Issues, 2)
	assert.Equal(t, 1, result.TruncatedCount)
	assert.Equal(t, 3, result.FilesFailed)
}

func TestCheckBadPattern(t *testing.T) {
	_, err := Check(Config{Paths: []string{"[.hcss"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expanding paths")
}

func TestIssueFromError(t *testing.T) {
	t.Run("positioned parse error", func(t *testing.T) {
		src := "a {}\r\n@mixin m($a, $a) {}"
		_, err := parser.NewStyleBlockParser(src).Parse()
		require.Error(t, err)

		issue := IssueFromError("m.hcss", src, err)
		assert.Equal(t, "duplicate parameter $a", issue.Text)
		assert.Equal(t, IssuePos{Filename: "m.hcss", Line: 2, Column: 15}, issue.Pos)
		assert.Equal(t, []string{"@mixin m($a, $a) {}"}, issue.SourceLines)
	})

	t.Run("plain error", func(t *testing.T) {
		issue := IssueFromError("x.hcss", "", errors.New("boom"))
		assert.Equal(t, "boom", issue.Text)
		assert.Equal(t, IssuePos{Filename: "x.hcss"}, issue.Pos)
		assert.Nil(t, issue.SourceLines)
		assert.Equal(t, SeverityError, issue.Severity)
	})
}

func TestSourceLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d", ""}, sourceLines("a\r\nb\rc\fd\n"))
}
