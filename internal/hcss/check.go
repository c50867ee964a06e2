package hcss

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/parser"
)

// Check parses every stylesheet matching config.Paths. A file that fails to
// parse yields an issue and does not stop the others; only a bad glob
// pattern is returned as an error.
func Check(config Config) (*CheckResult, error) {
	files, stats, err := expandGlobPatterns(config.Paths)
	if err != nil {
		return nil, fmt.Errorf("expanding paths: %w", err)
	}

	result := &CheckResult{
		FilesDiscovered: stats.FilesDiscovered,
		FilesScanned:    stats.FilesScanned,
		FilesSkipped:    stats.FilesSkipped,
	}

	if config.Verbose && stats.FilesSkipped > 0 {
		fmt.Fprintf(os.Stderr, "%s %d files (skipped %d minified/ignored files)\n",
			RenderStyle(StyleGreen, "Checking", config.UseColors), stats.FilesScanned, stats.FilesSkipped)
	}

	for _, file := range files {
		fr, issue := checkFile(file)
		if config.Verbose {
			printFileProgress(fr, config.UseColors)
		}
		result.Files = append(result.Files, fr)
		result.Rules += fr.Rules
		result.AtRules += fr.AtRules
		result.Declarations += fr.Declarations
		if issue != nil {
			result.FilesFailed++
			result.Issues = append(result.Issues, *issue)
		}
	}

	if config.MaxIssues > 0 && len(result.Issues) > config.MaxIssues {
		result.TruncatedCount = len(result.Issues) - config.MaxIssues
		result.Issues = result.Issues[:config.MaxIssues]
	}

	return result, nil
}

// checkFile parses one file. Parsing stops at the first fatal error, so a
// file produces at most one issue.
func checkFile(path string) (FileResult, *Issue) {
	fr := FileResult{Path: relativePath(path)}

	data, err := os.ReadFile(path)
	if err != nil {
		fr.Failed = true
		return fr, &Issue{
			FromLinter: LinterName,
			Text:       fmt.Sprintf("cannot read file: %v", err),
			Severity:   SeverityError,
			Pos:        IssuePos{Filename: fr.Path},
		}
	}

	src := string(data)
	block, err := parser.NewStyleBlockParser(src).Parse()
	if err != nil {
		fr.Failed = true
		return fr, IssueFromError(fr.Path, src, err)
	}

	countEntries(&fr, block)
	return fr, nil
}

// IssueFromError converts a parse error to an issue with 1-based position
// and the offending source line.
func IssueFromError(filename, src string, err error) *Issue {
	issue := &Issue{
		FromLinter: LinterName,
		Text:       err.Error(),
		Severity:   SeverityError,
		Pos:        IssuePos{Filename: filename},
	}

	var perr *parser.Error
	if !errors.As(err, &perr) {
		return issue
	}
	issue.Text = perr.Message
	if perr.Line < 0 {
		return issue
	}

	issue.Pos.Line = perr.Line + 1
	issue.Pos.Column = perr.Column + 1
	if lines := sourceLines(src); perr.Line < len(lines) {
		issue.SourceLines = []string{lines[perr.Line]}
	}
	return issue
}

// sourceLines splits src on the same line terminators the tokenizer counts.
func sourceLines(src string) []string {
	src = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\f", "\n").Replace(src)
	return strings.Split(src, "\n")
}

// countEntries adds the rules and declarations of block to fr, descending
// into nested rules and at-rule bodies.
func countEntries(fr *FileResult, block ast.StyleBlock) {
	for _, entry := range block {
		switch e := entry.(type) {
		case *ast.Declaration:
			fr.Declarations++
		case *ast.StyleRule:
			fr.Rules++
			countEntries(fr, e.Block)
		case *ast.AtRule:
			fr.AtRules++
			countEntries(fr, e.Rules)
		case *ast.QualifiedRule:
			fr.Rules++
		}
	}
}

func printFileProgress(fr FileResult, useColors bool) {
	if fr.Failed {
		fmt.Fprintf(os.Stderr, "  %s %s\n", RenderStyle(StyleRed, "FAIL", useColors), fr.Path)
		return
	}
	fmt.Fprintf(os.Stderr, "  %s %s %s\n",
		RenderStyle(StyleGreen, "ok", useColors),
		fr.Path,
		RenderStyle(StyleGray, fmt.Sprintf("(%s, %s)",
			pluralizeCount(fr.Rules, "rule", "rules"),
			pluralizeCount(fr.Declarations, "declaration", "declarations")), useColors))
}
