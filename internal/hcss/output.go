package hcss

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/yacobolo/hcss/internal/ast"
	"github.com/yacobolo/hcss/internal/token"
)

// DetermineOutputFormat selects the output format from flags
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues // suppressed in the command
	}

	switch formatFlag {
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	}

	return OutputIssues
}

// WriteOutput writes the check result in the specified format
func WriteOutput(w io.Writer, result *CheckResult, format OutputFormat, config Config) {
	switch format {
	case OutputIssues:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

	case OutputSummary:
		verboseReporter := NewVerboseReporter(w, shouldUseColors(config))
		verboseReporter.PrintStatistics(*result)
		verboseReporter.PrintFailedFiles(*result)

	case OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		verboseReporter := NewVerboseReporter(w, reporter.UseColors())
		verboseReporter.PrintStatistics(*result)
		verboseReporter.PrintFailedFiles(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		}
	}
}

// WriteTokens prints one token per line: position, type, source text and
// flags.
func WriteTokens(w io.Writer, tokens []token.Token, useColors bool) error {
	for _, t := range tokens {
		pos := fmt.Sprintf("%d:%d", t.Line+1, t.Column+1)
		line := fmt.Sprintf("%-8s %-11s %s", RenderStyle(StyleCyan, pos, useColors), t.Type, FormatToken(t))
		if flags := formatFlags(t.Flags); flags != "" {
			line += " " + RenderStyle(StyleGray, flags, useColors)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatFlags(flags map[string]string) string {
	if len(flags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(flags))
	for k := range flags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + flags[k]
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// WriteOutline prints a parsed style block as an indented outline.
func WriteOutline(w io.Writer, block ast.StyleBlock, useColors bool) error {
	return writeOutline(w, block, 0, useColors)
}

func writeOutline(w io.Writer, block ast.StyleBlock, depth int, useColors bool) error {
	indent := strings.Repeat("  ", depth)
	for _, entry := range block {
		var err error
		switch e := entry.(type) {
		case *ast.Declaration:
			important := ""
			if e.Important {
				important = " !important"
			}
			_, err = fmt.Fprintf(w, "%s%s: %s%s;\n", indent, RenderStyle(StyleCyan, e.Name.Lexeme, useColors), FormatValues(e.Value), important)
		case *ast.StyleRule:
			if _, err = fmt.Fprintf(w, "%s%s {\n", indent, RenderStyle(StyleGreen, FormatSelectors(e.Selectors), useColors)); err == nil {
				if err = writeOutline(w, e.Block, depth+1, useColors); err == nil {
					_, err = fmt.Fprintf(w, "%s}\n", indent)
				}
			}
		case *ast.AtRule:
			head := "@" + e.Name.Lexeme
			if len(e.Prelude) > 0 {
				head += " " + FormatValues(e.Prelude)
			}
			if e.Block == nil {
				_, err = fmt.Fprintf(w, "%s%s;\n", indent, RenderStyle(StyleYellow, head, useColors))
				break
			}
			if _, err = fmt.Fprintf(w, "%s%s {\n", indent, RenderStyle(StyleYellow, head, useColors)); err == nil {
				if err = writeOutline(w, e.Rules, depth+1, useColors); err == nil {
					_, err = fmt.Fprintf(w, "%s}\n", indent)
				}
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}
