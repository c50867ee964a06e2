package hcss

import (
	"encoding/json"
	"io"
	"time"

	"github.com/yacobolo/hcss/internal/ast"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped"`
	FilesFailed  int `json:"files_failed"`
	Rules        int `json:"rules"`
	AtRules      int `json:"at_rules"`
	Declarations int `json:"declarations"`
}

// JSONIssue represents a single issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// WriteJSON writes the check result as JSON
func WriteJSON(w io.Writer, result *CheckResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result))
}

// buildJSONOutput converts CheckResult to JSONOutput
func buildJSONOutput(result *CheckResult) JSONOutput {
	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		jsonIssues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			FilesScanned: result.FilesScanned,
			FilesSkipped: result.FilesSkipped,
			FilesFailed:  result.FilesFailed,
			Rules:        result.Rules,
			AtRules:      result.AtRules,
			Declarations: result.Declarations,
		},
		Issues: jsonIssues,
	}
}

// TreeNode is the JSON form of a style block entry.
type TreeNode struct {
	Type      string     `json:"type"` // "declaration", "rule", "at-rule", "qualified-rule"
	Name      string     `json:"name,omitempty"`
	Value     string     `json:"value,omitempty"`
	Important bool       `json:"important,omitempty"`
	Selectors []string   `json:"selectors,omitempty"`
	Prelude   string     `json:"prelude,omitempty"`
	Line      int        `json:"line"` // 1-based
	Children  []TreeNode `json:"children,omitempty"`
}

// WriteTree writes a parsed style block as indented JSON.
func WriteTree(w io.Writer, block ast.StyleBlock) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTree(block))
}

// BuildTree converts a style block to tree nodes.
func BuildTree(block ast.StyleBlock) []TreeNode {
	nodes := make([]TreeNode, 0, len(block))
	for _, entry := range block {
		nodes = append(nodes, buildNode(entry))
	}
	return nodes
}

func buildNode(entry ast.Entry) TreeNode {
	switch e := entry.(type) {
	case *ast.Declaration:
		return TreeNode{
			Type:      "declaration",
			Name:      e.Name.Lexeme,
			Value:     FormatValues(e.Value),
			Important: e.Important,
			Line:      e.Name.Line + 1,
		}
	case *ast.StyleRule:
		selectors := make([]string, len(e.Selectors))
		for i, complex := range e.Selectors {
			selectors[i] = formatComplex(complex)
		}
		return TreeNode{
			Type:      "rule",
			Selectors: selectors,
			Prelude:   FormatValues(e.Prelude),
			Line:      lineOf(e),
			Children:  BuildTree(e.Block),
		}
	case *ast.AtRule:
		return TreeNode{
			Type:     "at-rule",
			Name:     e.Name.Lexeme,
			Prelude:  FormatValues(e.Prelude),
			Line:     e.Name.Line + 1,
			Children: BuildTree(e.Rules),
		}
	case *ast.QualifiedRule:
		return TreeNode{
			Type:    "qualified-rule",
			Prelude: FormatValues(e.Prelude),
			Line:    lineOf(e),
		}
	}
	return TreeNode{Type: "unknown"}
}

func lineOf(v ast.ComponentValue) int {
	if t, ok := ast.FirstToken(v); ok {
		return t.Line + 1
	}
	return 0
}
