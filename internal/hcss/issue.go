package hcss

// Issue represents a single problem in golangci-lint format
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "hcss"
	Text        string   `json:"Text"`        // "expected ':' after property name, got \"red\""
	Severity    string   `json:"Severity"`    // "", "warning", "error"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`         // File location
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "styles/components/button.hcss"
	Line     int    `json:"Line"`     // 12 (1-based)
	Column   int    `json:"Column"`   // 5 (1-based, in characters)
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// LinterName is reported as FromLinter on every issue.
const LinterName = "hcss"
