// Package hcss implements the hcss command: stylesheet discovery, checking,
// issue reporting and tree export.
package hcss

// Config holds checker configuration
type Config struct {
	Paths   []string // Patterns to check (e.g., "styles/**/*.hcss")
	Verbose bool

	MaxIssues        int  // 0 = unlimited (default)
	PrintIssuedLines bool // Show source lines with issues (default: true)
	PrintLinterName  bool // Show (hcss) suffix (default: true)
	UseColors        bool // Enable color output (default: auto-detect)
}

// CheckResult contains the outcome of checking a set of stylesheets
type CheckResult struct {
	Files  []FileResult
	Issues []Issue

	FilesDiscovered int
	FilesScanned    int
	FilesSkipped    int // gitignored or minified
	FilesFailed     int // files with at least one issue
	Rules           int // style rules, nested ones included
	AtRules         int
	Declarations    int
	TruncatedCount  int // Issues removed due to MaxIssues
}

// ErrorCount returns the number of error-severity issues.
func (r *CheckResult) ErrorCount() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			n++
		}
	}
	return n
}

// FileResult is the per-file part of a CheckResult
type FileResult struct {
	Path         string
	Rules        int
	AtRules      int
	Declarations int
	Failed       bool
}

// OutputFormat represents the checker output format
type OutputFormat string

const (
	// OutputIssues shows only errors in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues + statistics
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)
