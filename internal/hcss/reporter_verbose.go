package hcss

import (
	"fmt"
	"io"
)

// VerboseReporter prints statistics about a check run
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs file and rule counts
func (r *VerboseReporter) PrintStatistics(result CheckResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Stylesheet Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	// File counts
	fmt.Fprintf(r.w, "Files Discovered: %d\n", result.FilesDiscovered)
	fmt.Fprintf(r.w, "Files Checked:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:    %d\n", result.FilesSkipped)
	fmt.Fprintf(r.w, "Files Failed:     %d\n", result.FilesFailed)

	// Entry counts, macros already expanded
	fmt.Fprintf(r.w, "Style Rules:      %d\n", result.Rules)
	fmt.Fprintf(r.w, "At-Rules:         %d\n", result.AtRules)
	fmt.Fprintf(r.w, "Declarations:     %d\n", result.Declarations)
}

// PrintFailedFiles lists the files that did not parse
func (r *VerboseReporter) PrintFailedFiles(result CheckResult) {
	if result.FilesFailed == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleRed, "Failed Files", r.useColors))
	fmt.Fprintln(r.w, "------------")

	// Only files that failed to parse are listed
	for _, fr := range result.Files {
		if fr.Failed {
			fmt.Fprintf(r.w, "• %s\n", fr.Path)
		}
	}
}
