// Package main provides the hcss CLI for checking and inspecting hcss
// stylesheets.
package main

import (
	"errors"
	"fmt"
	"os"
)

// errIssuesFound makes the process exit with status 1 without printing an
// extra error line; the issues were already reported.
var errIssuesFound = errors.New("issues found")

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errIssuesFound) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
