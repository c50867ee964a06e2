package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/hcss/internal/hcss"
)

var checkCmd = &cobra.Command{
	Use:   "check [PATTERN...]",
	Short: "Parse stylesheets and report errors",
	Long: `Parse every stylesheet matching the configured glob patterns, resolving
variables, mixins and function macros. Files that fail to parse are
reported in golangci-lint format.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.StringSlice("paths", nil, "Glob patterns of stylesheets to check (default **/*.hcss, **/*.css)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (hcss) suffix on issues")
}

func runCheck(_ *cobra.Command, args []string) error {
	config := buildCheckConfig()
	if len(args) > 0 {
		config.Paths = args
	}

	result, err := hcss.Check(config)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "check.output-format", "")
	format := hcss.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		hcss.WriteOutput(os.Stdout, result, format, config)
	}

	if result.ErrorCount() > 0 {
		return errIssuesFound
	}
	return nil
}
