package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yacobolo/hcss"
	internal "github.com/yacobolo/hcss/internal/hcss"
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Print the resolved tree of a stylesheet",
	Long: `Parse FILE (or stdin when FILE is "-") with variables and macros resolved
and print the resulting rules and declarations.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closeFn, err := openInput(args[0])
		if err != nil {
			return err
		}
		defer closeFn()

		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		config := buildCheckConfig()
		src := string(data)
		block, err := hcss.ParseStylesheet(src)
		if err != nil {
			reporter := internal.NewReporter(cmd.ErrOrStderr(), config)
			reporter.PrintIssues([]internal.Issue{*internal.IssueFromError(args[0], src, err)})
			return errIssuesFound
		}

		switch format := getStringWithFallback("format", "tree.format", "text"); format {
		case "json":
			return internal.WriteTree(cmd.OutOrStdout(), block)
		case "text":
			return internal.WriteOutline(cmd.OutOrStdout(), block, config.UseColors)
		default:
			return fmt.Errorf("unknown tree format %q (want text or json)", format)
		}
	},
}

func init() {
	treeCmd.Flags().String("format", "text", "Output format: text|json")
}
