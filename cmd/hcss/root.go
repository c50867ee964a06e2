package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hcss",
	Short: "Parser and checker for hcss stylesheets",
	Long: `hcss parses CSS extended with variables, mixins and function macros.
Variables and macros are resolved at parse time; the check command reports
every stylesheet that fails to parse.`,
	// Default behavior: run check when no subcommand is given.
	// We must call loadConfig here because PreRunE of checkCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runCheck(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".hcss.yaml", "Config file path")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
