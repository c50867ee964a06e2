package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .hcss.yaml config file",
	Long:  `Create a .hcss.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".hcss.yaml"); err == nil && !force {
			return fmt.Errorf(".hcss.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".hcss.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .hcss.yaml")
		return nil
	},
}

const defaultConfig = `# hcss configuration
# Precedence: flags > HCSS_* environment variables > this file

verbose: false

check:
  paths:
    - "**/*.hcss"
    - "**/*.css"
  output-format: issues    # issues | summary | full | json
  max-issues: 0            # 0 = unlimited
  print-lines: true
  print-linter-name: true

tree:
  format: text             # text | json
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
