package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/hcss/internal/hcss"
	"github.com/yacobolo/hcss/internal/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the tokens of a stylesheet",
	Long:  `Tokenize FILE (or stdin when FILE is "-") and print one token per line.`,
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		r, closeFn, err := openInput(args[0])
		if err != nil {
			return err
		}
		defer closeFn()

		tokens := lexer.New(r).Lex()
		useColors := getBoolWithFallback("color", "color", false)
		return hcss.WriteTokens(cmd.OutOrStdout(), tokens, useColors)
	},
}

// openInput opens path for reading; "-" is stdin.
func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
