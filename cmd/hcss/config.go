package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/yacobolo/hcss/internal/hcss"
)

var k = koanf.New(".")

var defaultPaths = []string{"**/*.hcss", "**/*.css"}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".hcss.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags that were explicitly set are merged.
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("HCSS_", ".", func(s string) string {
		// HCSS_CHECK_OUTPUT-FORMAT -> check.output-format
		// HCSS_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "HCSS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildCheckConfig constructs the checker Config from koanf state.
func buildCheckConfig() hcss.Config {
	var paths []string
	if p := k.Strings("paths"); len(p) > 0 {
		paths = p
	} else if p := k.Strings("check.paths"); len(p) > 0 {
		paths = p
	} else {
		paths = defaultPaths
	}

	return hcss.Config{
		Paths:            paths,
		Verbose:          getBoolWithFallback("verbose", "verbose", false),
		MaxIssues:        getIntWithFallback("max-issues", "check.max-issues", 0),
		PrintIssuedLines: getBoolWithFallback("print-lines", "check.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "check.print-linter-name", true),
		UseColors:        getBoolWithFallback("color", "color", false),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
