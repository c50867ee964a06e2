package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".hcss.yaml")
	configContent := `
verbose: true

check:
  paths:
    - "styles/**/*.hcss"
  output-format: summary
  max-issues: 10
  print-lines: false

tree:
  format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, []string{"styles/**/*.hcss"}, k.Strings("check.paths"))
	assert.Equal(t, "summary", k.String("check.output-format"))
	assert.Equal(t, 10, k.Int("check.max-issues"))
	assert.False(t, k.Bool("check.print-lines"))
	assert.Equal(t, "json", k.String("tree.format"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// A missing config file is not an error
	require.NoError(t, loadConfigFromPath("/nonexistent/.hcss.yaml"))

	config := buildCheckConfig()
	assert.Equal(t, defaultPaths, config.Paths)
	assert.False(t, config.Verbose)
	assert.Equal(t, 0, config.MaxIssues)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.False(t, config.UseColors)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".hcss.yaml")
	configContent := `
verbose: false
check:
  max-issues: 3
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	t.Setenv("HCSS_VERBOSE", "true")
	t.Setenv("HCSS_CHECK_MAX-ISSUES", "7")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, 7, k.Int("check.max-issues"))
}

func TestBuildCheckConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".hcss.yaml")
	configContent := `
color: true
check:
  paths:
    - "a/*.hcss"
    - "b/*.css"
  max-issues: 5
  print-lines: false
  print-linter-name: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildCheckConfig()
	assert.Equal(t, []string{"a/*.hcss", "b/*.css"}, config.Paths)
	assert.Equal(t, 5, config.MaxIssues)
	assert.False(t, config.PrintIssuedLines)
	assert.False(t, config.PrintLinterName)
	assert.True(t, config.UseColors)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".hcss.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "check:")
	assert.Contains(t, string(data), `"**/*.hcss"`)
	assert.Contains(t, string(data), "tree:")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".hcss.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".hcss.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".hcss.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "check:")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "hcss dev\n", out.String())
}

func TestTreeCommand_JSON(t *testing.T) {
	resetKoanf()
	dir := t.TempDir()
	chdir(t, dir)

	src := `$gap: 4px;
@mixin box { display: block; }
.card { @include box; margin: $gap !important; }
`
	require.NoError(t, os.WriteFile("card.hcss", []byte(src), 0644))

	var out bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	cmd.SetArgs([]string{"tree", "card.hcss", "--format", "json"})
	require.NoError(t, cmd.Execute())

	var nodes []struct {
		Type      string   `json:"type"`
		Selectors []string `json:"selectors"`
		Children  []struct {
			Name      string `json:"name"`
			Value     string `json:"value"`
			Important bool   `json:"important"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &nodes))
	require.Len(t, nodes, 1)
	assert.Equal(t, "rule", nodes[0].Type)
	assert.Equal(t, []string{".card"}, nodes[0].Selectors)
	require.Len(t, nodes[0].Children, 2)
	assert.Equal(t, "display", nodes[0].Children[0].Name)
	assert.Equal(t, "block", nodes[0].Children[0].Value)
	assert.Equal(t, "margin", nodes[0].Children[1].Name)
	assert.Equal(t, "4px", nodes[0].Children[1].Value)
	assert.True(t, nodes[0].Children[1].Important)
}

func TestTreeCommand_ReportsParseError(t *testing.T) {
	resetKoanf()
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile("bad.hcss", []byte("@mixin a { @include a; }\n.x { @include a; }\n"), 0644))

	var errOut bytes.Buffer
	cmd := rootCmd
	cmd.SetErr(&errOut)
	t.Cleanup(func() { cmd.SetErr(nil) })
	cmd.SetArgs([]string{"tree", "bad.hcss", "--format", "text"})
	err := cmd.Execute()
	require.ErrorIs(t, err, errIssuesFound)
	assert.Contains(t, errOut.String(), "bad.hcss:")
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}
