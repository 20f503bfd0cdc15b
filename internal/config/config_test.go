package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "config_test_*.yml")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	_ = tmpFile.Close()
	return tmpFile.Name()
}

func boolPtr(b bool) *bool { return &b }

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "counter", cfg.IDs.Provider)
	assert.Equal(t, "+", cfg.IDs.Separator)
	assert.Equal(t, "UNIQUE_ID", cfg.IDs.StaticSuffix)
	assert.False(t, cfg.SideMenu.BareSideContainers)
	assert.Equal(t, "auto", cfg.Input.Format)
	assert.False(t, cfg.Input.NormalizeKeys)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Validate)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeTempConfig(t, `
ids:
  provider: uuid
  separator: "-"
side_menu:
  bare_side_containers: true
input:
  format: yaml
  normalize_keys: true
output:
  format: tree
  validate: false
dev:
  debug: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "uuid", cfg.IDs.Provider)
	assert.Equal(t, "-", cfg.IDs.Separator)
	assert.Equal(t, "UNIQUE_ID", cfg.IDs.StaticSuffix) // default kept
	assert.True(t, cfg.SideMenu.BareSideContainers)
	assert.Equal(t, "yaml", cfg.Input.Format)
	assert.True(t, cfg.Input.NormalizeKeys)
	assert.Equal(t, "tree", cfg.Output.Format)
	assert.False(t, cfg.Output.Validate)
	assert.True(t, cfg.Dev.Debug)
}

func TestConfig_LoadNonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/config.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := writeTempConfig(t, `
ids:
  provider: [unclosed array
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_LoadUnsupportedValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "id provider", content: "ids:\n  provider: sequence\n", want: "invalid ids.provider 'sequence'"},
		{name: "input format", content: "input:\n  format: toml\n", want: "invalid input.format 'toml'"},
		{name: "output format", content: "output:\n  format: xml\n", want: "invalid output.format 'xml'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeTempConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_FindConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_search_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	nestedDir := filepath.Join(tmpDir, "project", "subdir")
	err = os.MkdirAll(nestedDir, 0o755)
	require.NoError(t, err)

	configPath := filepath.Join(tmpDir, "project", ".navlayout.yml")
	err = os.WriteFile(configPath, []byte("ids:\n  provider: static\n"), 0o644)
	require.NoError(t, err)

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(nestedDir)
	require.NoError(t, err)

	foundPath := FindConfigFile()
	require.NotEmpty(t, foundPath, "Should find config file")

	foundContent, err := os.ReadFile(foundPath)
	require.NoError(t, err)
	assert.Contains(t, string(foundContent), "provider: static")
}

func TestConfig_FindConfigFileNotFound(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "no_config_test")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tmpDir) }()

	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(originalWd) }()

	err = os.Chdir(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, FindConfigFile())
}

func TestLoadConfigWithPrecedence(t *testing.T) {
	path := writeTempConfig(t, `
ids:
  provider: uuid
output:
  format: yaml
  validate: false
side_menu:
  bare_side_containers: true
`)

	cfg, err := LoadConfigWithCLI(path, Overrides{
		IDProvider:   "static",
		OutputFormat: "tree",
		Validate:     boolPtr(true),
	})
	require.NoError(t, err)

	// CLI > config file > defaults
	assert.Equal(t, "static", cfg.IDs.Provider)
	assert.Equal(t, "tree", cfg.Output.Format)
	assert.True(t, cfg.Output.Validate)
	assert.True(t, cfg.SideMenu.BareSideContainers) // from config file
	assert.Equal(t, "auto", cfg.Input.Format)       // default
}

func TestLoadConfigWithPrecedence_NoOverrides(t *testing.T) {
	path := writeTempConfig(t, `
input:
  normalize_keys: true
`)

	cfg, err := LoadConfigWithCLI(path, Overrides{})
	require.NoError(t, err)

	assert.True(t, cfg.Input.NormalizeKeys)
	assert.Equal(t, "counter", cfg.IDs.Provider)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadConfigWithCLI_NoFile(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", Overrides{Debug: boolPtr(true), NormalizeKeys: boolPtr(true)})
	require.NoError(t, err)

	assert.True(t, cfg.Dev.Debug)
	assert.True(t, cfg.Input.NormalizeKeys)
}

func TestLoadConfigWithCLI_InvalidOverride(t *testing.T) {
	_, err := LoadConfigWithCLI("", Overrides{OutputFormat: "html"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output.format 'html'")
}

func TestLoadConfigWithCLI_Verbose(t *testing.T) {
	cfg, err := LoadConfigWithCLI("", Overrides{Verbose: boolPtr(true)})
	require.NoError(t, err)

	assert.True(t, cfg.Dev.Verbose)
	assert.False(t, cfg.Dev.Debug)
}
