package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Supported values for the string options below.
var (
	IDProviders   = []string{"counter", "uuid", "static"}
	InputFormats  = []string{"auto", "json", "yaml"}
	OutputFormats = []string{"json", "yaml", "tree"}
)

// Config represents the complete configuration for navlayout
type Config struct {
	IDs      IDsConfig      `yaml:"ids"`
	SideMenu SideMenuConfig `yaml:"side_menu"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Dev      DevConfig      `yaml:"dev"`
}

// IDsConfig selects the identifier provider handed to the layout parser
type IDsConfig struct {
	Provider     string `yaml:"provider"`
	Separator    string `yaml:"separator"`
	StaticSuffix string `yaml:"static_suffix"`
}

// SideMenuConfig controls how side-menu shorthand is expanded
type SideMenuConfig struct {
	// BareSideContainers emits a container used as a left or right menu
	// without a ContainerStack around it.
	BareSideContainers bool `yaml:"bare_side_containers"`
}

// InputConfig controls how layout documents are read
type InputConfig struct {
	Format        string `yaml:"format"`
	NormalizeKeys bool   `yaml:"normalize_keys"`
}

// OutputConfig controls output generation options
type OutputConfig struct {
	Format   string `yaml:"format"`
	Validate bool   `yaml:"validate"`
	Stats    bool   `yaml:"stats"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		IDs: IDsConfig{
			Provider:     "counter",
			Separator:    "+",
			StaticSuffix: "UNIQUE_ID",
		},
		SideMenu: SideMenuConfig{
			BareSideContainers: false,
		},
		Input: InputConfig{
			Format:        "auto",
			NormalizeKeys: false,
		},
		Output: OutputConfig{
			Format:   "json",
			Validate: true,
			Stats:    false,
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".navlayout.yml", ".navlayout.yaml", "navlayout.yml", "navlayout.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate reports the first option holding an unsupported value
func (c *Config) Validate() error {
	if !slices.Contains(IDProviders, c.IDs.Provider) {
		return fmt.Errorf("invalid ids.provider '%s': want one of %v", c.IDs.Provider, IDProviders)
	}
	if !slices.Contains(InputFormats, c.Input.Format) {
		return fmt.Errorf("invalid input.format '%s': want one of %v", c.Input.Format, InputFormats)
	}
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output.format '%s': want one of %v", c.Output.Format, OutputFormats)
	}
	return nil
}

// Overrides carries CLI values. Empty strings and nil pointers leave the
// file value in place.
type Overrides struct {
	IDProvider         string
	InputFormat        string
	OutputFormat       string
	NormalizeKeys      *bool
	BareSideContainers *bool
	Validate           *bool
	Stats              *bool
	Debug              *bool
	Verbose            *bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if o.IDProvider != "" {
		cfg.IDs.Provider = o.IDProvider
	}
	if o.InputFormat != "" {
		cfg.Input.Format = o.InputFormat
	}
	if o.OutputFormat != "" {
		cfg.Output.Format = o.OutputFormat
	}
	setBool(&cfg.Input.NormalizeKeys, o.NormalizeKeys)
	setBool(&cfg.SideMenu.BareSideContainers, o.BareSideContainers)
	setBool(&cfg.Output.Validate, o.Validate)
	setBool(&cfg.Output.Stats, o.Stats)
	setBool(&cfg.Dev.Debug, o.Debug)
	setBool(&cfg.Dev.Verbose, o.Verbose)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
