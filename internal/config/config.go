package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. PSEUDOSHELL_PROMPT.
const EnvPrefix = "pseudoshell"

type Config struct {
	Prompt        string `yaml:"prompt" envconfig:"PROMPT"`
	OutputFile    string `yaml:"output_file" envconfig:"OUTPUT_FILE"`
	MaxLineLength int    `yaml:"max_line_length" envconfig:"MAX_LINE_LENGTH"`
	Color         bool   `yaml:"color" envconfig:"COLOR"`
	LogLevel      string `yaml:"log_level" envconfig:"LOG_LEVEL"`
}

func DefaultConfig() *Config {
	return &Config{
		Prompt:        ">>> ",
		OutputFile:    "output.txt",
		MaxLineLength: 4096,
		Color:         true,
		LogLevel:      "warn",
	}
}

// ConfigPath is the per-user config file, resolved against $HOME.
func ConfigPath() string {
	return homeRelative("~/.pseudoshell/config.yaml")
}

// Load reads the YAML file at path (ConfigPath when empty), then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = ConfigPath()
	}
	data, err := os.ReadFile(homeRelative(path))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the shell cannot run with.
func (c *Config) Validate() error {
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("max_line_length must be positive, got %d", c.MaxLineLength)
	}
	if c.OutputFile == "" {
		return errors.New("output_file must not be empty")
	}
	return nil
}

// homeRelative resolves a leading "~" or "~/" against the current user's
// home directory. Other names starting with a tilde, such as "~alice/x" or
// "~notes", are ordinary paths. Without a home directory, "." stands in.
func homeRelative(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/') {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, rest)
}
