package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the per-repository configuration file.
const FileName = "relgate.yaml"

// Config represents the top-level relgate.yaml configuration.
type Config struct {
	// CredentialsFile is the line-oriented credentials file holding the
	// journal clone URL.
	CredentialsFile string `yaml:"credentials_file"`
	// JournalMarker is the case-insensitive substring that identifies the
	// journal line within the credentials file.
	JournalMarker string `yaml:"journal_marker"`
	// RequirementsFile is the JSON requirement document path, relative to
	// the repository root.
	RequirementsFile string `yaml:"requirements_file"`
	// ProcessTimeout bounds each git subprocess.
	ProcessTimeout time.Duration `yaml:"process_timeout"`
}

// Load reads a relgate.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault loads the configuration at path, falling back to defaults
// when no file exists.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the conventional defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults resolves each field: environment variables override file
// values, which override built-in defaults, so CI can point relgate at its
// own credentials file regardless of what the repo config says.
func (c *Config) applyDefaults() {
	if env := os.Getenv("RELGATE_CREDENTIALS_FILE"); env != "" {
		c.CredentialsFile = env
	}
	if c.CredentialsFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.CredentialsFile = filepath.Join(home, ".credentials")
		}
	}
	if env := os.Getenv("RELGATE_JOURNAL_MARKER"); env != "" {
		c.JournalMarker = env
	}
	if c.JournalMarker == "" {
		c.JournalMarker = "journal"
	}
	if c.RequirementsFile == "" {
		c.RequirementsFile = ".relgate/requirements.json"
	}
	if c.ProcessTimeout <= 0 {
		c.ProcessTimeout = 30 * time.Second
	}
}
