// Package config loads optional csvcombine settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"csvcombine/pkg/combine"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the scanned directory.
const FileName = ".csvcombine.yaml"

// Config represents csvcombine configuration options
type Config struct {
	// Extension is the file extension to combine, without the leading dot
	Extension string `yaml:"extension"`

	// XLSX also writes the combined rows to a workbook
	XLSX bool `yaml:"xlsx"`

	// Debug switches logging to the development configuration
	Debug bool `yaml:"debug"`

	// GlobalIgnore is a path to an ignore file applied before <root>/.combineignore
	GlobalIgnore string `yaml:"global_ignore"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Extension: combine.DefaultExtension,
	}
}

// LoadConfig loads configuration from path, merged over the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fileCfg.Extension != "" {
		cfg.Extension = fileCfg.Extension
	}
	cfg.XLSX = fileCfg.XLSX
	cfg.Debug = fileCfg.Debug
	if fileCfg.GlobalIgnore != "" {
		cfg.GlobalIgnore = expandPath(fileCfg.GlobalIgnore, filepath.Dir(path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigFromDir loads <dir>/.csvcombine.yaml.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// MergeWithFlags overrides config values with flags that were set explicitly.
// A nil pointer means the flag was not given.
func (c *Config) MergeWithFlags(extension *string, xlsx *bool, debug *bool, globalIgnore *string) {
	if extension != nil {
		c.Extension = *extension
	}
	if xlsx != nil {
		c.XLSX = *xlsx
	}
	if debug != nil {
		c.Debug = *debug
	}
	if globalIgnore != nil {
		c.GlobalIgnore = *globalIgnore
	}
}

// Validate checks the configuration for values the walker cannot use.
func (c *Config) Validate() error {
	return combine.ValidateExtension(c.Extension)
}

// expandPath resolves "~/" against the home directory and relative paths
// against base.
func expandPath(p, base string) string {
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	if !filepath.IsAbs(p) {
		return filepath.Join(base, p)
	}
	return p
}
