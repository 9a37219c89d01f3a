package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Result keys for the JSON success record.
const (
	ResultKeyBMI = "bmi"
	ResultKeyIMC = "imc"
)

const configFile = "config.yaml"

type Config struct {
	ResultKey   string            `yaml:"result_key"`
	Format      string            `yaml:"format"`
	ActivityLog ActivityLogConfig `yaml:"activity_log"`
}

type ActivityLogConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Dir returns the imc state directory.
// Checks IMC_DIR env var, falls back to ~/.imc/.
func Dir() (string, error) {
	if dir := os.Getenv("IMC_DIR"); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("IMC_DIR: %w", err)
		}
		return abs, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".imc"), nil
}

// ResolvePath picks the config file location.
// Order: explicit path -> IMC_CONFIG env var -> <Dir()>/config.yaml.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return expandHome(explicit)
	}
	if env := os.Getenv("IMC_CONFIG"); env != "" {
		return expandHome(env)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load resolves the config path and reads it.
// If the file does not exist, it returns the default Config with no error.
func Load(explicit string) (*Config, error) {
	path, err := ResolvePath(explicit)
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from the given path and fills in defaults.
// If the file does not exist, it returns the default Config with no error.
// Unknown keys are rejected.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.ResultKey {
	case "", ResultKeyBMI, ResultKeyIMC:
	default:
		return fmt.Errorf("result_key %q is invalid (must be %q or %q)", c.ResultKey, ResultKeyBMI, ResultKeyIMC)
	}
	if err := ValidateFormat(c.Format); c.Format != "" && err != nil {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() error {
	if c.ResultKey == "" {
		c.ResultKey = ResultKeyBMI
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if c.ActivityLog.Path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		c.ActivityLog.Path = filepath.Join(dir, "activity.log")
		return nil
	}
	p, err := expandHome(c.ActivityLog.Path)
	if err != nil {
		return err
	}
	c.ActivityLog.Path = p
	return nil
}

// ValidateFormat checks that format names a supported output format.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatText:
		return nil
	}
	return fmt.Errorf("format %q is invalid (must be %q or %q)", format, FormatJSON, FormatText)
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
