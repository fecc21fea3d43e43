// Copyright 2026 The eknova Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigEnvironmentVariable names the config file.
	ConfigEnvironmentVariable = "EKNOVA_CONFIG"

	// LogLevelEnvironmentVariable overrides log.level.
	LogLevelEnvironmentVariable = "EKNOVA_LOG_LEVEL"
)

// LogLevels lists the accepted values of log.level.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config is the eknova configuration.
type Config struct {
	// WSL configures how wsl.exe is invoked.
	WSL WSLConfig `yaml:"wsl"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Log configures the CLI logger.
	Log LogConfig `yaml:"log"`
}

// WSLConfig configures how wsl.exe is invoked.
type WSLConfig struct {
	// Binary is the WSL executable, looked up on PATH.
	// Default: wsl
	Binary string `yaml:"binary"`

	// Timeout bounds each wsl.exe call (list, start, stop, remove).
	// Default: 30s
	Timeout string `yaml:"timeout"`

	// ProbeTimeout bounds the PATH lookup that checks WSL is installed.
	// Default: 5s
	ProbeTimeout string `yaml:"probe_timeout"`

	// ImportTimeout bounds "wsl --import".
	// Default: 10m
	ImportTimeout string `yaml:"import_timeout"`

	// ExecTimeout bounds "ekn exec".
	// Default: 1h
	ExecTimeout string `yaml:"exec_timeout"`

	// MaxOutputLines caps the lines captured from one invocation.
	// Default: 10000
	MaxOutputLines int `yaml:"max_output_lines"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// InstallRoot is where imported environments keep their virtual
	// disks, one subdirectory per environment.
	// Default: ${LOCALAPPDATA:-${HOME}}/eknova/environments
	InstallRoot string `yaml:"install_root"`

	// Temp receives decompressed archives during import. Empty means
	// the system temporary directory.
	Temp string `yaml:"temp"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Timeouts holds the parsed WSL durations.
type Timeouts struct {
	Call   time.Duration
	Probe  time.Duration
	Import time.Duration
	Exec   time.Duration
}

// Default returns the default configuration, before variable
// expansion.
func Default() *Config {
	return &Config{
		WSL: WSLConfig{
			Binary:         "wsl",
			Timeout:        "30s",
			ProbeTimeout:   "5s",
			ImportTimeout:  "10m",
			ExecTimeout:    "1h",
			MaxOutputLines: 10000,
		},
		Paths: PathsConfig{
			InstallRoot: "${LOCALAPPDATA:-${HOME}}/eknova/environments",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by EKNOVA_CONFIG, or
// returns the defaults when it is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(ConfigEnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		cfg.finish()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path, on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.finish()
	return cfg, nil
}

// loadFile merges a single configuration file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// JSON is a subset of YAML, so the comment-stripped document
		// decodes through the same struct tags.
		data = jsonc.ToJSON(data)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// finish applies the environment override and expands variables.
func (c *Config) finish() {
	if level := os.Getenv(LogLevelEnvironmentVariable); level != "" {
		c.Log.Level = level
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.expandVariables()
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	homeDirectory, _ := os.UserHomeDir()
	vars := map[string]string{
		"HOME": homeDirectory,
	}

	c.Paths.InstallRoot = filepath.Clean(expandVars(c.Paths.InstallRoot, vars))
	if c.Paths.Temp != "" {
		c.Paths.Temp = filepath.Clean(expandVars(c.Paths.Temp, vars))
	}
}

// varPattern matches one ${VAR} or ${VAR:-default} with no nested
// pattern inside its default, so repeated replacement expands the
// innermost pattern first.
var varPattern = regexp.MustCompile(`\$\{([^${}:]+)(?::-([^${}]*))?\}`)

// maxExpansionDepth bounds nesting of ${...} inside defaults.
const maxExpansionDepth = 8

func expandVars(s string, vars map[string]string) string {
	for range maxExpansionDepth {
		expanded := varPattern.ReplaceAllStringFunc(s, func(match string) string {
			parts := varPattern.FindStringSubmatch(match)
			name := parts[1]
			defaultValue := parts[2]

			// Environment first, then the built-in values.
			if value := os.Getenv(name); value != "" {
				return value
			}
			if value, ok := vars[name]; ok && value != "" {
				return value
			}
			return defaultValue
		})
		if expanded == s {
			return s
		}
		s = expanded
	}
	return s
}

// Timeouts parses the WSL durations. Every duration must be positive.
func (c *Config) Timeouts() (Timeouts, error) {
	var timeouts Timeouts
	var errs []error
	for _, field := range []struct {
		name   string
		value  string
		target *time.Duration
	}{
		{"wsl.timeout", c.WSL.Timeout, &timeouts.Call},
		{"wsl.probe_timeout", c.WSL.ProbeTimeout, &timeouts.Probe},
		{"wsl.import_timeout", c.WSL.ImportTimeout, &timeouts.Import},
		{"wsl.exec_timeout", c.WSL.ExecTimeout, &timeouts.Exec},
	} {
		parsed, err := time.ParseDuration(field.value)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", field.name, err))
		case parsed <= 0:
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", field.name, field.value))
		default:
			*field.target = parsed
		}
	}
	if len(errs) > 0 {
		return Timeouts{}, errors.Join(errs...)
	}
	return timeouts, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.WSL.Binary) == "" {
		errs = append(errs, fmt.Errorf("wsl.binary is required"))
	}

	if _, err := c.Timeouts(); err != nil {
		errs = append(errs, err)
	}

	if c.WSL.MaxOutputLines <= 0 {
		errs = append(errs, fmt.Errorf("wsl.max_output_lines must be positive, got %d", c.WSL.MaxOutputLines))
	}

	if c.Paths.InstallRoot == "" || c.Paths.InstallRoot == "." {
		errs = append(errs, fmt.Errorf("paths.install_root is required"))
	}

	if !slices.Contains(LogLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", LogLevels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// InstallPath returns the default install directory for an
// environment.
func (c *Config) InstallPath(name string) string {
	return filepath.Join(c.Paths.InstallRoot, name)
}

// EnsurePaths creates the configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	for _, path := range []string{c.Paths.InstallRoot, c.Paths.Temp} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
