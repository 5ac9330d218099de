// Package config holds runtime configuration for the assertion
// core: formatter limits and logging destinations. Values come
// from defaults, an optional YAML file and ASSERT_* environment
// variables, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.assertions/pkg/format"
	"digital.vasic.assertions/pkg/logging"
)

// Log output formats.
const (
	LogNone    = "none"
	LogConsole = "console"
	LogJSON    = "json"
)

// Environment variables read by ApplyEnv.
const (
	EnvMaxDepth  = "ASSERT_MAX_DEPTH"
	EnvVerbose   = "ASSERT_VERBOSE"
	EnvLogFormat = "ASSERT_LOG_FORMAT"
	EnvLogLevel  = "ASSERT_LOG_LEVEL"
	EnvLogPath   = "ASSERT_LOG_PATH"
)

// Config holds assertion runtime configuration.
type Config struct {
	// MaxDepth bounds how deep the formatter descends before
	// falling back to a plain rendering.
	MaxDepth int `yaml:"max_depth" json:"max_depth"`

	// Verbose logs passing assertions too.
	Verbose bool `yaml:"verbose" json:"verbose"`

	// LogFormat is one of "none", "console" or "json".
	LogFormat string `yaml:"log_format" json:"log_format"`

	// LogLevel is the minimum level for JSON output.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogPath is the JSON log file. Empty means stdout.
	LogPath string `yaml:"log_path" json:"log_path"`

	// AssertionLog receives one JSON line per assertion when
	// LogFormat is "json".
	AssertionLog string `yaml:"assertion_log" json:"assertion_log"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		MaxDepth:  format.DefaultMaxDepth,
		LogFormat: LogNone,
		LogLevel:  "info",
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read config %s: %w", path, err,
		)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the
// result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from ASSERT_* environment variables.
// Unset or empty variables leave the field alone.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvMaxDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxDepth, v, err)
		}
		c.MaxDepth = n
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvVerbose, v, err)
		}
		c.Verbose = b
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogPath); v != "" {
		c.LogPath = v
	}
	return c.Validate()
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	switch c.LogFormat {
	case LogNone, LogConsole, LogJSON:
	default:
		return fmt.Errorf("unknown log_format: %s", c.LogFormat)
	}
	return nil
}

// NewFormatter builds the formatter described by c.
func (c *Config) NewFormatter() *format.Formatter {
	return format.New(c.MaxDepth)
}

// NewLogger builds the logger described by c.
func (c *Config) NewLogger() (logging.Logger, error) {
	switch c.LogFormat {
	case LogConsole:
		return logging.NewConsoleLogger(c.Verbose), nil
	case LogJSON:
		level := logging.ParseLevel(c.LogLevel)
		if c.Verbose {
			level = logging.LevelDebug
		}
		return logging.NewJSONLogger(logging.LoggerConfig{
			OutputPath:   c.LogPath,
			AssertionLog: c.AssertionLog,
			Level:        level,
			Verbose:      c.Verbose,
		})
	default:
		return logging.NullLogger{}, nil
	}
}
