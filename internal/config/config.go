// ABOUTME: Configuration loading and parsing for academyx-admin
// ABOUTME: Reads TOML or YAML by extension with environment variable expansion and defaults

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted while resolving configuration.
const (
	EnvConfigPath = "ACADEMYX_CONFIG"
	EnvAPIURL     = "ACADEMYX_API_URL"
)

// Session storage drivers.
const (
	DriverSQLite  = "sqlite"
	DriverSQLite3 = "sqlite3"
	DriverMemory  = "memory"
)

const defaultTimeout = 30 * time.Second

// Config represents the complete academyx-admin configuration
type Config struct {
	API     APIConfig     `toml:"api" yaml:"api"`
	Session SessionConfig `toml:"session" yaml:"session"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// APIConfig describes the backend the client talks to
type APIConfig struct {
	BaseURL   string `toml:"base_url" yaml:"base_url"`
	UserAgent string `toml:"user_agent" yaml:"user_agent"`

	Timeout    time.Duration `toml:"-" yaml:"-"`
	TimeoutRaw string        `toml:"timeout" yaml:"timeout"`
}

// SessionConfig holds credential storage configuration
type SessionConfig struct {
	Driver string `toml:"driver" yaml:"driver"`
	Path   string `toml:"path" yaml:"path"`

	// CoalesceRefresh shares one refresh call between concurrent 401s.
	CoalesceRefresh bool `toml:"coalesce_refresh" yaml:"coalesce_refresh"`

	// Passphrase seals stored values at rest when set.
	Passphrase string `toml:"passphrase" yaml:"passphrase"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Dir returns the academyx configuration directory under XDG_CONFIG_HOME,
// falling back to ~/.config.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "academyx")
}

// DefaultPath is the config file used when no other is named.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Default returns the configuration used for unset fields.
func Default() *Config {
	return &Config{
		API: APIConfig{
			TimeoutRaw: defaultTimeout.String(),
			Timeout:    defaultTimeout,
		},
		Session: SessionConfig{
			Driver:          DriverSQLite,
			Path:            filepath.Join(Dir(), "session.db"),
			CoalesceRefresh: true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Resolve finds and loads the configuration. The first of flagPath,
// $ACADEMYX_CONFIG and DefaultPath that is set wins. A missing default file
// is not an error: defaults are used instead. ACADEMYX_API_URL overrides
// api.base_url in every case.
func Resolve(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	var cfg *Config
	switch {
	case path != "":
		c, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = c
	default:
		c, err := load(DefaultPath())
		switch {
		case errors.Is(err, os.ErrNotExist):
			cfg = Default()
		case err != nil:
			return nil, err
		default:
			cfg = c
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	// Decoding over the defaults keeps them for keys the file leaves out.
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml", "":
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	return cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required (or set %s)", EnvAPIURL)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url must include a host")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}

	switch c.Session.Driver {
	case DriverSQLite, DriverSQLite3:
		if c.Session.Path == "" {
			return fmt.Errorf("session.path is required for the %s driver", c.Session.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("session.driver must be one of %s, %s, %s; got %q",
			DriverSQLite, DriverSQLite3, DriverMemory, c.Session.Driver)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "text", "json", "color":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json, color", c.Logging.Format)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.API.TimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.API.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing timeout %q: %w", cfg.API.TimeoutRaw, err)
		}
		cfg.API.Timeout = d
	}
	return nil
}
