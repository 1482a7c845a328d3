package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/investmap"
	"github.com/etnz/investmap/client"
	"github.com/etnz/investmap/session"
	toml "github.com/pelletier/go-toml/v2"
)

// Environment variables read by investmap and passed to extensions.
const (
	EnvConfig      = "INVESTMAP_CONFIG"
	EnvServerURL   = "INVESTMAP_SERVER_URL"
	EnvSessionFile = "INVESTMAP_SESSION_FILE"
	EnvLogLevel    = "INVESTMAP_LOG_LEVEL"
	EnvCurrency    = "INVESTMAP_CURRENCY"
	EnvVerbose     = "INVESTMAP_VERBOSE"
)

const defaultRefreshInterval = investmap.DefaultWatchInterval

// Config holds all configuration for investmap
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Client  ClientConfig  `toml:"client"`
	Session SessionConfig `toml:"session"`
	Refresh RefreshConfig `toml:"refresh"`
	Log     LogConfig     `toml:"log"`
	Display DisplayConfig `toml:"display"`
}

// ServerConfig locates the investmap service.
type ServerConfig struct {
	URL string `toml:"url"`
}

// ClientConfig tunes the HTTP client.
type ClientConfig struct {
	Timeout   string `toml:"timeout"`
	RateLimit int    `toml:"rate_limit"` // requests per second
}

// GetTimeout returns the request timeout, or the default when unset or invalid.
func (c ClientConfig) GetTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
		return d
	}
	return client.DefaultTimeout
}

// SessionConfig locates the session file.
type SessionConfig struct {
	Path string `toml:"path"`
}

// RefreshConfig sets how often a watched list is reloaded.
type RefreshConfig struct {
	Interval string `toml:"interval"`
}

// GetInterval returns the reload interval, or the default when unset or invalid.
func (c RefreshConfig) GetInterval() time.Duration {
	if d, err := time.ParseDuration(c.Interval); err == nil && d > 0 {
		return d
	}
	return defaultRefreshInterval
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level   string `toml:"level"`
	Verbose bool   `toml:"-"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Currency string `toml:"currency"` // ISO code, only adds the symbol
}

// NewDefaultConfig returns the configuration used when nothing is set.
func NewDefaultConfig() *Config {
	return &Config{
		Server:  ServerConfig{URL: client.DefaultBaseURL},
		Client:  ClientConfig{Timeout: client.DefaultTimeout.String(), RateLimit: client.DefaultRateLimit},
		Session: SessionConfig{Path: session.DefaultPath()},
		Refresh: RefreshConfig{Interval: defaultRefreshInterval.String()},
		Log:     LogConfig{Level: "warn"},
	}
}

// DefaultConfigPath returns the config file location under the user config dir.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "investmap", "config.toml")
}

// LoadConfig returns the defaults overridden by the file at path. A missing
// file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := NewDefaultConfig()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return config, nil
}

// applyEnvOverrides overrides config with the environment variables found by getenv.
func applyEnvOverrides(config *Config, getenv func(string) string) {
	if v := getenv(EnvServerURL); v != "" {
		config.Server.URL = v
	}
	if v := getenv(EnvSessionFile); v != "" {
		config.Session.Path = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		config.Log.Level = strings.ToLower(v)
	}
	if v := getenv(EnvCurrency); v != "" {
		config.Display.Currency = strings.ToUpper(v)
	}
	if v, err := strconv.ParseBool(getenv(EnvVerbose)); err == nil {
		config.Log.Verbose = v
	}
}

// globalFlags are the command line settings shared by every subcommand.
type globalFlags struct {
	config      string
	server      string
	sessionFile string
	currency    string
	verbose     bool
}

// resolveConfig merges, by increasing priority, the defaults, the config file,
// the environment and the flags.
func resolveConfig(flags globalFlags, getenv func(string) string) (*Config, error) {
	path := flags.config
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path == "" {
		path = DefaultConfigPath()
	}
	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(config, getenv)

	if flags.server != "" {
		config.Server.URL = flags.server
	}
	if flags.sessionFile != "" {
		config.Session.Path = flags.sessionFile
	}
	if flags.currency != "" {
		config.Display.Currency = strings.ToUpper(flags.currency)
	}
	if flags.verbose {
		config.Log.Verbose = true
	}
	return config, nil
}

// Environ returns the configuration as environment variables.
func (c *Config) Environ() []string {
	return []string{
		EnvServerURL + "=" + c.Server.URL,
		EnvSessionFile + "=" + c.Session.Path,
		EnvLogLevel + "=" + c.Log.Level,
		EnvCurrency + "=" + c.Display.Currency,
		EnvVerbose + "=" + strconv.FormatBool(c.Log.Verbose),
	}
}
