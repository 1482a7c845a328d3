package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/investmap/client"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// env returns a getenv function over vars.
func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_MissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, client.DefaultBaseURL, config.Server.URL)
	assert.Equal(t, client.DefaultTimeout, config.Client.GetTimeout())
	assert.Equal(t, 3*time.Minute, config.Refresh.GetInterval())
	assert.Equal(t, "warn", config.Log.Level)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
[server]
url = "https://invest.example"

[client]
timeout = "5s"
rate_limit = 2

[refresh]
interval = "1m"

[display]
currency = "USD"
`)
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://invest.example", config.Server.URL)
	assert.Equal(t, 5*time.Second, config.Client.GetTimeout())
	assert.Equal(t, 2, config.Client.RateLimit)
	assert.Equal(t, time.Minute, config.Refresh.GetInterval())
	assert.Equal(t, "USD", config.Display.Currency)
	// untouched sections keep their default
	assert.Equal(t, "warn", config.Log.Level)
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := writeConfig(t, "[server\nurl = ")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_InvalidDurations(t *testing.T) {
	config := NewDefaultConfig()
	config.Client.Timeout = "soon"
	config.Refresh.Interval = "-1m"
	assert.Equal(t, client.DefaultTimeout, config.Client.GetTimeout())
	assert.Equal(t, defaultRefreshInterval, config.Refresh.GetInterval())
}

func TestResolveConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `
[server]
url = "http://from-file"

[session]
path = "/file/session.json"

[log]
level = "info"
`)

	t.Run("file", func(t *testing.T) {
		config, err := resolveConfig(globalFlags{config: path}, env(nil))
		require.NoError(t, err)
		assert.Equal(t, "http://from-file", config.Server.URL)
		assert.Equal(t, "/file/session.json", config.Session.Path)
		assert.Equal(t, "info", config.Log.Level)
	})

	t.Run("env over file", func(t *testing.T) {
		config, err := resolveConfig(globalFlags{}, env(map[string]string{
			EnvConfig:      path,
			EnvServerURL:   "http://from-env",
			EnvLogLevel:    "DEBUG",
			EnvCurrency:    "eur",
			EnvVerbose:     "true",
			EnvSessionFile: "/env/session.json",
		}))
		require.NoError(t, err)
		assert.Equal(t, "http://from-env", config.Server.URL)
		assert.Equal(t, "/env/session.json", config.Session.Path)
		assert.Equal(t, "debug", config.Log.Level)
		assert.Equal(t, "EUR", config.Display.Currency)
		assert.True(t, config.Log.Verbose)
	})

	t.Run("flags over env", func(t *testing.T) {
		flags := globalFlags{config: path, server: "http://from-flag", sessionFile: "/flag/session.json", currency: "usd", verbose: true}
		config, err := resolveConfig(flags, env(map[string]string{EnvServerURL: "http://from-env"}))
		require.NoError(t, err)
		assert.Equal(t, "http://from-flag", config.Server.URL)
		assert.Equal(t, "/flag/session.json", config.Session.Path)
		assert.Equal(t, "USD", config.Display.Currency)
		assert.True(t, config.Log.Verbose)
	})
}

func TestConfig_Environ(t *testing.T) {
	config := NewDefaultConfig()
	config.Server.URL = "http://api"
	config.Session.Path = "/s.json"
	config.Display.Currency = "EUR"

	assert.Equal(t, []string{
		"INVESTMAP_SERVER_URL=http://api",
		"INVESTMAP_SESSION_FILE=/s.json",
		"INVESTMAP_LOG_LEVEL=warn",
		"INVESTMAP_CURRENCY=EUR",
		"INVESTMAP_VERBOSE=false",
	}, config.Environ())

	// Environ is what an extension reads back.
	vars := make(map[string]string)
	for _, kv := range config.Environ() {
		for i := range kv {
			if kv[i] == '=' {
				vars[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	back := NewDefaultConfig()
	applyEnvOverrides(back, env(vars))
	assert.Equal(t, config.Server, back.Server)
	assert.Equal(t, config.Session, back.Session)
	assert.Equal(t, config.Display, back.Display)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.WarnLevel,
		"verbose": zerolog.WarnLevel,
	}
	for level, want := range tests {
		assert.Equal(t, want, parseLevel(level), "level %q", level)
	}
}

func TestNewLogger_Verbose(t *testing.T) {
	logger := newLogger(LogConfig{Level: "error", Verbose: true}, os.Stderr)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}
