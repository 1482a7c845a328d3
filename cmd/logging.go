package cmd

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// parseLevel maps a config level to zerolog. Unknown levels fall back to warn.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// newLogger creates the console logger of the CLI, writing to w.
func newLogger(config LogConfig, w io.Writer) zerolog.Logger {
	lvl := parseLevel(config.Level)
	if config.Verbose {
		lvl = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
