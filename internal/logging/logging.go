// Package logging builds the console logger used by the CLI commands.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/paceview/paceview/internal/config"
)

// New returns a leveled console logger configured from cfg.
func New(cfg *config.Config) *log.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter returns a logger writing to w, for tests and redirects.
func NewWithWriter(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(cfg.LogLevel),
		Formatter:       ParseFormatter(cfg.LogFormat),
		ReportTimestamp: cfg.LogTimestamps,
		Prefix:          "paceview",
	})
}

// ParseLevel parses a string log level to a charmbracelet/log Level.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a string formatter name to a charmbracelet/log Formatter.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
