// Package logger builds the zerolog loggers used by the command line tool.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/pltr/config"
)

// New returns a logger writing to stdout for component. See NewWithWriter.
func New(component string, cfg config.LoggingConfig) zerolog.Logger {
	return NewWithWriter(os.Stdout, component, cfg)
}

// NewWithWriter returns a logger tagged with component and a timestamp.
// It writes JSON unless cfg.Format is "console" or APP_ENV is "dev". An
// unparsable level falls back to info.
func NewWithWriter(w io.Writer, component string, cfg config.LoggingConfig) zerolog.Logger {
	if cfg.Format == "console" || strings.EqualFold(os.Getenv("APP_ENV"), "dev") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger()
}
