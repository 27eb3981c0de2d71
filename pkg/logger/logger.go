package logger

import (
	"io"
	"os"
	"time"

	"github.com/brand-site-api/internal/config"
	"github.com/rs/zerolog"
)

// New builds the process logger from the parsed log configuration.
// Unknown levels fall back to info rather than failing startup.
func New(cfg *config.LogConfig) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "brand-site-api").
		Logger()
}
