package observability

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Streams are the two append-only log files the pipeline writes next to its
// stdout logging: a lifecycle stream and an analysis-failure stream that
// keeps the raw oracle output of failed parses for diagnosis.
type Streams struct {
	System   zerolog.Logger
	Analysis zerolog.Logger
}

// NewStreams opens (creating if needed) system.log and analyze-failures.log
// under dir. An unwritable dir degrades to stdout-only logging rather than
// failing startup.
func NewStreams(dir string, fallback zerolog.Logger) Streams {
	return Streams{
		System:   fileLogger(filepath.Join(dir, "system.log"), fallback),
		Analysis: fileLogger(filepath.Join(dir, "analyze-failures.log"), fallback),
	}
}

func fileLogger(path string, fallback zerolog.Logger) zerolog.Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fallback.Error().Err(err).Str("path", path).Msg("log dir unavailable, using stdout")
		return fallback
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fallback.Error().Err(err).Str("path", path).Msg("log file unavailable, using stdout")
		return fallback
	}
	return zerolog.New(f).With().Timestamp().Logger()
}
