// Package logging builds the slog logger used by the fizx command. Level and
// format are read from FIZX_LOG_LEVEL (DEBUG, INFO, WARN, ERROR) and
// FIZX_LOG_FORMAT (text, json).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	EnvLevel  = "FIZX_LOG_LEVEL"
	EnvFormat = "FIZX_LOG_FORMAT"
)

// New returns a logger writing to w, configured from the environment.
func New(w io.Writer) *slog.Logger {
	return NewWith(w, ParseLevel(os.Getenv(EnvLevel)), os.Getenv(EnvFormat))
}

func NewWith(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog level. Unknown names yield INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
