// Package logging builds the structured loggers used across the application.
// Every logger is a *slog.Logger; the handler is chosen by format.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/lmittmann/tint"

	"github.com/vovakirdan/sokoban/internal/config"
)

// Level represents a structured log level.
type Level slog.Level

const (
	// LevelDebug represents the debug logging level.
	LevelDebug Level = Level(slog.LevelDebug)
	// LevelInfo represents the informational logging level.
	LevelInfo Level = Level(slog.LevelInfo)
	// LevelWarn represents the warning logging level.
	LevelWarn Level = Level(slog.LevelWarn)
	// LevelError represents the error logging level.
	LevelError Level = Level(slog.LevelError)
)

// ParseLevel converts a textual log level into a Level value.
func ParseLevel(value string) Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Options controls handler construction.
type Options struct {
	Level   Level
	Format  string // config.FormatTint, config.FormatCharm or config.FormatJSON
	Prefix  string // charm only
	NoColor bool
}

// NewLogger constructs a slog.Logger for w with the given level and format.
func NewLogger(w io.Writer, level Level, format string) *slog.Logger {
	return New(w, Options{Level: level, Format: format})
}

// New constructs a slog.Logger from opts. Unknown formats fall back to tint.
func New(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case config.FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.Level(opts.Level),
		})
	case config.FormatCharm:
		// charm log levels share slog's numeric values
		handler = charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(opts.Level),
			Prefix:          opts.Prefix,
			ReportTimestamp: true,
			TimeFormat:      time.DateTime,
		})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      slog.Level(opts.Level),
			TimeFormat: time.TimeOnly,
			NoColor:    opts.NoColor,
		})
	}

	return slog.New(handler)
}

// Open builds the logger described by cfg. When cfg.File is set, records are
// appended to that file; otherwise they go to fallback. An empty format
// resolves to defaultFormat. The returned close function is never nil.
func Open(cfg config.LogConfig, fallback io.Writer, defaultFormat string) (*slog.Logger, func() error, error) {
	format := cfg.Format
	if format == "" {
		format = defaultFormat
	}
	opts := Options{
		Level:  ParseLevel(cfg.Level),
		Format: format,
	}

	if cfg.File == "" {
		return New(fallback, opts), func() error { return nil }, nil
	}

	path := config.ExpandPath(cfg.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
	}

	opts.NoColor = true
	return New(f, opts), f.Close, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
