package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"quorum/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// File appends logs to this path in addition to stderr.
	File        string
	Development bool
	// Writer replaces stderr and File when set. Output to a Writer is never
	// colorized.
	Writer io.Writer
}

// New constructs a slog logger. Caller locations are included at debug level
// or in development mode. The returned closer syncs and closes the log file
// when Options.File is set and is a no-op otherwise; call it once logging is
// done.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)
	addSource := opts.Development || level <= slog.LevelDebug

	var handler func(io.Writer, bool) slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "console":
		handler = func(w io.Writer, color bool) slog.Handler {
			return newConsoleHandler(w, levelVar, addSource, color)
		}
	case "json":
		handler = func(w io.Writer, _ bool) slog.Handler {
			return newJSONHandler(w, levelVar, addSource)
		}
	default:
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	w, color, closer, err := openOutput(opts)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(handler(w, color)), closer, nil
}

// NewFromConfig builds the logger described by the [logging] section. Logs
// go to stderr so stdout stays reserved for reports.
func NewFromConfig(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	if cfg == nil {
		return New(Options{})
	}
	return New(Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log level: unsupported value %q", level)
	}
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

var noClose = closeFunc(func() error { return nil })

func openOutput(opts Options) (io.Writer, bool, io.Closer, error) {
	if opts.Writer != nil {
		return opts.Writer, false, noClose, nil
	}
	color := isatty.IsTerminal(os.Stderr.Fd())
	path := strings.TrimSpace(opts.File)
	if path == "" {
		return os.Stderr, color, noClose, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, false, nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, false, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	closer := closeFunc(func() error {
		return errors.Join(file.Sync(), file.Close())
	})
	// Escape codes would end up in the file.
	return io.MultiWriter(os.Stderr, file), false, closer, nil
}
