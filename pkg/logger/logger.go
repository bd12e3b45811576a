package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger keeps a printf-style API on top of slog. Info and warn records go
// to stdout, errors to stderr.
type Logger struct {
	info  *slog.Logger
	warn  *slog.Logger
	error *slog.Logger
	level slog.Level
}

type Options struct {
	Level  string
	Pretty bool
	Stdout io.Writer
	Stderr io.Writer
}

func New() *Logger {
	return NewWithOptions(Options{Level: "info"})
}

func NewWithOptions(opts Options) *Logger {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	newHandler := func(w io.Writer) slog.Handler {
		if opts.Pretty {
			return slog.NewTextHandler(w, handlerOpts)
		}
		return slog.NewJSONHandler(w, handlerOpts)
	}

	out := slog.New(newHandler(opts.Stdout))
	return &Logger{
		info:  out,
		warn:  out,
		error: slog.New(newHandler(opts.Stderr)),
		level: level,
	}
}

// ParseLevel converts a LOG_LEVEL value to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.info.Debug(fmt.Sprintf(format, v...))
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.info.Info(fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.warn.Warn(fmt.Sprintf(format, v...))
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.error.Error(fmt.Sprintf(format, v...))
}

// With returns a logger that adds the given attributes to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		info:  l.info.With(args...),
		warn:  l.warn.With(args...),
		error: l.error.With(args...),
		level: l.level,
	}
}

// Slog exposes the underlying structured logger for libraries that take one.
// Errors logged through it go to stdout like everything else.
func (l *Logger) Slog() *slog.Logger {
	return l.info
}

func (l *Logger) Enabled(level slog.Level) bool {
	return l.info.Enabled(context.Background(), level)
}
