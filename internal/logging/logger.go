package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/toyz/userregistry/internal/config"
)

// AppLogger wraps slog.Logger with the level and format from config
type AppLogger struct {
	logger *slog.Logger
}

// New creates an AppLogger writing to stderr
func New(cfg *config.Config) *AppLogger {
	return NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)
}

// NewWithWriter creates an AppLogger writing to w
func NewWithWriter(w io.Writer, level, format string) *AppLogger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &AppLogger{logger: slog.New(handler)}
}

// ParseLevel maps a config level name to a slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// With returns an AppLogger that adds args to every record
func (l *AppLogger) With(args ...any) *AppLogger {
	return &AppLogger{logger: l.logger.With(args...)}
}

// Logger returns the underlying slog.Logger for advanced usage
func (l *AppLogger) Logger() *slog.Logger {
	return l.logger
}
