// Package logger provides structured logging functionality
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger for application-wide logging
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration
type Config struct {
	Level  string    // debug, info, warn, error
	Format string    // text, json
	Output io.Writer // defaults to stdout
}

// New creates a new structured logger. Unknown levels fall back to info.
func New(cfg Config) *Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return &Logger{Logger: slog.New(slog.NewJSONHandler(out, opts))}
	}
	return &Logger{Logger: slog.New(slog.NewTextHandler(out, opts))}
}

// WithComponent returns a logger with a component attribute
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.With("component", component),
	}
}

// WithTag returns a logger with catalog tag context attributes
func (l *Logger) WithTag(tagID string, page int) *Logger {
	return &Logger{
		Logger: l.With("tag_id", tagID, "page", page),
	}
}

// WithComment returns a logger with comment target attributes
func (l *Logger) WithComment(targetType, targetID, userID string) *Logger {
	return &Logger{
		Logger: l.With("target_type", targetType, "target_id", targetID, "user_id", userID),
	}
}

// Default returns a default logger for quick usage
func Default() *Logger {
	return New(Config{
		Level:  "info",
		Format: "text",
	})
}
