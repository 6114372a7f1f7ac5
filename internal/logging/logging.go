// Package logging builds the zerolog logger used for diagnostics and
// carries it through a context.Context.
package logging

import (
	"context"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the level and destination of diagnostic logs.
type Config struct {
	Level string
	// Output is "stderr" (default), "stdout", "file" or "none".
	Output    string
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
}

type contextKey string

const (
	loggerKey contextKey = "logger"
	runIDKey  contextKey = "run_id"
)

// New creates a JSON zerolog.Logger from cfg.
// If the level string is invalid, it defaults to warn.
func New(cfg Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.WarnLevel
	}

	var w io.Writer
	switch cfg.Output {
	case "none":
		return zerolog.Nop()
	case "stdout":
		w = os.Stdout
	case "file":
		w = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxFiles,
			Compress:   true,
		}
	default:
		w = os.Stderr
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithRunID stores a bulk run identifier in the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext returns the run identifier, or "" if none is set.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// FromContext returns the logger stored in ctx with the run ID attached.
// Without a stored logger it returns a no-op logger: a library caller
// that never configured logging gets no output.
func FromContext(ctx context.Context) zerolog.Logger {
	log := zerolog.Nop()
	if l, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		log = l
	}
	if id := RunIDFromContext(ctx); id != "" {
		log = log.With().Str("run_id", id).Logger()
	}
	return log
}

// NewRunID generates a new UUID-based run identifier.
func NewRunID() string {
	return uuid.New().String()
}
