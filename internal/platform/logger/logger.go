// Package logger provides structured logging functionality for the
// application: slog setup from configuration and context-scoped loggers
// used to carry request-correlated attributes down the call stack.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/nfjones/blogmart-api/internal/config"
)

// contextKey is the private type for logger context values.
type contextKey struct{}

var loggerKey contextKey

// Setup initializes and configures the application's logging system based on
// the provided server configuration. It creates a structured JSON logger
// with the configured log level and sets it as the default logger.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		// An invalid level falls back to info with a warning on stderr.
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler)

	// Allow slog.Info etc. to be used directly throughout the application.
	slog.SetDefault(logger)

	return logger, nil
}

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger stored in the context, or the default
// logger if none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger stored in the context, falling
// back to the provided default (or slog.Default if that is nil too).
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
