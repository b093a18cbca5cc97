package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/todo-api/internal/config"
)

type contextKey struct{}

// ParseLevel converts a configured level name (case-insensitive) into a slog.Level.
// The second return value is false when the name is not recognised, in which
// case LevelInfo is returned.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New builds a logger writing to w. Production uses JSON output; any other
// environment gets the human-readable text handler.
func New(w io.Writer, cfg config.ServerConfig) *slog.Logger {
	level, ok := ParseLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Environment == config.EnvironmentProduction {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	if !ok {
		l.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}
	return l
}

// Setup initializes the application's logging system based on the provided
// configuration, writes to stdout and installs the result as the slog default
// so package-level slog calls share the same handler.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	l := New(os.Stdout, cfg)
	slog.SetDefault(l)
	return l, nil
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or nil if there is none.
func FromContext(ctx context.Context) *slog.Logger {
	l, _ := ctx.Value(contextKey{}).(*slog.Logger)
	return l
}

// FromContextOrDefault returns the request-scoped logger if one is set,
// otherwise fallback, otherwise slog.Default().
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l := FromContext(ctx); l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
