package logging

import (
	"context"
	"log/slog"
)

// LevelTrace is below Debug and is used for per-argument build tracing.
const LevelTrace = slog.LevelDebug - 4

// LevelFromVerbosity maps the count of -v flags to a log level.
// Zero or negative verbosity logs warnings and errors only.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ResolveLevel picks the level for a run. quiet wins and logs errors only.
// Without -v flags, debugEnv ("1"/"true" for debug, "2" for trace) raises
// the level.
func ResolveLevel(verbosity int, quiet bool, debugEnv string) slog.Level {
	if quiet {
		return slog.LevelError
	}
	if verbosity == 0 {
		switch debugEnv {
		case "1", "true":
			verbosity = 2
		case "2":
			verbosity = 3
		}
	}
	return LevelFromVerbosity(verbosity)
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a discard logger when none
// is present. It never returns nil.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return NewDiscard()
}
