package primego

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with primego-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithMode adds a mode field to the logger.
func (l *Logger) WithMode(mode Mode) *Logger {
	return &Logger{
		Logger: l.Logger.With("mode", mode.String()),
	}
}

// WithWorkers adds a workers (k) field to the logger.
func (l *Logger) WithWorkers(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", k),
	}
}

// WithBound adds the sieve bound n to the logger.
func (l *Logger) WithBound(n uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("n", n),
	}
}

// LogWorkerFailure logs a run aborted by an abnormally terminated worker.
func (l *Logger) LogWorkerFailure(ctx context.Context, op string, mode Mode, err error) {
	attrs := []any{
		"op", op,
		"mode", mode.String(),
		"error", err,
	}
	var we *WorkerError
	if errors.As(err, &we) {
		attrs = append(attrs, "worker", we.Worker, "phase", we.Phase)
	}
	l.ErrorContext(ctx, "worker failure", attrs...)
}

// LogSieve logs a sieve run.
func (l *Logger) LogSieve(ctx context.Context, mode Mode, n uint64, primes int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sieve failed",
			"mode", mode.String(),
			"n", n,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "sieve completed",
		"mode", mode.String(),
		"n", n,
		"primes", primes,
		"duration", d,
	)
}

// LogFactorize logs a factorization run.
func (l *Logger) LogFactorize(ctx context.Context, mode Mode, targets int, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "factorization failed",
			"mode", mode.String(),
			"targets", targets,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "factorization completed",
		"mode", mode.String(),
		"targets", targets,
		"duration", d,
	)
}
