package primego

import (
	"log/slog"
	"runtime"
)

type options struct {
	workers           int
	logger            *Logger
	metricsCollector  MetricsCollector
	memoryLimit       int64
	maxConcurrentRuns int64
	workerHook        func(worker int) error
}

func defaultOptions() options {
	return options{
		workers:          runtime.NumCPU(),
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures an Engine.
type Option func(*options)

// WithWorkers sets the number of workers (k) used by parallel runs.
// Defaults to runtime.NumCPU(). New rejects k <= 0 with ErrInvalidWorkerCount.
func WithWorkers(k int) Option {
	return func(o *options) {
		o.workers = k
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := primego.NewJSONLogger(slog.LevelDebug)
//	e, _ := primego.New(primego.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &primego.BasicMetricsCollector{}
//	e, _ := primego.New(primego.WithMetricsCollector(metrics))
//	// ... run sieves ...
//	stats := metrics.GetStats()
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithMemoryLimit caps the bytes held by private worker bitsets across all
// in-flight parallel sieves of an Engine. A parallel sieve over n with k
// workers needs k*(n/16+1) bytes. Runs that would exceed the limit fail
// with ErrMemoryLimitExceeded before any worker starts. 0 means unlimited.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMaxConcurrentRuns limits how many parallel runs of an Engine execute
// at the same time. Further runs block until a slot is free.
// 0 means unlimited.
func WithMaxConcurrentRuns(n int64) Option {
	return func(o *options) {
		o.maxConcurrentRuns = n
	}
}

// WithWorkerHook installs a function every parallel worker calls after its
// own work and before the rendezvous. A non-nil error is treated as an
// abnormal worker termination and aborts the run with ErrWorkerFailure.
// Intended for fault-injection tests.
func WithWorkerHook(hook func(worker int) error) Option {
	return func(o *options) {
		o.workerHook = hook
	}
}
