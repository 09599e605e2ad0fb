package primego

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/primego/internal/conv"
	"github.com/hupe1980/primego/internal/factor"
	"github.com/hupe1980/primego/internal/pool"
	"github.com/hupe1980/primego/internal/resource"
	"github.com/hupe1980/primego/internal/sieve"
)

// DefaultTargetCount is the number of values below n² factorized by default.
const DefaultTargetCount = 101

// Mode selects the sequential or the parallel variant of an operation.
type Mode int

const (
	// Sequential runs on the calling goroutine.
	Sequential Mode = iota
	// Parallel runs on the Engine's k workers.
	Parallel
)

func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Engine runs sieves and factorizations. It is safe for concurrent use;
// every parallel run spawns its own workers.
type Engine struct {
	opts options
	rc   *resource.Controller
}

// New creates an Engine.
func New(optFns ...Option) (*Engine, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, opts.workers)
	}

	return &Engine{
		opts: opts,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:  opts.memoryLimit,
			MaxConcurrentRuns: opts.maxConcurrentRuns,
		}),
	}, nil
}

// Workers returns k, the number of workers used by parallel runs.
func (e *Engine) Workers() int {
	return e.opts.workers
}

// MemoryUsage returns the bytes currently held by private worker bitsets.
func (e *Engine) MemoryUsage() int64 {
	return e.rc.MemoryUsage()
}

// PeakMemoryUsage returns the highest MemoryUsage observed so far.
func (e *Engine) PeakMemoryUsage() int64 {
	return e.rc.PeakMemoryUsage()
}

// Sieve returns all primes <= n in ascending order.
// n <= 1 yields an empty list.
func (e *Engine) Sieve(ctx context.Context, mode Mode, n uint64) ([]uint64, error) {
	start := time.Now()

	primes, err := e.sieve(ctx, mode, n)
	err = translateError(err)

	d := time.Since(start)
	if isWorkerFailure(err) {
		e.opts.logger.WithBound(n).LogWorkerFailure(ctx, "sieve", mode, err)
	} else {
		e.opts.logger.LogSieve(ctx, mode, n, len(primes), d, err)
	}
	e.opts.metricsCollector.RecordSieve(mode, n, e.workersFor(mode), len(primes), d, err)

	if err != nil {
		return nil, err
	}
	return primes, nil
}

func (e *Engine) sieve(ctx context.Context, mode Mode, n uint64) ([]uint64, error) {
	switch mode {
	case Sequential:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return sieve.Sequential(n), nil
	case Parallel:
		primes, stats, err := sieve.Parallel(ctx, n, sieve.Config{
			Workers:   e.opts.workers,
			Resources: e.rc,
			Fault:     pool.Fault(e.opts.workerHook),
			Logger:    e.runLogger(mode).WithBound(n).Logger,
		})
		if err != nil {
			return nil, err
		}
		if n > 1 {
			e.opts.metricsCollector.RecordWorkers(WorkerStats{
				N:            n,
				Seeds:        stats.Seeds,
				Workers:      stats.Workers,
				IdleWorkers:  stats.IdleWorkers,
				Marks:        stats.Marks,
				PrivateBytes: stats.PrivateBytes,
			})
		}
		return primes, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
}

// Factorize prime-factorizes every target using the ascending prime list.
// The result is complete when primes covers every prime <= sqrt(max target).
// A prime list that is not strictly ascending or holds a value below 2 is
// rejected with ErrInvalidPrimes before any work starts.
func (e *Engine) Factorize(ctx context.Context, mode Mode, targets []uint64, primes []uint64) (*FactorMap, error) {
	start := time.Now()

	store, err := e.factorize(ctx, mode, targets, primes)
	err = translateError(err)

	d := time.Since(start)
	if isWorkerFailure(err) {
		e.opts.logger.LogWorkerFailure(ctx, "factorize", mode, err)
	} else {
		e.opts.logger.LogFactorize(ctx, mode, len(targets), d, err)
	}
	e.opts.metricsCollector.RecordFactorize(mode, len(targets), e.workersFor(mode), d, err)

	if err != nil {
		return nil, err
	}
	return &FactorMap{factors: store.Snapshot()}, nil
}

func (e *Engine) factorize(ctx context.Context, mode Mode, targets []uint64, primes []uint64) (*factor.Store, error) {
	switch mode {
	case Sequential:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return factor.Sequential(targets, primes)
	case Parallel:
		return factor.Parallel(ctx, targets, primes, factor.Config{
			Workers:   e.opts.workers,
			Resources: e.rc,
			Fault:     pool.Fault(e.opts.workerHook),
			Logger:    e.runLogger(mode).Logger,
		})
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
}

// runLogger returns the logger handed to the workers of a run.
func (e *Engine) runLogger(mode Mode) *Logger {
	return e.opts.logger.WithMode(mode).WithWorkers(e.workersFor(mode))
}

func (e *Engine) workersFor(mode Mode) int {
	if mode == Parallel {
		return e.opts.workers
	}
	return 1
}

// FactorMap is the read-only result of a factorization run.
type FactorMap struct {
	factors map[uint64][]uint64
}

// Factors returns a copy of the target's prime factors. Order is not
// meaningful; only the multiset is.
func (m *FactorMap) Factors(target uint64) ([]uint64, bool) {
	f, ok := m.factors[target]
	if !ok {
		return nil, false
	}
	return slices.Clone(f), true
}

// SortedFactors returns the target's prime factors in ascending order.
func (m *FactorMap) SortedFactors(target uint64) ([]uint64, bool) {
	f, ok := m.Factors(target)
	if ok {
		slices.Sort(f)
	}
	return f, ok
}

// Targets returns all targets in ascending order.
func (m *FactorMap) Targets() []uint64 {
	targets := make([]uint64, 0, len(m.factors))
	for t := range m.factors {
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}

// Len returns the number of targets.
func (m *FactorMap) Len() int {
	return len(m.factors)
}

// Product multiplies the target's factors back together.
func (m *FactorMap) Product(target uint64) (uint64, error) {
	f, ok := m.factors[target]
	if !ok {
		return 0, fmt.Errorf("%w: %d not in result", ErrInvalidTarget, target)
	}
	p, err := conv.Product(f)
	if err != nil {
		return 0, translateError(err)
	}
	return p, nil
}

// Targets returns the count largest integers strictly below n², in
// descending order: n²-1, n²-2, ..., n²-count.
func Targets(n uint64, count int) ([]uint64, error) {
	if n == 0 {
		return nil, &BoundError{Bound: n}
	}
	if count <= 0 {
		return nil, &BoundError{Bound: n, cause: fmt.Errorf("target count %d must be positive", count)}
	}

	square, err := conv.MulUint64(n, n)
	if err != nil {
		return nil, &BoundError{Bound: n, cause: err}
	}
	c, err := conv.IntToUint64(count)
	if err != nil || c >= square {
		return nil, &BoundError{Bound: n, cause: fmt.Errorf("%d targets do not fit below %d", count, square)}
	}

	targets := make([]uint64, count)
	for i := range targets {
		targets[i] = square - uint64(i+1)
	}
	return targets, nil
}

func isWorkerFailure(err error) bool {
	return errors.Is(err, ErrWorkerFailure)
}
