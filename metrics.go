package primego

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting run metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSieve is called after each sieve run.
	// primes is the number of primes found (0 on error).
	RecordSieve(mode Mode, n uint64, workers, primes int, duration time.Duration, err error)

	// RecordFactorize is called after each factorization run.
	RecordFactorize(mode Mode, targets, workers int, duration time.Duration, err error)

	// RecordWorkers is called after each successful parallel sieve with
	// n > 1.
	RecordWorkers(stats WorkerStats)
}

// WorkerStats describes how a parallel sieve spread its seed primes over
// the workers.
type WorkerStats struct {
	N           uint64
	Seeds       int
	Workers     int
	IdleWorkers int
	// Marks holds the number of seeds each worker crossed off, by worker index.
	Marks        []uint64
	PrivateBytes int64
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSieve(Mode, uint64, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordFactorize(Mode, int, int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordWorkers(WorkerStats)                                 {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	SieveCount          atomic.Int64
	SieveErrors         atomic.Int64
	SieveTotalNanos     atomic.Int64
	PrimesFound         atomic.Int64
	FactorizeCount      atomic.Int64
	FactorizeErrors     atomic.Int64
	FactorizeTotalNanos atomic.Int64
	TargetsFactorized   atomic.Int64
	WorkerFailures      atomic.Int64
	SeedsMarked         atomic.Int64
	IdleWorkers         atomic.Int64
}

// RecordSieve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSieve(mode Mode, n uint64, workers, primes int, duration time.Duration, err error) {
	b.SieveCount.Add(1)
	b.SieveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SieveErrors.Add(1)
		b.recordFailure(err)
		return
	}
	b.PrimesFound.Add(int64(primes))
}

// RecordFactorize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFactorize(mode Mode, targets, workers int, duration time.Duration, err error) {
	b.FactorizeCount.Add(1)
	b.FactorizeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FactorizeErrors.Add(1)
		b.recordFailure(err)
		return
	}
	b.TargetsFactorized.Add(int64(targets))
}

// RecordWorkers implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWorkers(stats WorkerStats) {
	b.SeedsMarked.Add(int64(stats.Seeds))
	b.IdleWorkers.Add(int64(stats.IdleWorkers))
}

func (b *BasicMetricsCollector) recordFailure(err error) {
	if isWorkerFailure(err) {
		b.WorkerFailures.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SieveCount:        b.SieveCount.Load(),
		SieveErrors:       b.SieveErrors.Load(),
		SieveAvgNanos:     avg(b.SieveTotalNanos.Load(), b.SieveCount.Load()),
		PrimesFound:       b.PrimesFound.Load(),
		FactorizeCount:    b.FactorizeCount.Load(),
		FactorizeErrors:   b.FactorizeErrors.Load(),
		FactorizeAvgNanos: avg(b.FactorizeTotalNanos.Load(), b.FactorizeCount.Load()),
		TargetsFactorized: b.TargetsFactorized.Load(),
		WorkerFailures:    b.WorkerFailures.Load(),
		SeedsMarked:       b.SeedsMarked.Load(),
		IdleWorkers:       b.IdleWorkers.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SieveCount        int64
	SieveErrors       int64
	SieveAvgNanos     int64
	PrimesFound       int64
	FactorizeCount    int64
	FactorizeErrors   int64
	FactorizeAvgNanos int64
	TargetsFactorized int64
	WorkerFailures    int64
	SeedsMarked       int64
	IdleWorkers       int64
}
