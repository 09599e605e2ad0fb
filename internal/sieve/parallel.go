package sieve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/primego/internal/bitset"
	"github.com/hupe1980/primego/internal/conv"
	"github.com/hupe1980/primego/internal/pool"
	"github.com/hupe1980/primego/internal/resource"
)

// Config configures a parallel sieve run.
type Config struct {
	// Workers is the number of marking goroutines (k).
	Workers int

	// Resources accounts for the private sets. May be nil.
	Resources *resource.Controller

	// Fault is invoked by every worker before the rendezvous. May be nil.
	Fault pool.Fault

	// Logger receives debug output. May be nil.
	Logger *slog.Logger
}

// Stats describes a finished parallel run.
type Stats struct {
	Seeds       int
	Workers     int
	IdleWorkers int
	// Marks is the number of seeds each worker crossed off, by worker index.
	Marks []uint64
	// Marked is the number of bits set in the merged set.
	Marked       int
	PrivateBytes int64
}

// TotalMarks returns the number of seeds crossed off by all workers.
func (s Stats) TotalMarks() uint64 {
	var total uint64
	for _, m := range s.Marks {
		total += m
	}
	return total
}

// Parallel returns all primes <= n using cfg.Workers goroutines.
func Parallel(ctx context.Context, n uint64, cfg Config) ([]uint64, Stats, error) {
	set, stats, err := ParallelSet(ctx, n, cfg)
	if err != nil {
		return nil, Stats{}, err
	}
	return Collect(set), stats, nil
}

// ParallelSet runs the parallel marking phase and returns the merged set.
// On error the set is nil; partial results are never returned.
func ParallelSet(ctx context.Context, n uint64, cfg Config) (*bitset.OddSet, Stats, error) {
	k := cfg.Workers
	if k <= 0 {
		return nil, Stats{}, fmt.Errorf("%w: %d", pool.ErrInvalidWorkerCount, k)
	}
	if n <= 1 {
		return bitset.New(n), Stats{Workers: k, IdleWorkers: k}, nil
	}

	if err := cfg.Resources.AcquireRun(ctx); err != nil {
		return nil, Stats{}, err
	}
	defer cfg.Resources.ReleaseRun()

	canonical := bitset.New(n)
	seeds := bootstrap(canonical)

	privateBytes := int64(k) * canonical.Bytes()
	if err := cfg.Resources.AcquireMemory(privateBytes); err != nil {
		return nil, Stats{}, fmt.Errorf("reserving %d bytes for %d private sets (limit %d): %w",
			privateBytes, k, cfg.Resources.MemoryLimit(), err)
	}
	defer cfg.Resources.ReleaseMemory(privateBytes)

	private := make([]*bitset.OddSet, k)
	marks := pool.NewCounters(k)

	err := pool.Run(ctx, k, func(ctx context.Context, worker int) error {
		own := bitset.New(n)
		private[worker] = own

		for i := worker; i < len(seeds); i += k {
			if err := ctx.Err(); err != nil {
				return err
			}
			own.MarkOddMultiples(seeds[i], n)
			marks.Add(worker, 1)
		}
		return nil
	}, cfg.Fault)
	if err != nil {
		return nil, Stats{}, err
	}

	for _, own := range private {
		if err := canonical.Or(own); err != nil {
			return nil, Stats{}, err
		}
	}
	clear(private)

	perWorker := make([]uint64, marks.Len())
	for w := range perWorker {
		perWorker[w] = marks.Get(w)
	}

	stats := Stats{
		Seeds:        len(seeds),
		Workers:      k,
		IdleWorkers:  max(0, k-len(seeds)),
		Marks:        perWorker,
		Marked:       canonical.Marked(),
		PrivateBytes: privateBytes,
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("parallel sieve merged",
			"seeds", stats.Seeds,
			"idle_workers", stats.IdleWorkers,
			"marks", stats.TotalMarks(),
			"marked", stats.Marked,
			"private_bytes", privateBytes,
		)
	}

	return canonical, stats, nil
}

// bootstrap sieves set up to sqrt(n) only and returns the seed primes in
// discovery order. Odd multiples above the root are left to the workers.
func bootstrap(set *bitset.OddSet) []uint64 {
	root := conv.ISqrt(set.Bound())
	set.Mark(1)

	var seeds []uint64
	prime, ok := set.NextCandidate(1, root)
	for ok {
		seeds = append(seeds, prime)
		set.MarkOddMultiples(prime, root)
		prime, ok = set.NextCandidate(prime, root)
	}
	return seeds
}
