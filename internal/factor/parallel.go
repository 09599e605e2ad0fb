package factor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/primego/internal/pool"
	"github.com/hupe1980/primego/internal/resource"
)

// Config configures a parallel factorization run.
type Config struct {
	// Workers is the number of trial-division goroutines (k).
	Workers int

	// Resources limits concurrent runs. May be nil.
	Resources *resource.Controller

	// Fault is invoked by every worker before the rendezvous. May be nil.
	Fault pool.Fault

	// Logger receives debug output. May be nil.
	Logger *slog.Logger
}

// Parallel factorizes every target with cfg.Workers goroutines, each
// testing a disjoint stride of the prime list. On error the store is nil.
func Parallel(ctx context.Context, targets []uint64, primes []uint64, cfg Config) (*Store, error) {
	k := cfg.Workers
	if k <= 0 {
		return nil, fmt.Errorf("%w: %d", pool.ErrInvalidWorkerCount, k)
	}
	if err := validatePrimes(primes); err != nil {
		return nil, err
	}

	store, err := NewStore(targets)
	if err != nil {
		return nil, err
	}
	order := store.Targets()

	if err := cfg.Resources.AcquireRun(ctx); err != nil {
		return nil, err
	}
	defer cfg.Resources.ReleaseRun()

	divisions := pool.NewCounters(k)

	err = pool.Run(ctx, k, func(ctx context.Context, worker int) error {
		local := make(map[uint64][]uint64, len(order))

		for _, t := range order {
			if err := ctx.Err(); err != nil {
				return err
			}
			found, tried := factorStride(t, primes, worker, k)
			local[t] = found
			divisions.Add(worker, tried)
		}

		return store.Merge(local)
	}, cfg.Fault)
	if err != nil {
		return nil, err
	}

	if err := store.finalize(); err != nil {
		return nil, err
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("parallel factorization merged",
			"targets", len(order),
			"divisions", divisions.Total(),
		)
	}

	return store, nil
}

// factorStride trial-divides target by primes[start], primes[start+step], ...
// and returns the factors found along with the number of divisions tried.
// It never records the leftover cofactor.
func factorStride(target uint64, primes []uint64, start, step int) ([]uint64, uint64) {
	var (
		found []uint64
		tried uint64
	)
	rest := target

	for i := start; i < len(primes); {
		p := primes[i]
		if p > rest/p {
			break
		}
		tried++
		if rest%p == 0 {
			found = append(found, p)
			rest /= p
			continue
		}
		i += step
	}
	return found, tried
}
