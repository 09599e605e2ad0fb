package primego_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/primego"
)

// Example_sieve demonstrates computing primes with the parallel sieve.
func Example_sieve() {
	e, err := primego.New(primego.WithWorkers(4))
	if err != nil {
		log.Fatal(err)
	}

	primes, err := e.Sieve(context.Background(), primego.Parallel, 30)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(primes)
	// Output: [2 3 5 7 11 13 17 19 23 29]
}

// Example_factorize demonstrates factorizing values below n².
func Example_factorize() {
	ctx := context.Background()

	e, err := primego.New(primego.WithWorkers(4))
	if err != nil {
		log.Fatal(err)
	}

	primes, err := e.Sieve(ctx, primego.Sequential, 100)
	if err != nil {
		log.Fatal(err)
	}

	targets, err := primego.Targets(100, 3)
	if err != nil {
		log.Fatal(err)
	}

	factors, err := e.Factorize(ctx, primego.Parallel, targets, primes)
	if err != nil {
		log.Fatal(err)
	}

	for _, t := range factors.Targets() {
		f, _ := factors.SortedFactors(t)
		fmt.Println(t, f)
	}
	// Output:
	// 9997 [13 769]
	// 9998 [2 4999]
	// 9999 [3 3 11 101]
}

// Example_workerFailure demonstrates that a failing worker aborts the run.
func Example_workerFailure() {
	e, err := primego.New(
		primego.WithWorkers(2),
		primego.WithWorkerHook(func(worker int) error {
			return errors.New("interrupted")
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	primes, err := e.Sieve(context.Background(), primego.Parallel, 1000)
	fmt.Println(primes == nil, errors.Is(err, primego.ErrWorkerFailure))
	// Output: true true
}

// Example_metrics demonstrates collecting run metrics.
func Example_metrics() {
	metrics := &primego.BasicMetricsCollector{}

	e, err := primego.New(primego.WithWorkers(2), primego.WithMetricsCollector(metrics))
	if err != nil {
		log.Fatal(err)
	}

	for _, mode := range []primego.Mode{primego.Sequential, primego.Parallel} {
		if _, err := e.Sieve(context.Background(), mode, 100); err != nil {
			log.Fatal(err)
		}
	}

	stats := metrics.GetStats()
	fmt.Println(stats.SieveCount, stats.PrimesFound)
	// Output: 2 50
}
