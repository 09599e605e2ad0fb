// Package primego computes primes with a bit-packed Sieve of Eratosthenes
// and prime-factorizes large integers by trial division, each in a
// sequential and a parallel variant.
//
// # Quick Start
//
//	ctx := context.Background()
//	e, _ := primego.New(primego.WithWorkers(8))
//
//	primes, _ := e.Sieve(ctx, primego.Parallel, 2_000_000)
//
//	targets, _ := primego.Targets(2_000_000, primego.DefaultTargetCount)
//	factors, _ := e.Factorize(ctx, primego.Parallel, targets, primes)
//
//	for _, t := range factors.Targets() {
//	    f, _ := factors.SortedFactors(t)
//	    fmt.Println(t, f)
//	}
//
// # Parallel Sieve
//
// The coordinator sieves up to sqrt(n) to discover the seed primes. Each of
// the k workers then owns a private bitset and marks the odd multiples of
// seeds i, i+k, i+2k, ... up to n. After every worker is done, the
// coordinator ORs the private bitsets into one and collects the primes.
// Marking never takes a lock; the price is k extra bitsets of n/16+1 bytes,
// which can be capped with WithMemoryLimit.
//
// # Parallel Factorization
//
// Divisors are partitioned, not targets: worker t tries primes t, t+k, ...
// against every target and records only the factors it finds itself. Each
// worker merges its private lists once under a mutex. The coordinator then
// appends the leftover cofactor of every target when it is > 1. Factor order
// within a target follows merge arrival and carries no meaning.
//
// # Failure Model
//
// A worker that returns an error, panics, or is interrupted aborts the
// whole run. The Engine returns ErrWorkerFailure (see WorkerError) and never
// a partially merged bitset or factor map.
//
// # Determinism
//
// For fixed inputs, every worker count yields the same prime list and the
// same factor multisets. Only the execution time varies.
package primego
