// Package testutil provides testing utilities for primego.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded RNG and generators for factor targets with known
// factorizations.
//
//	rng := testutil.NewRNG(seed)
//	targets := rng.Targets(100, 1<<40)
//	value, factors := rng.Composite(primes, 4)
package testutil
