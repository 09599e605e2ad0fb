// Package sieve computes all primes up to a bound with the Sieve of
// Eratosthenes over a packed odd-only bitset.
//
// Sequential runs a single pass over one set. Parallel bootstraps the seed
// primes <= sqrt(n) on the coordinator, hands every worker a private set
// and a stride of the seed primes (worker i takes seeds i, i+k, i+2k, ...),
// waits for all workers, and ORs the private sets into the canonical one.
// Workers never share a set, so marking needs no locks. Because marking is
// monotonic and OR commutes, the merged set is independent of k and of
// scheduling order.
//
// Both drivers extract the primes with Collect.
package sieve
