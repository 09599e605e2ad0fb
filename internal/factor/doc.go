// Package factor prime-factorizes a set of targets by trial division over a
// prime list.
//
// Sequential divides every target by the primes in ascending order and stops
// once p*p exceeds the cofactor; a cofactor > 1 left at that point is prime.
//
// Parallel partitions the divisors, not the targets: worker t tests only the
// primes at indices t, t+k, t+2k, ... against every target and keeps what it
// finds in private per-target lists. No single worker knows the final
// cofactor, so none of them records a trailing "remaining is prime" factor.
// Each worker merges its lists into the Store exactly once under a mutex;
// after all workers are done the coordinator divides every target by the
// product of its merged factors and appends the leftover when it is > 1.
//
// Factor order inside a list is discovery (or merge-arrival) order. Only the
// multiset and its product are meaningful.
package factor
