package factor

import (
	"fmt"

	"github.com/hupe1980/primego/internal/primeset"
)

// Factorize returns the prime factors of target in discovery order using
// the ascending prime list. The result is complete when the list covers
// every prime <= sqrt(target). primes must pass validatePrimes.
func Factorize(target uint64, primes []uint64) []uint64 {
	var factors []uint64
	rest := target

	for i := 0; i < len(primes); {
		p := primes[i]
		// p > rest/p is p*p > rest without overflow.
		if p > rest/p {
			break
		}
		if rest%p == 0 {
			factors = append(factors, p)
			rest /= p
			continue
		}
		i++
	}

	if rest > 1 {
		factors = append(factors, rest)
	}
	return factors
}

// Sequential factorizes every target on the calling goroutine.
func Sequential(targets []uint64, primes []uint64) (*Store, error) {
	if err := validatePrimes(primes); err != nil {
		return nil, err
	}
	store, err := NewStore(targets)
	if err != nil {
		return nil, err
	}

	for _, t := range store.Targets() {
		for _, f := range Factorize(t, primes) {
			if err := store.Add(t, f); err != nil {
				return nil, err
			}
		}
	}
	return store, nil
}

// validatePrimes rejects lists that would stall trial division: a 0 divides
// by zero and a 1 divides every remainder forever.
func validatePrimes(primes []uint64) error {
	if err := primeset.Validate(primes); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPrimes, err)
	}
	return nil
}
