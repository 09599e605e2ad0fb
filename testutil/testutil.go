package testutil

import (
	"math/bits"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64n returns a pseudo-random number in [0,n). n must be > 0.
func (r *RNG) Uint64n(n uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n&(n-1) == 0 {
		return r.rand.Uint64() & (n - 1)
	}
	limit := -n % n // 2^64 mod n
	for {
		v := r.rand.Uint64()
		if v >= limit {
			return v % n
		}
	}
}

// Targets returns count distinct pseudo-random targets in [2, max].
func (r *RNG) Targets(count int, max uint64) []uint64 {
	seen := make(map[uint64]struct{}, count)
	out := make([]uint64, 0, count)
	for len(out) < count {
		t := 2 + r.Uint64n(max-1)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Composite multiplies up to size primes drawn from primes (with
// repetition) and returns the product with its factors. Draws that would
// overflow 64 bits are skipped.
func (r *RNG) Composite(primes []uint64, size int) (uint64, []uint64) {
	value := uint64(1)
	var factors []uint64
	for i := 0; i < size; i++ {
		p := primes[r.Intn(len(primes))]
		hi, lo := bits.Mul64(value, p)
		if hi != 0 {
			continue
		}
		value = lo
		factors = append(factors, p)
	}
	return value, factors
}
