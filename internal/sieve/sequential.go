package sieve

import (
	"github.com/hupe1980/primego/internal/bitset"
	"github.com/hupe1980/primego/internal/conv"
)

// Sequential returns all primes <= n using a single thread.
func Sequential(n uint64) []uint64 {
	if n <= 1 {
		return []uint64{}
	}
	return Collect(sequentialSet(n))
}

func sequentialSet(n uint64) *bitset.OddSet {
	set := bitset.New(n)
	set.Mark(1)

	root := conv.ISqrt(n)
	for i := uint64(3); i <= root; i += 2 {
		if set.IsCandidate(i) {
			set.MarkOddMultiples(i, n)
		}
	}
	return set
}
