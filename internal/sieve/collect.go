package sieve

import "github.com/hupe1980/primego/internal/bitset"

// Collect extracts the ascending prime list from a finished set.
//
// The first pass counts the candidates so the result is allocated exactly
// once; the second pass fills it.
func Collect(set *bitset.OddSet) []uint64 {
	n := set.Bound()
	if n < 2 {
		return []uint64{}
	}

	primes := make([]uint64, set.CountCandidates())
	primes[0] = 2

	j := 1
	for i := uint64(3); i <= n; i += 2 {
		if set.IsCandidate(i) {
			primes[j] = i
			j++
		}
	}
	return primes
}
