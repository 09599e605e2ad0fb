package bitset

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrSizeMismatch is returned when merging sets of different bounds.
var ErrSizeMismatch = errors.New("bitset: size mismatch")

// OddSet is a packed primality bitset over the odd integers in [0, n].
type OddSet struct {
	units []byte
	bound uint64
}

// UnitsFor returns the number of storage units needed to cover [0, n].
func UnitsFor(n uint64) uint64 {
	return n/16 + 1
}

// New creates an OddSet covering [0, n] with every odd integer a candidate.
func New(n uint64) *OddSet {
	return &OddSet{
		units: make([]byte, UnitsFor(n)),
		bound: n,
	}
}

// Mark records num as composite. num must be odd and <= Bound().
func (s *OddSet) Mark(num uint64) {
	s.units[num>>4] |= 1 << ((num & 15) >> 1)
}

// IsCandidate reports whether num has not been marked composite.
func (s *OddSet) IsCandidate(num uint64) bool {
	return s.units[num>>4]&(1<<((num&15)>>1)) == 0
}

// MarkOddMultiples marks p*p, p*p+2p, ... up to and including high.
// p must be odd and p*p must not overflow.
func (s *OddSet) MarkOddMultiples(p, high uint64) {
	if high > s.bound {
		high = s.bound
	}
	step := 2 * p
	for i := p * p; i <= high; i += step {
		s.Mark(i)
		if i > high-step {
			break
		}
	}
}

// NextCandidate returns the smallest odd candidate strictly greater than
// prev and <= high, or false if there is none. prev must be odd.
func (s *OddSet) NextCandidate(prev, high uint64) (uint64, bool) {
	if high > s.bound {
		high = s.bound
	}
	for i := prev + 2; i <= high; i += 2 {
		if s.IsCandidate(i) {
			return i, true
		}
	}
	return 0, false
}

// Or merges other into s. Both sets must cover the same bound.
func (s *OddSet) Or(other *OddSet) error {
	if other.bound != s.bound || len(other.units) != len(s.units) {
		return fmt.Errorf("%w: %d != %d", ErrSizeMismatch, other.bound, s.bound)
	}
	dst := s.units
	src := other.units[:len(dst)]
	for i := range dst {
		dst[i] |= src[i]
	}
	return nil
}

// Equal reports whether both sets cover the same bound with identical bits.
func (s *OddSet) Equal(other *OddSet) bool {
	if other == nil || other.bound != s.bound || len(other.units) != len(s.units) {
		return false
	}
	for i, u := range s.units {
		if other.units[i] != u {
			return false
		}
	}
	return true
}

// CountCandidates returns the number of primes the set currently implies:
// 2 (when the bound allows it) plus every odd candidate in [3, bound].
func (s *OddSet) CountCandidates() int {
	if s.bound < 2 {
		return 0
	}
	count := 1
	for i := uint64(3); i <= s.bound; i += 2 {
		if s.IsCandidate(i) {
			count++
		}
	}
	return count
}

// Marked returns the number of set bits, including bits past the bound.
func (s *OddSet) Marked() int {
	total := 0
	for _, u := range s.units {
		total += bits.OnesCount8(u)
	}
	return total
}

// Bound returns n, the largest integer the set covers.
func (s *OddSet) Bound() uint64 {
	return s.bound
}

// Units returns the number of storage units.
func (s *OddSet) Units() int {
	return len(s.units)
}

// Bytes returns the memory footprint of the bit storage.
func (s *OddSet) Bytes() int64 {
	return int64(s.Units())
}
