// Package primeset verifies prime lists produced by different sieve runs.
//
// Lists are loaded into compressed 64-bit Roaring bitmaps so that two runs
// over large bounds can be compared with one XOR instead of a linear walk
// that stops at the first difference.
package primeset

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

var (
	// ErrMismatch is returned when two prime lists differ.
	ErrMismatch = errors.New("prime lists differ")

	// ErrNotAscending is returned for a list that is not strictly ascending.
	ErrNotAscending = errors.New("prime list is not strictly ascending")

	// ErrNotPrime is returned for a list holding 0 or 1.
	ErrNotPrime = errors.New("prime list holds a value below 2")
)

// Set is an immutable set of primes.
type Set struct {
	bm *roaring64.Bitmap
}

// FromList builds a set from a prime list.
func FromList(primes []uint64) *Set {
	bm := roaring64.New()
	bm.AddMany(primes)
	bm.RunOptimize()
	return &Set{bm: bm}
}

// Contains reports whether p is in the set.
func (s *Set) Contains(p uint64) bool {
	return s.bm.Contains(p)
}

// Len returns the number of primes in the set.
func (s *Set) Len() uint64 {
	return s.bm.GetCardinality()
}

// Equal reports whether both sets hold the same primes.
func (s *Set) Equal(other *Set) bool {
	return s.bm.Equals(other.bm)
}

// MismatchError describes the smallest value present in only one list.
type MismatchError struct {
	Value uint64
	// Index is the position at which the ascending lists first differ.
	Index          uint64
	InReference    bool
	ReferenceLen   int
	CandidateLen   int
	SymmetricCount uint64
}

func (e *MismatchError) Error() string {
	side := "candidate"
	if e.InReference {
		side = "reference"
	}
	return fmt.Sprintf("%v: %d only in %s at index %d (%d differing values, lengths %d vs %d)",
		ErrMismatch, e.Value, side, e.Index, e.SymmetricCount, e.ReferenceLen, e.CandidateLen)
}

func (e *MismatchError) Unwrap() error { return ErrMismatch }

// Validate checks that a list is strictly ascending and starts at 2 or
// above.
func Validate(primes []uint64) error {
	if len(primes) > 0 && primes[0] < 2 {
		return fmt.Errorf("%w: index 0 holds %d", ErrNotPrime, primes[0])
	}
	for i := 1; i < len(primes); i++ {
		if primes[i] <= primes[i-1] {
			return fmt.Errorf("%w: index %d holds %d after %d", ErrNotAscending, i, primes[i], primes[i-1])
		}
	}
	return nil
}

// Diff returns the smallest prime held by only one of the sets, or nil
// when they are equal.
func Diff(reference, candidate *Set) *MismatchError {
	if reference.Equal(candidate) {
		return nil
	}

	diff := roaring64.Xor(reference.bm, candidate.bm)
	v := diff.Minimum()
	inReference := reference.Contains(v)

	// Every value below v is shared, so the reference rank is the index.
	index := reference.bm.Rank(v)
	if inReference {
		index--
	}

	return &MismatchError{
		Value:          v,
		Index:          index,
		InReference:    inReference,
		ReferenceLen:   int(reference.Len()),
		CandidateLen:   int(candidate.Len()),
		SymmetricCount: diff.GetCardinality(),
	}
}

// Compare returns nil when both lists hold exactly the same primes in
// strictly ascending order.
func Compare(reference, candidate []uint64) error {
	if err := Validate(reference); err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	if err := Validate(candidate); err != nil {
		return fmt.Errorf("candidate: %w", err)
	}

	if me := Diff(FromList(reference), FromList(candidate)); me != nil {
		return me
	}
	return nil
}
