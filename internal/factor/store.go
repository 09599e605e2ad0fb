package factor

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/hupe1980/primego/internal/conv"
)

var (
	// ErrInvalidTarget is returned for a target that cannot be factorized.
	ErrInvalidTarget = errors.New("target must be positive")

	// ErrUnknownTarget is returned when merging factors for a target the
	// store was not created with.
	ErrUnknownTarget = errors.New("unknown target")

	// ErrInvalidPrimes is returned for a prime list that trial division
	// cannot use.
	ErrInvalidPrimes = errors.New("invalid prime list")

	// ErrIncomplete is returned by Verify when a factor list does not
	// multiply back to its target.
	ErrIncomplete = errors.New("incomplete factorization")
)

// Store maps every target to the factors discovered for it.
// It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	factors map[uint64][]uint64
}

// NewStore creates a store with an empty factor list per target.
// Duplicate targets collapse into one entry.
func NewStore(targets []uint64) (*Store, error) {
	s := &Store{factors: make(map[uint64][]uint64, len(targets))}
	for _, t := range targets {
		if t == 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidTarget, t)
		}
		s.factors[t] = nil
	}
	return s, nil
}

// Add appends one factor to a target's list.
func (s *Store) Add(target, factor uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.factors[target]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTarget, target)
	}
	s.factors[target] = append(list, factor)
	return nil
}

// Merge appends a worker's private per-target lists in one critical section.
// Unknown targets are rejected before anything is appended.
func (s *Store) Merge(partial map[uint64][]uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for t := range partial {
		if _, ok := s.factors[t]; !ok {
			return fmt.Errorf("%w: %d", ErrUnknownTarget, t)
		}
	}
	for t, found := range partial {
		if len(found) > 0 {
			s.factors[t] = append(s.factors[t], found...)
		}
	}
	return nil
}

// Factors returns a copy of the target's factor list.
func (s *Store) Factors(target uint64) ([]uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.factors[target]
	if !ok {
		return nil, false
	}
	return slices.Clone(list), true
}

// Targets returns all targets in ascending order.
func (s *Store) Targets() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make([]uint64, 0, len(s.factors))
	for t := range s.factors {
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}

// Len returns the number of targets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.factors)
}

// Snapshot returns a deep copy of the whole mapping.
func (s *Store) Snapshot() map[uint64][]uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[uint64][]uint64, len(s.factors))
	for t, list := range s.factors {
		out[t] = slices.Clone(list)
	}
	return out
}

// Verify checks that every target's factors multiply back to the target.
func (s *Store) Verify() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for t, list := range s.factors {
		p, err := conv.Product(list)
		if err != nil {
			return fmt.Errorf("%w: %d: %w", ErrIncomplete, t, err)
		}
		if p != t {
			return fmt.Errorf("%w: %d has product %d", ErrIncomplete, t, p)
		}
	}
	return nil
}

// finalize appends the leftover cofactor of every target. Callers must hold
// exclusive access, i.e. all workers have merged.
func (s *Store) finalize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for t, list := range s.factors {
		rest := t
		for _, f := range list {
			if f == 0 || rest%f != 0 {
				return fmt.Errorf("%w: %d is not divisible by recorded factor %d", ErrIncomplete, t, f)
			}
			rest /= f
		}
		if rest > 1 {
			s.factors[t] = append(list, rest)
		}
	}
	return nil
}
