package primego

import (
	"errors"
	"fmt"

	"github.com/hupe1980/primego/internal/conv"
	"github.com/hupe1980/primego/internal/factor"
	"github.com/hupe1980/primego/internal/pool"
	"github.com/hupe1980/primego/internal/resource"
)

var (
	// ErrInvalidBound is returned when a bound cannot be used, e.g. n is 0
	// when generating targets or n² does not fit in 64 bits.
	ErrInvalidBound = errors.New("invalid bound")

	// ErrInvalidWorkerCount is returned when the worker count is not positive.
	ErrInvalidWorkerCount = errors.New("worker count must be positive")

	// ErrWorkerFailure is returned when a worker terminates abnormally.
	// The run is aborted and no partial result is returned.
	ErrWorkerFailure = errors.New("worker failure")

	// ErrInvalidTarget is returned for a factor target of 0.
	ErrInvalidTarget = errors.New("invalid factor target")

	// ErrInvalidPrimes is returned when the prime list handed to Factorize
	// is not strictly ascending or holds a value below 2.
	ErrInvalidPrimes = errors.New("invalid prime list")

	// ErrInvalidMode is returned for an unknown Mode.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrMemoryLimitExceeded is returned when the private worker buffers of a
	// parallel run would exceed the configured memory limit.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
)

// BoundError indicates a bound that cannot be used.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type BoundError struct {
	Bound uint64
	cause error
}

func (e *BoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("invalid bound %d: %v", e.Bound, e.cause)
	}
	return fmt.Sprintf("invalid bound %d", e.Bound)
}

func (e *BoundError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrInvalidBound}
	}
	return []error{ErrInvalidBound, e.cause}
}

// WorkerError identifies the worker that aborted a parallel run.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type WorkerError struct {
	Worker int
	Phase  string
	cause  error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed during %s: %v", e.Worker, e.Phase, e.cause)
}

func (e *WorkerError) Unwrap() []error { return []error{ErrWorkerFailure, e.cause} }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var we *pool.WorkerError
	if errors.As(err, &we) {
		return &WorkerError{Worker: we.Worker, Phase: string(we.Phase), cause: err}
	}
	if errors.Is(err, pool.ErrWorkerFailure) {
		return fmt.Errorf("%w: %w", ErrWorkerFailure, err)
	}
	if errors.Is(err, pool.ErrInvalidWorkerCount) {
		return fmt.Errorf("%w: %w", ErrInvalidWorkerCount, err)
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	}
	if errors.Is(err, factor.ErrInvalidPrimes) {
		return fmt.Errorf("%w: %w", ErrInvalidPrimes, err)
	}
	if errors.Is(err, factor.ErrInvalidTarget) {
		return fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	if errors.Is(err, conv.ErrOverflow) {
		return fmt.Errorf("%w: %w", ErrInvalidBound, err)
	}

	return err
}
