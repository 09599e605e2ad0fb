package pool

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrWorkerFailure is returned when any worker terminates abnormally.
	ErrWorkerFailure = errors.New("worker failure")

	// ErrInvalidWorkerCount is returned when the worker count is not positive.
	ErrInvalidWorkerCount = errors.New("worker count must be positive")
)

// Phase names the point at which a worker failed.
type Phase string

const (
	// PhaseWork is the worker's own computation.
	PhaseWork Phase = "work"
	// PhaseBarrier is the hand-off right before the rendezvous.
	PhaseBarrier Phase = "barrier"
)

// WorkerError describes the first worker that failed during a run.
type WorkerError struct {
	Worker int
	Phase  Phase
	cause  error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf("worker %d failed during %s: %v", e.Worker, e.Phase, e.cause)
}

// Unwrap exposes both ErrWorkerFailure and the underlying cause.
func (e *WorkerError) Unwrap() []error { return []error{ErrWorkerFailure, e.cause} }

// Func is the body of one worker.
type Func func(ctx context.Context, worker int) error

// Fault is invoked by every worker after its work and before the
// rendezvous. A non-nil error simulates an abnormal termination.
type Fault func(worker int) error

// Run executes fn on workers goroutines and waits for all of them.
func Run(ctx context.Context, workers int, fn Func, fault Fault) error {
	if workers <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkerCount, workers)
	}

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() (err error) {
			phase := PhaseWork
			defer func() {
				if r := recover(); r != nil {
					err = &WorkerError{Worker: w, Phase: phase, cause: fmt.Errorf("panic: %v", r)}
				}
			}()

			if err := fn(gctx, w); err != nil {
				return &WorkerError{Worker: w, Phase: phase, cause: err}
			}

			phase = PhaseBarrier
			if fault != nil {
				if err := fault(w); err != nil {
					return &WorkerError{Worker: w, Phase: phase, cause: err}
				}
			}
			if err := gctx.Err(); err != nil {
				return &WorkerError{Worker: w, Phase: phase, cause: err}
			}
			return nil
		})
	}

	return g.Wait()
}
