// Package pool runs a fixed set of workers for one parallel run.
//
// Every run spawns k fresh goroutines and a coordinator that waits for all
// of them. The wait is the rendezvous point: nothing a worker produced may be
// consumed before Run returns, and Run only returns nil when every worker
// finished cleanly.
//
// A worker that returns an error, panics, or trips the optional fault hook
// aborts the whole run. Run reports the first failure as a *WorkerError
// wrapping ErrWorkerFailure, and the caller must discard any partial state.
//
//	err := pool.Run(ctx, k, func(ctx context.Context, worker int) error {
//	    // owns private state, indexed by worker
//	    return nil
//	}, nil)
package pool
