// Package resource implements the Controller that governs parallel runs.
//
// The Controller manages three resource types:
//
//   - Memory: budget for the per-worker private bitsets of a parallel sieve
//     (non-blocking, fail-fast)
//   - Runs: limit on concurrently executing parallel runs
//   - IO: token bucket for report export
//
// # Memory
//
// A parallel sieve over n with k workers reserves k*(n/16+1) bytes for
// its private sets before any worker starts and gives them back after the
// merge. The shared set is not accounted:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	})
//
//	if err := rc.AcquireMemory(bytes); err != nil {
//	    // ErrMemoryLimitExceeded, the run never starts
//	}
//	defer rc.ReleaseMemory(bytes)
//
// # Runs
//
//	if err := rc.AcquireRun(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseRun()
//
// # IO
//
//	w := resource.NewRateLimitedWriter(ctx, file, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully: they become no-ops.
package resource
