package primego

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/hupe1980/primego/internal/conv"
	"github.com/hupe1980/primego/internal/factor"
	"github.com/hupe1980/primego/internal/pool"
	"github.com/hupe1980/primego/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LogSieve(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.LogSieve(context.Background(), Parallel, 30, 10, time.Millisecond, nil)
	assert.Contains(t, buf.String(), "sieve completed")
	assert.Contains(t, buf.String(), "mode=parallel")
	assert.Contains(t, buf.String(), "primes=10")

	buf.Reset()
	l.WithWorkers(4).LogFactorize(context.Background(), Parallel, 101, 0, ErrWorkerFailure)
	assert.Contains(t, buf.String(), "factorization failed")
	assert.Contains(t, buf.String(), "workers=4")
}

func TestEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := newEngine(t, WithWorkers(2), WithLogger(l))
	_, err := e.Sieve(context.Background(), Parallel, 1000)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"msg":"parallel sieve merged"`)
	assert.Contains(t, buf.String(), `"mode":"parallel","workers":2,"n":1000`)
	assert.Contains(t, buf.String(), `"msg":"sieve completed"`)
}

func TestLogger_LogWorkerFailure(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, nil))

	err := &WorkerError{Worker: 3, Phase: "barrier", cause: errors.New("interrupted wait")}
	l.WithBound(1000).LogWorkerFailure(context.Background(), "sieve", Parallel, err)

	out := buf.String()
	assert.Contains(t, out, `msg="worker failure"`)
	assert.Contains(t, out, "n=1000")
	assert.Contains(t, out, "op=sieve")
	assert.Contains(t, out, "worker=3")
	assert.Contains(t, out, "phase=barrier")
}

func TestEngine_LogsWorkerFailure(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, nil))

	e := newEngine(t, WithWorkers(2), WithLogger(l), WithWorkerHook(func(worker int) error {
		if worker == 1 {
			return errors.New("interrupted wait")
		}
		return nil
	}))

	_, err := e.Sieve(context.Background(), Parallel, 1000)
	require.ErrorIs(t, err, ErrWorkerFailure)
	assert.Contains(t, buf.String(), `"msg":"worker failure"`)
	assert.Contains(t, buf.String(), `"worker":1`)
	assert.NotContains(t, buf.String(), `"msg":"sieve failed"`)

	buf.Reset()
	_, err = e.Factorize(context.Background(), Parallel, []uint64{99}, []uint64{2, 3, 5, 7})
	require.ErrorIs(t, err, ErrWorkerFailure)
	assert.Contains(t, buf.String(), `"op":"factorize"`)
}

func TestEngine_RecordsWorkerStats(t *testing.T) {
	m := &BasicMetricsCollector{}
	e := newEngine(t, WithWorkers(8), WithMetricsCollector(m))

	// Seeds for n=100 are 3, 5 and 7.
	_, err := e.Sieve(context.Background(), Parallel, 100)
	require.NoError(t, err)
	_, err = e.Sieve(context.Background(), Sequential, 100)
	require.NoError(t, err)
	_, err = e.Sieve(context.Background(), Parallel, 1)
	require.NoError(t, err)

	stats := m.GetStats()
	assert.Equal(t, int64(3), stats.SeedsMarked)
	assert.Equal(t, int64(5), stats.IdleWorkers)
}

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordSieve(Sequential, 30, 1, 10, 2*time.Millisecond, nil)
	m.RecordSieve(Parallel, 30, 4, 0, 4*time.Millisecond, fmt.Errorf("wrapped: %w", ErrWorkerFailure))
	m.RecordFactorize(Parallel, 101, 4, time.Millisecond, nil)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.SieveCount)
	assert.Equal(t, int64(1), stats.SieveErrors)
	assert.Equal(t, int64(3*time.Millisecond), stats.SieveAvgNanos)
	assert.Equal(t, int64(10), stats.PrimesFound)
	assert.Equal(t, int64(1), stats.FactorizeCount)
	assert.Equal(t, int64(101), stats.TargetsFactorized)
	assert.Equal(t, int64(1), stats.WorkerFailures)
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	cause := errors.New("cause")
	werr := translateError(&pool.WorkerError{Worker: 3, Phase: pool.PhaseWork})
	var we *WorkerError
	require.ErrorAs(t, werr, &we)
	assert.Equal(t, 3, we.Worker)
	assert.ErrorIs(t, werr, ErrWorkerFailure)

	tests := []struct {
		in   error
		want error
	}{
		{fmt.Errorf("x: %w", pool.ErrWorkerFailure), ErrWorkerFailure},
		{fmt.Errorf("x: %w", pool.ErrInvalidWorkerCount), ErrInvalidWorkerCount},
		{fmt.Errorf("x: %w", resource.ErrMemoryLimitExceeded), ErrMemoryLimitExceeded},
		{fmt.Errorf("x: %w", factor.ErrInvalidTarget), ErrInvalidTarget},
		{fmt.Errorf("x: %w", factor.ErrInvalidPrimes), ErrInvalidPrimes},
		{fmt.Errorf("x: %w", conv.ErrOverflow), ErrInvalidBound},
		{cause, cause},
	}
	for _, tt := range tests {
		assert.ErrorIs(t, translateError(tt.in), tt.want)
	}
}

func TestBoundError(t *testing.T) {
	err := &BoundError{Bound: 0}
	assert.ErrorIs(t, err, ErrInvalidBound)
	assert.Equal(t, "invalid bound 0", err.Error())

	err = &BoundError{Bound: 5, cause: conv.ErrOverflow}
	assert.ErrorIs(t, err, ErrInvalidBound)
	assert.ErrorIs(t, err, conv.ErrOverflow)
}
