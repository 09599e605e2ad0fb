package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/primego"
	"github.com/hupe1980/primego/internal/report"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer

	cfg, err := parseFlags([]string{"-n", "1000", "-k", "3", "-compress", "lz4", "-sizes", "100, 200"}, &stderr)
	require.NoError(t, err)

	assert.Equal(t, uint64(1000), cfg.n)
	assert.Equal(t, 3, cfg.k)
	assert.Equal(t, report.CompressionLZ4, cfg.compression)
	assert.Equal(t, []uint64{100, 200}, cfg.sizes)
	assert.Equal(t, primego.DefaultTargetCount, cfg.targets)
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := [][]string{
		{},
		{"-n", "0"},
		{"-n", "-5"},
		{"-n", "10", "-k", "0"},
		{"-n", "10", "-runs", "0"},
		{"-n", "10", "-sizes", "a,b"},
		{"-n", "10", "-compress", "gzip"},
		{"-n", "10", "-log-level", "loud"},
	}

	for _, args := range tests {
		var stderr bytes.Buffer
		_, err := parseFlags(args, &stderr)
		assert.ErrorIs(t, err, errUsage, "args=%v", args)
		assert.Contains(t, stderr.String(), "Usage: primebench")
	}
}

func TestRun_Single(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-n", "1000", "-k", "4", "-targets", "3", "-print-factors"}, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "Single run time of sieve:")
	assert.Contains(t, out, "Single run time of factorizations:")
	assert.Contains(t, out, "999999 = 3*3*3*7*11*13*37")
	assert.Contains(t, out, "999998 = 2*31*127*127")
}

func TestRun_MedianAndExport(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "report.json.zst")

	err := run(context.Background(), []string{
		"-n", "100", "-k", "2", "-targets", "5",
		"-median", "-runs", "3", "-sizes", "500,1000",
		"-export", path, "-compress", "zstd",
	}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Median sieve times of 3 runs")
	assert.Contains(t, stdout.String(), "Running for n = 1000")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	doc, err := report.Import(f, report.CompressionZSTD)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), doc.N)
	assert.Equal(t, 25, doc.Primes)
	assert.Len(t, doc.Sieve, 3)
	assert.Len(t, doc.Factor, 3)
	assert.Equal(t, []uint64{3, 3, 11, 101}, doc.Factors["9999"])
}

func TestRun_MemoryLimit(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-n", "1000000", "-k", "4", "-memory-limit", "1024"}, &stdout, &stderr)
	assert.ErrorIs(t, err, primego.ErrMemoryLimitExceeded)
}

// gathered sums the counter and gauge samples of one metric family.
func gathered(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}
	}
	return total
}

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewPrometheusCollector(reg)

	e, err := primego.New(primego.WithWorkers(2), primego.WithMetricsCollector(c))
	require.NoError(t, err)

	primes, err := e.Sieve(context.Background(), primego.Parallel, 100)
	require.NoError(t, err)
	_, err = e.Factorize(context.Background(), primego.Sequential, []uint64{97, 98}, primes)
	require.NoError(t, err)

	assert.Equal(t, 25.0, gathered(t, reg, "primego_primes_found_total"))
	assert.Equal(t, 2.0, gathered(t, reg, "primego_targets_factorized_total"))
	assert.Equal(t, 2.0, gathered(t, reg, "primego_workers"))
	assert.Equal(t, 2.0, gathered(t, reg, "primego_runs_total"))
	// Seeds 3, 5 and 7 spread over two workers.
	assert.Equal(t, 3.0, gathered(t, reg, "primego_seed_marks_total"))
	assert.Equal(t, 0.0, gathered(t, reg, "primego_idle_workers"))
}
