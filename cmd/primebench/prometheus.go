package main

import (
	"strconv"
	"time"

	"github.com/hupe1980/primego"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements primego.MetricsCollector.
type PrometheusCollector struct {
	runLatency *prometheus.HistogramVec
	runs       *prometheus.CounterVec
	primes     prometheus.Counter
	targets    prometheus.Counter
	workers    prometheus.Gauge
	seedMarks  *prometheus.CounterVec
	idle       prometheus.Gauge
}

// NewPrometheusCollector creates the collector and registers it with reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		runLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "primego_run_duration_seconds",
			Help:    "Duration of sieve and factorization runs",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 16),
		}, []string{"op", "mode"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primego_runs_total",
			Help: "Total runs by operation, mode and status",
		}, []string{"op", "mode", "status"}),
		primes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "primego_primes_found_total",
			Help: "Total primes returned by successful sieve runs",
		}),
		targets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "primego_targets_factorized_total",
			Help: "Total targets factorized by successful runs",
		}),
		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "primego_workers",
			Help: "Workers used by the last parallel run",
		}),
		seedMarks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primego_seed_marks_total",
			Help: "Seed primes crossed off by parallel sieve workers",
		}, []string{"worker"}),
		idle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "primego_idle_workers",
			Help: "Workers without a seed prime in the last parallel sieve",
		}),
	}

	reg.MustRegister(c.runLatency, c.runs, c.primes, c.targets, c.workers, c.seedMarks, c.idle)
	return c
}

// RecordSieve implements primego.MetricsCollector.
func (c *PrometheusCollector) RecordSieve(mode primego.Mode, n uint64, workers, primes int, d time.Duration, err error) {
	c.record("sieve", mode, workers, d, err)
	if err == nil {
		c.primes.Add(float64(primes))
	}
}

// RecordFactorize implements primego.MetricsCollector.
func (c *PrometheusCollector) RecordFactorize(mode primego.Mode, targets, workers int, d time.Duration, err error) {
	c.record("factorize", mode, workers, d, err)
	if err == nil {
		c.targets.Add(float64(targets))
	}
}

// RecordWorkers implements primego.MetricsCollector.
func (c *PrometheusCollector) RecordWorkers(stats primego.WorkerStats) {
	for w, marks := range stats.Marks {
		c.seedMarks.WithLabelValues(strconv.Itoa(w)).Add(float64(marks))
	}
	c.idle.Set(float64(stats.IdleWorkers))
}

func (c *PrometheusCollector) record(op string, mode primego.Mode, workers int, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.runs.WithLabelValues(op, mode.String(), status).Inc()
	if err == nil {
		c.runLatency.WithLabelValues(op, mode.String()).Observe(d.Seconds())
	}
	if mode == primego.Parallel {
		c.workers.Set(float64(workers))
	}
}
