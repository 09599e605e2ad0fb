// Command primebench compares the sequential and parallel sieve and
// factorizer of primego.
//
// Usage:
//
//	primebench -n 2000000 -k 8
//	primebench -n 2000000 -k 8 -median -runs 7
//	primebench -n 2000000 -export report.json.zst -compress zstd
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hupe1980/primego"
	"github.com/hupe1980/primego/internal/report"
	"github.com/hupe1980/primego/internal/resource"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// errUsage marks invalid command-line input.
var errUsage = errors.New("usage")

type config struct {
	n            uint64
	k            int
	median       bool
	runs         int
	sizes        []uint64
	targets      int
	printFactors bool
	exportPath   string
	compression  report.Compression
	ioLimit      int64
	memoryLimit  int64
	metricsAddr  string
	logLevel     slog.Level
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, "primebench:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("primebench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		n           = fs.Int64("n", 0, "find primes <= n and factorize the values below n² (required, > 0)")
		k           = fs.Int("k", runtime.NumCPU(), "number of workers for the parallel variants (> 0)")
		median      = fs.Bool("median", false, "also report median times over -runs runs for each of -sizes")
		runs        = fs.Int("runs", 7, "runs per size in median mode")
		sizes       = fs.String("sizes", "2000000,20000000", "comma-separated bounds for median mode")
		targets     = fs.Int("targets", primego.DefaultTargetCount, "number of values below n² to factorize")
		printFac    = fs.Bool("print-factors", false, "print the factorization of every target")
		exportPath  = fs.String("export", "", "write a JSON report to this file")
		compress    = fs.String("compress", "none", "export compression: none, zstd or lz4")
		ioLimit     = fs.Int64("io-limit", 0, "export throughput limit in bytes/s (0 = unlimited)")
		memoryLimit = fs.Int64("memory-limit", 0, "limit for private worker bitsets in bytes (0 = unlimited)")
		metricsAddr = fs.String("metrics-addr", "", "serve Prometheus metrics on this address and wait for SIGINT")
		logLevel    = fs.String("log-level", "warn", "log level: debug, info, warn or error")
	)

	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: primebench -n <n> [-k <k>] [-median] [flags]")
		fmt.Fprintln(stderr, "where <n> and <k> are positive integers.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fail := func(format string, a ...any) (*config, error) {
		fmt.Fprintf(stderr, format+"\n", a...)
		fs.Usage()
		return nil, errUsage
	}

	if *n <= 0 {
		return fail("-n must be a positive integer, got %d", *n)
	}
	if *k <= 0 {
		return fail("-k must be a positive integer, got %d", *k)
	}
	if *runs <= 0 {
		return fail("-runs must be a positive integer, got %d", *runs)
	}
	if *targets <= 0 {
		return fail("-targets must be a positive integer, got %d", *targets)
	}

	cfg := &config{
		n:            uint64(*n),
		k:            *k,
		median:       *median,
		runs:         *runs,
		targets:      *targets,
		printFactors: *printFac,
		exportPath:   *exportPath,
		ioLimit:      *ioLimit,
		memoryLimit:  *memoryLimit,
		metricsAddr:  *metricsAddr,
	}

	var err error
	if cfg.sizes, err = parseSizes(*sizes); err != nil {
		return fail("-sizes: %v", err)
	}
	if cfg.compression, err = report.ParseCompression(*compress); err != nil {
		return fail("-compress: %v", err)
	}
	if err := cfg.logLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return fail("-log-level: %v", err)
	}

	return cfg, nil
}

func parseSizes(s string) ([]uint64, error) {
	var sizes []uint64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil || v == 0 {
			return nil, fmt.Errorf("%q is not a positive integer", part)
		}
		sizes = append(sizes, v)
	}
	if len(sizes) == 0 {
		return nil, errors.New("no sizes given")
	}
	return sizes, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := primego.NewLogger(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.logLevel}))

	opts := []primego.Option{
		primego.WithWorkers(cfg.k),
		primego.WithLogger(logger),
		primego.WithMemoryLimit(cfg.memoryLimit),
	}

	var reg *prometheus.Registry
	if cfg.metricsAddr != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, primego.WithMetricsCollector(NewPrometheusCollector(reg)))
	}

	e, err := primego.New(opts...)
	if err != nil {
		return err
	}

	var srv *http.Server
	if reg != nil {
		srv = serveMetrics(cfg.metricsAddr, reg, logger)
		defer srv.Close()
	}

	b := &bench{engine: e, cfg: cfg, out: stdout}

	doc, err := b.single(ctx, cfg.n)
	if err != nil {
		return err
	}

	if cfg.median {
		if err := b.medians(ctx, doc); err != nil {
			return err
		}
	}

	if cfg.exportPath != "" {
		if err := export(ctx, cfg, doc); err != nil {
			return err
		}
		logger.Info("report exported", "path", cfg.exportPath, "compression", cfg.compression.String())
	}

	if srv != nil {
		logger.Info("serving metrics until interrupted", "addr", cfg.metricsAddr)
		<-ctx.Done()
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *primego.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}

func export(ctx context.Context, cfg *config, doc *report.Document) (err error) {
	f, err := os.Create(cfg.exportPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: cfg.ioLimit})
	return report.Export(ctx, f, doc, cfg.compression, rc)
}
