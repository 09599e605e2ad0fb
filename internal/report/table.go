package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// Row is one line of a timing table.
type Row struct {
	N          uint64        `json:"n"`
	Workers    int           `json:"workers"`
	Sequential time.Duration `json:"sequential_ns"`
	Parallel   time.Duration `json:"parallel_ns"`
}

// Speedup returns Sequential / Parallel, or 0 when Parallel is 0.
func (r Row) Speedup() float64 {
	if r.Parallel <= 0 {
		return 0
	}
	return float64(r.Sequential) / float64(r.Parallel)
}

// Median returns the median of the durations (the upper median for an even
// count). The input is not modified.
func Median(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}

// MedianRow reduces repeated samples of one bound to a single row.
func MedianRow(n uint64, workers int, sequential, parallel []time.Duration) Row {
	return Row{
		N:          n,
		Workers:    workers,
		Sequential: Median(sequential),
		Parallel:   Median(parallel),
	}
}

// WriteTable writes a titled, aligned timing table.
func WriteTable(w io.Writer, title string, rows []Row) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "n\tk\tsequential(ms)\tparallel(ms)\tspeedup\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.3f\t\n",
			r.N, r.Workers, millis(r.Sequential), millis(r.Parallel), r.Speedup())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w)
	return err
}

func millis(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 3, 64)
}

// FormatFactors renders "target = f1*f2*...", factors ascending.
func FormatFactors(target uint64, factors []uint64) string {
	sorted := slices.Clone(factors)
	slices.Sort(sorted)

	parts := make([]string, len(sorted))
	for i, f := range sorted {
		parts[i] = strconv.FormatUint(f, 10)
	}
	if len(parts) == 0 {
		parts = []string{"1"}
	}
	return fmt.Sprintf("%d = %s", target, strings.Join(parts, "*"))
}

// WriteFactors writes one FormatFactors line per target, in the given order.
func WriteFactors(w io.Writer, targets []uint64, lookup func(uint64) []uint64) error {
	for _, t := range targets {
		if _, err := fmt.Fprintln(w, FormatFactors(t, lookup(t))); err != nil {
			return err
		}
	}
	return nil
}
