package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hupe1980/primego"
	"github.com/hupe1980/primego/internal/primeset"
	"github.com/hupe1980/primego/internal/report"
)

type bench struct {
	engine *primego.Engine
	cfg    *config
	out    io.Writer
}

// timings holds one measurement of all four variants for a bound.
type timings struct {
	sieveSeq, sievePar   time.Duration
	factorSeq, factorPar time.Duration
	primes               int
	factors              *primego.FactorMap
	targets              []uint64
}

// measure runs all four variants once for n and cross-checks the results.
func (b *bench) measure(ctx context.Context, n uint64) (*timings, error) {
	var t timings

	start := time.Now()
	seqPrimes, err := b.engine.Sieve(ctx, primego.Sequential, n)
	if err != nil {
		return nil, err
	}
	t.sieveSeq = time.Since(start)

	start = time.Now()
	parPrimes, err := b.engine.Sieve(ctx, primego.Parallel, n)
	if err != nil {
		return nil, err
	}
	t.sievePar = time.Since(start)

	if err := primeset.Compare(seqPrimes, parPrimes); err != nil {
		return nil, fmt.Errorf("n=%d: sequential and parallel sieve disagree: %w", n, err)
	}
	t.primes = len(seqPrimes)

	if t.targets, err = primego.Targets(n, b.cfg.targets); err != nil {
		return nil, err
	}

	start = time.Now()
	seqFactors, err := b.engine.Factorize(ctx, primego.Sequential, t.targets, seqPrimes)
	if err != nil {
		return nil, err
	}
	t.factorSeq = time.Since(start)

	start = time.Now()
	parFactors, err := b.engine.Factorize(ctx, primego.Parallel, t.targets, parPrimes)
	if err != nil {
		return nil, err
	}
	t.factorPar = time.Since(start)

	if err := verifyFactors(t.targets, seqFactors, parFactors); err != nil {
		return nil, fmt.Errorf("n=%d: %w", n, err)
	}
	t.factors = parFactors

	return &t, nil
}

// single runs every variant once for n and prints both timing tables.
func (b *bench) single(ctx context.Context, n uint64) (*report.Document, error) {
	t, err := b.measure(ctx, n)
	if err != nil {
		return nil, err
	}

	sieveRow := report.Row{N: n, Workers: b.cfg.k, Sequential: t.sieveSeq, Parallel: t.sievePar}
	factorRow := report.Row{N: n, Workers: b.cfg.k, Sequential: t.factorSeq, Parallel: t.factorPar}

	if err := report.WriteTable(b.out, "Single run time of sieve:", []report.Row{sieveRow}); err != nil {
		return nil, err
	}
	if err := report.WriteTable(b.out, "Single run time of factorizations:", []report.Row{factorRow}); err != nil {
		return nil, err
	}

	lookup := func(target uint64) []uint64 {
		f, _ := t.factors.Factors(target)
		return f
	}

	if b.cfg.printFactors {
		if err := report.WriteFactors(b.out, t.targets, lookup); err != nil {
			return nil, err
		}
		fmt.Fprintln(b.out)
	}

	doc := &report.Document{
		N:       n,
		Workers: b.cfg.k,
		Primes:  t.primes,
		Sieve:   []report.Row{sieveRow},
		Factor:  []report.Row{factorRow},
		Factors: make(map[string][]uint64, len(t.targets)),
	}
	for _, target := range t.targets {
		f, _ := t.factors.SortedFactors(target)
		doc.Factors[strconv.FormatUint(target, 10)] = f
	}
	return doc, nil
}

// medians repeats every variant cfg.runs times for each size and prints
// the median tables. Rows are appended to doc.
func (b *bench) medians(ctx context.Context, doc *report.Document) error {
	var sieveRows, factorRows []report.Row

	for _, n := range b.cfg.sizes {
		fmt.Fprintf(b.out, "Running for n = %d\n", n)

		var sieveSeq, sievePar, factorSeq, factorPar []time.Duration
		for i := 0; i < b.cfg.runs; i++ {
			fmt.Fprintf(b.out, "%d ", i)

			t, err := b.measure(ctx, n)
			if err != nil {
				return err
			}
			sieveSeq = append(sieveSeq, t.sieveSeq)
			sievePar = append(sievePar, t.sievePar)
			factorSeq = append(factorSeq, t.factorSeq)
			factorPar = append(factorPar, t.factorPar)
		}
		fmt.Fprint(b.out, "\n\n")

		sieveRows = append(sieveRows, report.MedianRow(n, b.cfg.k, sieveSeq, sievePar))
		factorRows = append(factorRows, report.MedianRow(n, b.cfg.k, factorSeq, factorPar))
	}

	title := fmt.Sprintf("Median sieve times of %d runs", b.cfg.runs)
	if err := report.WriteTable(b.out, title, sieveRows); err != nil {
		return err
	}
	title = fmt.Sprintf("Median factorization times of %d runs", b.cfg.runs)
	if err := report.WriteTable(b.out, title, factorRows); err != nil {
		return err
	}

	doc.Sieve = append(doc.Sieve, sieveRows...)
	doc.Factor = append(doc.Factor, factorRows...)
	return nil
}

// verifyFactors checks both results multiply back to every target and
// agree as multisets.
func verifyFactors(targets []uint64, seq, par *primego.FactorMap) error {
	for _, t := range targets {
		for _, m := range []*primego.FactorMap{seq, par} {
			p, err := m.Product(t)
			if err != nil {
				return err
			}
			if p != t {
				return fmt.Errorf("factors of %d multiply to %d", t, p)
			}
		}

		a, _ := seq.SortedFactors(t)
		b, _ := par.SortedFactors(t)
		if len(a) != len(b) {
			return fmt.Errorf("factors of %d differ: %v vs %v", t, a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				return fmt.Errorf("factors of %d differ: %v vs %v", t, a, b)
			}
		}
	}
	return nil
}
