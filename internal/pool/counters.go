package pool

import (
	"golang.org/x/sys/cpu"
)

// paddedCounter keeps each worker's counter on its own cache line.
type paddedCounter struct {
	_ cpu.CacheLinePad
	n uint64
	_ cpu.CacheLinePad
}

// Counters holds one counter per worker. Each worker may only touch its
// own slot; totals are read by the coordinator after Run returns.
type Counters struct {
	slots []paddedCounter
}

// NewCounters creates counters for the given number of workers.
func NewCounters(workers int) *Counters {
	return &Counters{slots: make([]paddedCounter, workers)}
}

// Add increments the worker's counter.
func (c *Counters) Add(worker int, delta uint64) {
	c.slots[worker].n += delta
}

// Get returns the worker's counter.
func (c *Counters) Get(worker int) uint64 {
	return c.slots[worker].n
}

// Total returns the sum over all workers.
func (c *Counters) Total() uint64 {
	var total uint64
	for i := range c.slots {
		total += c.slots[i].n
	}
	return total
}

// Len returns the number of workers.
func (c *Counters) Len() int {
	return len(c.slots)
}
