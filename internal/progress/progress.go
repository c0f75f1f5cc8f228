// Package progress reports long-running read progress by golden
// exponential back-off, the way falcon_kit/io.py's Percenter does: each
// report roughly doubles the distance to the next one, so early
// progress is frequent and later progress is not spammy.
package progress

import (
	"log"
)

// Counter accumulates a running count against a known (or unknown)
// total and logs progress at exponentially-growing intervals.
type Counter struct {
	Name  string
	Total int64 // MaxInt64 if unknown
	Units string

	calls     int64
	count     int64
	nextCount int64
	step      int64
}

// NewCounter returns a Counter for the given name and total. A total of
// 0 or negative is treated as unknown.
func NewCounter(name string, total int64, units string) *Counter {
	if total <= 0 {
		total = int64(^uint64(0) >> 1)
	}
	c := &Counter{Name: name, Total: total, Units: units, step: 1}
	if c.Total == int64(^uint64(0)>>1) {
		log.Printf("counting %s from %q", units, name)
	} else {
		log.Printf("counting %d %s from %q", total, units, name)
	}
	return c
}

// Add records more units processed and logs a progress line when the
// next exponential threshold is crossed.
func (c *Counter) Add(more int64) {
	c.calls++
	c.count += more
	if c.nextCount > c.count {
		return
	}
	c.step *= 2
	if c.step < more {
		c.step = more
	}
	if remaining := c.Total - c.count; c.step > remaining {
		c.step = remaining
	}
	if tenth := c.Total / 10; c.step > tenth && tenth > 0 {
		c.step = tenth
	}
	c.nextCount = c.count + c.step
	if c.Total == int64(^uint64(0)>>1) {
		log.Printf("#%d count=%d", c.calls, c.count)
	} else {
		log.Printf("#%d count=%d %.2f%%", c.calls, c.count, 100*float64(c.count)/float64(c.Total))
	}
}

// Finish logs a final summary line.
func (c *Counter) Finish() {
	log.Printf("counted %d %s in %d calls from %q", c.count, c.Units, c.calls, c.Name)
}
