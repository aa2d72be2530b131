// Package progress defines the progress reporting contract shared by the
// grid builder and the boundary tracer. Sinks must tolerate Tick being
// called concurrently from multiple scan directions.
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Sink receives progress updates from a long-running operation.
type Sink interface {
	// SetMin sets the lower bound of the progress range.
	SetMin(v int)

	// SetMax sets the upper bound of the progress range.
	SetMax(v int)

	// Reset returns the sink to the start of its range.
	Reset()

	// Tick records one unit of completed work. Safe for concurrent use.
	Tick()
}

// Nop is a Sink that discards all updates.
type Nop struct{}

func (Nop) SetMin(int) {}
func (Nop) SetMax(int) {}
func (Nop) Reset()     {}
func (Nop) Tick()      {}

// Counter is a Sink that counts ticks. It is used by tests and anywhere a
// caller only needs to observe how much work happened.
type Counter struct {
	min   atomic.Int64
	max   atomic.Int64
	count atomic.Int64
}

func (c *Counter) SetMin(v int) { c.min.Store(int64(v)) }
func (c *Counter) SetMax(v int) { c.max.Store(int64(v)) }
func (c *Counter) Reset()       { c.count.Store(0) }
func (c *Counter) Tick()        { c.count.Add(1) }

// Count returns the number of ticks since the last Reset.
func (c *Counter) Count() int { return int(c.count.Load()) }

// Max returns the configured upper bound.
func (c *Counter) Max() int { return int(c.max.Load()) }

// Console is a Sink that renders a single-line percentage to a writer,
// rewriting the line in place on each tick.
type Console struct {
	Label string
	Out   io.Writer

	min   atomic.Int64
	max   atomic.Int64
	count atomic.Int64
}

// NewConsole creates a console progress line with the given label.
func NewConsole(label string, out io.Writer) *Console {
	return &Console{Label: label, Out: out}
}

func (c *Console) SetMin(v int) { c.min.Store(int64(v)) }
func (c *Console) SetMax(v int) { c.max.Store(int64(v)) }

func (c *Console) Reset() {
	c.count.Store(0)
}

func (c *Console) Tick() {
	n := c.count.Add(1)
	span := c.max.Load() - c.min.Load()
	if span <= 0 || c.Out == nil {
		return
	}
	pct := float64(n) / float64(span) * 100
	if pct > 100 {
		pct = 100
	}
	fmt.Fprintf(c.Out, "\r%s: %.1f%% complete", c.Label, pct)
}
