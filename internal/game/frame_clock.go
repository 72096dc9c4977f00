package game

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// frameClock records the last N frame durations into a ring buffer so the
// overlay can show a smoothed frame rate.
type frameClock struct {
	buffer    []float64 // seconds
	nextIndex int
	filled    int
	last      time.Time
	mu        sync.RWMutex
}

func newFrameClock(ringSize int) *frameClock {
	return &frameClock{buffer: make([]float64, ringSize)}
}

// Mark records the time since the previous call.
func (c *frameClock) Mark(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.last.IsZero() {
		c.push(now.Sub(c.last).Seconds())
	}
	c.last = now
}

func (c *frameClock) push(d float64) {
	c.buffer[c.nextIndex] = d
	c.nextIndex++
	if c.nextIndex >= len(c.buffer) {
		c.nextIndex = 0
	}
	if c.filled < len(c.buffer) {
		c.filled++
	}
}

// snapshot returns up to the last n durations, oldest first.
func (c *frameClock) snapshot(n int) []float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n > c.filled {
		n = c.filled
	}
	out := make([]float64, n)
	idx := c.nextIndex - n
	if idx < 0 {
		idx += len(c.buffer)
	}
	for i := range out {
		out[i] = c.buffer[idx]
		idx++
		if idx >= len(c.buffer) {
			idx = 0
		}
	}
	return out
}

type frameStats struct {
	FPS float64
	P95 time.Duration
}

func (c *frameClock) Stats() frameStats {
	samples := c.snapshot(len(c.buffer))
	if len(samples) == 0 {
		return frameStats{}
	}
	mean := stat.Mean(samples, nil)
	sort.Float64s(samples)
	p95 := stat.Quantile(0.95, stat.Empirical, samples, nil)

	var fps float64
	if mean > 0 {
		fps = 1 / mean
	}
	return frameStats{
		FPS: fps,
		P95: time.Duration(p95 * float64(time.Second)),
	}
}
