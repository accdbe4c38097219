// Package profiler logs frame rate, triangle throughput and memory use of
// the frame loop once per interval.
package profiler

import (
	"log"
	"runtime"
	"time"

	"psx-scene-renderer/internal/render"
)

// Profiler accumulates per-frame counts between reports.
type Profiler struct {
	logger   *log.Logger
	interval time.Duration
	now      func() time.Time

	frames   int
	emitted  int
	rejected int
	budget   int
	last     time.Time

	mem            runtime.MemStats
	lastGC         uint32
	lastTotalAlloc uint64
}

// New returns a profiler reporting to logger (the standard logger when nil)
// every interval.
func New(logger *log.Logger, interval time.Duration) *Profiler {
	if logger == nil {
		logger = log.Default()
	}
	p := &Profiler{logger: logger, interval: interval, now: time.Now}
	p.last = p.now()
	return p
}

// Tick records one frame. It returns true when a report was logged.
func (p *Profiler) Tick(s render.Stats) bool {
	p.frames++
	p.emitted += s.Emitted
	p.rejected += s.Rejected()
	p.budget += s.Budget

	t := p.now()
	elapsed := t.Sub(p.last)
	if elapsed < p.interval {
		return false
	}

	runtime.ReadMemStats(&p.mem)
	heapMB := float64(p.mem.Alloc) / 1024 / 1024
	allocRateMB := float64(p.mem.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	p.logger.Printf("[profiler] fps %.2f | tris/frame %d (rejected %d, over budget %d) | heap %.2f MB | alloc %.2f MB/s | gc %d",
		float64(p.frames)/elapsed.Seconds(),
		p.emitted/p.frames, p.rejected/p.frames, p.budget/p.frames,
		heapMB, allocRateMB, p.mem.NumGC-p.lastGC)

	p.frames, p.emitted, p.rejected, p.budget = 0, 0, 0, 0
	p.last = t
	p.lastGC = p.mem.NumGC
	p.lastTotalAlloc = p.mem.TotalAlloc
	return true
}
