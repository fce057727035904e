package metrics

import (
	"sync/atomic"
	"time"
)

// Collector accumulates request counters for the /metrics snapshot.
// Client errors are tracked apart from server errors: a campus full of
// expired wizard drafts and rejected transitions produces plenty of
// 4xx traffic that says nothing about service health.
type Collector struct {
	requests        uint64
	clientErrors    uint64
	serverErrors    uint64
	rateLimited     uint64
	totalDurationMs uint64
	peakDurationMs  uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.requests, 1)
	switch {
	case status == 429:
		atomic.AddUint64(&c.rateLimited, 1)
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}

	ms := uint64(duration.Milliseconds())
	atomic.AddUint64(&c.totalDurationMs, ms)
	for {
		peak := atomic.LoadUint64(&c.peakDurationMs)
		if ms <= peak || atomic.CompareAndSwapUint64(&c.peakDurationMs, peak, ms) {
			break
		}
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.requests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"clientErrorsTotal": atomic.LoadUint64(&c.clientErrors),
		"serverErrorsTotal": atomic.LoadUint64(&c.serverErrors),
		"rateLimitedTotal":  atomic.LoadUint64(&c.rateLimited),
		"avgDurationMs":     avg,
		"peakDurationMs":    atomic.LoadUint64(&c.peakDurationMs),
	}
}
