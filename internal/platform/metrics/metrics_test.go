package metrics

import (
	"testing"
	"time"
)

func TestCollectorSeparatesErrorClasses(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(404, 5*time.Millisecond)
	c.Record(429, time.Millisecond)
	c.Record(500, 40*time.Millisecond)

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(4) {
		t.Fatalf("requestsTotal = %v, want 4", snap["requestsTotal"])
	}
	if snap["clientErrorsTotal"] != uint64(1) {
		t.Fatalf("clientErrorsTotal = %v, want 1", snap["clientErrorsTotal"])
	}
	if snap["serverErrorsTotal"] != uint64(1) {
		t.Fatalf("serverErrorsTotal = %v, want 1", snap["serverErrorsTotal"])
	}
	if snap["rateLimitedTotal"] != uint64(1) {
		t.Fatalf("rateLimitedTotal = %v, want 1", snap["rateLimitedTotal"])
	}
	if snap["peakDurationMs"] != uint64(40) {
		t.Fatalf("peakDurationMs = %v, want 40", snap["peakDurationMs"])
	}
	if snap["avgDurationMs"] != float64(14) {
		t.Fatalf("avgDurationMs = %v, want 14", snap["avgDurationMs"])
	}
}
