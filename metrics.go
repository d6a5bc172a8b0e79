package segcoll

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see package prommetrics).
type MetricsCollector interface {
	// RecordSegmentAlloc is called whenever a segment buffer of the given
	// element count is allocated.
	RecordSegmentAlloc(size int)

	// RecordCopyOnWrite is called when a shared resource is copied before a
	// write. kind is "segment" or "index".
	RecordCopyOnWrite(kind string)

	// RecordGrow is called after a structure reallocated its storage.
	// structure is "segarray", "window" or "builder".
	RecordGrow(structure string, capacity int)

	// RecordCoalesce is called after a sorted set folded its deltas.
	RecordCoalesce(added, removed, size int, duration time.Duration)

	// RecordBlockedRemoval is called when a pinned iterator refused a removal.
	RecordBlockedRemoval()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSegmentAlloc(int)                      {}
func (NoopMetricsCollector) RecordCopyOnWrite(string)                    {}
func (NoopMetricsCollector) RecordGrow(string, int)                      {}
func (NoopMetricsCollector) RecordCoalesce(int, int, int, time.Duration) {}
func (NoopMetricsCollector) RecordBlockedRemoval()                       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SegmentAllocs    atomic.Int64
	SegmentElements  atomic.Int64
	SegmentCopies    atomic.Int64
	IndexCopies      atomic.Int64
	Grows            atomic.Int64
	Coalesces        atomic.Int64
	CoalesceNanos    atomic.Int64
	CoalescedAdded   atomic.Int64
	CoalescedRemoved atomic.Int64
	BlockedRemovals  atomic.Int64
}

func (b *BasicMetricsCollector) RecordSegmentAlloc(size int) {
	b.SegmentAllocs.Add(1)
	b.SegmentElements.Add(int64(size))
}

func (b *BasicMetricsCollector) RecordCopyOnWrite(kind string) {
	switch kind {
	case "segment":
		b.SegmentCopies.Add(1)
	case "index":
		b.IndexCopies.Add(1)
	}
}

func (b *BasicMetricsCollector) RecordGrow(string, int) {
	b.Grows.Add(1)
}

func (b *BasicMetricsCollector) RecordCoalesce(added, removed, _ int, duration time.Duration) {
	b.Coalesces.Add(1)
	b.CoalesceNanos.Add(duration.Nanoseconds())
	b.CoalescedAdded.Add(int64(added))
	b.CoalescedRemoved.Add(int64(removed))
}

func (b *BasicMetricsCollector) RecordBlockedRemoval() {
	b.BlockedRemovals.Add(1)
}

// MetricsStats is a point-in-time copy of BasicMetricsCollector.
type MetricsStats struct {
	SegmentAllocs       int64
	SegmentElements     int64
	SegmentCopies       int64
	IndexCopies         int64
	Grows               int64
	Coalesces           int64
	AvgCoalesceDuration time.Duration
	CoalescedAdded      int64
	CoalescedRemoved    int64
	BlockedRemovals     int64
}

// GetStats returns a snapshot of the collected counters.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	stats := MetricsStats{
		SegmentAllocs:    b.SegmentAllocs.Load(),
		SegmentElements:  b.SegmentElements.Load(),
		SegmentCopies:    b.SegmentCopies.Load(),
		IndexCopies:      b.IndexCopies.Load(),
		Grows:            b.Grows.Load(),
		Coalesces:        b.Coalesces.Load(),
		CoalescedAdded:   b.CoalescedAdded.Load(),
		CoalescedRemoved: b.CoalescedRemoved.Load(),
		BlockedRemovals:  b.BlockedRemovals.Load(),
	}
	if stats.Coalesces > 0 {
		stats.AvgCoalesceDuration = time.Duration(b.CoalesceNanos.Load() / stats.Coalesces)
	}
	return stats
}
