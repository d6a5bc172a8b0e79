package prommetrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/segcoll/segarray"
	"github.com/hupe1980/segcoll/sortedset"
	"github.com/hupe1980/segcoll/window"
)

func TestCollector_Record(t *testing.T) {
	c := NewCollector(nil, "test")

	c.RecordSegmentAlloc(16)
	c.RecordSegmentAlloc(16)
	c.RecordCopyOnWrite("segment")
	c.RecordCopyOnWrite("index")
	c.RecordGrow("window", 32)
	c.RecordCoalesce(3, 1, 10, 2*time.Millisecond)
	c.RecordBlockedRemoval()

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.SegmentAllocs)
	assert.Equal(t, int64(32), stats.SegmentElements)
	assert.Equal(t, int64(1), stats.SegmentCopies)
	assert.Equal(t, int64(1), stats.IndexCopies)
	assert.Equal(t, int64(1), stats.Grows)
	assert.Equal(t, int64(1), stats.Coalesces)
	assert.Equal(t, int64(3), stats.CoalescedAdded)
	assert.Equal(t, int64(1), stats.CoalescedRemoved)
	assert.Equal(t, int64(1), stats.BlockedRemovals)
	assert.InDelta(t, float64(2*time.Millisecond), float64(stats.AvgCoalesceDuration), float64(time.Microsecond))
}

func TestCollector_Registry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "segcoll")

	a, err := segarray.New[int64](segarray.WithMetrics(c))
	require.NoError(t, err)
	for i := range 100 {
		a.Add(int64(i))
	}
	clone := a.Clone()
	require.NoError(t, clone.Set(0, 1))

	w, err := window.New[int64](2, window.WithMetrics(c))
	require.NoError(t, err)
	w.AddAll(1, 2, 3)
	_, err = w.PinnedIterator(0)
	require.NoError(t, err)
	_, err = w.RemoveFirst()
	require.Error(t, err)

	s, err := sortedset.New[int64](sortedset.WithMetrics(c), sortedset.WithCoalesceThreshold(2))
	require.NoError(t, err)
	s.Add(1)
	s.Add(2)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["segcoll_segment_allocs_total"])
	assert.True(t, names["segcoll_copy_on_write_total"])
	assert.True(t, names["segcoll_grows_total"])
	assert.True(t, names["segcoll_blocked_removals_total"])
	assert.True(t, names["segcoll_coalesce_duration_seconds"])

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.SegmentCopies)
	assert.Equal(t, int64(1), stats.BlockedRemovals)
	assert.Equal(t, int64(1), stats.Coalesces)
	assert.Equal(t, int64(2), stats.CoalescedAdded)
	assert.Positive(t, stats.Grows)

	// Registering the same names twice fails.
	assert.Panics(t, func() { NewCollector(reg, "segcoll") })
}
