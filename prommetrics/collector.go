// Package prommetrics exports collection metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	c := prommetrics.NewCollector(reg, "myapp")
//	a, _ := segarray.New[int64](segarray.WithMetrics(c))
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/hupe1980/segcoll"
)

var _ segcoll.MetricsCollector = (*Collector)(nil)

// Collector implements segcoll.MetricsCollector with Prometheus counters,
// gauges and histograms.
type Collector struct {
	segmentAllocs    prometheus.Counter
	segmentElements  prometheus.Counter
	copyOnWrite      *prometheus.CounterVec
	grows            *prometheus.CounterVec
	capacity         *prometheus.GaugeVec
	coalesceDuration prometheus.Histogram
	coalesced        *prometheus.CounterVec
	setSize          prometheus.Gauge
	blockedRemovals  prometheus.Counter
}

// NewCollector creates the metrics and registers them with reg.
// A nil reg leaves them unregistered. namespace prefixes every metric name.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	f := promauto.With(reg)
	return &Collector{
		segmentAllocs: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segment_allocs_total",
			Help:      "Number of segment buffers allocated",
		}),
		segmentElements: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segment_elements_total",
			Help:      "Number of element slots allocated in segment buffers",
		}),
		copyOnWrite: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "copy_on_write_total",
			Help:      "Number of shared segments or tables copied before a write",
		}, []string{"kind"}),
		grows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "grows_total",
			Help:      "Number of storage reallocations",
		}, []string{"structure"}),
		capacity: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "capacity",
			Help:      "Capacity after the most recent reallocation",
		}, []string{"structure"}),
		coalesceDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "coalesce_duration_seconds",
			Help:      "Time spent folding pending edits into a sorted set",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		coalesced: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coalesced_elements_total",
			Help:      "Number of pending edits folded by coalesce",
		}, []string{"delta"}),
		setSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "set_size",
			Help:      "Size of the most recently coalesced sorted set",
		}),
		blockedRemovals: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocked_removals_total",
			Help:      "Number of window removals refused by a pinned iterator",
		}),
	}
}

func (c *Collector) RecordSegmentAlloc(size int) {
	c.segmentAllocs.Inc()
	c.segmentElements.Add(float64(size))
}

func (c *Collector) RecordCopyOnWrite(kind string) {
	c.copyOnWrite.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordGrow(structure string, capacity int) {
	c.grows.WithLabelValues(structure).Inc()
	c.capacity.WithLabelValues(structure).Set(float64(capacity))
}

func (c *Collector) RecordCoalesce(added, removed, size int, duration time.Duration) {
	c.coalesceDuration.Observe(duration.Seconds())
	c.coalesced.WithLabelValues("added").Add(float64(added))
	c.coalesced.WithLabelValues("removed").Add(float64(removed))
	c.setSize.Set(float64(size))
}

func (c *Collector) RecordBlockedRemoval() {
	c.blockedRemovals.Inc()
}

// Stats reads the current values back in the shape of
// segcoll.BasicMetricsCollector's stats.
func (c *Collector) Stats() segcoll.MetricsStats {
	var grows int64
	for _, s := range []string{"segarray", "window", "builder"} {
		grows += counterValue(c.grows.WithLabelValues(s))
	}

	m := &dto.Metric{}
	_ = c.coalesceDuration.Write(m)
	h := m.GetHistogram()

	stats := segcoll.MetricsStats{
		SegmentAllocs:    counterValue(c.segmentAllocs),
		SegmentElements:  counterValue(c.segmentElements),
		SegmentCopies:    counterValue(c.copyOnWrite.WithLabelValues("segment")),
		IndexCopies:      counterValue(c.copyOnWrite.WithLabelValues("index")),
		Grows:            grows,
		Coalesces:        int64(h.GetSampleCount()),
		CoalescedAdded:   counterValue(c.coalesced.WithLabelValues("added")),
		CoalescedRemoved: counterValue(c.coalesced.WithLabelValues("removed")),
		BlockedRemovals:  counterValue(c.blockedRemovals),
	}
	if stats.Coalesces > 0 {
		stats.AvgCoalesceDuration = time.Duration(h.GetSampleSum() / float64(stats.Coalesces) * float64(time.Second))
	}
	return stats
}

func counterValue(c prometheus.Counter) int64 {
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		return 0
	}
	return int64(m.GetCounter().GetValue())
}
