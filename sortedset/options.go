package sortedset

import "github.com/hupe1980/segcoll"

const (
	// DefaultCoalesceThreshold is the number of pending edits that triggers
	// a coalesce.
	DefaultCoalesceThreshold = 512
	// DefaultBufferSize is the MergeBuilder batch size.
	DefaultBufferSize = 1024
)

type options struct {
	threshold  int
	bufferSize int
	logger     *segcoll.Logger
	metrics    segcoll.MetricsCollector
	checks     bool
}

// Option configures a Set or a MergeBuilder.
type Option func(*options)

// WithCoalesceThreshold sets how many pending adds and removes a Set buffers
// before folding them into its base.
func WithCoalesceThreshold(n int) Option {
	return func(o *options) {
		o.threshold = n
	}
}

// WithBufferSize sets the number of unsorted values a MergeBuilder collects
// before sorting and merging them.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *segcoll.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = segcoll.NoopLogger()
		}
		o.logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m segcoll.MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = segcoll.NoopMetricsCollector{}
		}
		o.metrics = m
	}
}

// WithInvariantChecks re-verifies the ordering and delta invariants after
// every mutation and panics on a violation.
func WithInvariantChecks(enabled bool) Option {
	return func(o *options) {
		o.checks = enabled
	}
}

func buildOptions(optFns []Option) (options, error) {
	o := options{
		threshold:  DefaultCoalesceThreshold,
		bufferSize: DefaultBufferSize,
		logger:     segcoll.NoopLogger(),
		metrics:    segcoll.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.threshold < 1 {
		return o, segcoll.NewIllegalArgumentError("coalesceThreshold", o.threshold, "must be positive")
	}
	if o.bufferSize < 1 {
		return o, segcoll.NewIllegalArgumentError("bufferSize", o.bufferSize, "must be positive")
	}
	return o, nil
}
