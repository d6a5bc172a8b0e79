package segarray

import (
	"github.com/hupe1980/segcoll"
)

const (
	// DefaultInitialSegmentBits gives new arrays 16-element segments.
	DefaultInitialSegmentBits = 4
	// DefaultMaxSegmentBits caps the segment size at 1024 elements.
	DefaultMaxSegmentBits = 10
	// MaxSegmentBits is the largest accepted segment size exponent.
	MaxSegmentBits = 24
)

type options struct {
	initialBits uint
	maxBits     uint
	logger      *segcoll.Logger
	metrics     segcoll.MetricsCollector
	checks      bool
}

// Option configures an Array.
type Option func(*options)

// WithInitialSegmentBits sets log2 of the segment size new arrays start with.
func WithInitialSegmentBits(bits uint) Option {
	return func(o *options) {
		o.initialBits = bits
	}
}

// WithMaxSegmentBits sets log2 of the largest segment size. Once segments
// reach this size the array grows by adding segments instead.
func WithMaxSegmentBits(bits uint) Option {
	return func(o *options) {
		o.maxBits = bits
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

// WithInvariantChecks enables the debug verification layer: every mutation
// re-checks the layout invariants and panics on a violation.
func WithInvariantChecks(enabled bool) Option {
	return func(o *options) {
		o.checks = enabled
	}
}

func buildOptions(optFns []Option) (options, error) {
	o := options{
		initialBits: DefaultInitialSegmentBits,
		maxBits:     DefaultMaxSegmentBits,
		logger:      segcoll.NoopLogger(),
		metrics:     segcoll.NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&o)
	}

	if o.initialBits == 0 || o.initialBits > MaxSegmentBits {
		return o, segcoll.NewIllegalArgumentError("initialSegmentBits", o.initialBits, "must be in [1, 24]")
	}
	if o.maxBits < o.initialBits || o.maxBits > MaxSegmentBits {
		return o, segcoll.NewIllegalArgumentError("maxSegmentBits", o.maxBits, "must be in [initialSegmentBits, 24]")
	}
	return o, nil
}
