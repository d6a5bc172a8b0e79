package window

import "github.com/hupe1980/segcoll"

// DefaultCapacity is used when New is called with capacity 0.
const DefaultCapacity = 16

type options struct {
	logger  *segcoll.Logger
	metrics segcoll.MetricsCollector
	checks  bool
}

// Option configures a Window.
type Option func(*options)

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

// WithInvariantChecks re-verifies the window after every mutation and
// panics on a violation.
func WithInvariantChecks(enabled bool) Option {
	return func(o *options) {
		o.checks = enabled
	}
}
