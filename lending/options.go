package lending

// Option defines a functional option for configuring a Ledger.
type Option func(*Ledger) error

// WithClock sets the time source for loan and return timestamps.
func WithClock(clock Clock) Option {
	return func(l *Ledger) error {
		if clock == nil {
			return ErrNilClock
		}

		l.clock = clock

		return nil
	}
}

// WithLogger sets the logger for the Ledger.
//
// Info level: loans created and closed, fines, rejected requests
// Debug level: operation durations.
func WithLogger(logger Logger) Option {
	return func(l *Ledger) error {
		l.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Ledger.
// It receives the same messages as the Logger, with the span context of the operation.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(l *Ledger) error {
		l.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Ledger.
func WithMetrics(collector MetricsCollector) Option {
	return func(l *Ledger) error {
		l.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Ledger.
func WithTracing(collector TracingCollector) Option {
	return func(l *Ledger) error {
		l.tracingCollector = collector
		return nil
	}
}
