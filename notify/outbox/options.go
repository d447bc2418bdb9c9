package outbox

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/internal/retry"
	"github.com/AntonStoeckl/library-lending-go/lending"
)

// Option defines a functional option for configuring an Outbox.
type Option func(*Outbox) error

// WithTableName sets the outbox table name. The default is "notification_outbox".
func WithTableName(tableName string) Option {
	return func(o *Outbox) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		o.tableName = tableName

		return nil
	}
}

// WithTimeout sets the timeout for each database operation, including retries. The default is 5 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Outbox) error {
		if timeout <= 0 {
			return ErrNonPositiveTimeout
		}

		o.timeout = timeout

		return nil
	}
}

// WithClock sets the time source for created_at and delivered_at.
func WithClock(clock lending.Clock) Option {
	return func(o *Outbox) error {
		if clock == nil {
			return ErrNilClock
		}

		o.clock = clock

		return nil
	}
}

// WithRetryOptions tunes the backoff for transient database errors.
// Only transient errors are retried, whatever predicate is passed here.
func WithRetryOptions(options ...retry.Option) Option {
	return func(o *Outbox) error {
		o.retryOptions = append(o.retryOptions, options...)
		return nil
	}
}

// WithLogger sets the logger for the Outbox.
//
// Debug level: executed SQL with durations
// Info level: enqueued and delivered notifications
// Error level: failed database operations.
func WithLogger(logger lending.Logger) Option {
	return func(o *Outbox) error {
		o.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Outbox.
func WithContextualLogger(logger lending.ContextualLogger) Option {
	return func(o *Outbox) error {
		o.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Outbox.
func WithMetrics(collector lending.MetricsCollector) Option {
	return func(o *Outbox) error {
		o.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Outbox.
func WithTracing(collector lending.TracingCollector) Option {
	return func(o *Outbox) error {
		o.tracingCollector = collector
		return nil
	}
}
