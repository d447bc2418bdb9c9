// Package retry runs an operation with exponential backoff and jitter.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

const (
	defaultMaxAttempts  = 4
	defaultBaseDelay    = 25 * time.Millisecond
	defaultJitterFactor = 0.3
)

var (
	// ErrInvalidMaxAttempts is returned when max attempts are not positive.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")

	// ErrNegativeBaseDelay is returned when the base delay is negative.
	ErrNegativeBaseDelay = errors.New("base delay must not be negative")

	// ErrInvalidJitterFactor is returned when the jitter factor is not between 0.0 and 1.0.
	ErrInvalidJitterFactor = errors.New("jitter factor must be between 0.0 and 1.0")

	// ErrNilRetryable is returned when a nil predicate is provided to WithRetryable.
	ErrNilRetryable = errors.New("retryable predicate must not be nil")
)

// Func is an operation which can be retried.
type Func func(ctx context.Context) error

// Meta describes how an operation was executed.
type Meta struct {
	Attempts      int
	TotalDelay    time.Duration
	LastErrorType string
}

// Option configures retry behavior.
type Option func(*config) error

type config struct {
	maxAttempts  int
	baseDelay    time.Duration
	jitterFactor float64
	retryable    func(error) bool
}

// Validate applies the options to a default configuration and returns the first option error.
func Validate(options ...Option) error {
	_, err := newConfig(options)
	return err
}

// Do executes fn and retries it while it returns a retryable error, up to the max attempts.
//
// Retry schedule (default): 0 ms, 25 ms, 50 ms, 100 ms plus up to 30% jitter.
// Context cancellation and deadline errors are never retried. Without WithRetryable every other
// error is retried.
func Do(ctx context.Context, fn Func, options ...Option) (Meta, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return Meta{}, err
	}

	meta := Meta{LastErrorType: ErrorType(nil)}

	var lastErr error

	for attempt := 0; attempt < cfg.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := cfg.backoff(attempt)

			select {
			case <-time.After(delay):
				meta.TotalDelay += delay
			case <-ctx.Done():
				meta.LastErrorType = ErrorType(ctx.Err())
				return meta, ctx.Err()
			}
		}

		meta.Attempts++

		lastErr = fn(ctx)
		meta.LastErrorType = ErrorType(lastErr)

		if lastErr == nil {
			return meta, nil
		}

		if !cfg.isRetryable(lastErr) {
			return meta, lastErr
		}
	}

	return meta, lastErr
}

func newConfig(options []Option) (*config, error) {
	cfg := &config{
		maxAttempts:  defaultMaxAttempts,
		baseDelay:    defaultBaseDelay,
		jitterFactor: defaultJitterFactor,
		retryable:    func(error) bool { return true },
	}

	for _, option := range options {
		if err := option(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// backoff returns baseDelay * 2^(attempt-1) plus jitter.
func (c *config) backoff(attempt int) time.Duration {
	delay := c.baseDelay * time.Duration(1<<(attempt-1))
	jitter := rand.Float64() * float64(delay) * c.jitterFactor //nolint:gosec // math/rand is sufficient for jitter

	return delay + time.Duration(jitter)
}

func (c *config) isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return c.retryable(err)
}

// ErrorType maps an error to a short label for logs and metrics.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, context.Canceled):
		return "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "context_deadline_exceeded"
	default:
		return "other"
	}
}

// WithMaxAttempts sets the maximum number of attempts, including the first one.
func WithMaxAttempts(attempts int) Option {
	return func(c *config) error {
		if attempts <= 0 {
			return ErrInvalidMaxAttempts
		}

		c.maxAttempts = attempts

		return nil
	}
}

// WithBaseDelay sets the base delay for exponential backoff.
// Actual delays: baseDelay, baseDelay*2, baseDelay*4, etc.
func WithBaseDelay(delay time.Duration) Option {
	return func(c *config) error {
		if delay < 0 {
			return ErrNegativeBaseDelay
		}

		c.baseDelay = delay

		return nil
	}
}

// WithJitterFactor sets the jitter as a fraction of the backoff delay, between 0.0 and 1.0.
func WithJitterFactor(factor float64) Option {
	return func(c *config) error {
		if factor < 0.0 || factor > 1.0 {
			return ErrInvalidJitterFactor
		}

		c.jitterFactor = factor

		return nil
	}
}

// WithRetryable sets the predicate which decides whether an error is transient.
func WithRetryable(retryable func(error) bool) Option {
	return func(c *config) error {
		if retryable == nil {
			return ErrNilRetryable
		}

		c.retryable = retryable

		return nil
	}
}
