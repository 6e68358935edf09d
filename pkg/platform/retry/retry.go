// Package retry runs an operation with exponential backoff.
//
// Errors that expose an HTTP-style status through StatusCoder are classified:
// a 4xx status other than 429 is terminal and returned after the first
// attempt. Everything else (5xx, 429, errors without a status) is retried.
package retry

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultAttempts  = 3
	DefaultBaseDelay = 500 * time.Millisecond
	DefaultMaxDelay  = 8 * time.Second
)

// StatusCoder is implemented by errors that carry a transport status code.
type StatusCoder interface {
	StatusCode() int
}

// Policy controls attempts and delays. The zero value is not usable; build one
// with the functional options passed to Do.
type Policy struct {
	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	onRetry   func(attempt int, delay time.Duration, err error)
}

type Option func(*Policy)

// WithAttempts sets the attempt budget. Values below 1 are ignored.
func WithAttempts(n int) Option {
	return func(p *Policy) {
		if n >= 1 {
			p.attempts = n
		}
	}
}

// WithBaseDelay sets the wait before the second attempt.
func WithBaseDelay(d time.Duration) Option {
	return func(p *Policy) {
		if d >= 0 {
			p.baseDelay = d
		}
	}
}

// WithMaxDelay caps a single wait. Zero disables the cap.
func WithMaxDelay(d time.Duration) Option {
	return func(p *Policy) {
		if d >= 0 {
			p.maxDelay = d
		}
	}
}

// WithSleep replaces the wait function, mainly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(p *Policy) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// WithOnRetry is called before each wait with the zero-based number of the
// attempt that just failed.
func WithOnRetry(fn func(attempt int, delay time.Duration, err error)) Option {
	return func(p *Policy) {
		p.onRetry = fn
	}
}

func newPolicy(opts []Option) *Policy {
	p := &Policy{
		attempts:  DefaultAttempts,
		baseDelay: DefaultBaseDelay,
		maxDelay:  DefaultMaxDelay,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Delay returns the wait after the given zero-based attempt: base * 2^attempt,
// bounded by max when max is positive.
func Delay(base, max time.Duration, attempt int) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if max > 0 && d >= max {
			return max
		}
	}
	if max > 0 && d > max {
		return max
	}
	return d
}

// Do executes op until it succeeds, fails terminally, or the budget runs out.
// The last error is returned when every attempt fails.
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	p := newPolicy(opts)

	var zero T
	var lastErr error
	for attempt := 0; attempt < p.attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if IsTerminal(err) {
			return zero, err
		}
		if attempt == p.attempts-1 {
			break
		}
		delay := Delay(p.baseDelay, p.maxDelay, attempt)
		if p.onRetry != nil {
			p.onRetry(attempt, delay, err)
		}
		if err := p.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
	return zero, lastErr
}

// IsTerminal reports whether err carries a client-error status that retrying
// cannot fix. 429 is not terminal.
func IsTerminal(err error) bool {
	status, ok := Status(err)
	if !ok {
		return false
	}
	return status >= 400 && status < 500 && status != 429
}

// Status extracts the status code from err's chain.
func Status(err error) (int, bool) {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}
	return 0, false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
