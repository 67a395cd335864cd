// Package resilience provides bounded retry with exponential backoff
// for operations that fail transiently, such as git commands talking to
// the template remote.
package resilience

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Policy bounds how often and how long an operation is retried.
type Policy struct {
	// Attempts is the total number of tries, including the first.
	// Values below one mean a single try.
	Attempts int

	// BaseDelay is the wait before the second try. Each further wait
	// doubles the previous one.
	BaseDelay time.Duration

	// MaxDelay caps the wait between tries.
	MaxDelay time.Duration

	// Jitter spreads each wait between 50% and 150% of its computed
	// value so concurrent callers do not synchronize their retries.
	Jitter bool

	// Retryable decides whether a failure is worth another try. Nil
	// retries every failure. Context cancellation is never retried.
	Retryable func(error) bool
}

// Retry runs fn until it succeeds, the policy is exhausted, or ctx
// ends. It returns the error of the last try.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)

	var lastErr error
	for attempt := range attempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			return lastErr
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay(attempt)):
		}
	}
	return lastErr
}

// delay computes the wait after the given zero-based attempt.
func (p Policy) delay(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	limit := p.MaxDelay
	if limit <= 0 {
		limit = 30 * time.Second
	}

	d := base
	for range attempt {
		d *= 2
		if d >= limit {
			d = limit
			break
		}
	}
	if p.Jitter {
		d = time.Duration(float64(d) * (0.5 + rand.Float64()))
	}
	return min(d, limit)
}
