// Package resilience provides retry with exponential backoff for the
// network fetches aichaku performs: release checks and remote methodology
// discovery. Both are best-effort lookups against flaky endpoints, so a
// couple of quick retries smooth over transient failures without making
// the CLI hang.
package resilience

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// Policy defines retry behavior for an operation.
type Policy struct {
	// MaxRetries is the number of retry attempts after the initial call.
	MaxRetries int

	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	MaxDelay time.Duration

	// Jitter randomizes delays to avoid synchronized retries.
	Jitter bool
}

// NetworkPolicy is the policy used for aichaku's HTTP lookups. Two fast
// retries keep total worst-case latency well under the discovery timeout.
func NetworkPolicy() Policy {
	return Policy{
		MaxRetries: 2,
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   time.Second,
		Jitter:     true,
	}
}

// Retry runs fn until it succeeds, the policy is exhausted, or the context
// is cancelled. The last attempt's error is returned on exhaustion.
// Context errors are never retried.
func Retry(ctx context.Context, policy Policy, fn func() error) error {
	var lastErr error

	maxAttempts := policy.MaxRetries + 1
	for attempt := range maxAttempts {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(Backoff(attempt, policy)):
			}
		}
	}

	return lastErr
}

// Backoff computes the delay for a retry attempt: BaseDelay doubled per
// attempt, capped at MaxDelay, optionally jittered by a factor in [0.5, 1.5).
func Backoff(attempt int, policy Policy) time.Duration {
	base := policy.BaseDelay
	if base <= 0 {
		base = 100 * time.Millisecond
	}
	maxDelay := policy.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}

	delay := base
	for range attempt {
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
			break
		}
	}

	if policy.Jitter {
		delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))
	}
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}
