// Package retry provides a generic retry-with-backoff helper used by the
// download pipeline and other fallible operations.
package retry

import (
	"context"
	"time"
)

// Policy describes how an operation is retried: how many attempts are
// made, the delay before the second attempt, the multiplier applied to
// the delay after each failure, and an optional delay cap.
type Policy struct {
	Attempts   int
	Delay      time.Duration
	Multiplier float64
	MaxDelay   time.Duration
}

// DefaultPolicy is what the export pipeline uses: three attempts with
// exponential backoff starting at one second.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:   3,
		Delay:      time.Second,
		Multiplier: 2,
	}
}

// Backoff returns the delay to sleep after the given 1-based attempt
// fails.
func (p Policy) Backoff(attempt int) time.Duration {
	d := p.Delay
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * p.Multiplier)
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Do invokes op up to p.Attempts times, passing the 1-based attempt
// number. It sleeps p.Backoff(attempt) between attempts, never after the
// final failure, and returns the last error when the attempts are
// exhausted. The sleep is interrupted by ctx cancellation.
func Do(ctx context.Context, p Policy, op func(attempt int) error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = op(attempt); lastErr == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		select {
		case <-time.After(p.Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
