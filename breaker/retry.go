package breaker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// RetryPolicy holds the pure retry decision and delay parameters. It carries
// no mutable state; per-call attempt counters live on the call stack.
type RetryPolicy struct {
	// MaxRetries is the number of extra attempts beyond the first.
	MaxRetries int

	// BaseDelay is the delay after the first failed attempt.
	BaseDelay time.Duration

	// BackoffFactor is the exponential multiplier applied per attempt.
	BackoffFactor float64

	// MaxDelay caps the computed delay. Zero means no cap.
	MaxDelay time.Duration

	// RetryOn decides whether an error at a given attempt should be
	// retried. Nil means retry everything not marked with Permanent.
	RetryOn func(err error, attempt int) bool
}

// Delay returns the backoff delay after the attempt-th failed try.
// Attempts number from 1, so the first wait equals BaseDelay.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	mult := math.Pow(p.BackoffFactor, float64(attempt-1))
	delay := time.Duration(float64(p.BaseDelay) * mult)

	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

func (p RetryPolicy) shouldRetry(err error, attempt int) bool {
	if p.RetryOn != nil {
		return p.RetryOn(err, attempt)
	}
	return !IsPermanent(err)
}

// runAttempts executes op up to MaxRetries+1 times, waiting between failed
// attempts. The wait happens with no breaker lock held; only the surrounding
// admit/record calls touch circuit state.
func (b *Breaker) runAttempts(ctx context.Context, op Operation) error {
	p := b.retry
	maxAttempts := p.MaxRetries + 1

	var lastErr error
	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			b.notifyRetry(attempt, OutcomeSucceeded)
			return nil
		}
		lastErr = err

		if attempt >= maxAttempts || !p.shouldRetry(err, attempt) {
			b.notifyRetry(attempt, OutcomeExhausted)
			return exhausted(attempt, lastErr)
		}
		b.notifyRetry(attempt, OutcomeRetried)

		timer := b.clock.NewTimer(p.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return exhausted(attempt, errors.Join(lastErr, ctx.Err()))
		case <-timer.C():
		}
	}
}

// exhausted wraps the final underlying error so that both
// errors.Is(err, ErrRetriesExhausted) and errors.Is(err, cause) hold.
func exhausted(attempts int, cause error) error {
	return fmt.Errorf("%w after %d attempt(s): %w", ErrRetriesExhausted, attempts, cause)
}
