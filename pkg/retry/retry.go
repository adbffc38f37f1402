package retry

import (
	"context"
	"errors"
	"time"
)

// Retry runs a function again on transient failures with exponential backoff.
type Retry struct {
	maxRetries        int
	retryDelay        time.Duration
	backoffMultiplier float64
}

// New creates a retry policy that makes at most maxRetries extra attempts.
func New(maxRetries int, retryDelay time.Duration) *Retry {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Retry{
		maxRetries:        maxRetries,
		retryDelay:        retryDelay,
		backoffMultiplier: 2.0,
	}
}

// Execute runs fn until it succeeds, returns a non-retryable error, or the
// attempts run out. The last error is returned.
func (r *Retry) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == r.maxRetries || !Retryable(err) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.delay(attempt)):
		}
	}

	return lastErr
}

func (r *Retry) delay(attempt int) time.Duration {
	d := float64(r.retryDelay)
	for i := 0; i < attempt; i++ {
		d *= r.backoffMultiplier
	}
	return time.Duration(d)
}

// Retryable reports whether err is worth another attempt. Errors that know
// better implement Temporary() bool.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var t interface{ Temporary() bool }
	if errors.As(err, &t) {
		return t.Temporary()
	}
	return true
}
