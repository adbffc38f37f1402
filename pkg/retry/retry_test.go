package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

type permanentError struct{}

func (permanentError) Error() string   { return "HTTP 404" }
func (permanentError) Temporary() bool { return false }

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	r := New(3, time.Millisecond)
	calls := 0

	err := r.Execute(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got: %d", calls)
	}
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	r := New(5, time.Millisecond)
	calls := 0

	err := r.Execute(context.Background(), func() error {
		calls++
		return permanentError{}
	})

	if err == nil {
		t.Fatal("Expected error")
	}
	if calls != 1 {
		t.Errorf("Expected a single call for a permanent error, got: %d", calls)
	}
}

func TestRetry_ReturnsLastErrorWhenExhausted(t *testing.T) {
	r := New(2, time.Millisecond)
	calls := 0

	err := r.Execute(context.Background(), func() error {
		calls++
		return errors.New("timeout")
	})

	if err == nil || err.Error() != "timeout" {
		t.Fatalf("Expected last error 'timeout', got: %v", err)
	}
	if calls != 3 {
		t.Errorf("Expected 3 calls, got: %d", calls)
	}
}

func TestRetry_HonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := New(3, time.Millisecond).Execute(ctx, func() error {
		called = true
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got: %v", err)
	}
	if called {
		t.Error("Expected fn not to run on a cancelled context")
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) {
		t.Error("nil must not be retryable")
	}
	if Retryable(context.DeadlineExceeded) {
		t.Error("deadline exceeded must not be retryable")
	}
	if Retryable(permanentError{}) {
		t.Error("permanent error must not be retryable")
	}
	if !Retryable(errors.New("dns lookup failed")) {
		t.Error("plain errors should be retryable")
	}
}
