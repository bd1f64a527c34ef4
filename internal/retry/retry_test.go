package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoSucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Config{MaxAttempts: 3, Delay: time.Millisecond}, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Fatalf("fn called %d times, want 3", calls)
	}
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), Config{MaxAttempts: 2, Delay: time.Millisecond}, func() error {
		calls++
		return errors.New("always")
	})
	if err == nil {
		t.Fatal("expected an error after exhausting attempts")
	}
	if calls != 2 {
		t.Fatalf("fn called %d times, want 2", calls)
	}
}

func TestDoStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, Config{MaxAttempts: 5, Delay: time.Second}, func() error {
		return errors.New("fail")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestDoBackoffGrowsLinearly(t *testing.T) {
	delay := 5 * time.Millisecond
	start := time.Now()
	Do(context.Background(), Config{MaxAttempts: 3, Delay: delay, Backoff: true}, func() error {
		return errors.New("fail")
	})
	// Waits 1*delay then 2*delay between the three attempts.
	if elapsed := time.Since(start); elapsed < 3*delay {
		t.Fatalf("elapsed %v, want at least %v with linear backoff", elapsed, 3*delay)
	}
}
