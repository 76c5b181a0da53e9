package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestTokenBucket_BurstThenPacing(t *testing.T) {
	tb := NewTokenBucket(50, 2)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := tb.Wait(ctx); err != nil {
			t.Fatalf("Wait returned error during burst: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Errorf("Expected the burst to pass without blocking, took %v", elapsed)
	}

	// The third token must wait roughly one refill interval (20ms at 50/s).
	start = time.Now()
	if err := tb.Wait(ctx); err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("Expected the drained bucket to block for a refill, took %v", elapsed)
	}
}

func TestTokenBucket_ContextCancel(t *testing.T) {
	tb := NewTokenBucket(0.001, 1)
	ctx := context.Background()
	if err := tb.Wait(ctx); err != nil {
		t.Fatalf("Wait returned error for the initial token: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := tb.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("Expected context.DeadlineExceeded while waiting on an empty bucket, got %v", err)
	}
}

func TestNopLimiter(t *testing.T) {
	var l Limiter = NopLimiter{}
	if err := l.Wait(context.Background()); err != nil {
		t.Errorf("NopLimiter must never return an error, got %v", err)
	}
}
