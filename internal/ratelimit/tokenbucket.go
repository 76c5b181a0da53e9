// Package ratelimit provides the throttling primitives used around
// upstream market-data calls: a blocking token bucket for outbound
// request pacing and a non-blocking minimum-interval window for the
// public quote endpoint.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter gates outbound calls. Wait blocks until a call is permitted or
// the context is canceled.
type Limiter interface {
	Wait(ctx context.Context) error
}

// TokenBucket is a classic token bucket limiter.
//   - rate: tokens per second
//   - capacity: maximum tokens the bucket can hold (burst)
type TokenBucket struct {
	rate     float64
	capacity float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

// NewTokenBucket creates a bucket that refills at tokensPerSecond and
// starts full to allow an initial burst.
func NewTokenBucket(tokensPerSecond float64, burst int) *TokenBucket {
	if tokensPerSecond <= 0 {
		tokensPerSecond = 0.0000001
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		rate:     tokensPerSecond,
		capacity: float64(burst),
		tokens:   float64(burst),
		last:     time.Now(),
	}
}

// Wait blocks until one token is available or the context is canceled.
func (tb *TokenBucket) Wait(ctx context.Context) error {
	for {
		tb.mu.Lock()
		now := time.Now()
		// Refill
		elapsed := now.Sub(tb.last).Seconds()
		if elapsed > 0 {
			tb.tokens += elapsed * tb.rate
			if tb.tokens > tb.capacity {
				tb.tokens = tb.capacity
			}
			tb.last = now
		}
		if tb.tokens >= 1 {
			tb.tokens--
			tb.mu.Unlock()
			return nil
		}
		deficit := 1 - tb.tokens
		tb.mu.Unlock()

		// time needed to accumulate one token
		waitDur := time.Duration(deficit / tb.rate * float64(time.Second))
		if waitDur <= 0 {
			waitDur = time.Millisecond
		}
		timer := time.NewTimer(waitDur)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// NopLimiter permits every call immediately. Used in tests and when
// throttling is disabled.
type NopLimiter struct{}

func (NopLimiter) Wait(_ context.Context) error { return nil }
