package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket allows capacity requests at once and refills at a steady rate.
type tokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return newTokenBucketAt(capacity, refillRate, time.Now)
}

func newTokenBucketAt(capacity int, refillRate float64, now func() time.Time) *tokenBucket {
	return &tokenBucket{
		capacity:   float64(capacity),
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now(),
		now:        now,
	}
}

// refill must be called with mu held.
func (tb *tokenBucket) refill(now time.Time) {
	elapsed := now.Sub(tb.lastRefill).Seconds()
	if elapsed > 0 {
		tb.tokens = min(tb.capacity, tb.tokens+elapsed*tb.refillRate)
	}
	tb.lastRefill = now
}

// take consumes a token if one is available and reports the bucket state
// afterwards in the same critical section.
func (tb *tokenBucket) take() (allowed bool, remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	tb.refill(now)

	if tb.tokens >= 1 {
		tb.tokens--
		allowed = true
	}
	return allowed, int(tb.tokens), tb.fullAt(now)
}

// nextTokenAt is when at least one token will be available.
func (tb *tokenBucket) nextTokenAt() time.Time {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	tb.refill(now)
	if tb.tokens >= 1 || tb.refillRate <= 0 {
		return now
	}
	wait := (1 - tb.tokens) / tb.refillRate
	return now.Add(time.Duration(wait * float64(time.Second)))
}

func (tb *tokenBucket) fullAt(now time.Time) time.Time {
	if tb.tokens >= tb.capacity || tb.refillRate <= 0 {
		return now
	}
	missing := tb.capacity - tb.tokens
	return now.Add(time.Duration(missing / tb.refillRate * float64(time.Second)))
}
