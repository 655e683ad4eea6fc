package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a minimum delay between successive requests to one
// provider, with an additional backoff window after a throttling response.
// It uses a token bucket plus a retry-at timestamp set from 429 responses.
type Limiter struct {
	mu      sync.Mutex
	bucket  *rate.Limiter
	retryAt time.Time
}

// NewLimiter creates a limiter allowing requestsPerSecond sustained requests
// with the given burst size.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimit.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	retryAt := l.retryAt
	l.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return l.bucket.Wait(ctx)
}

// RecordRateLimit sets a backoff window after a throttling response.
func (l *Limiter) RecordRateLimit(backoff time.Duration) {
	if backoff <= 0 {
		backoff = time.Minute
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.retryAt = time.Now().Add(backoff)
}
