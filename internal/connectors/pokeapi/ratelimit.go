package pokeapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerSecond keeps well below the public API's fair-use limit.
	DefaultRequestsPerSecond = 20.0

	// DefaultBurst allows a full search hydration to start at once.
	DefaultBurst = 10

	// DefaultBackoff applies when a 429 carries no Retry-After header.
	DefaultBackoff = 30 * time.Second

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles outgoing requests with a token bucket and honours
// the server's Retry-After window after a 429. It never retries by itself.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter allowing rps requests per second.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultBurst
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return r.limiter.Wait(ctx)
}

// Observe inspects a response. For a 429 it records the backoff window and
// returns the time requests may resume.
func (r *RateLimiter) Observe(resp *http.Response) (time.Time, bool) {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return time.Time{}, false
	}

	backoff := DefaultBackoff
	if v := resp.Header.Get(HeaderRetryAfter); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			backoff = time.Duration(seconds) * time.Second
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAt = time.Now().Add(backoff)
	return r.retryAt, true
}
