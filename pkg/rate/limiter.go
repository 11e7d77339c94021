package rate

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Limiter limits operations based on a provided key.
type Limiter interface {
	// Allow reports whether an operation for key may happen now
	Allow(key string) (bool, error)

	// Wait blocks until an operation for key may happen
	Wait(ctx context.Context, key string) error
}

type localRateLimiter struct {
	limit rate.Limit
	burst int

	sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLocalRateLimiter returns an in memory limiter. The burst size matches
// the per-second limit, with a minimum of one.
func NewLocalRateLimiter(limit rate.Limit) Limiter {
	burst := int(limit)
	if burst < 1 {
		burst = 1
	}

	return &localRateLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow implements limiter.Allow.
func (l *localRateLimiter) Allow(key string) (bool, error) {
	return l.get(key).Allow(), nil
}

// Wait implements limiter.Wait.
func (l *localRateLimiter) Wait(ctx context.Context, key string) error {
	return l.get(key).Wait(ctx)
}

func (l *localRateLimiter) get(key string) *rate.Limiter {
	l.Lock()
	defer l.Unlock()

	limiter, ok := l.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[key] = limiter
	}
	return limiter
}

// NoLimiter never limits operations
type NoLimiter struct {
}

// Allow implements limiter.Allow.
func (n *NoLimiter) Allow(_ string) (bool, error) {
	return true, nil
}

// Wait implements limiter.Wait.
func (n *NoLimiter) Wait(ctx context.Context, _ string) error {
	return ctx.Err()
}
