// Package retrylimit provides an adaptive rate limiter and a retry wrapper
// for best-effort remote calls. The limit rises on success and falls on
// failure, bounded by a configured range.
package retrylimit

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// AdaptiveLimiter wraps rate.Limiter with success/failure feedback.
// Safe for concurrent use.
type AdaptiveLimiter struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	min, max rate.Limit
	stepUp   rate.Limit
	stepDown float64
}

// NewAdaptiveLimiter builds a limiter starting at initial req/s, adjusting
// by stepUp on success and multiplying by stepDown (e.g. 0.5) on failure.
func NewAdaptiveLimiter(initial, min, max, stepUp rate.Limit, stepDown float64) *AdaptiveLimiter {
	if initial < min {
		initial = min
	}
	if initial > max {
		initial = max
	}
	return &AdaptiveLimiter{
		limiter:  rate.NewLimiter(initial, 1),
		min:      min,
		max:      max,
		stepUp:   stepUp,
		stepDown: stepDown,
	}
}

// Wait blocks until the limiter admits one event or ctx is done.
func (l *AdaptiveLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Feedback adjusts the rate after an attempt.
func (l *AdaptiveLimiter) Feedback(success bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cur := l.limiter.Limit()
	if success {
		cur += l.stepUp
	} else {
		cur = rate.Limit(float64(cur) * l.stepDown)
	}
	if cur < l.min {
		cur = l.min
	}
	if cur > l.max {
		cur = l.max
	}
	l.limiter.SetLimit(cur)
}

// Limit returns the current rate, for introspection.
func (l *AdaptiveLimiter) Limit() rate.Limit {
	return l.limiter.Limit()
}

const (
	defaultAttempts = 3
	baseBackoff     = 200 * time.Millisecond
)

// WithRetry runs fn up to three times, waiting on the limiter before each
// attempt and backing off with jitter between failures. The last error is
// returned if every attempt fails.
func WithRetry(ctx context.Context, lim *AdaptiveLimiter, fn func() error) error {
	var last error
	for attempt := 0; attempt < defaultAttempts; attempt++ {
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return err
			}
		}
		err := fn()
		if lim != nil {
			lim.Feedback(err == nil)
		}
		if err == nil {
			return nil
		}
		last = err

		backoff := baseBackoff * time.Duration(1<<attempt)
		backoff += time.Duration(rand.Int63n(int64(baseBackoff)))
		select {
		case <-ctx.Done():
			return errors.Join(last, ctx.Err())
		case <-time.After(backoff):
		}
	}
	return last
}
