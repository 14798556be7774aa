// Package ratelimit paces outgoing REST calls with a token bucket.
package ratelimit

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Limiter allows requests per period with a burst of the same size.
// A nil *Limiter never blocks, which is how a disabled limiter is represented.
type Limiter struct {
	limiter *rate.Limiter
	waited  atomic.Int64
	denied  atomic.Int64
}

// New returns a Limiter, or nil when requests or period is not positive.
func New(requests int, period time.Duration) *Limiter {
	if requests <= 0 || period <= 0 {
		return nil
	}
	rps := float64(requests) / period.Seconds()
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), requests)}
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	if err := l.limiter.Wait(ctx); err != nil {
		l.denied.Add(1)
		return err
	}
	l.waited.Add(1)
	return nil
}

// Allow reports whether a token is available right now, consuming it if so.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	if l.limiter.Allow() {
		l.waited.Add(1)
		return true
	}
	l.denied.Add(1)
	return false
}

// Stats returns how many requests were admitted and refused so far.
func (l *Limiter) Stats() Stats {
	if l == nil {
		return Stats{}
	}
	return Stats{
		Allowed: l.waited.Load(),
		Denied:  l.denied.Load(),
	}
}

// Stats is a point-in-time capture of limiter decisions.
type Stats struct {
	Allowed int64
	Denied  int64
}
