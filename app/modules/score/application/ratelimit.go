package scoreservice

import (
	"sync"
	"time"
)

// RateLimiter decides whether a client may submit another score.
type RateLimiter interface {
	Allow(key string) bool
}

// SlidingWindowLimiter admits at most max events per key within any trailing
// window. It keeps, per key, the acceptance times still inside the window.
// State is process local and lost on restart.
type SlidingWindowLimiter struct {
	window time.Duration
	max    int
	now    func() time.Time

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
}

// NewSlidingWindowLimiter creates a limiter. A nil clock uses time.Now.
func NewSlidingWindowLimiter(window time.Duration, max int, clock func() time.Time) *SlidingWindowLimiter {
	if clock == nil {
		clock = time.Now
	}
	return &SlidingWindowLimiter{
		window: window,
		max:    max,
		now:    clock,
		hits:   make(map[string][]time.Time),
	}
}

// Allow records an acceptance for key and returns true, or returns false
// without recording anything when key already has max acceptances in the window.
func (l *SlidingWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	recent := prune(l.hits[key], cutoff)
	if len(recent) >= l.max {
		l.hits[key] = recent
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

// Len returns the number of keys currently tracked.
func (l *SlidingWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

// sweep drops keys with no acceptance after cutoff.
func (l *SlidingWindowLimiter) sweep(cutoff time.Time) {
	for k, ts := range l.hits {
		if len(ts) == 0 || !ts[len(ts)-1].After(cutoff) {
			delete(l.hits, k)
		}
	}
}

// prune drops leading timestamps at or before cutoff. ts is in ascending order.
func prune(ts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	if i == 0 {
		return ts
	}
	return append(ts[:0:0], ts[i:]...)
}

type allowAll struct{}

// AllowAll is a RateLimiter that never rejects.
func AllowAll() RateLimiter { return allowAll{} }

func (allowAll) Allow(string) bool { return true }
