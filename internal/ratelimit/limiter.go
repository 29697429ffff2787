// Package ratelimit implements a keyed sliding-window rate limiter. A
// Limiter instance is constructed once per process and injected into the
// handlers that need it; tests build their own instances.
package ratelimit

import (
	"sync"
	"time"
)

// Result reports the outcome of a rate limit check.
type Result struct {
	Allowed           bool
	Remaining         int
	RetryAfterSeconds int
}

// Limiter tracks hit timestamps per key and enforces a sliding window.
// All methods are safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	maxKeys int
}

// New creates a limiter that tracks at most maxKeys distinct keys before
// sweeping idle ones.
func New(maxKeys int) *Limiter {
	return &Limiter{
		hits:    make(map[string][]time.Time),
		maxKeys: maxKeys,
	}
}

// Check prunes hits older than the window, then either records a new hit
// (allowed) or reports the seconds until the oldest remaining hit leaves
// the window (denied). A denied request records nothing, so it never
// extends the caller's wait.
func (l *Limiter) Check(key string, limit int, window time.Duration, now time.Time) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	lowerBound := now.Add(-window)
	kept := prune(l.hits[key], lowerBound)

	if len(kept) >= limit {
		l.hits[key] = kept
		oldest := kept[0]
		retryAfter := oldest.Add(window).Sub(now)
		return Result{
			Allowed:           false,
			Remaining:         0,
			RetryAfterSeconds: ceilSeconds(retryAfter),
		}
	}

	if _, tracked := l.hits[key]; !tracked && len(l.hits) >= l.maxKeys {
		l.sweep(lowerBound)
	}

	kept = append(kept, now)
	l.hits[key] = kept

	return Result{
		Allowed:   true,
		Remaining: limit - len(kept),
	}
}

// Reset clears all tracked state.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hits = make(map[string][]time.Time)
}

// TrackedKeys returns the number of keys currently held.
func (l *Limiter) TrackedKeys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

// prune keeps hits strictly newer than the lower bound. Hits are appended
// in time order, so the result stays ordered with the oldest first.
func prune(hits []time.Time, lowerBound time.Time) []time.Time {
	kept := hits[:0:0]
	for _, hit := range hits {
		if hit.After(lowerBound) {
			kept = append(kept, hit)
		}
	}
	return kept
}

// sweep drops keys with no hits inside the current window. Called with the
// lock held when the tracked-key cap is reached, bounding memory growth
// from high-cardinality client fingerprints.
func (l *Limiter) sweep(lowerBound time.Time) {
	for key, hits := range l.hits {
		if len(prune(hits, lowerBound)) == 0 {
			delete(l.hits, key)
		}
	}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	seconds := d / time.Second
	if d%time.Second != 0 {
		seconds++
	}
	return int(seconds)
}
