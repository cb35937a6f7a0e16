// Package ratelimit provides a keyed token-bucket rate limiter.
// Keys are expected to be client IPs, so the key space is unbounded;
// idle entries are evicted in the background to keep the map small.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// evictInterval is how often the janitor sweeps for idle entries.
const evictInterval = 5 * time.Minute

// maxIdle is how long a key may go unseen before its bucket is dropped.
// An idle bucket has long since refilled, so dropping it changes nothing
// for the client beyond freeing the entry.
const maxIdle = 15 * time.Minute

// entry pairs a client's bucket with the last time it was used.
type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter manages per-key rate limiting.
// Each unique key gets its own independent token bucket.
type KeyedRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a keyed rate limiter allowing rps requests per second per
// key with the given burst, and starts the idle-entry janitor.
func New(rps float64, burst int) *KeyedRateLimiter {
	krl := &KeyedRateLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go krl.evictLoop()

	return krl
}

// Allow reports whether a request for the given key may proceed right
// now. Never blocks; use for inbound request protection.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.bucket(key).Allow()
}

// Wait blocks until a request for the given key is allowed or the
// context is canceled.
func (krl *KeyedRateLimiter) Wait(ctx context.Context, key string) error {
	return krl.bucket(key).Wait(ctx)
}

// bucket returns the limiter for a key, creating it on first sight and
// refreshing its last-seen time.
func (krl *KeyedRateLimiter) bucket(key string) *rate.Limiter {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	e, ok := krl.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(krl.limit, krl.burst)}
		krl.entries[key] = e
	}
	e.lastSeen = time.Now()
	return e.limiter
}

// Stop shuts down the janitor goroutine.
func (krl *KeyedRateLimiter) Stop() {
	krl.stopOnce.Do(func() {
		close(krl.done)
	})
}

// evictLoop periodically drops entries that have been idle past maxIdle.
func (krl *KeyedRateLimiter) evictLoop() {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			krl.evictIdle(time.Now().Add(-maxIdle))
		case <-krl.done:
			return
		}
	}
}

// evictIdle removes every entry last seen before the cutoff.
func (krl *KeyedRateLimiter) evictIdle(cutoff time.Time) {
	krl.mu.Lock()
	defer krl.mu.Unlock()

	for key, e := range krl.entries {
		if e.lastSeen.Before(cutoff) {
			delete(krl.entries, key)
		}
	}
}
