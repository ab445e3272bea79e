package server

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sourceLimiter applies a token bucket per source key and periodically
// evicts idle entries so the map cannot grow without bound.
type sourceLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu    sync.Mutex
	byKey map[string]*limiterEntry
	hits  uint64
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newSourceLimiter returns a per-key limiter; nil (limiting disabled) if the
// arguments are invalid.
func newSourceLimiter(rps float64, burst int) *sourceLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return &sourceLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: 10 * time.Minute,
		byKey:   make(map[string]*limiterEntry),
	}
}

// allow reports whether one token can be consumed for the key at now.
func (l *sourceLimiter) allow(key string, now time.Time) bool {
	if l == nil {
		return true
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byKey[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.byKey[key] = e
	}
	e.lastSeen = now
	allowed := e.limiter.AllowN(now, 1)

	l.hits++
	if l.hits%512 == 0 {
		cutoff := now.Add(-l.idleTTL)
		for k, v := range l.byKey {
			if v.lastSeen.Before(cutoff) {
				delete(l.byKey, k)
			}
		}
	}

	return allowed
}
