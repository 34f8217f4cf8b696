// Package ratelimiter keeps one token bucket per caller identity.
package ratelimiter

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter hands out a token bucket per identity. Buckets idle for
// longer than expiration are dropped by a background sweep.
type UserRateLimiter struct {
	mu         sync.Mutex
	visitors   map[string]*visitor
	limit      rate.Limit
	burst      int
	expiration time.Duration
	clock      clockwork.Clock
	stop       chan struct{}
	stopOnce   sync.Once
}

// New creates a limiter allowing rps requests per second with the given burst.
func New(rps float64, burst int, expiration time.Duration) *UserRateLimiter {
	return NewWithClock(rps, burst, expiration, clockwork.NewRealClock())
}

func NewWithClock(rps float64, burst int, expiration time.Duration, clock clockwork.Clock) *UserRateLimiter {
	rl := &UserRateLimiter{
		visitors:   make(map[string]*visitor),
		limit:      rate.Limit(rps),
		burst:      burst,
		expiration: expiration,
		clock:      clock,
		stop:       make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Every is a helper for limits slower than one per second.
func Every(interval time.Duration) float64 {
	return float64(rate.Every(interval))
}

func (rl *UserRateLimiter) Allow(identity string) bool {
	now := rl.clock.Now()

	rl.mu.Lock()
	v, ok := rl.visitors[identity]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[identity] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Len reports how many identities are tracked.
func (rl *UserRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

func (rl *UserRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *UserRateLimiter) cleanupLoop() {
	ticker := rl.clock.NewTicker(rl.expiration)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.Chan():
			rl.cleanup()
		}
	}
}

func (rl *UserRateLimiter) cleanup() {
	now := rl.clock.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for id, v := range rl.visitors {
		if now.Sub(v.lastSeen) >= rl.expiration {
			delete(rl.visitors, id)
		}
	}
}
