package sync

import (
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval between outbound remote
// calls. A zero interval disables waiting entirely.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

// Wait blocks until at least the configured interval has passed since
// the previous call, then records the current time.
func (l *RateLimiter) Wait() {
	if l.interval <= 0 {
		return
	}

	l.mu.Lock()
	now := time.Now()
	next := l.last.Add(l.interval)
	if now.Before(next) {
		l.mu.Unlock()
		time.Sleep(next.Sub(now))
		l.mu.Lock()
		now = time.Now()
	}
	l.last = now
	l.mu.Unlock()
}
