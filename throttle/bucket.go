package throttle

import (
	"sync"
	"time"
)

// Bucket is one client's token bucket. Tokens refill in whole Period steps
// so a burst spent at 10:00:00.9 is not back at 10:00:01.0.
type Bucket struct {
	mu        sync.Mutex // protects access to bucket state
	tokens    int
	lastCheck time.Time
	group     *Group // back-reference for the refill conf
}

// refill must run under b.mu
func (b *Bucket) refill(now time.Time) {
	conf := b.group.conf
	elapsed := now.Sub(b.lastCheck)
	if elapsed >= conf.Period {
		times := int(elapsed / conf.Period)
		b.tokens += times * conf.Increment
		if b.tokens > conf.Burst {
			b.tokens = conf.Burst
		}
		b.lastCheck = b.lastCheck.Add(time.Duration(times) * conf.Period)
	}
}

// Allow consumes one token if available.
func (b *Bucket) Allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// LastCheck returns the refill reference time. Used by cleanup.
func (b *Bucket) LastCheck() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastCheck
}
