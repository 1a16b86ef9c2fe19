package throttle

import (
	"sync"
	"time"
)

// Group holds the buckets of all clients subject to one policy,
// keyed by client id (remote IP).
type Group struct {
	conf    *GroupConf
	buckets *sync.Map // string -> *Bucket
}

func (g *Group) GetBucket(clientID string) (*Bucket, bool) {
	bAny, ok := g.buckets.Load(clientID)
	if !ok {
		return nil, false
	}
	return bAny.(*Bucket), true
}

func (g *Group) SetBucket(clientID string, tokens int, now time.Time) {
	g.buckets.Store(clientID, &Bucket{
		tokens:    tokens,
		lastCheck: now,
		group:     g,
	})
}
