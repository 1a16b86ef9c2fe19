package docs

import (
	"fmt"
	"sync"
	"time"
)

// numberGenerator hands out quote numbers of the form PREFIX-YYYYMMDD-HHMM.
// The timestamp has minute granularity; a process-local sequence suffix
// ("-2", "-3", ...) is appended only when another number is requested within
// the same minute, so numbers from one process never collide.
type numberGenerator struct {
	mu        sync.Mutex
	lastStamp string
	seq       int
}

func (g *numberGenerator) next(prefix string, now time.Time) string {
	stamp := now.Format("20060102-1504")
	g.mu.Lock()
	defer g.mu.Unlock()
	if stamp == g.lastStamp {
		g.seq++
		return fmt.Sprintf("%s-%s-%d", prefix, stamp, g.seq)
	}
	g.lastStamp = stamp
	g.seq = 1
	return prefix + "-" + stamp
}
