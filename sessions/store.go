package sessions

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/zeptools/pricequote/docs"
	"github.com/zeptools/pricequote/quote"
)

// Record is everything kept for one browser session: the working quote and
// the last composed document, if any.
type Record struct {
	State     *quote.State
	Doc       *docs.Document
	CreatedAt time.Time

	// unix nanos; request handlers touch it while store sweepers read it,
	// without any common lock
	lastSeen atomic.Int64
}

func NewRecord(now time.Time) *Record {
	rec := &Record{
		State:     quote.NewState(),
		CreatedAt: now,
	}
	rec.Touch(now)
	return rec
}

// Touch refreshes the sliding-expiry reference time.
func (r *Record) Touch(now time.Time) {
	r.lastSeen.Store(now.UnixNano())
}

func (r *Record) LastSeen() time.Time {
	return time.Unix(0, r.lastSeen.Load())
}

// Expired reports whether the record is past its sliding or hardcap window.
func (r *Record) Expired(now time.Time, sliding, hardcap time.Duration) bool {
	return now.Sub(r.LastSeen()) > sliding || now.Sub(r.CreatedAt) > hardcap
}

type Store interface {
	Init() error
	Close() error
	GetConf() *StoreConf

	// Get resolves a session record and refreshes its sliding expiry.
	// found=false for unknown or expired sessions.
	Get(ctx context.Context, id string) (*Record, bool, error)
	// Put persists the record under id.
	Put(ctx context.Context, id string, rec *Record) error
	Delete(ctx context.Context, id string) error
	Len(ctx context.Context) (int, error)
	// Sweep drops expired records. Returns how many were removed.
	// Backends that expire server-side may remove fewer than are stale.
	Sweep(ctx context.Context, now time.Time) (int, error)
}
