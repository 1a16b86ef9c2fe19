package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/zeptools/pricequote/sessions"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(
		context.Background(),
		&sessions.StoreConf{Type: "memory"},
		sessions.Conf{ExpireSliding: 60, ExpireHardcap: 3600},
	)
}

func TestGetPutDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "nope"); err != nil || found {
		t.Fatalf("unknown id: found=%v err=%v", found, err)
	}

	rec := sessions.NewRecord(time.Now())
	if err := s.Put(ctx, "abc", rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, found, err := s.Get(ctx, "abc")
	if err != nil || !found {
		t.Fatalf("Get after Put: found=%v err=%v", found, err)
	}
	if got.State != rec.State {
		t.Fatalf("Get returned a different record")
	}
	if n, _ := s.Len(ctx); n != 1 {
		t.Fatalf("Len = %d, want 1", n)
	}

	if err = s.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ = s.Get(ctx, "abc"); found {
		t.Fatalf("record survived Delete")
	}
}

func TestGetRefreshesSlidingWindow(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := sessions.NewRecord(time.Now())
	rec.Touch(time.Now().Add(-50 * time.Second)) // near the 60s edge
	if err := s.Put(ctx, "abc", rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, found, _ := s.Get(ctx, "abc")
	if !found {
		t.Fatalf("record not found before expiry")
	}
	if time.Since(got.LastSeen()) > time.Second {
		t.Fatalf("LastSeen not refreshed: %v", got.LastSeen())
	}
}

func TestExpiredRecordsAreMisses(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now()

	slid := sessions.NewRecord(now)
	slid.Touch(now.Add(-2 * time.Minute))
	_ = s.Put(ctx, "slid", slid)

	capped := sessions.NewRecord(now)
	capped.CreatedAt = now.Add(-2 * time.Hour)
	_ = s.Put(ctx, "capped", capped)

	if _, found, _ := s.Get(ctx, "slid"); found {
		t.Fatalf("sliding-expired record still readable")
	}
	if _, found, _ := s.Get(ctx, "capped"); found {
		t.Fatalf("hardcap-expired record still readable")
	}
	if n, _ := s.Len(ctx); n != 0 {
		t.Fatalf("Len = %d after expired reads, want 0", n)
	}
}

// exercises the touch-while-sweeping path; meaningful under -race
func TestGetAndSweepConcurrently(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_ = s.Put(ctx, fmt.Sprintf("s%d", i), sessions.NewRecord(time.Now()))
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			for j := 0; j < 8; j++ {
				_, _, _ = s.Get(ctx, fmt.Sprintf("s%d", j))
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_, _ = s.Sweep(ctx, time.Now())
		}
	}()
	wg.Wait()

	// nothing was stale, so nothing may have been swept
	if n, _ := s.Len(ctx); n != 8 {
		t.Fatalf("Len = %d after concurrent get/sweep, want 8", n)
	}
}

func TestSweep(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	now := time.Now()

	fresh := sessions.NewRecord(now)
	_ = s.Put(ctx, "fresh", fresh)

	stale := sessions.NewRecord(now)
	stale.Touch(now.Add(-time.Hour))
	_ = s.Put(ctx, "stale", stale)

	removed, err := s.Sweep(ctx, now)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 1 {
		t.Fatalf("Sweep removed %d, want 1", removed)
	}
	if n, _ := s.Len(ctx); n != 1 {
		t.Fatalf("Len = %d after sweep, want 1", n)
	}
}
