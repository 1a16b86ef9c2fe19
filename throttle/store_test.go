package throttle

import (
	"context"
	"testing"
	"time"
)

func testStoreWithGroup(burst, increment int, period time.Duration) *Store {
	s := NewStore(context.Background(), time.Minute, time.Hour)
	s.SetGroup("gen", &GroupConf{Burst: burst, Increment: increment, Period: period})
	return s
}

func TestAllowConsumesBurst(t *testing.T) {
	s := testStoreWithGroup(3, 1, 20*time.Second)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if !s.Allow("gen", "10.0.0.1", now) {
			t.Fatalf("request %d blocked within burst", i+1)
		}
	}
	if s.Allow("gen", "10.0.0.1", now) {
		t.Fatalf("request allowed after burst exhausted")
	}
}

func TestAllowRefillsPerPeriod(t *testing.T) {
	s := testStoreWithGroup(3, 1, 20*time.Second)
	now := time.Now()

	for i := 0; i < 3; i++ {
		s.Allow("gen", "10.0.0.1", now)
	}
	if s.Allow("gen", "10.0.0.1", now.Add(19*time.Second)) {
		t.Fatalf("allowed before a full period elapsed")
	}
	if !s.Allow("gen", "10.0.0.1", now.Add(20*time.Second)) {
		t.Fatalf("blocked after a full period refill")
	}
	if s.Allow("gen", "10.0.0.1", now.Add(21*time.Second)) {
		t.Fatalf("allowed twice on a single-token refill")
	}
}

func TestRefillCapsAtBurst(t *testing.T) {
	s := testStoreWithGroup(3, 1, time.Second)
	now := time.Now()

	s.Allow("gen", "10.0.0.1", now)
	later := now.Add(time.Hour) // far more periods than the cap
	for i := 0; i < 3; i++ {
		if !s.Allow("gen", "10.0.0.1", later) {
			t.Fatalf("request %d blocked after long idle", i+1)
		}
	}
	if s.Allow("gen", "10.0.0.1", later) {
		t.Fatalf("refill exceeded burst cap")
	}
}

func TestClientsAreIsolated(t *testing.T) {
	s := testStoreWithGroup(1, 1, time.Minute)
	now := time.Now()

	if !s.Allow("gen", "10.0.0.1", now) {
		t.Fatalf("first client blocked")
	}
	if !s.Allow("gen", "10.0.0.2", now) {
		t.Fatalf("second client blocked by first client's bucket")
	}
}

func TestUnknownGroupBlocks(t *testing.T) {
	s := NewStore(context.Background(), time.Minute, time.Hour)
	if s.Allow("nope", "10.0.0.1", time.Now()) {
		t.Fatalf("unknown group allowed")
	}
}

func TestCleanupEvictsIdleBuckets(t *testing.T) {
	s := NewStore(context.Background(), time.Minute, 30*time.Minute)
	s.SetGroup("gen", &GroupConf{Burst: 3, Increment: 1, Period: 20 * time.Second})
	now := time.Now()

	s.Allow("gen", "10.0.0.1", now)
	s.Cleanup(now.Add(31 * time.Minute))

	g, _ := s.GetGroup("gen")
	if _, ok := g.GetBucket("10.0.0.1"); ok {
		t.Fatalf("idle bucket survived cleanup")
	}
}
