package throttle

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/zeptools/pricequote/svc"
)

// Store manages bucket groups and evicts idle buckets on a fixed cycle.
type Store struct {
	Ctx              context.Context    // Service Context
	cancel           context.CancelFunc // Service Context CancelFunc
	state            int                // internal service state
	done             chan error         // Shutdown Error Channel
	cleanupCycle     time.Duration
	cleanupOlderThan time.Duration
	groups           map[string]*Group
}

var _ svc.Service = (*Store)(nil)

func (s *Store) Name() string {
	return "ThrottleBucketStore"
}

func NewStore(parentCtx context.Context, cleanupCycle time.Duration, cleanupOlderThan time.Duration) *Store {
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &Store{
		Ctx:              svcCtx,
		cancel:           svcCancel,
		state:            svc.StateREADY,
		done:             make(chan error, 1),
		cleanupCycle:     cleanupCycle,
		cleanupOlderThan: cleanupOlderThan,
		groups:           make(map[string]*Group),
	}
}

// Start starts a service that manages buckets
func (s *Store) Start() error {
	if s.state == svc.StateRUNNING {
		return fmt.Errorf("already started")
	}
	if s.state != svc.StateREADY {
		return fmt.Errorf("cannot start. not ready")
	}
	s.state = svc.StateRUNNING
	log.Printf("[INFO][Throttle] cleanup service started cycle=%v exp=%v", s.cleanupCycle, s.cleanupOlderThan)
	go s.run()
	return nil
}

func (s *Store) Stop() {
	if s.state != svc.StateRUNNING {
		log.Println("[ERROR][Throttle] cannot stop. not running")
		return
	}
	s.cancel()
	s.state = svc.StateSTOPPED
	log.Println("[INFO][Throttle] service stopped")
}

func (s *Store) Done() <-chan error {
	return s.done
}

func (s *Store) run() {
	ticker := time.NewTicker(s.cleanupCycle)
	defer ticker.Stop()
	for {
		select {
		case <-s.Ctx.Done():
			log.Println("[INFO][Throttle] stopping cleaning service")
			s.done <- nil
			return
		case now := <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("[PANIC] recovered in throttle store cleaning service: %v", r)
					}
				}()
				s.Cleanup(now)
			}()
		}
	}
}

// Cleanup drops buckets idle longer than the eviction window.
func (s *Store) Cleanup(now time.Time) {
	for _, g := range s.groups {
		g.buckets.Range(func(id, value any) bool {
			b := value.(*Bucket)
			if now.Sub(b.LastCheck()) > s.cleanupOlderThan {
				g.buckets.Delete(id)
			}
			return true // continue iteration
		})
	}
}

func (s *Store) GetGroup(id string) (*Group, bool) {
	g, ok := s.groups[id]
	return g, ok
}

// SetGroup registers a policy group. Call before Start; groups map is not
// guarded against concurrent writes.
func (s *Store) SetGroup(id string, conf *GroupConf) {
	s.groups[id] = &Group{
		conf:    conf,
		buckets: &sync.Map{},
	}
}

// Allow consumes one token for clientID in the given group.
func (s *Store) Allow(groupID string, clientID string, now time.Time) bool {
	g, ok := s.GetGroup(groupID)
	if !ok {
		return false // Invalid groupID always Blocked
	}
	b, ok := g.GetBucket(clientID)
	if ok {
		return b.Allow(now)
	}
	// consume 1 token from the fresh bucket
	g.SetBucket(clientID, g.conf.Burst-1, now)
	return true
}
