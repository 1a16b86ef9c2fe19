package memory

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/zeptools/pricequote/sessions"
	"github.com/zeptools/pricequote/svc"
)

// Store keeps session records in process memory. It doubles as a service
// that sweeps expired records on a fixed cycle.
type Store struct {
	Ctx    context.Context    // Service Context
	cancel context.CancelFunc // Service Context CancelFunc
	state  int                // internal service state
	done   chan error         // Shutdown Error Channel

	conf    *sessions.StoreConf
	sliding time.Duration
	hardcap time.Duration
	cycle   time.Duration

	records sync.Map // string -> *sessions.Record
}

var _ sessions.Store = (*Store)(nil)
var _ svc.Service = (*Store)(nil)

func NewStore(parentCtx context.Context, storeConf *sessions.StoreConf, sessConf sessions.Conf) *Store {
	sessConf.ApplyDefaults()
	svcCtx, svcCancel := context.WithCancel(parentCtx)
	return &Store{
		Ctx:     svcCtx,
		cancel:  svcCancel,
		state:   svc.StateREADY,
		done:    make(chan error, 1),
		conf:    storeConf,
		sliding: sessConf.Sliding(),
		hardcap: sessConf.Hardcap(),
		cycle:   sessConf.Cycle(),
	}
}

func (s *Store) Name() string {
	return "MemorySessionStore"
}

func (s *Store) Init() error {
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) GetConf() *sessions.StoreConf {
	return s.conf
}

// Start starts the expired-session sweeper
func (s *Store) Start() error {
	if s.state == svc.StateRUNNING {
		return fmt.Errorf("already started")
	}
	if s.state != svc.StateREADY {
		return fmt.Errorf("cannot start. not ready")
	}
	s.state = svc.StateRUNNING
	log.Printf("[INFO][Sessions] cleanup service started cycle=%v sliding=%v hardcap=%v", s.cycle, s.sliding, s.hardcap)
	go s.run()
	return nil
}

func (s *Store) Stop() {
	if s.state != svc.StateRUNNING {
		log.Println("[ERROR][Sessions] cannot stop. not running")
		return
	}
	s.cancel()
	s.state = svc.StateSTOPPED
	log.Println("[INFO][Sessions] service stopped")
}

func (s *Store) Done() <-chan error {
	return s.done
}

func (s *Store) run() {
	ticker := time.NewTicker(s.cycle)
	defer ticker.Stop()
	for {
		select {
		case <-s.Ctx.Done():
			log.Println("[INFO][Sessions] stopping cleanup service")
			s.done <- nil
			return
		case now := <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("[PANIC] recovered in session store cleanup service: %v", r)
					}
				}()
				removed, _ := s.Sweep(s.Ctx, now)
				if removed > 0 {
					log.Printf("[INFO][Sessions] swept %d expired session(s)", removed)
				}
			}()
		}
	}
}

func (s *Store) Get(_ context.Context, id string) (*sessions.Record, bool, error) {
	recAny, ok := s.records.Load(id)
	if !ok {
		return nil, false, nil
	}
	rec := recAny.(*sessions.Record)
	now := time.Now()
	if rec.Expired(now, s.sliding, s.hardcap) {
		s.records.Delete(id)
		return nil, false, nil
	}
	rec.Touch(now)
	return rec, true, nil
}

func (s *Store) Put(_ context.Context, id string, rec *sessions.Record) error {
	s.records.Store(id, rec)
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.records.Delete(id)
	return nil
}

func (s *Store) Len(_ context.Context) (int, error) {
	cnt := 0
	s.records.Range(func(_, _ any) bool {
		cnt++
		return true // continue iteration
	})
	return cnt, nil
}

func (s *Store) Sweep(_ context.Context, now time.Time) (int, error) {
	removed := 0
	s.records.Range(func(id, value any) bool {
		rec := value.(*sessions.Record)
		if rec.Expired(now, s.sliding, s.hardcap) {
			s.records.Delete(id)
			removed++
		}
		return true // continue iteration
	})
	return removed, nil
}
