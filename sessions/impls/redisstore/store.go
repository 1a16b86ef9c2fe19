package redisstore

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/zeptools/pricequote/docs"
	"github.com/zeptools/pricequote/quote"
	"github.com/zeptools/pricequote/sessions"

	lowimpl "github.com/redis/go-redis/v9"
)

const keyPrefix = "pq_session:"

// record is the wire form of sessions.Record
type record struct {
	State     quote.StateData `json:"state"`
	Doc       *docs.Document  `json:"doc,omitzero"`
	CreatedAt time.Time       `json:"created_at"`
	LastSeen  time.Time       `json:"last_seen"`
}

// Store keeps session records in redis. The sliding window rides on redis
// key TTLs; the hardcap is enforced against the stored creation time.
type Store struct {
	Conf *sessions.StoreConf

	sliding time.Duration
	hardcap time.Duration

	// implementation details, not exported
	internal *lowimpl.Client
}

var _ sessions.Store = (*Store)(nil)

func NewStore(storeConf *sessions.StoreConf, sessConf sessions.Conf) *Store {
	sessConf.ApplyDefaults()
	return &Store{
		Conf:    storeConf,
		sliding: sessConf.Sliding(),
		hardcap: sessConf.Hardcap(),
	}
}

func (s *Store) Init() error {
	s.internal = lowimpl.NewClient(&lowimpl.Options{
		Addr:     fmt.Sprintf("%s:%d", s.Conf.Host, s.Conf.Port),
		Password: s.Conf.PW,
		DB:       s.Conf.DB,
	})
	log.Println("[INFO] redis session store internal initialized")
	return nil
}

func (s *Store) Close() error {
	if s.internal == nil {
		return nil
	}
	return s.internal.Close()
}

func (s *Store) GetConf() *sessions.StoreConf {
	return s.Conf
}

func (s *Store) key(id string) string {
	return keyPrefix + id
}

func (s *Store) Get(ctx context.Context, id string) (*sessions.Record, bool, error) {
	raw, err := s.internal.Get(ctx, s.key(id)).Result()
	if errors.Is(err, lowimpl.Nil) {
		return nil, false, nil // redis.Nil -> ok: false, err: nil
	}
	if err != nil {
		return nil, false, err
	}
	var wire record
	if err = json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, false, fmt.Errorf("corrupt session record %s: %w", id, err)
	}
	now := time.Now()
	if now.Sub(wire.CreatedAt) > s.hardcap {
		_ = s.internal.Del(ctx, s.key(id)).Err()
		return nil, false, nil
	}
	rec := &sessions.Record{
		State:     quote.FromData(wire.State),
		Doc:       wire.Doc,
		CreatedAt: wire.CreatedAt,
	}
	rec.Touch(now)
	// refresh the sliding window
	if err = s.Put(ctx, id, rec); err != nil {
		return nil, false, err
	}
	return rec, true, nil
}

func (s *Store) Put(ctx context.Context, id string, rec *sessions.Record) error {
	wire := record{
		State:     rec.State.Data(),
		Doc:       rec.Doc,
		CreatedAt: rec.CreatedAt,
		LastSeen:  rec.LastSeen(),
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("encode session record %s: %w", id, err)
	}
	return s.internal.Set(ctx, s.key(id), raw, s.sliding).Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.internal.Del(ctx, s.key(id)).Err()
}

func (s *Store) Len(ctx context.Context) (int, error) {
	cnt := 0
	var cursor uint64
	for {
		keys, nextCursor, err := s.internal.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return 0, err
		}
		cnt += len(keys)
		// Redis returns nextCursor == 0 when the scan is complete.
		if nextCursor == 0 {
			return cnt, nil
		}
		cursor = nextCursor
	}
}

// Sweep removes records past their hardcap. Sliding expiry is redis TTL.
func (s *Store) Sweep(ctx context.Context, now time.Time) (int, error) {
	removed := 0
	var cursor uint64
	for {
		keys, nextCursor, err := s.internal.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return removed, err
		}
		for _, key := range keys {
			raw, err := s.internal.Get(ctx, key).Result()
			if errors.Is(err, lowimpl.Nil) {
				continue // expired between scan and get
			}
			if err != nil {
				return removed, err
			}
			var wire record
			if err = json.Unmarshal([]byte(raw), &wire); err != nil || now.Sub(wire.CreatedAt) > s.hardcap {
				if delErr := s.internal.Del(ctx, key).Err(); delErr != nil {
					return removed, delErr
				}
				removed++
			}
		}
		if nextCursor == 0 {
			return removed, nil
		}
		cursor = nextCursor
	}
}
