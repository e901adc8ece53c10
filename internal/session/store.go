package session

import (
	"strings"
	"sync"
	"time"
)

// Store remembers the last identified car per user so /again can re-spin the
// persona without a fresh photo upload. Entries expire after the TTL.
type Store struct {
	mu  sync.Mutex
	m   map[int64]*entry
	ttl time.Duration
}

type entry struct {
	carModel string
	seenAt   time.Time
}

type Options struct {
	TTL time.Duration
}

func NewStore(opts Options) *Store {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	return &Store{
		m:   make(map[int64]*entry),
		ttl: ttl,
	}
}

func (s *Store) Remember(userID int64, carModel string) {
	carModel = strings.TrimSpace(carModel)
	if carModel == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[userID] = &entry{carModel: carModel, seenAt: time.Now()}
}

func (s *Store) LastCar(userID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[userID]
	if !ok {
		return "", false
	}
	if time.Since(e.seenAt) > s.ttl {
		delete(s.m, userID)
		return "", false
	}
	return e.carModel, true
}

func (s *Store) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, userID)
}
