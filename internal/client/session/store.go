package session

import (
	"context"
	"fmt"
	"sync"
)

// Store is the single owner of the session. It is safe for concurrent use.
type Store struct {
	p Persister

	mu      sync.RWMutex
	rec     Record
	present bool
	subs    map[int]chan bool
	nextID  int
}

// NewStore returns an empty store backed by p. Call Load to pick up a
// session saved by a previous run.
func NewStore(p Persister) *Store {
	return &Store{p: p, subs: make(map[int]chan bool)}
}

// Load replaces the in-memory state with what p holds and notifies
// subscribers.
func (s *Store) Load(ctx context.Context) error {
	rec, present, err := s.p.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec, s.present = rec, present
	s.publish()
	return nil
}

// Set persists rec as a whole and makes it current. On a persistence error
// the previous state is kept.
func (s *Store) Set(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.p.Save(ctx, rec); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.rec, s.present = rec, true
	s.publish()
	return nil
}

// Get returns the current record and whether a token is present. The token
// is not checked for shape or expiry.
func (s *Store) Get() (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec, s.present
}

// Clear removes the session, including legacy keys. Clearing an empty
// store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.p.Erase(ctx); err != nil {
		return fmt.Errorf("erase session: %w", err)
	}
	s.rec, s.present = Record{}, false
	s.publish()
	return nil
}

// IsAuthenticated reports whether a token entry is present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.present
}

// Subscribe returns a channel that immediately holds the current
// authenticated flag and afterwards receives it on every Set, Clear and
// Load. Slow readers only see the latest value. cancel closes the channel;
// calling it more than once is harmless.
func (s *Store) Subscribe() (<-chan bool, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan bool, 1)
	ch <- s.present
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish must be called with s.mu held for writing.
func (s *Store) publish() {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.present
	}
}
