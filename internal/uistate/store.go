package uistate

import "sync"

// Store holds one immutable state value and notifies subscribers whenever it
// is replaced.
//
// Unlike Controller, a Store may be used from any goroutine: a renderer can
// read Get off the loop while the loop calls Set. Subscribers run on the
// goroutine that called Set.
type Store[S any] struct {
	mu     sync.RWMutex
	state  S
	subs   []subscription[S]
	nextID int
}

type subscription[S any] struct {
	id int
	fn func(S)
}

// NewStore creates a store holding initial.
func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{state: initial}
}

// Get returns the current state.
func (s *Store[S]) Get() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Set replaces the state and notifies subscribers in subscription order.
// Subscribers run after the lock is released, so they may call Get.
func (s *Store[S]) Set(next S) {
	s.mu.Lock()
	s.state = next
	subs := make([]subscription[S], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}

// Subscribe registers fn for every future Set. The returned func removes it.
func (s *Store[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription[S]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
