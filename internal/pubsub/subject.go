package pubsub

import (
	"sort"
	"sync"
)

// Subject holds a current value and broadcasts every subsequent value to its
// subscribers. Replay depth is 1: a new subscriber receives the current value
// immediately on subscription and nothing older. All subscribers observe
// identical values in mutation order; values are never coalesced.
//
// Callbacks run synchronously on the mutating goroutine and must not call
// back into the subject they observe.
type Subject[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[int]func(T)
	next  int
}

// NewSubject creates a subject seeded with the given value.
func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value: initial,
		subs:  make(map[int]func(T)),
	}
}

// Value returns the current value synchronously.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores the new value and delivers it to every subscriber in
// subscription order.
func (s *Subject[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	for _, id := range s.orderedIDs() {
		s.subs[id](v)
	}
}

// Subscribe registers fn, delivers the current value to it immediately, and
// returns a cancel function that stops further delivery.
func (s *Subject[T]) Subscribe(fn func(T)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.subs[id] = fn
	fn(s.value)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Subject[T]) orderedIDs() []int {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
