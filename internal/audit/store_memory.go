package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps events per activity. It favors clarity over
// performance; the event volume here is tiny.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.Activity] = append(s.events[event.Activity], event)
	return nil
}

func (s *InMemoryStore) ListByActivity(_ context.Context, activity string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[activity]...), nil
}
