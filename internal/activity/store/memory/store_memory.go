// Package memory provides the in-memory activity store. This is the default
// backend: process-wide state that resets to the seed on restart.
package memory

import (
	"context"
	"sync"

	"mergington/internal/activity/model"
	"mergington/pkg/platform/sentinel"
)

// Store keeps activities in a map plus an insertion-order slice so listings
// are deterministic. A single RWMutex guards every read-modify-write on a
// roster; requests are served concurrently, so the lock is load-bearing, not
// optional.
type Store struct {
	mu         sync.RWMutex
	activities map[string]model.Activity
	order      []string
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{activities: make(map[string]model.Activity)}
}

func (s *Store) List(_ context.Context) ([]model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Activity, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.activities[name].Clone())
	}
	return out, nil
}

func (s *Store) Find(_ context.Context, name string) (model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, sentinel.ErrNotFound
	}
	return a.Clone(), nil
}

func (s *Store) Put(_ context.Context, activity model.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.activities[activity.Name]; !ok {
		s.order = append(s.order, activity.Name)
	}
	s.activities[activity.Name] = activity.Clone()
	return nil
}

func (s *Store) AddParticipant(_ context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[name]
	if !ok {
		return sentinel.ErrNotFound
	}
	if a.HasParticipant(email) {
		return sentinel.ErrConflict
	}
	if len(a.Participants) >= a.MaxParticipants {
		return sentinel.ErrCapacity
	}
	a.Participants = append(a.Participants, email)
	s.activities[name] = a
	return nil
}

func (s *Store) RemoveParticipant(_ context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[name]
	if !ok {
		return sentinel.ErrNotFound
	}
	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			s.activities[name] = a
			return nil
		}
	}
	return sentinel.ErrNotMember
}
