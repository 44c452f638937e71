package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"mergington/internal/activity/model"
	"mergington/internal/activity/store"
	"mergington/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Store
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = New()
	s.Require().NoError(store.EnsureSeed(context.Background(), s.store))
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) TestListKeepsSeedOrder() {
	activities, err := s.store.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(activities, 9)

	seed := store.DefaultActivities()
	for i, a := range activities {
		s.Equal(seed[i].Name, a.Name)
		s.Equal(seed[i].Description, a.Description)
		s.Equal(seed[i].Schedule, a.Schedule)
		s.Equal(seed[i].MaxParticipants, a.MaxParticipants)
		s.Equal(seed[i].Participants, a.Participants)
	}
}

func (s *MemoryStoreSuite) TestFind() {
	s.Run("returns seeded activity", func() {
		a, err := s.store.Find(context.Background(), "Chess Club")
		s.Require().NoError(err)
		s.Equal([]string{"michael@mergington.edu", "daniel@mergington.edu"}, a.Participants)
		s.Equal(12, a.MaxParticipants)
	})

	s.Run("unknown name returns ErrNotFound", func() {
		_, err := s.store.Find(context.Background(), "chess club")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestAddParticipant() {
	ctx := context.Background()

	s.Run("appends in signup order", func() {
		s.Require().NoError(s.store.AddParticipant(ctx, "Chess Club", "new@mergington.edu"))

		a, err := s.store.Find(ctx, "Chess Club")
		s.Require().NoError(err)
		s.Require().Len(a.Participants, 3)
		s.Equal("new@mergington.edu", a.Participants[2])
	})

	s.Run("duplicate email returns ErrConflict", func() {
		err := s.store.AddParticipant(ctx, "Chess Club", "michael@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrConflict)

		a, err := s.store.Find(ctx, "Chess Club")
		s.Require().NoError(err)
		s.Len(a.Participants, 3)
	})

	s.Run("unknown activity returns ErrNotFound", func() {
		err := s.store.AddParticipant(ctx, "Quidditch", "new@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("full roster returns ErrCapacity", func() {
		s.Require().NoError(s.store.Put(ctx, model.Activity{
			Name:            "Lunch Monitors",
			MaxParticipants: 1,
			Participants:    []string{"only@mergington.edu"},
		}))
		err := s.store.AddParticipant(ctx, "Lunch Monitors", "another@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrCapacity)
	})
}

func (s *MemoryStoreSuite) TestRemoveParticipant() {
	ctx := context.Background()

	s.Run("removes the last participant", func() {
		s.Require().NoError(s.store.RemoveParticipant(ctx, "Basketball Team", "james@mergington.edu"))

		a, err := s.store.Find(ctx, "Basketball Team")
		s.Require().NoError(err)
		s.Empty(a.Participants)
	})

	s.Run("absent email returns ErrNotMember and leaves roster intact", func() {
		err := s.store.RemoveParticipant(ctx, "Chess Club", "notregistered@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrNotMember)

		a, err := s.store.Find(ctx, "Chess Club")
		s.Require().NoError(err)
		s.Len(a.Participants, 2)
	})

	s.Run("unknown activity returns ErrNotFound", func() {
		err := s.store.RemoveParticipant(ctx, "Quidditch", "james@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestSignupThenUnregisterRoundTrips() {
	ctx := context.Background()
	before, err := s.store.Find(ctx, "Drama Club")
	s.Require().NoError(err)

	s.Require().NoError(s.store.AddParticipant(ctx, "Drama Club", "round@mergington.edu"))
	s.Require().NoError(s.store.RemoveParticipant(ctx, "Drama Club", "round@mergington.edu"))

	after, err := s.store.Find(ctx, "Drama Club")
	s.Require().NoError(err)
	s.Equal(before.Participants, after.Participants)
}

func (s *MemoryStoreSuite) TestSnapshotsAreIsolated() {
	ctx := context.Background()
	a, err := s.store.Find(ctx, "Chess Club")
	s.Require().NoError(err)
	a.Participants[0] = "tampered@mergington.edu"

	fresh, err := s.store.Find(ctx, "Chess Club")
	s.Require().NoError(err)
	s.Equal("michael@mergington.edu", fresh.Participants[0])
}

// TestConcurrentSignups verifies the lock prevents duplicate inserts and lost
// updates when many goroutines race on one roster.
func (s *MemoryStoreSuite) TestConcurrentSignups() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.store.AddParticipant(ctx, "Gym Class", fmt.Sprintf("student%d@mergington.edu", n))
		}(i)
	}
	wg.Wait()

	a, err := s.store.Find(ctx, "Gym Class")
	s.Require().NoError(err)
	s.Len(a.Participants, 2+goroutines)

	seen := make(map[string]bool, len(a.Participants))
	for _, p := range a.Participants {
		s.False(seen[p], "duplicate participant %s", p)
		seen[p] = true
	}
}
