package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"mergington/internal/activity/model"
	"mergington/internal/activity/store"
	"mergington/pkg/platform/sentinel"
)

type RedisStoreSuite struct {
	suite.Suite
	mini   *miniredis.Miniredis
	client *goredis.Client
	store  *Store
}

func (s *RedisStoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = goredis.NewClient(&goredis.Options{Addr: s.mini.Addr()})
	s.store = New(s.client)
	s.Require().NoError(store.EnsureSeed(context.Background(), s.store))
}

func (s *RedisStoreSuite) TearDownTest() {
	_ = s.client.Close()
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) TestListKeepsSeedOrder() {
	activities, err := s.store.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(activities, 9)

	seed := store.DefaultActivities()
	for i, a := range activities {
		s.Equal(seed[i].Name, a.Name)
		s.Equal(seed[i].MaxParticipants, a.MaxParticipants)
		s.Equal(seed[i].Participants, a.Participants)
	}
}

func (s *RedisStoreSuite) TestSeedIsIdempotent() {
	s.Require().NoError(store.EnsureSeed(context.Background(), s.store))

	activities, err := s.store.List(context.Background())
	s.Require().NoError(err)
	s.Len(activities, 9)
}

func (s *RedisStoreSuite) TestAddParticipant() {
	ctx := context.Background()

	s.Run("appends in signup order", func() {
		s.Require().NoError(s.store.AddParticipant(ctx, "Chess Club", "new@mergington.edu"))

		a, err := s.store.Find(ctx, "Chess Club")
		s.Require().NoError(err)
		s.Equal([]string{"michael@mergington.edu", "daniel@mergington.edu", "new@mergington.edu"}, a.Participants)
	})

	s.Run("duplicate email returns ErrConflict", func() {
		err := s.store.AddParticipant(ctx, "Chess Club", "michael@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrConflict)
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

func (s *RedisStoreSuite) TestRemoveParticipant() {
	ctx := context.Background()

	s.Run("removes the last participant", func() {
		s.Require().NoError(s.store.RemoveParticipant(ctx, "Basketball Team", "james@mergington.edu"))

		a, err := s.store.Find(ctx, "Basketball Team")
		s.Require().NoError(err)
		s.Empty(a.Participants)
	})

	s.Run("absent email returns ErrNotMember", func() {
		err := s.store.RemoveParticipant(ctx, "Chess Club", "notregistered@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrNotMember)
	})

	s.Run("unknown activity returns ErrNotFound", func() {
		err := s.store.RemoveParticipant(ctx, "Quidditch", "james@mergington.edu")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *RedisStoreSuite) TestSignupThenUnregisterRoundTrips() {
	ctx := context.Background()

	s.Require().NoError(s.store.AddParticipant(ctx, "Debate Team", "round@mergington.edu"))
	s.Require().NoError(s.store.RemoveParticipant(ctx, "Debate Team", "round@mergington.edu"))

	a, err := s.store.Find(ctx, "Debate Team")
	s.Require().NoError(err)
	s.Equal([]string{"rachel@mergington.edu"}, a.Participants)
}
