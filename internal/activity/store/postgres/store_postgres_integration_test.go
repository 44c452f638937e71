//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"mergington/internal/activity/model"
	"mergington/internal/activity/store"
	"mergington/internal/activity/store/postgres"
	"mergington/pkg/platform/sentinel"
	"mergington/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = postgres.New(s.pg.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.pg.TruncateTables(ctx, "participants", "activities"))
	s.Require().NoError(store.EnsureSeed(ctx, s.store))
}

func (s *PostgresStoreSuite) TestListKeepsSeedOrder() {
	activities, err := s.store.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(activities, 9)

	seed := store.DefaultActivities()
	for i, a := range activities {
		s.Equal(seed[i].Name, a.Name)
		s.Equal(seed[i].Participants, a.Participants)
	}
}

func (s *PostgresStoreSuite) TestSignupAndUnregister() {
	ctx := context.Background()

	s.Require().NoError(s.store.AddParticipant(ctx, "Chess Club", "new@mergington.edu"))

	a, err := s.store.Find(ctx, "Chess Club")
	s.Require().NoError(err)
	s.Equal([]string{"michael@mergington.edu", "daniel@mergington.edu", "new@mergington.edu"}, a.Participants)

	s.Require().ErrorIs(s.store.AddParticipant(ctx, "Chess Club", "new@mergington.edu"), sentinel.ErrConflict)
	s.Require().ErrorIs(s.store.AddParticipant(ctx, "Quidditch", "new@mergington.edu"), sentinel.ErrNotFound)

	s.Require().NoError(s.store.RemoveParticipant(ctx, "Chess Club", "new@mergington.edu"))
	s.Require().ErrorIs(s.store.RemoveParticipant(ctx, "Chess Club", "new@mergington.edu"), sentinel.ErrNotMember)
	s.Require().ErrorIs(s.store.RemoveParticipant(ctx, "Quidditch", "new@mergington.edu"), sentinel.ErrNotFound)

	a, err = s.store.Find(ctx, "Chess Club")
	s.Require().NoError(err)
	s.Equal([]string{"michael@mergington.edu", "daniel@mergington.edu"}, a.Participants)
}

// TestConcurrentSignupsRespectCapacity verifies the row lock serializes the
// capacity check so racing signups never over-admit.
func (s *PostgresStoreSuite) TestConcurrentSignupsRespectCapacity() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, model.Activity{
		Name:            "Robotics Lab",
		Description:     "Build and program robots",
		Schedule:        "Saturdays, 10:00 AM - 12:00 PM",
		MaxParticipants: 5,
	}))

	const goroutines = 20
	var wg sync.WaitGroup
	var admitted atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := s.store.AddParticipant(ctx, "Robotics Lab", fmt.Sprintf("student%d@mergington.edu", n))
			if err == nil {
				admitted.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(5), admitted.Load())

	a, err := s.store.Find(ctx, "Robotics Lab")
	s.Require().NoError(err)
	s.Len(a.Participants, 5)
}
