package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"mergington/internal/activity/store"
	"mergington/internal/activity/store/memory"
	"mergington/internal/audit"
	dErrors "mergington/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	store   *memory.Store
	auditor *audit.Publisher
	events  *audit.InMemoryStore
	svc     *Service
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.Require().NoError(store.EnsureSeed(context.Background(), s.store))

	s.events = audit.NewInMemoryStore()
	s.auditor = audit.NewPublisher(s.events)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.svc = New(s.store, logger, WithAuditor(s.auditor))
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestListReturnsSeededCatalog() {
	activities, err := s.svc.List(context.Background())
	s.Require().NoError(err)
	s.Require().Len(activities, 9)
	s.Equal("Chess Club", activities[0].Name)
	s.Equal([]string{"michael@mergington.edu", "daniel@mergington.edu"}, activities[0].Participants)
}

func (s *ServiceSuite) TestSignup() {
	ctx := context.Background()

	s.Run("success returns confirmation and grows roster by one", func() {
		conf, err := s.svc.Signup(ctx, "Chess Club", "new@mergington.edu")
		s.Require().NoError(err)
		s.Contains(conf.Message, "new@mergington.edu")
		s.Contains(conf.Message, "Chess Club")

		a, err := s.store.Find(ctx, "Chess Club")
		s.Require().NoError(err)
		s.Len(a.Participants, 3)
		s.Equal("new@mergington.edu", a.Participants[2])
	})

	s.Run("duplicate signup fails and leaves the roster unchanged", func() {
		_, err := s.svc.Signup(ctx, "Chess Club", "new@mergington.edu")
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeAlreadyRegistered))

		a, err := s.store.Find(ctx, "Chess Club")
		s.Require().NoError(err)
		s.Len(a.Participants, 3)
	})

	s.Run("seeded participant cannot sign up again", func() {
		_, err := s.svc.Signup(ctx, "Chess Club", "michael@mergington.edu")
		s.True(dErrors.Is(err, dErrors.CodeAlreadyRegistered))
	})

	s.Run("unknown activity fails with not_found", func() {
		_, err := s.svc.Signup(ctx, "Nonexistent Activity", "student@mergington.edu")
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})

	s.Run("empty email fails with bad_request", func() {
		_, err := s.svc.Signup(ctx, "Chess Club", "")
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))
	})
}

func (s *ServiceSuite) TestUnregister() {
	ctx := context.Background()

	s.Run("success removes the participant", func() {
		conf, err := s.svc.Unregister(ctx, "Basketball Team", "james@mergington.edu")
		s.Require().NoError(err)
		s.Contains(conf.Message, "james@mergington.edu")

		a, err := s.store.Find(ctx, "Basketball Team")
		s.Require().NoError(err)
		s.Empty(a.Participants)
	})

	s.Run("absent participant fails with not_registered", func() {
		_, err := s.svc.Unregister(ctx, "Chess Club", "notregistered@mergington.edu")
		s.True(dErrors.Is(err, dErrors.CodeNotRegistered))

		a, err := s.store.Find(ctx, "Chess Club")
		s.Require().NoError(err)
		s.Len(a.Participants, 2)
	})

	s.Run("unknown activity fails with not_found", func() {
		_, err := s.svc.Unregister(ctx, "Nonexistent Activity", "student@mergington.edu")
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestSignupThenUnregisterRoundTrips() {
	ctx := context.Background()

	before, err := s.store.Find(ctx, "Programming Class")
	s.Require().NoError(err)

	_, err = s.svc.Signup(ctx, "Programming Class", "round@mergington.edu")
	s.Require().NoError(err)
	_, err = s.svc.Unregister(ctx, "Programming Class", "round@mergington.edu")
	s.Require().NoError(err)

	after, err := s.store.Find(ctx, "Programming Class")
	s.Require().NoError(err)
	s.Equal(before.Participants, after.Participants)
}

func (s *ServiceSuite) TestCapacityIsEnforced() {
	ctx := context.Background()

	// Debate Team caps at 16 with 1 seeded participant.
	for i := 0; i < 15; i++ {
		_, err := s.svc.Signup(ctx, "Debate Team", emailFor(i))
		s.Require().NoError(err)
	}

	_, err := s.svc.Signup(ctx, "Debate Team", "overflow@mergington.edu")
	s.Require().Error(err)
	s.True(dErrors.Is(err, dErrors.CodeActivityFull))
}

func (s *ServiceSuite) TestMutationsAreAudited() {
	ctx := context.Background()

	_, err := s.svc.Signup(ctx, "Art Studio", "new@mergington.edu")
	s.Require().NoError(err)
	_, err = s.svc.Unregister(ctx, "Art Studio", "new@mergington.edu")
	s.Require().NoError(err)

	events, err := s.events.ListByActivity(ctx, "Art Studio")
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(audit.ActionSignup, events[0].Action)
	s.Equal(audit.ActionUnregister, events[1].Action)
}

func (s *ServiceSuite) TestRejectionsAreNotAudited() {
	ctx := context.Background()

	_, err := s.svc.Signup(ctx, "Art Studio", "grace@mergington.edu")
	s.Require().Error(err)

	events, err := s.events.ListByActivity(ctx, "Art Studio")
	s.Require().NoError(err)
	s.Empty(events)
}

func emailFor(i int) string {
	return string(rune('a'+i)) + "@mergington.edu"
}
