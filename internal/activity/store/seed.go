package store

import (
	"context"
	"fmt"

	"mergington/internal/activity/model"
)

// DefaultActivities returns the school's activity catalog. The registry is
// seeded from this table at process start; activities are never created or
// deleted at runtime.
func DefaultActivities() []model.Activity {
	return []model.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Competitive basketball team for intramural and tournament play",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"james@mergington.edu"},
		},
		{
			Name:            "Track and Field",
			Description:     "Sprint, distance, and field events for all skill levels",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"sarah@mergington.edu", "alex@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Explore painting, drawing, and sculpture techniques",
			Schedule:        "Mondays and Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"grace@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Perform in plays and musicals throughout the school year",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"lucas@mergington.edu", "maya@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop critical thinking and public speaking skills",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"rachel@mergington.edu"},
		},
		{
			Name:            "Science Club",
			Description:     "Conduct experiments and explore scientific concepts",
			Schedule:        "Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"david@mergington.edu", "natalie@mergington.edu"},
		},
	}
}

// EnsureSeed populates s with the default catalog when it is empty. Backends
// with durable state (Postgres, Redis) keep whatever rosters they already
// hold; the in-memory store is always empty at startup and resets to the seed
// on every restart.
func EnsureSeed(ctx context.Context, s Store) error {
	existing, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("list activities: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, a := range DefaultActivities() {
		if err := s.Put(ctx, a); err != nil {
			return fmt.Errorf("seed activity %q: %w", a.Name, err)
		}
	}
	return nil
}
