// Package store defines the persistence contract for the activity registry.
// Implementations live in the memory, postgres, and redis subpackages.
package store

import (
	"context"

	"mergington/internal/activity/model"
)

// Store is interface-driven to keep the domain logic testable and to allow
// swapping in-memory, SQL, or Redis persistence without rewiring business
// code. Mutations are atomic per activity: every implementation guards the
// read-modify-write on a participant list so concurrent requests cannot lose
// updates or insert duplicates.
type Store interface {
	// List returns all activities in insertion order.
	List(ctx context.Context) ([]model.Activity, error)

	// Find returns the activity with the given name, or sentinel.ErrNotFound.
	Find(ctx context.Context, name string) (model.Activity, error)

	// Put creates or replaces an activity. New names append to the insertion
	// order; existing names keep their position.
	Put(ctx context.Context, activity model.Activity) error

	// AddParticipant appends email to the activity's roster. Returns
	// sentinel.ErrNotFound for an unknown activity, sentinel.ErrConflict when
	// the email is already on the roster, and sentinel.ErrCapacity when the
	// roster is full.
	AddParticipant(ctx context.Context, name, email string) error

	// RemoveParticipant removes email from the activity's roster. Returns
	// sentinel.ErrNotFound for an unknown activity and sentinel.ErrNotMember
	// when the email is not on the roster.
	RemoveParticipant(ctx context.Context, name, email string) error
}
