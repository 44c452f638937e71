package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: entity already present (duplicate insert)
// - ErrNotMember: participant is not in the activity's roster
// - ErrCapacity: activity roster is at max_participants
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrNotMember = errors.New("not a member")
	ErrCapacity  = errors.New("at capacity")
)
