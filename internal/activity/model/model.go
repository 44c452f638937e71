// Package model defines the activity record shared by stores, services, and
// transport.
package model

// Activity is a named extracurricular offering. Name is the unique,
// case-sensitive key; Participants holds signed-up student emails in signup
// order, each at most once.
type Activity struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// Clone returns a deep copy so callers can hand out activity snapshots
// without exposing the store's participant slice to mutation.
func (a Activity) Clone() Activity {
	out := a
	out.Participants = append([]string(nil), a.Participants...)
	return out
}

// HasParticipant reports whether email is already on the roster.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}
