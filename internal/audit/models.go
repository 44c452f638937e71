// Package audit records registry mutations. Events are emitted from the
// activity service and fanned out to a store plus optional external sinks.
package audit

import "time"

// Action identifies what happened to a roster.
type Action string

const (
	ActionSignup     Action = "signup"
	ActionUnregister Action = "unregister"
)

// Event is emitted from domain logic to capture roster changes. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Activity  string    `json:"activity"`
	Email     string    `json:"email"`
}
