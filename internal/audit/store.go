package audit

import "context"

// Store is the append-only persistence contract for audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByActivity(ctx context.Context, activity string) ([]Event, error)
}

// Sink receives a copy of every event without offering reads. External
// destinations (Kafka) implement Sink only.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
