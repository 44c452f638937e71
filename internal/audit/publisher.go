package audit

import (
	"context"
	"time"
)

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
	sinks []Sink
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithSink registers an additional destination that receives every event
// after the store write succeeds.
func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		if sink != nil {
			p.sinks = append(p.sinks, sink)
		}
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit appends the event to the store, then fans out to sinks. Sink failures
// propagate so callers can decide whether the operation should fail.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := p.store.Append(ctx, event); err != nil {
		return err
	}
	for _, sink := range p.sinks {
		if err := sink.Append(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) List(ctx context.Context, activity string) ([]Event, error) {
	return p.store.ListByActivity(ctx, activity)
}
