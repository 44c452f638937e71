package audit

import (
	"context"
	"log/slog"
)

// Inbox is a channel-backed Auditor. Emit hands the event to a Worker so
// recording happens off the request path.
type Inbox chan Event

// Emit enqueues the event, blocking only if the buffer is full.
func (in Inbox) Emit(ctx context.Context, event Event) error {
	select {
	case in <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Worker consumes audit events from an inbox and hands them to a publisher.
// Publish failures are logged and skipped: the roster change the event
// describes has already committed, so the trail is best-effort.
type Worker struct {
	publisher *Publisher
	inbox     <-chan Event
	logger    *slog.Logger
}

func NewWorker(publisher *Publisher, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{publisher: publisher, inbox: inbox, logger: logger}
}

// Run consumes until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.publisher.Emit(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "failed to record audit event",
					"action", event.Action,
					"activity", event.Activity,
					"error", err,
				)
			}
		}
	}
}
