// Package service implements the registry operations: list, signup, and
// unregister. It owns the translation from store sentinels to coded domain
// errors; handlers only map codes to status lines.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mergington/internal/activity/metrics"
	"mergington/internal/activity/model"
	"mergington/internal/activity/store"
	"mergington/internal/audit"
	dErrors "mergington/pkg/domain-errors"
	"mergington/pkg/platform/sentinel"
)

// Auditor receives an event for every successful roster mutation.
type Auditor interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Confirmation is returned from successful mutations; Message is the
// human-readable text the API surfaces.
type Confirmation struct {
	Activity string
	Email    string
	Message  string
}

// Service orchestrates registry operations over a pluggable store.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor Auditor
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithAuditor attaches an audit event destination.
func WithAuditor(a Auditor) Option {
	return func(s *Service) { s.auditor = a }
}

// WithMetrics attaches operation counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New creates a Service over the given store.
func New(st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: logger,
		tracer: otel.Tracer("mergington/activity"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every activity with its current roster, in catalog order.
func (s *Service) List(ctx context.Context) ([]model.Activity, error) {
	ctx, span := s.tracer.Start(ctx, "activity.list")
	defer span.End()

	activities, err := s.store.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list activities", "error", err)
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list activities")
	}
	return activities, nil
}

// Signup appends email to the activity's roster.
func (s *Service) Signup(ctx context.Context, activityName, email string) (Confirmation, error) {
	ctx, span := s.tracer.Start(ctx, "activity.signup",
		trace.WithAttributes(attribute.String("activity", activityName)))
	defer span.End()

	if email == "" {
		s.metrics.IncrementRejections(string(dErrors.CodeBadRequest))
		return Confirmation{}, dErrors.New(dErrors.CodeBadRequest, "email is required")
	}

	if err := s.store.AddParticipant(ctx, activityName, email); err != nil {
		return Confirmation{}, s.reject(ctx, "signup", activityName, err)
	}

	s.metrics.IncrementSignups()
	s.emitAudit(ctx, audit.Event{Action: audit.ActionSignup, Activity: activityName, Email: email})

	return Confirmation{
		Activity: activityName,
		Email:    email,
		Message:  fmt.Sprintf("Signed up %s for %s", email, activityName),
	}, nil
}

// Unregister removes email from the activity's roster.
func (s *Service) Unregister(ctx context.Context, activityName, email string) (Confirmation, error) {
	ctx, span := s.tracer.Start(ctx, "activity.unregister",
		trace.WithAttributes(attribute.String("activity", activityName)))
	defer span.End()

	if email == "" {
		s.metrics.IncrementRejections(string(dErrors.CodeBadRequest))
		return Confirmation{}, dErrors.New(dErrors.CodeBadRequest, "email is required")
	}

	if err := s.store.RemoveParticipant(ctx, activityName, email); err != nil {
		return Confirmation{}, s.reject(ctx, "unregister", activityName, err)
	}

	s.metrics.IncrementUnregisters()
	s.emitAudit(ctx, audit.Event{Action: audit.ActionUnregister, Activity: activityName, Email: email})

	return Confirmation{
		Activity: activityName,
		Email:    email,
		Message:  fmt.Sprintf("Unregistered %s from %s", email, activityName),
	}, nil
}

// reject translates store sentinels into coded domain errors and counts the
// rejection. Unknown errors are logged and hidden behind CodeInternal.
func (s *Service) reject(ctx context.Context, op, activityName string, err error) error {
	var domainErr *dErrors.Error
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		domainErr = dErrors.New(dErrors.CodeNotFound, "Activity not found")
	case errors.Is(err, sentinel.ErrConflict):
		domainErr = dErrors.New(dErrors.CodeAlreadyRegistered, "Student is already signed up")
	case errors.Is(err, sentinel.ErrNotMember):
		domainErr = dErrors.New(dErrors.CodeNotRegistered, "Student is not registered for this activity")
	case errors.Is(err, sentinel.ErrCapacity):
		domainErr = dErrors.New(dErrors.CodeActivityFull, "Activity is full")
	default:
		s.logger.ErrorContext(ctx, "registry operation failed",
			"op", op,
			"activity", activityName,
			"error", err,
		)
		domainErr = dErrors.New(dErrors.CodeInternal, "internal server error")
	}
	s.metrics.IncrementRejections(string(domainErr.Code))
	return domainErr
}

// emitAudit records the mutation. Audit failures are logged, not surfaced:
// the roster change has already committed.
func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to record audit event",
			"action", event.Action,
			"activity", event.Activity,
			"error", err,
		)
	}
}
