// Package handler is the thin HTTP layer over the activity service. It
// parses requests and maps results to the JSON wire format; business rules
// live in the service.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"mergington/internal/activity/model"
	"mergington/internal/activity/service"
	"mergington/internal/platform/middleware"
	"mergington/internal/transport/http/shared"
)

// Service defines the registry operations the handler depends on.
type Service interface {
	List(ctx context.Context) ([]model.Activity, error)
	Signup(ctx context.Context, activityName, email string) (service.Confirmation, error)
	Unregister(ctx context.Context, activityName, email string) (service.Confirmation, error)
}

// Handler handles activity registry endpoints.
type Handler struct {
	logger     *slog.Logger
	activities Service
}

// New creates an activity Handler.
func New(activities Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, activities: activities}
}

// Register registers the activity routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/activities", h.handleListActivities)
	r.Post("/activities/{activityName}/signup", h.handleSignup)
	r.Delete("/activities/{activityName}/unregister", h.handleUnregister)
}

func (h *Handler) handleListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, newCatalogResponse(activities))
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := activityName(r)
	email := r.URL.Query().Get("email")

	conf, err := h.activities.Signup(ctx, name, email)
	if err != nil {
		h.logger.WarnContext(ctx, "signup rejected",
			"request_id", middleware.GetRequestID(ctx),
			"activity", name,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteMessage(w, conf.Message)
}

func (h *Handler) handleUnregister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := activityName(r)
	email := r.URL.Query().Get("email")

	conf, err := h.activities.Unregister(ctx, name, email)
	if err != nil {
		h.logger.WarnContext(ctx, "unregister rejected",
			"request_id", middleware.GetRequestID(ctx),
			"activity", name,
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	shared.WriteMessage(w, conf.Message)
}

// activityName extracts the path segment, unescaping so names like
// "Chess Club" arrive intact whether the client sends a literal space or %20.
func activityName(r *http.Request) string {
	raw := chi.URLParam(r, "activityName")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}
