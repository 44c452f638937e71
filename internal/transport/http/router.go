// Package httptransport wires all public endpoints onto one router.
package httptransport

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	activityhandler "mergington/internal/activity/handler"
	"mergington/internal/platform/metrics"
	"mergington/internal/platform/middleware"
	"mergington/internal/transport/http/shared"
)

// NewRouter assembles the middleware chain and routes. The activity handler
// owns the registry endpoints; everything else here is plumbing: the index
// redirect, static assets, health, and Prometheus exposition.
func NewRouter(h *activityhandler.Handler, logger *slog.Logger, m *metrics.Metrics, staticDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	if m != nil {
		r.Use(middleware.Latency(m))
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/static/index.html", http.StatusTemporaryRedirect)
	})

	// FileServer 301-redirects any path ending in index.html to its
	// directory; rewriting the suffix first serves the page directly, so the
	// root redirect above resolves in one hop.
	staticFiles := http.FileServer(http.Dir(staticDir))
	fileServer := http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "index.html") {
			req.URL.Path = strings.TrimSuffix(req.URL.Path, "index.html")
		}
		staticFiles.ServeHTTP(w, req)
	}))
	r.Get("/static/*", fileServer.ServeHTTP)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Register(r)
	return r
}
