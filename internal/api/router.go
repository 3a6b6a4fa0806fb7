// Package api assembles the HTTP router for the status and settings
// endpoints backing the settings-save flow.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DiabolusGX/snack-track/internal/api/handler"
	"github.com/DiabolusGX/snack-track/internal/service"
	"github.com/DiabolusGX/snack-track/internal/tracker"
)

// Options carry the dependencies and switches for the router.
type Options struct {
	Settings       *service.Settings
	Tracker        *tracker.Tracker
	Logger         *slog.Logger
	MetricsEnabled bool
}

// NewRouter builds the chi router.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if opts.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	status := &handler.StatusHandler{Tracker: opts.Tracker}
	settings := &handler.SettingsHandler{Settings: opts.Settings, Tracker: opts.Tracker, Logger: opts.Logger}

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", status.Get)
		r.Post("/settings", settings.Save)
	})

	return r
}
