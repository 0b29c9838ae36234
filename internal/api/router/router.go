package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/theshadowable/iws-sh/internal/api/handlers"
	"github.com/theshadowable/iws-sh/internal/api/middleware"
	"github.com/theshadowable/iws-sh/internal/auth"
	"github.com/theshadowable/iws-sh/internal/config"
	"github.com/theshadowable/iws-sh/internal/pkg/logger"
	"github.com/theshadowable/iws-sh/internal/pkg/metrics"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Alert       *handlers.AlertHandler
	Leak        *handlers.LeakHandler
	Tip         *handlers.TipHandler
	Preferences *handlers.PreferencesHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Route("/api/v1", func(r chi.Router) {
			// Alerts
			r.Get("/alerts", h.Alert.List)
			r.Get("/alerts/summary", h.Alert.GetSummary)
			r.Get("/alerts/{id}", h.Alert.Get)
			r.Patch("/alerts/{id}/status", h.Alert.UpdateStatus)

			// Leak detection
			r.Get("/leaks", h.Leak.List)
			r.Post("/leaks/detect", h.Leak.Detect)
			r.Get("/leaks/{id}", h.Leak.Get)

			// Alert preferences
			r.Get("/preferences", h.Preferences.Get)
			r.Put("/preferences", h.Preferences.Update)

			// Tips
			r.Get("/tips", h.Tip.List)
			r.Post("/tips/generate", h.Tip.Generate)
			r.Post("/tips/{id}/viewed", h.Tip.MarkViewed)

			// Technician and admin operations
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleTechnician, auth.RoleAdmin))
				r.Post("/leaks/{id}/resolve", h.Leak.Resolve)
			})
		})
	})

	return r
}
