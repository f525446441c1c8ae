/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/timetable           Shift code definitions
  /api/patterns/*          Rotation patterns
  /api/companies/*         Companies, teams, schedules, coverage, export
  /api/validation-runs     Archived sweeper runs
  /api/healthz             Liveness

SECURITY NOTE:
  No authentication middleware. Schedules are shared reference data and
  every endpoint except cache invalidation is read-only.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", h.Health)
		r.Get("/timetable", h.GetTimeTable)

		// Pattern routes
		r.Route("/patterns", func(r chi.Router) {
			r.Get("/", h.ListPatterns)
			r.Get("/{patternID}", h.GetPattern)
		})

		// Company routes
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", h.ListCompanies)

			r.Route("/{companyID}", func(r chi.Router) {
				r.Get("/", h.GetCompany)
				r.Get("/teams", h.ListTeams)
				r.Get("/config-check", h.CheckConfiguration)
				r.Get("/schedule", h.GetScheduleForAllTeams)
				r.Get("/coverage", h.ValidateCoverage)
				r.Get("/export/{format}", h.ExportSchedule)
				r.Post("/cache/invalidate", h.InvalidateCache)

				r.Route("/teams/{teamID}", func(r chi.Router) {
					r.Get("/shift", h.GetShift)
					r.Get("/schedule", h.GetSchedule)
					r.Get("/stats", h.GetStats)
				})
			})
		})

		// QA routes
		r.Get("/validation-runs", h.ListValidationRuns)
	})

	return r
}
