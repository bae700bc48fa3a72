/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

ROUTE GROUPS:
  /api/plan          Document pull/push
  /api/forecast/*    Projection series
  /api/leadtime      Lead-time resolution
  /api/config        Client sync configuration
  /api/seed          Demo data (dev)

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

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
		AllowedOrigins:   h.Config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/plan", func(r chi.Router) {
			r.Get("/", h.GetPlan)
			r.Put("/", h.SavePlan)
		})

		r.Route("/forecast", func(r chi.Router) {
			r.Get("/", h.GetForecast)
			r.Get("/hybrid", h.GetHybridForecast)
		})

		r.Get("/leadtime", h.GetLeadTime)
		r.Get("/config", h.GetClientConfig)
		r.Post("/seed", h.SeedDemo)
	})

	// Landing page for anyone hitting the API host directly.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Cashplan API</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Cashplan API</h1>
<p>Cash-flow planning backend. The dashboard frontend is served separately.</p>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/plan">/api/plan</a> - Plan document</li>
<li><a href="/api/forecast">/api/forecast</a> - Balance projection</li>
<li><a href="/api/forecast/hybrid">/api/forecast/hybrid</a> - Projection with locked actuals</li>
<li><a href="/api/config">/api/config</a> - Client sync configuration</li>
</ul>
</body>
</html>`))
	})

	return r
}
