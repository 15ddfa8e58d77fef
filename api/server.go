/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests from the registration form

ROUTE GROUPS:
  /api/rooms, /api/packages, /api/quote   Pricing
  /api/admission-window, /api/email-check Form helpers
  /api/registrations/*                    Submission and receipts
  /health                                 Liveness

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
// An empty origins list allows any origin.
func NewRouter(h *Handler, origins []string) *chi.Mux {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/rooms", h.ListRooms)
		r.Get("/packages", h.ListPackages)
		r.Post("/quote", h.Quote)

		r.Get("/admission-window", h.AdmissionWindow)
		r.Get("/email-check", h.CheckEmail)

		r.Route("/registrations", func(r chi.Router) {
			r.Get("/", h.ListRegistrations)
			r.Post("/", h.SubmitRegistration)
			r.Get("/{id}", h.GetRegistration)
		})
	})

	return r
}
