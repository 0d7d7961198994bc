package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avetisov/modera/internal/auth"
	"github.com/avetisov/modera/internal/listingservice"
)

// NewRouter creates a chi router with all API routes mounted.
// gate guards everything except login; sseHandler, if non-nil, is mounted at
// GET /events inside the auth group. latency, if positive, delays every
// request (cosmetic, mirrors the original dashboard's fake backend lag).
func NewRouter(svc *listingservice.Service, authSvc *auth.Service, gate auth.Gate, sseHandler http.Handler, latency time.Duration) chi.Router {
	h := NewHandler(svc, authSvc)

	r := chi.NewRouter()
	r.Use(SimulatedLatency(latency))

	// Login is the only unauthenticated route.
	r.Post("/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(gate))

		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)

		// Listings.
		r.Get("/listings", h.ListListings)
		r.Get("/listings/{id}", h.GetListing)
		r.Put("/listings/{id}", h.UpdateListing)
		r.Patch("/listings/{id}/status", h.SetListingStatus)

		// Operator notifications.
		r.Get("/notifications", h.ListNotifications)
		r.Delete("/notifications/{id}", h.DismissNotification)

		// SSE notification stream.
		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
