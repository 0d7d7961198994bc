// Package api implements the Modera REST API using chi.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/avetisov/modera/internal/auth"
	"github.com/avetisov/modera/internal/models"
)

type contextKey string

const actorKey contextKey = "actor"

// RequireAuth returns middleware that resolves the session actor through the
// gate and rejects requests without one. The resolved user is stored on the
// request context for handlers.
func RequireAuth(gate auth.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := gate.Actor(r)
			if !ok {
				writeJSON(w, http.StatusUnauthorized, errorBody("Unauthorized"))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, user)))
		})
	}
}

// actorFrom returns the authenticated user placed by RequireAuth.
func actorFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(actorKey).(models.User)
	return user, ok
}

// SimulatedLatency returns middleware that sleeps before each request is
// handled. The original dashboard inserted an artificial delay to mimic a
// slow backend; zero disables it.
func SimulatedLatency(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(d)
			next.ServeHTTP(w, r)
		})
	}
}
