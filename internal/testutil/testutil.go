// Package testutil provides shared test helpers for building seeded services.
package testutil

import (
	"testing"
	"time"

	"github.com/avetisov/modera/internal/auth"
	"github.com/avetisov/modera/internal/listingservice"
	"github.com/avetisov/modera/internal/models"
	"github.com/avetisov/modera/internal/moderation"
	"github.com/avetisov/modera/internal/notify"
	"github.com/avetisov/modera/internal/store"
)

// Admin credentials used by test fixtures.
const (
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin123"
)

// Service builds a listing service over the seeded in-memory store.
// Notification timers are cleaned up with the test.
func Service(t *testing.T, strict bool) (*listingservice.Service, *store.Memory) {
	t.Helper()
	repo := store.NewMemory(store.Seed())
	center := notify.NewCenter()
	t.Cleanup(center.Close)
	return listingservice.NewService(repo, moderation.New(repo, strict), center), repo
}

// Auth builds an auth service with the fixture admin credentials.
func Auth(t *testing.T) *auth.Service {
	t.Helper()
	hash, err := auth.HashPassword(AdminPassword)
	if err != nil {
		t.Fatal(err)
	}
	admin := models.User{ID: "1", Email: AdminEmail, Name: "Admin User", Role: "admin"}
	return auth.NewService(admin, hash, auth.NewTokenManager("test-secret", "modera-test", time.Hour))
}
