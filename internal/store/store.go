// Package store owns the in-memory listing collection. It stands in for a
// real database: listings are seeded at startup, scoped to the process, and
// never persisted. The store is the sole owner of listing instances; every
// read hands out copies, never live references.
package store

import (
	"sync"
	"time"

	"github.com/avetisov/modera/internal/models"
)

// Repository is the interface consumed by the query service, the moderation
// workflow, and the API layer.
type Repository interface {
	// All returns a snapshot of every listing in insertion order.
	All() []models.Listing
	// Get returns the listing with the given id, or false if unknown.
	Get(id string) (models.Listing, bool)
	// Update merges patch into the listing and stamps UpdatedAt.
	// Returns false (and changes nothing) for an unknown id.
	Update(id string, patch Patch) (models.Listing, bool)
	// UpdateStatus changes only the moderation status (and UpdatedAt).
	UpdateStatus(id string, status models.Status) (models.Listing, bool)
}

// Patch is the allow-listed set of mutable listing fields. Nil fields are
// left unchanged. ID, SubmittedBy, and SubmittedAt are deliberately absent:
// identity and audit fields cannot be rewritten through an update.
type Patch struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Brand       *string        `json:"brand"`
	Model       *string        `json:"model"`
	Year        *int           `json:"year"`
	PricePerDay *float64       `json:"pricePerDay"`
	Location    *string        `json:"location"`
	ImageURL    *string        `json:"imageUrl"`
	Status      *models.Status `json:"status"`
}

// Memory implements Repository over a mutex-guarded slice.
type Memory struct {
	mu       sync.RWMutex
	listings []models.Listing
	now      func() time.Time
}

// Option configures a Memory store.
type Option func(*Memory)

// WithClock overrides the time source used to stamp UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory creates a store holding the given listings. Pass Seed() for the
// built-in fixture set.
func NewMemory(listings []models.Listing, opts ...Option) *Memory {
	m := &Memory{
		listings: make([]models.Listing, len(listings)),
		now:      time.Now,
	}
	copy(m.listings, listings)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// All returns a snapshot copy of every listing in insertion order.
func (m *Memory) All() []models.Listing {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Listing, len(m.listings))
	copy(out, m.listings)
	return out
}

// Get returns the listing with the given id.
func (m *Memory) Get(id string) (models.Listing, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.listings {
		if l.ID == id {
			return l, true
		}
	}
	return models.Listing{}, false
}

// Update merges patch into the listing with the given id and stamps
// UpdatedAt with the current time. Unknown ids are a no-op.
func (m *Memory) Update(id string, patch Patch) (models.Listing, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.listings {
		if m.listings[i].ID != id {
			continue
		}
		l := &m.listings[i]
		if patch.Title != nil {
			l.Title = *patch.Title
		}
		if patch.Description != nil {
			l.Description = *patch.Description
		}
		if patch.Brand != nil {
			l.Brand = *patch.Brand
		}
		if patch.Model != nil {
			l.Model = *patch.Model
		}
		if patch.Year != nil {
			l.Year = *patch.Year
		}
		if patch.PricePerDay != nil {
			l.PricePerDay = *patch.PricePerDay
		}
		if patch.Location != nil {
			l.Location = *patch.Location
		}
		if patch.ImageURL != nil {
			l.ImageURL = *patch.ImageURL
		}
		if patch.Status != nil {
			l.Status = *patch.Status
		}
		l.UpdatedAt = m.now().UTC()
		return *l, true
	}
	return models.Listing{}, false
}

// UpdateStatus changes only the moderation status of the listing.
func (m *Memory) UpdateStatus(id string, status models.Status) (models.Listing, bool) {
	return m.Update(id, Patch{Status: &status})
}

// Len returns the number of listings in the store.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.listings)
}
