// Package models defines the domain types for Modera.
package models

import (
	"fmt"
	"time"
)

// Status is the moderation state of a listing.
type Status string

// Moderation states.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the three moderation states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid status %q", raw)
	}
	return s, nil
}

// Listing represents a user-submitted car-rental listing under moderation.
type Listing struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Brand       string    `json:"brand" yaml:"brand"`
	Model       string    `json:"model" yaml:"model"`
	Year        int       `json:"year" yaml:"year"`
	PricePerDay float64   `json:"pricePerDay" yaml:"price_per_day"`
	Location    string    `json:"location" yaml:"location"`
	ImageURL    string    `json:"imageUrl" yaml:"image_url"`
	Status      Status    `json:"status" yaml:"status"`
	SubmittedBy string    `json:"submittedBy" yaml:"submitted_by"`
	SubmittedAt time.Time `json:"submittedAt" yaml:"submitted_at"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updated_at"`
}

// NotificationType classifies an operator notification.
type NotificationType string

// Notification types.
const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyInfo    NotificationType = "info"
)

// Notification is a transient operator-facing event. Entries are immutable
// once created; they are removed by dismissal or expiry, never updated.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
}

// User is the authenticated admin actor.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
