package api

import (
	"github.com/avetisov/modera/internal/models"
	"github.com/avetisov/modera/internal/query"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"admin123"`
}

// StatusRequest is the request body for PATCH /listings/{id}/status.
type StatusRequest struct {
	Status string `json:"status" example:"approved"`
}

// UserResponse wraps the authenticated user.
type UserResponse struct {
	Success bool        `json:"success"`
	User    models.User `json:"user"`
}

// ListingResponse wraps a single listing.
type ListingResponse struct {
	Success bool           `json:"success"`
	Data    models.Listing `json:"data"`
}

// ListingPageResponse wraps a paginated listing page.
type ListingPageResponse struct {
	Success    bool             `json:"success"`
	Data       []models.Listing `json:"data"`
	Pagination query.Pagination `json:"pagination"`
}

// NotificationListResponse wraps the active operator notifications.
type NotificationListResponse struct {
	Success bool                  `json:"success"`
	Data    []models.Notification `json:"data"`
}
