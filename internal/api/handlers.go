package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avetisov/modera/internal/apperr"
	"github.com/avetisov/modera/internal/auth"
	"github.com/avetisov/modera/internal/listingservice"
	"github.com/avetisov/modera/internal/query"
	"github.com/avetisov/modera/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	svc  *listingservice.Service
	auth *auth.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *listingservice.Service, authSvc *auth.Service) *Handler {
	return &Handler{svc: svc, auth: authSvc}
}

// Login handles POST /auth/login. A malformed body is reported as a server
// error to match the dashboard contract, not as a 400.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("Server error"))
		return
	}

	user, token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, errorBody("Invalid credentials"))
			return
		}
		slog.Error("login failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Server error"))
		return
	}

	http.SetCookie(w, h.auth.SessionCookie(token))
	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: user})
}

// Logout handles POST /auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.auth.ClearCookie())
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Me handles GET /auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := actorFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("Not authenticated"))
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: user})
}

// ListListings handles GET /listings with optional status filter and
// page/limit pagination.
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	res := h.svc.List(r.Context(), query.Params{
		Status:   q.Get("status"),
		Page:     page,
		PageSize: limit,
	})
	writeJSON(w, http.StatusOK, ListingPageResponse{
		Success:    true,
		Data:       res.Items,
		Pagination: res.Pagination,
	})
}

// GetListing handles GET /listings/{id}.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	listing, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("Listing not found"))
		return
	}
	writeJSON(w, http.StatusOK, ListingResponse{Success: true, Data: listing})
}

// UpdateListing handles PUT /listings/{id}. The body is the allow-listed
// partial listing; unknown fields are ignored, identity and audit fields are
// not part of the patch type at all.
func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")

	var patch store.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("Server error"))
		return
	}
	if patch.Status != nil && !patch.Status.Valid() {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid status"))
		return
	}

	listing, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		h.writeUpdateError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, ListingResponse{Success: true, Data: listing})
}

// SetListingStatus handles PATCH /listings/{id}/status.
func (h *Handler) SetListingStatus(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("Server error"))
		return
	}

	listing, err := h.svc.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeUpdateError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, ListingResponse{Success: true, Data: listing})
}

// ListNotifications handles GET /notifications.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NotificationListResponse{
		Success: true,
		Data:    h.svc.Notifications(r.Context()),
	})
}

// DismissNotification handles DELETE /notifications/{id}. Dismissal is
// idempotent, so unknown ids still return success.
func (h *Handler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.svc.DismissNotification(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) writeUpdateError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("Listing not found"))
	case errors.Is(err, apperr.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid status"))
	case errors.Is(err, apperr.ErrIllegalTransition):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("Listing already decided"))
	default:
		slog.Error("update listing failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("Server error"))
	}
}
