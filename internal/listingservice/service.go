// Package listingservice coordinates the repository, the query service, the
// moderation workflow, and the notification center behind one API surface.
package listingservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/avetisov/modera/internal/apperr"
	"github.com/avetisov/modera/internal/metrics"
	"github.com/avetisov/modera/internal/models"
	"github.com/avetisov/modera/internal/moderation"
	"github.com/avetisov/modera/internal/notify"
	"github.com/avetisov/modera/internal/query"
	"github.com/avetisov/modera/internal/store"
)

// Service is the moderation application service.
type Service struct {
	repo     store.Repository
	workflow *moderation.Workflow
	center   *notify.Center
}

// NewService creates a listing service.
func NewService(repo store.Repository, workflow *moderation.Workflow, center *notify.Center) *Service {
	return &Service{repo: repo, workflow: workflow, center: center}
}

// List returns a filtered, paginated page over the current snapshot.
func (s *Service) List(_ context.Context, params query.Params) query.Result {
	return query.Paginate(s.repo.All(), params)
}

// Get returns a single listing by id.
func (s *Service) Get(_ context.Context, id string) (models.Listing, error) {
	l, ok := s.repo.Get(id)
	if !ok {
		return models.Listing{}, apperr.ErrNotFound
	}
	return l, nil
}

// Update merges the allow-listed patch fields into the listing. A status
// inside the patch goes through the workflow so strict-mode rules still
// apply; the remaining fields are merged afterwards.
func (s *Service) Update(_ context.Context, id string, patch store.Patch) (models.Listing, error) {
	if patch.Status != nil {
		if _, err := s.workflow.SetStatus(id, *patch.Status); err != nil {
			s.center.Error("Failed to update listing")
			return models.Listing{}, err
		}
		patch.Status = nil
	}
	updated, ok := s.repo.Update(id, patch)
	if !ok {
		s.center.Error("Failed to update listing")
		return models.Listing{}, apperr.ErrNotFound
	}
	s.center.Success("Listing updated successfully")
	return updated, nil
}

// SetStatus moves the listing to the given raw status value and records the
// outcome as an operator notification and a decision metric.
func (s *Service) SetStatus(_ context.Context, id, raw string) (models.Listing, error) {
	status, err := models.ParseStatus(raw)
	if err != nil {
		metrics.ObserveDecision(raw, "invalid")
		return models.Listing{}, fmt.Errorf("%w: %q", apperr.ErrInvalidStatus, raw)
	}

	updated, err := s.workflow.SetStatus(id, status)
	if err != nil {
		metrics.ObserveDecision(raw, errResult(err))
		s.center.Error("Failed to update listing")
		return models.Listing{}, err
	}

	metrics.ObserveDecision(raw, "ok")
	s.center.Success(fmt.Sprintf("Listing %s successfully", status))
	return updated, nil
}

// Notifications returns the live operator notifications in creation order.
func (s *Service) Notifications(_ context.Context) []models.Notification {
	return s.center.Active()
}

// DismissNotification removes a notification by id; unknown ids are a no-op.
func (s *Service) DismissNotification(_ context.Context, id string) {
	s.center.Dismiss(id)
}

func errResult(err error) string {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrIllegalTransition):
		return "illegal_transition"
	default:
		return "error"
	}
}
