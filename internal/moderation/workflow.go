// Package moderation implements the status state machine for listings.
package moderation

import (
	"fmt"

	"github.com/avetisov/modera/internal/apperr"
	"github.com/avetisov/modera/internal/models"
	"github.com/avetisov/modera/internal/store"
)

// Workflow governs status transitions. In the default permissive mode any
// status may be set from any other, matching the dashboard the operators
// already know; strict mode only allows pending listings to be decided.
type Workflow struct {
	repo   store.Repository
	strict bool
}

// New creates a workflow over the given repository.
func New(repo store.Repository, strict bool) *Workflow {
	return &Workflow{repo: repo, strict: strict}
}

// Strict reports whether transition legality is enforced.
func (w *Workflow) Strict() bool {
	return w.strict
}

// SetStatus moves the listing to target. It returns apperr.ErrInvalidStatus
// for a value outside the enum, apperr.ErrNotFound for an unknown id, and
// apperr.ErrIllegalTransition when strict mode forbids the edge.
func (w *Workflow) SetStatus(id string, target models.Status) (models.Listing, error) {
	if !target.Valid() {
		return models.Listing{}, fmt.Errorf("%w: %q", apperr.ErrInvalidStatus, target)
	}

	if w.strict {
		current, ok := w.repo.Get(id)
		if !ok {
			return models.Listing{}, apperr.ErrNotFound
		}
		if err := checkTransition(current.Status, target); err != nil {
			return models.Listing{}, err
		}
	}

	updated, ok := w.repo.UpdateStatus(id, target)
	if !ok {
		return models.Listing{}, apperr.ErrNotFound
	}
	return updated, nil
}

// Approve marks the listing approved.
func (w *Workflow) Approve(id string) (models.Listing, error) {
	return w.SetStatus(id, models.StatusApproved)
}

// Reject marks the listing rejected.
func (w *Workflow) Reject(id string) (models.Listing, error) {
	return w.SetStatus(id, models.StatusRejected)
}

// checkTransition enforces the strict edge set: only pending listings may be
// decided, and a decision cannot be reversed. Setting the current status
// again is allowed as a no-op edge.
func checkTransition(from, to models.Status) error {
	if from == to {
		return nil
	}
	if from == models.StatusPending {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", apperr.ErrIllegalTransition, from, to)
}
