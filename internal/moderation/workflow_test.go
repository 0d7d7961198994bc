package moderation

import (
	"errors"
	"testing"

	"github.com/avetisov/modera/internal/apperr"
	"github.com/avetisov/modera/internal/models"
	"github.com/avetisov/modera/internal/store"
)

func TestSetStatusPermissiveAllowsAnyEdge(t *testing.T) {
	w := New(store.NewMemory(store.Seed()), false)

	// Listing 3 is seeded rejected; permissive mode re-approves it.
	got, err := w.SetStatus("3", models.StatusApproved)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}
}

func TestSetStatusInvalidEnum(t *testing.T) {
	w := New(store.NewMemory(store.Seed()), false)

	_, err := w.SetStatus("1", models.Status("archived"))
	if !errors.Is(err, apperr.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestSetStatusUnknownID(t *testing.T) {
	repo := store.NewMemory(store.Seed())
	w := New(repo, false)

	before := repo.Len()
	_, err := w.SetStatus("nonexistent", models.StatusApproved)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if repo.Len() != before {
		t.Error("repository changed by failed transition")
	}
}

func TestStrictTransitions(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		target  models.Status
		wantErr error
	}{
		{"pending to approved", "1", models.StatusApproved, nil},
		{"pending to rejected", "4", models.StatusRejected, nil},
		{"approved to rejected forbidden", "2", models.StatusRejected, apperr.ErrIllegalTransition},
		{"rejected to approved forbidden", "3", models.StatusApproved, apperr.ErrIllegalTransition},
		{"approved to pending forbidden", "2", models.StatusPending, apperr.ErrIllegalTransition},
		{"same status no-op edge", "2", models.StatusApproved, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(store.NewMemory(store.Seed()), true)
			got, err := w.SetStatus(tt.id, tt.target)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SetStatus: %v", err)
			}
			if got.Status != tt.target {
				t.Errorf("status = %q, want %q", got.Status, tt.target)
			}
		})
	}
}

func TestApproveReject(t *testing.T) {
	w := New(store.NewMemory(store.Seed()), false)

	approved, err := w.Approve("1")
	if err != nil || approved.Status != models.StatusApproved {
		t.Errorf("Approve = %q, %v", approved.Status, err)
	}
	rejected, err := w.Reject("4")
	if err != nil || rejected.Status != models.StatusRejected {
		t.Errorf("Reject = %q, %v", rejected.Status, err)
	}
}
