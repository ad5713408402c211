package repository

import (
	"context"

	"github.com/taskdeck/taskdeck/domain"
)

// TaskPatch describes a partial update. Nil fields are left untouched;
// ClearDueDate removes the due date regardless of the DueDate field,
// distinguishing "not provided" from "explicitly cleared".
type TaskPatch struct {
	Title        *string
	Description  *string
	Priority     *domain.Priority
	Completed    *bool
	DueDate      *domain.Date
	ClearDueDate bool
}

// Apply merges the patch into a task. This is the reference semantics
// mirrored by the single-statement SQL update in the postgres repository.
func (p TaskPatch) Apply(t *domain.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	switch {
	case p.ClearDueDate:
		t.DueDate = nil
	case p.DueDate != nil:
		due := *p.DueDate
		t.DueDate = &due
	}
}

// TaskRepository scopes every operation by owner id: the owner always
// comes from the verified token, never from a request body.
type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	UpdatePartial(ctx context.Context, id, ownerID string, patch TaskPatch) (*domain.Task, error)
	ToggleCompleted(ctx context.Context, id, ownerID string) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}
