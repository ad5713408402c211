package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// CreateInput carries the caller-provided fields of a new task. The
// owner id is never part of it.
type CreateInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	DueDate     *domain.Date
}

func (uc *UseCase) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return uc.tasks.ListByOwner(ctx, ownerID)
}

func (uc *UseCase) Create(ctx context.Context, ownerID string, input CreateInput) (*domain.Task, error) {
	if input.Title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "priority must be low, medium or high")
	}

	task := &domain.Task{
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
	}
	return uc.tasks.Create(ctx, task)
}

func (uc *UseCase) Update(ctx context.Context, ownerID, id string, patch repository.TaskPatch) (*domain.Task, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title cannot be empty")
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "priority must be low, medium or high")
	}
	return uc.tasks.UpdatePartial(ctx, id, ownerID, patch)
}

func (uc *UseCase) Toggle(ctx context.Context, ownerID, id string) (*domain.Task, error) {
	return uc.tasks.ToggleCompleted(ctx, id, ownerID)
}

func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	if err := uc.tasks.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	uc.logger.Info("task deleted", zap.String("task_id", id))
	return nil
}
