package task

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/repository"
)

// fakeTaskRepo mimics the owner-scoped single-statement semantics of
// the Postgres repository.
type fakeTaskRepo struct {
	tasks map[string]*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (f *fakeTaskRepo) owned(id, ownerID string) (*domain.Task, bool) {
	t, ok := f.tasks[id]
	if !ok || t.UserID != ownerID {
		return nil, false
	}
	return t, true
}

func (f *fakeTaskRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	out := []domain.Task{}
	for _, t := range f.tasks {
		if t.UserID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	task.ID = uuid.NewString()
	task.CreatedAt = time.Now()
	stored := *task
	f.tasks[task.ID] = &stored
	return task, nil
}

func (f *fakeTaskRepo) UpdatePartial(_ context.Context, id, ownerID string, patch repository.TaskPatch) (*domain.Task, error) {
	t, ok := f.owned(id, ownerID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	patch.Apply(t)
	copied := *t
	return &copied, nil
}

func (f *fakeTaskRepo) ToggleCompleted(_ context.Context, id, ownerID string) (*domain.Task, error) {
	t, ok := f.owned(id, ownerID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	t.Completed = !t.Completed
	copied := *t
	return &copied, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id, ownerID string) error {
	if _, ok := f.owned(id, ownerID); !ok {
		return domain.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func newTestUseCase() (*UseCase, *fakeTaskRepo) {
	repo := newFakeTaskRepo()
	return New(repo, nil), repo
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", CreateInput{Title: "Pay rent"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Priority != domain.PriorityMedium {
		t.Fatalf("priority should default to medium, got %q", created.Priority)
	}
	if created.Completed {
		t.Fatalf("new task should be pending")
	}
	if created.UserID != "u1" {
		t.Fatalf("owner not set: %q", created.UserID)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("server-assigned fields missing: %+v", created)
	}

	if _, err := uc.Create(ctx, "u1", CreateInput{}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("empty title: expected INVALID, got %v", err)
	}
	if _, err := uc.Create(ctx, "u1", CreateInput{Title: "x", Priority: "urgent"}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("bad priority: expected INVALID, got %v", err)
	}
}

func TestUpdate_PartialSemantics(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	due := domain.NewDate(2026, time.October, 1)
	created, err := uc.Create(ctx, "u1", CreateInput{
		Title:       "Pay rent",
		Description: "wire transfer",
		Priority:    domain.PriorityHigh,
		DueDate:     &due,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	title := "Pay rent early"
	updated, err := uc.Update(ctx, "u1", created.ID, repository.TaskPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != title {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Description != "wire transfer" || updated.Priority != domain.PriorityHigh || updated.DueDate == nil {
		t.Fatalf("omitted fields changed: %+v", updated)
	}

	cleared, err := uc.Update(ctx, "u1", created.ID, repository.TaskPatch{ClearDueDate: true})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if cleared.DueDate != nil {
		t.Fatalf("due date not cleared: %v", cleared.DueDate)
	}
}

func TestUpdate_Validation(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", CreateInput{Title: "task"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	empty := ""
	if _, err := uc.Update(ctx, "u1", created.ID, repository.TaskPatch{Title: &empty}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("empty title: expected INVALID, got %v", err)
	}
	bad := domain.Priority("asap")
	if _, err := uc.Update(ctx, "u1", created.ID, repository.TaskPatch{Priority: &bad}); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
		t.Fatalf("bad priority: expected INVALID, got %v", err)
	}
}

func TestToggle_IsItsOwnInverse(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", CreateInput{Title: "task"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	once, err := uc.Toggle(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if !once.Completed {
		t.Fatalf("first toggle should complete the task")
	}

	twice, err := uc.Toggle(ctx, "u1", created.ID)
	if err != nil {
		t.Fatalf("Toggle error: %v", err)
	}
	if twice.Completed != created.Completed {
		t.Fatalf("double toggle should restore the original value")
	}
}

func TestOwnershipIsolation(t *testing.T) {
	t.Parallel()

	uc, _ := newTestUseCase()
	ctx := context.Background()

	created, err := uc.Create(ctx, "userA", CreateInput{Title: "private"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Another authenticated user sees NOT_FOUND, never FORBIDDEN.
	if err := uc.Delete(ctx, "userB", created.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("delete across owners: expected NOT_FOUND, got %v", err)
	}
	if _, err := uc.Toggle(ctx, "userB", created.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("toggle across owners: expected NOT_FOUND, got %v", err)
	}
	title := "hijack"
	if _, err := uc.Update(ctx, "userB", created.ID, repository.TaskPatch{Title: &title}); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("update across owners: expected NOT_FOUND, got %v", err)
	}

	tasks, err := uc.List(ctx, "userB")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("userB should see no tasks, got %d", len(tasks))
	}

	if err := uc.Delete(ctx, "userA", created.ID); err != nil {
		t.Fatalf("owner delete error: %v", err)
	}
}
