package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/repository"
)

const taskColumns = "id, user_id, title, description, priority, due_date, completed, created_at"

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE user_id = $1
	ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, user_id, title, description, priority, due_date, completed)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Priority,
		nullDate(task.DueDate),
		task.Completed,
	).Scan(&task.CreatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

// UpdatePartial applies the patch in a single statement: omitted fields
// fall back to the stored value via COALESCE, and the due date is
// cleared only when the patch explicitly asks for it.
func (r *taskRepository) UpdatePartial(ctx context.Context, id, ownerID string, patch repository.TaskPatch) (*domain.Task, error) {
	const query = `
	UPDATE tasks
	SET title = COALESCE($3, title),
		description = COALESCE($4, description),
		priority = COALESCE($5, priority),
		completed = COALESCE($6, completed),
		due_date = CASE WHEN $7 THEN NULL ELSE COALESCE($8, due_date) END
	WHERE id = $1 AND user_id = $2
	RETURNING ` + taskColumns + `
	`

	var prio *string
	if patch.Priority != nil {
		s := string(*patch.Priority)
		prio = &s
	}

	row := r.pool.QueryRow(ctx, query,
		id,
		ownerID,
		patch.Title,
		patch.Description,
		prio,
		patch.Completed,
		patch.ClearDueDate,
		nullDate(patch.DueDate),
	)
	return scanTask(row)
}

// ToggleCompleted negates the stored flag server-side so two clients
// toggling from stale reads cannot lose an update.
func (r *taskRepository) ToggleCompleted(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	const query = `
	UPDATE tasks
	SET completed = NOT completed
	WHERE id = $1 AND user_id = $2
	RETURNING ` + taskColumns + `
	`
	row := r.pool.QueryRow(ctx, query, id, ownerID)
	return scanTask(row)
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var due *time.Time

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&due,
		&task.Completed,
		&task.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	if due != nil {
		d := domain.DateOf(*due)
		task.DueDate = &d
	}

	return &task, nil
}

func nullDate(d *domain.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.Time()
}
