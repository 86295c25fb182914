package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/db"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
)

// ITaskRepository defines the interface for task database operations.
// All lookups are scoped to the owning student, so another user's task ID
// behaves exactly like a missing one.
type ITaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByIDAndOwner(ctx context.Context, id, studentID uuid.UUID) (*models.Task, error)
	ListByOwner(ctx context.Context, studentID uuid.UUID) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id, studentID uuid.UUID) error
}

// TaskRepository handles task database operations
type TaskRepository struct {
	db *db.PostgresDB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(database *db.PostgresDB) *TaskRepository {
	return &TaskRepository{db: database}
}

const taskColumns = `id, student_id, title, description, category, deadline, status, progress, created_at, updated_at`

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (id, student_id, title, description, category, deadline, status, progress)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		task.ID, task.StudentID, task.Title, task.Description, task.Category,
		task.Deadline, task.Status, task.Progress).
		Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating task: %w", err)
	}
	return nil
}

// GetByIDAndOwner retrieves a task owned by the given student
func (r *TaskRepository) GetByIDAndOwner(ctx context.Context, id, studentID uuid.UUID) (*models.Task, error) {
	t := &models.Task{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND student_id = $2`,
		id, studentID).
		Scan(&t.ID, &t.StudentID, &t.Title, &t.Description, &t.Category,
			&t.Deadline, &t.Status, &t.Progress, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("error getting task: %w", err)
	}
	return t, nil
}

// ListByOwner retrieves a student's tasks newest first
func (r *TaskRepository) ListByOwner(ctx context.Context, studentID uuid.UUID) ([]models.Task, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE student_id = $1 ORDER BY created_at DESC`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.StudentID, &t.Title, &t.Description, &t.Category,
			&t.Deadline, &t.Status, &t.Progress, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update persists a task's mutable fields, scoped to its owner
func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE tasks SET title = $3, description = $4, category = $5, deadline = $6,
		       status = $7, progress = $8, updated_at = NOW()
		WHERE id = $1 AND student_id = $2`,
		task.ID, task.StudentID, task.Title, task.Description, task.Category,
		task.Deadline, task.Status, task.Progress)
	if err != nil {
		return fmt.Errorf("error updating task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

// Delete removes a task owned by the given student
func (r *TaskRepository) Delete(ctx context.Context, id, studentID uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND student_id = $2`, id, studentID)
	if err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
