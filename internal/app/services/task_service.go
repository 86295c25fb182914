package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/aegisplatform/aegis/internal/app/auth"
	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/app/repositories"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
)

// TaskService handles the personal task tracker. Tasks are strictly private:
// there is no admin override, and another user's task ID behaves like a
// missing one.
type TaskService struct {
	taskRepo repositories.ITaskRepository
	logger   zerolog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repositories.ITaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// List returns the actor's tasks newest first
func (s *TaskService) List(ctx context.Context, actor appauth.Actor) ([]models.Task, error) {
	return s.taskRepo.ListByOwner(ctx, actor.ID)
}

// Get loads one of the actor's tasks
func (s *TaskService) Get(ctx context.Context, actor appauth.Actor, id uuid.UUID) (*models.Task, error) {
	return s.taskRepo.GetByIDAndOwner(ctx, id, actor.ID)
}

// Create adds a task. Progress is clamped to [0,100] and an empty status
// defaults to PENDING.
func (s *TaskService) Create(ctx context.Context, actor appauth.Actor, req *dto.CreateTaskRequest) (*models.Task, error) {
	status := models.TaskPending
	if req.Status != "" {
		parsed, ok := models.ParseTaskStatus(req.Status)
		if !ok {
			return nil, apperrors.ErrTaskStatusInvalid
		}
		status = parsed
	}

	task := &models.Task{
		StudentID:   actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Deadline:    req.Deadline,
		Status:      status,
		Progress:    models.ClampProgress(req.Progress),
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update to one of the actor's tasks. Progress is
// clamped on every write.
func (s *TaskService) Update(ctx context.Context, actor appauth.Actor, id uuid.UUID, req *dto.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByIDAndOwner(ctx, id, actor.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Category != nil {
		task.Category = *req.Category
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}
	if req.Status != nil {
		status, ok := models.ParseTaskStatus(*req.Status)
		if !ok {
			return nil, apperrors.ErrTaskStatusInvalid
		}
		task.Status = status
	}
	if req.Progress != nil {
		task.Progress = models.ClampProgress(*req.Progress)
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes one of the actor's tasks permanently
func (s *TaskService) Delete(ctx context.Context, actor appauth.Actor, id uuid.UUID) error {
	return s.taskRepo.Delete(ctx, id, actor.ID)
}
