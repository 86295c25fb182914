package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/aegisplatform/aegis/internal/app/models"
)

// CreateTaskRequest represents a new personal task
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
}

// UpdateTaskRequest represents a partial task update
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Deadline    *time.Time `json:"deadline"`
	Status      *string    `json:"status"`
	Progress    *int       `json:"progress"`
}

// TaskResponse represents a personal task
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// FromTask converts a models.Task to a TaskResponse
func FromTask(t *models.Task) TaskResponse {
	if t == nil {
		return TaskResponse{}
	}
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Deadline:    t.Deadline,
		Status:      string(t.Status),
		Progress:    t.Progress,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
