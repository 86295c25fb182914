package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus tracks a personal task's state.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// ParseTaskStatus converts a string into a TaskStatus.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case TaskPending, TaskInProgress, TaskCompleted:
		return TaskStatus(s), true
	}
	return "", false
}

// ClampProgress restricts a task progress value to the [0,100] range.
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Task defines the task model based on the 'tasks' table. Tasks are private
// to the student who created them.
type Task struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	StudentID   uuid.UUID  `json:"studentId" db:"student_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category" example:"COURSEWORK"`
	Deadline    *time.Time `json:"deadline,omitempty" db:"deadline"`
	Status      TaskStatus `json:"status" db:"status" example:"PENDING"`
	Progress    int        `json:"progress" db:"progress"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
