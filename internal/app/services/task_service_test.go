package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/aegisplatform/aegis/internal/app/auth"
	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
)

func TestCreateTask(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo(), zerolog.Nop())
	ctx := context.Background()
	owner := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}

	task, err := svc.Create(ctx, owner, &dto.CreateTaskRequest{Title: "Revise OS notes"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Status != models.TaskPending {
		t.Errorf("status = %s, want default PENDING", task.Status)
	}
	if task.StudentID != owner.ID {
		t.Errorf("studentID = %s, want owner", task.StudentID)
	}

	clamped, err := svc.Create(ctx, owner, &dto.CreateTaskRequest{Title: "x", Progress: 250})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if clamped.Progress != 100 {
		t.Errorf("progress = %d, want clamped to 100", clamped.Progress)
	}

	if _, err := svc.Create(ctx, owner, &dto.CreateTaskRequest{Title: "x", Status: "DONE"}); !errors.Is(err, apperrors.ErrTaskStatusInvalid) {
		t.Errorf("bad status: err = %v, want ErrTaskStatusInvalid", err)
	}
}

func TestTasksAreOwnerScoped(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo(), zerolog.Nop())
	ctx := context.Background()
	owner := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}
	other := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}

	task, err := svc.Create(ctx, owner, &dto.CreateTaskRequest{Title: "Mine"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Another user's task is indistinguishable from a missing one.
	if _, err := svc.Get(ctx, other, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("cross-user get: err = %v, want ErrTaskNotFound", err)
	}
	if _, err := svc.Update(ctx, other, task.ID, &dto.UpdateTaskRequest{}); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("cross-user update: err = %v, want ErrTaskNotFound", err)
	}
	if err := svc.Delete(ctx, other, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("cross-user delete: err = %v, want ErrTaskNotFound", err)
	}

	theirs, err := svc.List(ctx, other)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(theirs) != 0 {
		t.Errorf("other user sees %d tasks, want 0", len(theirs))
	}
	mine, err := svc.List(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("owner sees %d tasks, want 1", len(mine))
	}
}

func TestUpdateTaskPartial(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo(), zerolog.Nop())
	ctx := context.Background()
	owner := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}

	task, err := svc.Create(ctx, owner, &dto.CreateTaskRequest{
		Title:       "Assignment 3",
		Description: "Graph algorithms",
		Category:    "academics",
		Progress:    20,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status := "IN_PROGRESS"
	progress := 150
	updated, err := svc.Update(ctx, owner, task.ID, &dto.UpdateTaskRequest{
		Status:   &status,
		Progress: &progress,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.TaskInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", updated.Status)
	}
	if updated.Progress != 100 {
		t.Errorf("progress = %d, want clamped to 100", updated.Progress)
	}
	// Untouched fields keep their values.
	if updated.Title != "Assignment 3" || updated.Description != "Graph algorithms" || updated.Category != "academics" {
		t.Errorf("unrelated fields changed: %+v", updated)
	}

	bad := "WONTFIX"
	if _, err := svc.Update(ctx, owner, task.ID, &dto.UpdateTaskRequest{Status: &bad}); !errors.Is(err, apperrors.ErrTaskStatusInvalid) {
		t.Errorf("bad status: err = %v, want ErrTaskStatusInvalid", err)
	}

	title := "Assignment 3 (revised)"
	renamed, err := svc.Update(ctx, owner, task.ID, &dto.UpdateTaskRequest{Title: &title})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Title != title || renamed.Status != models.TaskInProgress {
		t.Errorf("rename result = %+v", renamed)
	}
}

func TestDeleteTask(t *testing.T) {
	svc := NewTaskService(newFakeTaskRepo(), zerolog.Nop())
	ctx := context.Background()
	owner := appauth.Actor{ID: uuid.New(), Role: models.RoleStudent}

	task, err := svc.Create(ctx, owner, &dto.CreateTaskRequest{Title: "Throwaway"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, owner, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, owner, task.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("get after delete: err = %v, want ErrTaskNotFound", err)
	}
}
