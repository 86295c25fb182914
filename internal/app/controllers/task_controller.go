package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/app/services"
	"github.com/aegisplatform/aegis/internal/middleware"
)

// TaskController handles personal task endpoints. Tasks are strictly private
// to their owner.
type TaskController struct {
	taskService *services.TaskService
}

// NewTaskController creates a new TaskController
func NewTaskController(taskService *services.TaskService) *TaskController {
	return &TaskController{taskService: taskService}
}

// ListTasks godoc
// @Summary List own tasks
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.TaskResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /my/tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	tasks, err := c.taskService.List(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, dto.FromTask(&tasks[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Tasks retrieved"))
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateTaskRequest true "Task data"
// @Success 201 {object} dto.StructuredResponse{data=dto.TaskResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /my/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	task, err := c.taskService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromTask(task), "Task created"))
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Task ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.TaskResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /my/tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	task, err := c.taskService.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromTask(task), "Task retrieved"))
}

// UpdateTask godoc
// @Summary Update a task
// @Description Partially update a task; only provided fields change.
// @Tags tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Fields to change"
// @Success 200 {object} dto.StructuredResponse{data=dto.TaskResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /my/tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	task, err := c.taskService.Update(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromTask(task), "Task updated"))
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Task ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /my/tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.taskService.Delete(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(
		dto.SuccessResponse{Message: "Task deleted successfully"}, "Task deleted"))
}
