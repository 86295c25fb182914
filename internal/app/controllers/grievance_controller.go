package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/app/services"
	"github.com/aegisplatform/aegis/internal/middleware"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/filestorage"
	"github.com/aegisplatform/aegis/internal/pkg/helpers"
)

// GrievanceController handles grievance endpoints
type GrievanceController struct {
	grievanceService *services.GrievanceService
	fileStorage      filestorage.FileStorage
}

// NewGrievanceController creates a new GrievanceController
func NewGrievanceController(grievanceService *services.GrievanceService, fileStorage filestorage.FileStorage) *GrievanceController {
	return &GrievanceController{
		grievanceService: grievanceService,
		fileStorage:      fileStorage,
	}
}

// CreateGrievance godoc
// @Summary Submit a grievance
// @Description Submit a grievance. Anonymous submissions carry no submitter identity.
// @Tags grievances
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateGrievanceRequest true "Grievance data"
// @Success 201 {object} dto.StructuredResponse{data=dto.GrievanceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /grievances [post]
func (c *GrievanceController) CreateGrievance(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateGrievanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	grievance, err := c.grievanceService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromGrievance(grievance), "Grievance submitted"))
}

// ListGrievances godoc
// @Summary List grievances
// @Description Staff see all grievances; students see their own plus anonymous ones. Unknown filter values are ignored.
// @Tags grievances
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.StructuredResponse{data=dto.GrievanceListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /grievances [get]
func (c *GrievanceController) ListGrievances(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	grievances, total, err := c.grievanceService.List(ctx.Request.Context(), actor,
		ctx.Query("status"), ctx.Query("category"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.GrievanceListResponse{
		Grievances: make([]dto.GrievanceResponse, 0, len(grievances)),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	for i := range grievances {
		resp.Grievances = append(resp.Grievances, dto.FromGrievance(&grievances[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Grievances retrieved"))
}

// GetGrievance godoc
// @Summary Get a grievance with its update trail
// @Tags grievances
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Grievance ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.GrievanceResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /grievances/{id} [get]
func (c *GrievanceController) GetGrievance(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	grievance, err := c.grievanceService.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromGrievance(grievance), "Grievance retrieved"))
}

// AddGrievanceUpdate godoc
// @Summary Append a status update
// @Description Append an update to a grievance's trail. AUTHORITY or ADMIN only; the first update assigns the grievance to its author.
// @Tags grievances
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Grievance ID"
// @Param request body dto.AddGrievanceUpdateRequest true "Update data"
// @Success 200 {object} dto.StructuredResponse{data=dto.GrievanceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /grievances/{id}/updates [post]
func (c *GrievanceController) AddGrievanceUpdate(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddGrievanceUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	grievance, err := c.grievanceService.AddUpdate(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromGrievance(grievance), "Update recorded"))
}

// UploadGrievancePhoto godoc
// @Summary Attach a photo to a grievance
// @Description Upload a photo for a grievance the caller submitted. Anonymous grievances accept no photos.
// @Tags grievances
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Grievance ID"
// @Param file formData file true "Photo to upload"
// @Success 200 {object} dto.StructuredResponse{data=dto.FileUploadResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /grievances/{id}/photos [post]
func (c *GrievanceController) UploadGrievancePhoto(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrFileNotFound)
		return
	}
	if !filestorage.IsImageFile(fileHeader.Filename) {
		middleware.HandleAPIError(ctx, apperrors.ErrFileTypeNotAllowed)
		return
	}

	// Check permissions before touching the disk.
	if _, err := c.grievanceService.Get(ctx.Request.Context(), actor, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	path, err := c.fileStorage.SaveUpload(fileHeader, filestorage.CategoryGrievancePhotos)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.grievanceService.AttachPhoto(ctx.Request.Context(), actor, id, path); err != nil {
		_ = c.fileStorage.Delete(path)
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FileUploadResponse{Path: path}, "Photo uploaded"))
}
