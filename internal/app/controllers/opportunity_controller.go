package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/app/services"
	"github.com/aegisplatform/aegis/internal/middleware"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/filestorage"
	"github.com/aegisplatform/aegis/internal/pkg/helpers"
)

// OpportunityController handles opportunity and application endpoints
type OpportunityController struct {
	opportunityService *services.OpportunityService
	fileStorage        filestorage.FileStorage
}

// NewOpportunityController creates a new OpportunityController
func NewOpportunityController(opportunityService *services.OpportunityService, fileStorage filestorage.FileStorage) *OpportunityController {
	return &OpportunityController{
		opportunityService: opportunityService,
		fileStorage:        fileStorage,
	}
}

// ListOpportunities godoc
// @Summary List opportunities
// @Description List postings newest first. By default only open postings with an upcoming deadline are shown.
// @Tags opportunities
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "Filter by type (RESEARCH, INTERNSHIP)"
// @Param includeClosed query bool false "Include closed postings whose deadline has not passed"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.StructuredResponse{data=dto.OpportunityListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /opportunities [get]
func (c *OpportunityController) ListOpportunities(ctx *gin.Context) {
	includeClosed, _ := strconv.ParseBool(ctx.DefaultQuery("includeClosed", "false"))
	page, size := helpers.ParsePaginationParams(ctx)

	opportunities, total, err := c.opportunityService.List(ctx.Request.Context(),
		ctx.Query("type"), includeClosed, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.OpportunityListResponse{
		Opportunities: make([]dto.OpportunityResponse, 0, len(opportunities)),
		Pagination:    helpers.NewPaginationInfo(total, page, size),
	}
	for i := range opportunities {
		resp.Opportunities = append(resp.Opportunities, dto.FromOpportunity(&opportunities[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Opportunities retrieved"))
}

// CreateOpportunity godoc
// @Summary Post an opportunity
// @Description Post a research or internship opportunity. FACULTY or AUTHORITY only; the deadline must not be in the past.
// @Tags opportunities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateOpportunityRequest true "Opportunity data"
// @Success 201 {object} dto.StructuredResponse{data=dto.OpportunityResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /opportunities [post]
func (c *OpportunityController) CreateOpportunity(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateOpportunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	opportunity, err := c.opportunityService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromOpportunity(opportunity), "Opportunity posted"))
}

// GetOpportunity godoc
// @Summary Get an opportunity
// @Tags opportunities
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Opportunity ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.OpportunityResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /opportunities/{id} [get]
func (c *OpportunityController) GetOpportunity(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	opportunity, err := c.opportunityService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromOpportunity(opportunity), "Opportunity retrieved"))
}

// CloseOpportunity godoc
// @Summary Close an opportunity
// @Description Stop a posting from accepting applications. Irreversible; the creator or an admin only.
// @Tags opportunities
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Opportunity ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.OpportunityResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /opportunities/{id}/close [post]
func (c *OpportunityController) CloseOpportunity(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	opportunity, err := c.opportunityService.Close(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromOpportunity(opportunity), "Opportunity closed"))
}

// Apply godoc
// @Summary Apply to an opportunity
// @Description Submit an application. Students only; closed postings and past deadlines are rejected, applying twice is a conflict.
// @Tags opportunities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Opportunity ID"
// @Param request body dto.ApplyRequest true "Application data"
// @Success 201 {object} dto.StructuredResponse{data=dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /opportunities/{id}/apply [post]
func (c *OpportunityController) Apply(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	application, err := c.opportunityService.Apply(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromApplication(application), "Application submitted"))
}

// ListApplications godoc
// @Summary List applications for an opportunity
// @Description List an opportunity's applications. The creator or an admin only.
// @Tags opportunities
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Opportunity ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ApplicationResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /opportunities/{id}/applications [get]
func (c *OpportunityController) ListApplications(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	applications, err := c.opportunityService.ListApplications(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		resp = append(resp, dto.FromApplication(&applications[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Applications retrieved"))
}

// MyApplications godoc
// @Summary List own applications
// @Tags opportunities
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ApplicationResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /my/applications [get]
func (c *OpportunityController) MyApplications(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	applications, err := c.opportunityService.MyApplications(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		resp = append(resp, dto.FromApplication(&applications[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Applications retrieved"))
}

// UpdateApplicationStatus godoc
// @Summary Review an application
// @Description Record a review decision on an application. The opportunity's creator or an admin only.
// @Tags opportunities
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param applicationId path string true "Application ID"
// @Param request body dto.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} dto.StructuredResponse{data=dto.ApplicationResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /applications/{applicationId}/status [put]
func (c *OpportunityController) UpdateApplicationStatus(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseUUIDParam(ctx, "applicationId")
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	application, err := c.opportunityService.UpdateApplicationStatus(ctx.Request.Context(), actor, applicationID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromApplication(application), "Application updated"))
}

// UploadResume godoc
// @Summary Attach a resume to an application
// @Description Upload a resume (PDF only) for the caller's own application.
// @Tags opportunities
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param applicationId path string true "Application ID"
// @Param file formData file true "Resume to upload"
// @Success 200 {object} dto.StructuredResponse{data=dto.FileUploadResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /applications/{applicationId}/resume [post]
func (c *OpportunityController) UploadResume(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	applicationID, ok := parseUUIDParam(ctx, "applicationId")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrFileNotFound)
		return
	}
	if !filestorage.IsPDFFile(fileHeader.Filename) {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Resume must be a PDF file"))
		return
	}

	path, err := c.fileStorage.SaveUpload(fileHeader, filestorage.CategoryResumes)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.opportunityService.AttachResume(ctx.Request.Context(), actor, applicationID, path); err != nil {
		_ = c.fileStorage.Delete(path)
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FileUploadResponse{Path: path}, "Resume uploaded"))
}
