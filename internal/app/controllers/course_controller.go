package controllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/app/services"
	"github.com/aegisplatform/aegis/internal/middleware"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/filestorage"
	"github.com/aegisplatform/aegis/internal/pkg/helpers"
)

// CourseController handles course, enrollment, resource and calendar endpoints
type CourseController struct {
	courseService *services.CourseService
	fileStorage   filestorage.FileStorage
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, fileStorage filestorage.FileStorage) *CourseController {
	return &CourseController{
		courseService: courseService,
		fileStorage:   fileStorage,
	}
}

// ListCourses godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param department query string false "Filter by department"
// @Param semester query string false "Filter by semester"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.StructuredResponse{data=dto.CourseListResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	courses, total, err := c.courseService.List(ctx.Request.Context(),
		ctx.Query("department"), ctx.Query("semester"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.CourseListResponse{
		Courses:    make([]dto.CourseResponse, 0, len(courses)),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}
	for i := range courses {
		resp.Courses = append(resp.Courses, dto.FromCourse(&courses[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Courses retrieved"))
}

// CreateCourse godoc
// @Summary Create a course
// @Description Create a course. FACULTY creators become the course professor; ADMIN-created courses have none.
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CreateCourseRequest true "Course data"
// @Success 201 {object} dto.StructuredResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.courseService.Create(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromCourse(course), "Course created"))
}

// GetCourse godoc
// @Summary Get course detail
// @Description Course detail with enrollment count. Visible to the professor, admins and enrolled students.
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.CourseResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.Get(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FromCourse(course), "Course retrieved"))
}

// Enroll godoc
// @Summary Enroll in a course
// @Description Enroll the acting student in a course. Students only; enrolling twice is a conflict.
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 201 {object} dto.StructuredResponse{data=dto.EnrollmentResponse}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	enrollment, err := c.courseService.Enroll(ctx.Request.Context(), actor, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromEnrollment(enrollment), "Enrolled"))
}

// MyEnrollments godoc
// @Summary List own enrollments
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.EnrollmentResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /my/enrollments [get]
func (c *CourseController) MyEnrollments(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	enrollments, err := c.courseService.MyEnrollments(ctx.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		resp = append(resp, dto.FromEnrollment(&enrollments[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Enrollments retrieved"))
}

// ListResources godoc
// @Summary List course resources
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Param type query string false "Filter by resource type (PAPER, NOTES, OTHER)"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.ResourceResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/resources [get]
func (c *CourseController) ListResources(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	resources, err := c.courseService.ListResources(ctx.Request.Context(), id, ctx.Query("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.ResourceResponse, 0, len(resources))
	for i := range resources {
		resp = append(resp, dto.FromResource(&resources[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Resources retrieved"))
}

// CreateResource godoc
// @Summary Add resource metadata to a course
// @Description Record resource metadata. The course professor or an admin only.
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Param request body dto.CreateResourceRequest true "Resource metadata"
// @Success 201 {object} dto.StructuredResponse{data=dto.ResourceResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/resources [post]
func (c *CourseController) CreateResource(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resource, err := c.courseService.CreateResource(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromResource(resource), "Resource created"))
}

// UploadResourceFile godoc
// @Summary Upload the file for a resource
// @Description Store the resource's file and record its path. The course professor or an admin only.
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param resourceId path string true "Resource ID"
// @Param file formData file true "File to upload"
// @Success 200 {object} dto.StructuredResponse{data=dto.FileUploadResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /resources/{resourceId}/file [post]
func (c *CourseController) UploadResourceFile(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	resourceID, ok := parseUUIDParam(ctx, "resourceId")
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrFileNotFound)
		return
	}
	if !filestorage.IsAllowedFile(fileHeader.Filename) {
		middleware.HandleAPIError(ctx, apperrors.ErrFileTypeNotAllowed)
		return
	}

	path, err := c.fileStorage.SaveUpload(fileHeader, filestorage.CategoryCourseResources)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.courseService.AttachResourceFile(ctx.Request.Context(), actor, resourceID, path); err != nil {
		_ = c.fileStorage.Delete(path)
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.FileUploadResponse{Path: path}, "File uploaded"))
}

// DownloadResource godoc
// @Summary Download a resource's file
// @Description Serve the resource's stored file and bump its download counter.
// @Tags courses
// @Produce octet-stream
// @Security ApiKeyAuth
// @Param resourceId path string true "Resource ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse
// @Router /resources/{resourceId}/download [get]
func (c *CourseController) DownloadResource(ctx *gin.Context) {
	resourceID, ok := parseUUIDParam(ctx, "resourceId")
	if !ok {
		return
	}

	resource, err := c.courseService.GetResource(ctx.Request.Context(), resourceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if resource.FilePath == nil {
		middleware.HandleAPIError(ctx, apperrors.ErrFileNotFound)
		return
	}

	full, err := c.fileStorage.Resolve(*resource.FilePath)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.courseService.RecordDownload(ctx.Request.Context(), resourceID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.FileAttachment(full, resource.Title+filepath.Ext(full))
}

// ListCalendar godoc
// @Summary List a course's calendar events
// @Tags courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 200 {object} dto.StructuredResponse{data=[]dto.CalendarEventResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/calendar [get]
func (c *CourseController) ListCalendar(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	events, err := c.courseService.ListCalendar(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.CalendarEventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, dto.FromCalendarEvent(&events[i]))
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Calendar retrieved"))
}

// CreateCalendarEvent godoc
// @Summary Add a calendar event to a course
// @Description Add an exam, deadline or class event. The course professor or an admin only.
// @Tags courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Param request body dto.CreateCalendarEventRequest true "Event data"
// @Success 201 {object} dto.StructuredResponse{data=dto.CalendarEventResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/calendar [post]
func (c *CourseController) CreateCalendarEvent(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCalendarEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	event, err := c.courseService.CreateCalendarEvent(ctx.Request.Context(), actor, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromCalendarEvent(event), "Event created"))
}
