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

// CourseService handles courses, enrollments, resources and calendar events
type CourseService struct {
	courseRepo repositories.ICourseRepository
	logger     zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repositories.ICourseRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// List returns courses visible to any authenticated user
func (s *CourseService) List(ctx context.Context, department, semester string, page, size int) ([]models.Course, int64, error) {
	filters := repositories.CourseFilters{Department: department, Semester: semester}
	return s.courseRepo.ListCourses(ctx, filters, page, size)
}

// Create adds a course. A FACULTY creator becomes its professor; courses
// created by ADMIN have no professor.
func (s *CourseService) Create(ctx context.Context, actor appauth.Actor, req *dto.CreateCourseRequest) (*models.Course, error) {
	if !appauth.CanCreateCourse(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	course := &models.Course{
		Code:        req.Code,
		Name:        req.Name,
		Credits:     req.Credits,
		Semester:    req.Semester,
		Department:  req.Department,
		Description: req.Description,
	}
	if actor.Role == models.RoleFaculty {
		id := actor.ID
		course.ProfessorID = &id
	}

	if err := s.courseRepo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	s.logger.Info().Str("code", course.Code).Msg("Course created")
	return course, nil
}

// Get loads a course's detail view, gated to its professor, admins and
// enrolled students.
func (s *CourseService) Get(ctx context.Context, actor appauth.Actor, id uuid.UUID) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	enrolled := false
	if actor.Role == models.RoleStudent {
		enrolled, err = s.courseRepo.IsEnrolled(ctx, actor.ID, id)
		if err != nil {
			return nil, err
		}
	}
	if !appauth.CanViewCourseDetail(actor, course, enrolled) {
		return nil, apperrors.ErrPermissionDenied
	}
	return course, nil
}

// Enroll registers the acting student in a course, copying the course's
// semester and starting the attendance counters at zero.
func (s *CourseService) Enroll(ctx context.Context, actor appauth.Actor, courseID uuid.UUID) (*models.Enrollment, error) {
	if !appauth.CanEnroll(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.courseRepo.IsEnrolled(ctx, actor.ID, courseID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		StudentID: actor.ID,
		CourseID:  courseID,
		Semester:  course.Semester,
	}
	if err := s.courseRepo.CreateEnrollment(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Course = course
	return enrollment, nil
}

// MyEnrollments lists the acting student's enrollments
func (s *CourseService) MyEnrollments(ctx context.Context, actor appauth.Actor) ([]models.Enrollment, error) {
	return s.courseRepo.ListEnrollmentsByStudent(ctx, actor.ID)
}

// ListResources lists a course's resources; an unknown type filter is ignored
func (s *CourseService) ListResources(ctx context.Context, courseID uuid.UUID, typeFilter string) ([]models.Resource, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	var resourceType *models.ResourceType
	if rt, ok := models.ParseResourceType(typeFilter); ok {
		resourceType = &rt
	}
	return s.courseRepo.ListResources(ctx, courseID, resourceType)
}

// CreateResource records resource metadata; only the course's professor or
// an admin may add resources.
func (s *CourseService) CreateResource(ctx context.Context, actor appauth.Actor, courseID uuid.UUID, req *dto.CreateResourceRequest) (*models.Resource, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !appauth.CanManageCourseContent(actor, course) {
		return nil, apperrors.ErrPermissionDenied
	}

	resourceType, ok := models.ParseResourceType(req.Type)
	if !ok {
		return nil, apperrors.ErrResourceTypeInvalid
	}

	resource := &models.Resource{
		CourseID:   courseID,
		UploaderID: actor.ID,
		Type:       resourceType,
		Title:      req.Title,
		Year:       req.Year,
		ExamType:   req.ExamType,
		Tags:       req.Tags,
	}
	if err := s.courseRepo.CreateResource(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// AttachResourceFile records an uploaded blob path on a resource. The same
// professor/admin gate as resource creation applies.
func (s *CourseService) AttachResourceFile(ctx context.Context, actor appauth.Actor, resourceID uuid.UUID, path string) error {
	resource, err := s.courseRepo.GetResourceByID(ctx, resourceID)
	if err != nil {
		return err
	}
	course, err := s.courseRepo.GetCourseByID(ctx, resource.CourseID)
	if err != nil {
		return err
	}
	if !appauth.CanManageCourseContent(actor, course) {
		return apperrors.ErrPermissionDenied
	}
	return s.courseRepo.SetResourceFilePath(ctx, resourceID, path)
}

// GetResource loads a single resource by ID
func (s *CourseService) GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	return s.courseRepo.GetResourceByID(ctx, id)
}

// RecordDownload bumps a resource's download counter
func (s *CourseService) RecordDownload(ctx context.Context, resourceID uuid.UUID) error {
	return s.courseRepo.IncrementDownloads(ctx, resourceID)
}

// ListCalendar lists a course's calendar events ordered by start date
func (s *CourseService) ListCalendar(ctx context.Context, courseID uuid.UUID) ([]models.CalendarEvent, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courseRepo.ListCalendarEvents(ctx, courseID)
}

// CreateCalendarEvent adds an event to a course's calendar; professor or
// admin only.
func (s *CourseService) CreateCalendarEvent(ctx context.Context, actor appauth.Actor, courseID uuid.UUID, req *dto.CreateCalendarEventRequest) (*models.CalendarEvent, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !appauth.CanManageCourseContent(actor, course) {
		return nil, apperrors.ErrPermissionDenied
	}

	event := &models.CalendarEvent{
		CourseID:    &courseID,
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   actor.ID,
	}
	if err := s.courseRepo.CreateCalendarEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}
