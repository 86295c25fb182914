package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/aegisplatform/aegis/internal/app/models"
)

// CreateCourseRequest represents a new course
type CreateCourseRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Credits     int     `json:"credits" binding:"required,gte=1,lte=30"`
	Semester    string  `json:"semester" binding:"required"`
	Department  string  `json:"department" binding:"required"`
	Description *string `json:"description"`
}

// CourseResponse represents a course with its enrollment count
type CourseResponse struct {
	ID              uuid.UUID  `json:"id"`
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	Credits         int        `json:"credits"`
	Semester        string     `json:"semester"`
	Department      string     `json:"department"`
	ProfessorID     *uuid.UUID `json:"professorId,omitempty"`
	Description     *string    `json:"description,omitempty"`
	EnrollmentCount int64      `json:"enrollmentCount"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// CourseListResponse represents a paginated course listing
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// EnrollmentResponse represents a student's enrollment in a course
type EnrollmentResponse struct {
	ID              uuid.UUID       `json:"id"`
	CourseID        uuid.UUID       `json:"courseId"`
	Semester        string          `json:"semester"`
	AttendanceCount int             `json:"attendanceCount"`
	TotalClasses    int             `json:"totalClasses"`
	EnrolledAt      time.Time       `json:"enrolledAt"`
	Course          *CourseResponse `json:"course,omitempty"`
}

// CreateResourceRequest represents new course resource metadata
type CreateResourceRequest struct {
	Type     string   `json:"type" binding:"required"`
	Title    string   `json:"title" binding:"required"`
	Year     *int     `json:"year"`
	ExamType *string  `json:"examType"`
	Tags     []string `json:"tags"`
}

// ResourceResponse represents a course resource
type ResourceResponse struct {
	ID         uuid.UUID `json:"id"`
	CourseID   uuid.UUID `json:"courseId"`
	UploaderID uuid.UUID `json:"uploaderId"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Year       *int      `json:"year,omitempty"`
	ExamType   *string   `json:"examType,omitempty"`
	FilePath   *string   `json:"filePath,omitempty"`
	Tags       []string  `json:"tags"`
	Downloads  int       `json:"downloads"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateCalendarEventRequest represents a new calendar event for a course
type CreateCalendarEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description"`
	EventType   string     `json:"eventType" binding:"required"`
	StartDate   time.Time  `json:"startDate" binding:"required"`
	EndDate     *time.Time `json:"endDate"`
}

// CalendarEventResponse represents a calendar event
type CalendarEventResponse struct {
	ID          uuid.UUID  `json:"id"`
	CourseID    *uuid.UUID `json:"courseId,omitempty"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	EventType   string     `json:"eventType"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	CreatedBy   uuid.UUID  `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromCourse converts a models.Course to a CourseResponse
func FromCourse(c *models.Course) CourseResponse {
	if c == nil {
		return CourseResponse{}
	}
	return CourseResponse{
		ID:              c.ID,
		Code:            c.Code,
		Name:            c.Name,
		Credits:         c.Credits,
		Semester:        c.Semester,
		Department:      c.Department,
		ProfessorID:     c.ProfessorID,
		Description:     c.Description,
		EnrollmentCount: c.EnrollmentCount,
		CreatedAt:       c.CreatedAt,
	}
}

// FromEnrollment converts a models.Enrollment to an EnrollmentResponse
func FromEnrollment(e *models.Enrollment) EnrollmentResponse {
	if e == nil {
		return EnrollmentResponse{}
	}
	resp := EnrollmentResponse{
		ID:              e.ID,
		CourseID:        e.CourseID,
		Semester:        e.Semester,
		AttendanceCount: e.AttendanceCount,
		TotalClasses:    e.TotalClasses,
		EnrolledAt:      e.EnrolledAt,
	}
	if e.Course != nil {
		course := FromCourse(e.Course)
		resp.Course = &course
	}
	return resp
}

// FromResource converts a models.Resource to a ResourceResponse
func FromResource(r *models.Resource) ResourceResponse {
	if r == nil {
		return ResourceResponse{}
	}
	resp := ResourceResponse{
		ID:         r.ID,
		CourseID:   r.CourseID,
		UploaderID: r.UploaderID,
		Type:       string(r.Type),
		Title:      r.Title,
		Year:       r.Year,
		ExamType:   r.ExamType,
		FilePath:   r.FilePath,
		Tags:       r.Tags,
		Downloads:  r.Downloads,
		CreatedAt:  r.CreatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	return resp
}

// FromCalendarEvent converts a models.CalendarEvent to a CalendarEventResponse
func FromCalendarEvent(e *models.CalendarEvent) CalendarEventResponse {
	if e == nil {
		return CalendarEventResponse{}
	}
	return CalendarEventResponse{
		ID:          e.ID,
		CourseID:    e.CourseID,
		Title:       e.Title,
		Description: e.Description,
		EventType:   e.EventType,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}
