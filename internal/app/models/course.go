package models

import (
	"time"

	"github.com/google/uuid"
)

// ResourceType classifies a course resource.
type ResourceType string

const (
	ResourcePaper ResourceType = "PAPER"
	ResourceNotes ResourceType = "NOTES"
	ResourceOther ResourceType = "OTHER"
)

// ParseResourceType converts a string into a ResourceType.
func ParseResourceType(s string) (ResourceType, bool) {
	switch ResourceType(s) {
	case ResourcePaper, ResourceNotes, ResourceOther:
		return ResourceType(s), true
	}
	return "", false
}

// Course defines the course model based on the 'courses' table
type Course struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Code        string     `json:"code" db:"code" example:"CS302"`
	Name        string     `json:"name" db:"name" example:"Operating Systems"`
	Credits     int        `json:"credits" db:"credits"`
	Semester    string     `json:"semester" db:"semester" example:"2026-MONSOON"`
	Department  string     `json:"department" db:"department"`
	ProfessorID *uuid.UUID `json:"professorId,omitempty" db:"professor_id"`
	Description *string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`

	EnrollmentCount int64 `json:"enrollmentCount"` // Computed, no db tag
}

// Enrollment defines the enrollment model based on the 'enrollments' table.
// (student_id, course_id) is unique.
type Enrollment struct {
	ID              uuid.UUID `json:"id" db:"id"`
	StudentID       uuid.UUID `json:"studentId" db:"student_id"`
	CourseID        uuid.UUID `json:"courseId" db:"course_id"`
	Semester        string    `json:"semester" db:"semester"`
	AttendanceCount int       `json:"attendanceCount" db:"attendance_count"`
	TotalClasses    int       `json:"totalClasses" db:"total_classes"`
	EnrolledAt      time.Time `json:"enrolledAt" db:"enrolled_at"`

	Course *Course `json:"course,omitempty"` // Relation, no db tag
}

// Resource defines the resource model based on the 'resources' table
type Resource struct {
	ID         uuid.UUID    `json:"id" db:"id"`
	CourseID   uuid.UUID    `json:"courseId" db:"course_id"`
	UploaderID uuid.UUID    `json:"uploaderId" db:"uploader_id"`
	Type       ResourceType `json:"type" db:"type" example:"PAPER"`
	Title      string       `json:"title" db:"title"`
	Year       *int         `json:"year,omitempty" db:"year"`
	ExamType   *string      `json:"examType,omitempty" db:"exam_type"`
	FilePath   *string      `json:"filePath,omitempty" db:"file_path"`
	Tags       []string     `json:"tags" db:"tags"`
	Downloads  int          `json:"downloads" db:"downloads"`
	CreatedAt  time.Time    `json:"createdAt" db:"created_at"`
}

// CalendarEvent defines the calendar event model based on the
// 'calendar_events' table. CourseID is nil for campus-wide events.
type CalendarEvent struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CourseID    *uuid.UUID `json:"courseId,omitempty" db:"course_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	EventType   string     `json:"eventType" db:"event_type" example:"EXAM"`
	StartDate   time.Time  `json:"startDate" db:"start_date"`
	EndDate     *time.Time `json:"endDate,omitempty" db:"end_date"`
	CreatedBy   uuid.UUID  `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
