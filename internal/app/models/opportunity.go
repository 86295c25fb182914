package models

import (
	"time"

	"github.com/google/uuid"
)

// OpportunityType distinguishes research positions from internships.
type OpportunityType string

const (
	OpportunityResearch   OpportunityType = "RESEARCH"
	OpportunityInternship OpportunityType = "INTERNSHIP"
)

// ParseOpportunityType converts a string into an OpportunityType.
func ParseOpportunityType(s string) (OpportunityType, bool) {
	switch OpportunityType(s) {
	case OpportunityResearch, OpportunityInternship:
		return OpportunityType(s), true
	}
	return "", false
}

// ApplicationStatus tracks an application through review.
type ApplicationStatus string

const (
	ApplicationSubmitted   ApplicationStatus = "SUBMITTED"
	ApplicationUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationAccepted    ApplicationStatus = "ACCEPTED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
)

// ParseApplicationStatus converts a string into an ApplicationStatus.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(s) {
	case ApplicationSubmitted, ApplicationUnderReview, ApplicationShortlisted,
		ApplicationAccepted, ApplicationRejected:
		return ApplicationStatus(s), true
	}
	return "", false
}

// Opportunity defines the opportunity model based on the 'opportunities' table
type Opportunity struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	FacultyID   uuid.UUID       `json:"facultyId" db:"faculty_id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Type        OpportunityType `json:"type" db:"type" example:"RESEARCH"`
	Skills      []string        `json:"skills" db:"skills"`
	Duration    string          `json:"duration" db:"duration" example:"3 months"`
	Stipend     *string         `json:"stipend,omitempty" db:"stipend"`
	Deadline    time.Time       `json:"deadline" db:"deadline"`
	IsOpen      bool            `json:"isOpen" db:"is_open"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// Application defines the application model based on the 'applications'
// table. (opportunity_id, student_id) is unique.
type Application struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	OpportunityID uuid.UUID         `json:"opportunityId" db:"opportunity_id"`
	StudentID     uuid.UUID         `json:"studentId" db:"student_id"`
	Status        ApplicationStatus `json:"status" db:"status" example:"SUBMITTED"`
	CoverLetter   string            `json:"coverLetter" db:"cover_letter"`
	ResumePath    *string           `json:"resumePath,omitempty" db:"resume_path"`
	AppliedAt     time.Time         `json:"appliedAt" db:"applied_at"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"updated_at"`

	Opportunity *Opportunity `json:"opportunity,omitempty"` // Relation, no db tag
}
