package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/aegisplatform/aegis/internal/app/models"
)

// CreateOpportunityRequest represents a new research/internship posting
type CreateOpportunityRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Type        string    `json:"type" binding:"required"`
	Skills      []string  `json:"skills"`
	Duration    string    `json:"duration" binding:"required"`
	Stipend     *string   `json:"stipend"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

// ApplyRequest represents a student application to an opportunity
type ApplyRequest struct {
	CoverLetter string `json:"coverLetter" binding:"required"`
}

// UpdateApplicationStatusRequest represents a review decision
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OpportunityResponse represents an opportunity posting
type OpportunityResponse struct {
	ID          uuid.UUID `json:"id"`
	FacultyID   uuid.UUID `json:"facultyId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Skills      []string  `json:"skills"`
	Duration    string    `json:"duration"`
	Stipend     *string   `json:"stipend,omitempty"`
	Deadline    time.Time `json:"deadline"`
	IsOpen      bool      `json:"isOpen"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OpportunityListResponse represents a paginated opportunity listing
type OpportunityListResponse struct {
	Opportunities []OpportunityResponse `json:"opportunities"`
	Pagination    PaginationInfo        `json:"pagination"`
}

// ApplicationResponse represents an application and its review status
type ApplicationResponse struct {
	ID            uuid.UUID            `json:"id"`
	OpportunityID uuid.UUID            `json:"opportunityId"`
	StudentID     uuid.UUID            `json:"studentId"`
	Status        string               `json:"status"`
	CoverLetter   string               `json:"coverLetter"`
	ResumePath    *string              `json:"resumePath,omitempty"`
	AppliedAt     time.Time            `json:"appliedAt"`
	Opportunity   *OpportunityResponse `json:"opportunity,omitempty"`
}

// FromOpportunity converts a models.Opportunity to an OpportunityResponse
func FromOpportunity(o *models.Opportunity) OpportunityResponse {
	if o == nil {
		return OpportunityResponse{}
	}
	resp := OpportunityResponse{
		ID:          o.ID,
		FacultyID:   o.FacultyID,
		Title:       o.Title,
		Description: o.Description,
		Type:        string(o.Type),
		Skills:      o.Skills,
		Duration:    o.Duration,
		Stipend:     o.Stipend,
		Deadline:    o.Deadline,
		IsOpen:      o.IsOpen,
		CreatedAt:   o.CreatedAt,
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	return resp
}

// FromApplication converts a models.Application to an ApplicationResponse
func FromApplication(a *models.Application) ApplicationResponse {
	if a == nil {
		return ApplicationResponse{}
	}
	resp := ApplicationResponse{
		ID:            a.ID,
		OpportunityID: a.OpportunityID,
		StudentID:     a.StudentID,
		Status:        string(a.Status),
		CoverLetter:   a.CoverLetter,
		ResumePath:    a.ResumePath,
		AppliedAt:     a.AppliedAt,
	}
	if a.Opportunity != nil {
		opp := FromOpportunity(a.Opportunity)
		resp.Opportunity = &opp
	}
	return resp
}
