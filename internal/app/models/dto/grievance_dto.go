package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/aegisplatform/aegis/internal/app/models"
)

// CreateGrievanceRequest represents a new grievance submission
type CreateGrievanceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Priority    string `json:"priority" binding:"required"`
	Location    string `json:"location" binding:"required"`
	IsAnonymous bool   `json:"isAnonymous"`
}

// AddGrievanceUpdateRequest represents a status update on a grievance
type AddGrievanceUpdateRequest struct {
	Status string `json:"status" binding:"required"`
	Remark string `json:"remark" binding:"required"`
}

// GrievanceUpdateResponse represents one audit trail entry
type GrievanceUpdateResponse struct {
	ID        uuid.UUID `json:"id"`
	UpdatedBy uuid.UUID `json:"updatedBy"`
	Status    string    `json:"status"`
	Remark    string    `json:"remark"`
	CreatedAt time.Time `json:"createdAt"`
}

// GrievanceResponse represents a grievance. SubmitterID is omitted for
// anonymous grievances.
type GrievanceResponse struct {
	ID          uuid.UUID                 `json:"id"`
	SubmitterID *uuid.UUID                `json:"submitterId,omitempty"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Category    string                    `json:"category"`
	Priority    string                    `json:"priority"`
	Location    string                    `json:"location"`
	Status      string                    `json:"status"`
	IsAnonymous bool                      `json:"isAnonymous"`
	Photos      []string                  `json:"photos"`
	AssignedTo  *uuid.UUID                `json:"assignedTo,omitempty"`
	CreatedAt   time.Time                 `json:"createdAt"`
	UpdatedAt   time.Time                 `json:"updatedAt"`
	Updates     []GrievanceUpdateResponse `json:"updates,omitempty"`
}

// GrievanceListResponse represents a paginated grievance listing
type GrievanceListResponse struct {
	Grievances []GrievanceResponse `json:"grievances"`
	Pagination PaginationInfo      `json:"pagination"`
}

// FromGrievance converts a models.Grievance to a GrievanceResponse
func FromGrievance(g *models.Grievance) GrievanceResponse {
	if g == nil {
		return GrievanceResponse{}
	}

	resp := GrievanceResponse{
		ID:          g.ID,
		SubmitterID: g.SubmitterID,
		Title:       g.Title,
		Description: g.Description,
		Category:    string(g.Category),
		Priority:    string(g.Priority),
		Location:    g.Location,
		Status:      string(g.Status),
		IsAnonymous: g.IsAnonymous,
		Photos:      g.Photos,
		AssignedTo:  g.AssignedTo,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
	if resp.Photos == nil {
		resp.Photos = []string{}
	}
	for i := range g.Updates {
		u := &g.Updates[i]
		resp.Updates = append(resp.Updates, GrievanceUpdateResponse{
			ID:        u.ID,
			UpdatedBy: u.UpdatedBy,
			Status:    string(u.Status),
			Remark:    u.Remark,
			CreatedAt: u.CreatedAt,
		})
	}
	return resp
}
