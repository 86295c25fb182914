package models

import (
	"time"

	"github.com/google/uuid"
)

// GrievanceStatus tracks where a grievance sits in the resolution workflow.
type GrievanceStatus string

const (
	GrievanceSubmitted   GrievanceStatus = "SUBMITTED"
	GrievanceUnderReview GrievanceStatus = "UNDER_REVIEW"
	GrievanceInProgress  GrievanceStatus = "IN_PROGRESS"
	GrievanceResolved    GrievanceStatus = "RESOLVED"
)

// ParseGrievanceStatus converts a string into a GrievanceStatus.
func ParseGrievanceStatus(s string) (GrievanceStatus, bool) {
	switch GrievanceStatus(s) {
	case GrievanceSubmitted, GrievanceUnderReview, GrievanceInProgress, GrievanceResolved:
		return GrievanceStatus(s), true
	}
	return "", false
}

// GrievanceCategory classifies the subject of a grievance.
type GrievanceCategory string

const (
	CategoryInfrastructure GrievanceCategory = "INFRASTRUCTURE"
	CategoryAcademics      GrievanceCategory = "ACADEMICS"
	CategoryHostel         GrievanceCategory = "HOSTEL"
	CategoryFood           GrievanceCategory = "FOOD"
	CategoryOther          GrievanceCategory = "OTHER"
)

// ParseGrievanceCategory converts a string into a GrievanceCategory.
func ParseGrievanceCategory(s string) (GrievanceCategory, bool) {
	switch GrievanceCategory(s) {
	case CategoryInfrastructure, CategoryAcademics, CategoryHostel, CategoryFood, CategoryOther:
		return GrievanceCategory(s), true
	}
	return "", false
}

// Priority ranks how urgently a grievance needs attention.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// ParsePriority converts a string into a Priority.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return Priority(s), true
	}
	return "", false
}

// Grievance defines the grievance model based on the 'grievances' table.
// SubmitterID is nil exactly when the grievance was filed anonymously; the
// Status column always mirrors the status of the most recent update row.
type Grievance struct {
	ID          uuid.UUID         `json:"id" db:"id"`
	SubmitterID *uuid.UUID        `json:"submitterId,omitempty" db:"submitter_id"`
	Title       string            `json:"title" db:"title"`
	Description string            `json:"description" db:"description"`
	Category    GrievanceCategory `json:"category" db:"category" example:"HOSTEL"`
	Priority    Priority          `json:"priority" db:"priority" example:"HIGH"`
	Location    string            `json:"location" db:"location"`
	Status      GrievanceStatus   `json:"status" db:"status" example:"SUBMITTED"`
	IsAnonymous bool              `json:"isAnonymous" db:"is_anonymous"`
	Photos      []string          `json:"photos" db:"photos"`
	AssignedTo  *uuid.UUID        `json:"assignedTo,omitempty" db:"assigned_to"`
	CreatedAt   time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time         `json:"updatedAt" db:"updated_at"`

	Updates []GrievanceUpdate `json:"updates,omitempty"` // Relation, no db tag
}

// GrievanceUpdate is one entry in a grievance's append-only audit trail.
type GrievanceUpdate struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	GrievanceID uuid.UUID       `json:"grievanceId" db:"grievance_id"`
	UpdatedBy   uuid.UUID       `json:"updatedBy" db:"updated_by"`
	Status      GrievanceStatus `json:"status" db:"status"`
	Remark      string          `json:"remark" db:"remark"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}
