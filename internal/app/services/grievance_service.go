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

// initialGrievanceRemark is the remark synthesized for a grievance's first
// audit trail entry.
const initialGrievanceRemark = "Grievance submitted"

// GrievanceService handles the grievance lifecycle
type GrievanceService struct {
	grievanceRepo repositories.IGrievanceRepository
	logger        zerolog.Logger
}

// NewGrievanceService creates a new GrievanceService
func NewGrievanceService(grievanceRepo repositories.IGrievanceRepository, logger zerolog.Logger) *GrievanceService {
	return &GrievanceService{
		grievanceRepo: grievanceRepo,
		logger:        logger,
	}
}

// Create files a new grievance. Anonymous grievances never record the
// submitter. The row and its initial SUBMITTED update are written in one
// transaction by the repository.
func (s *GrievanceService) Create(ctx context.Context, actor appauth.Actor, req *dto.CreateGrievanceRequest) (*models.Grievance, error) {
	category, ok := models.ParseGrievanceCategory(req.Category)
	if !ok {
		return nil, apperrors.ErrGrievanceEnumInvalid
	}
	priority, ok := models.ParsePriority(req.Priority)
	if !ok {
		return nil, apperrors.ErrGrievanceEnumInvalid
	}

	grievance := &models.Grievance{
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		Priority:    priority,
		Location:    req.Location,
		Status:      models.GrievanceSubmitted,
		IsAnonymous: req.IsAnonymous,
	}
	if !req.IsAnonymous {
		id := actor.ID
		grievance.SubmitterID = &id
	}

	initial := &models.GrievanceUpdate{
		UpdatedBy: actor.ID,
		Status:    models.GrievanceSubmitted,
		Remark:    initialGrievanceRemark,
	}
	if err := s.grievanceRepo.CreateWithInitialUpdate(ctx, grievance, initial); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create grievance")
		return nil, err
	}
	grievance.Updates = []models.GrievanceUpdate{*initial}

	s.logger.Info().Str("grievanceId", grievance.ID.String()).
		Bool("anonymous", grievance.IsAnonymous).Msg("Grievance created")
	return grievance, nil
}

// List returns grievances visible to the actor, newest first. Unknown status
// or category filter values are ignored rather than rejected.
func (s *GrievanceService) List(ctx context.Context, actor appauth.Actor, statusFilter, categoryFilter string, page, size int) ([]models.Grievance, int64, error) {
	filters := repositories.GrievanceFilters{}
	if status, ok := models.ParseGrievanceStatus(statusFilter); ok {
		filters.Status = &status
	}
	if category, ok := models.ParseGrievanceCategory(categoryFilter); ok {
		filters.Category = &category
	}

	switch actor.Role {
	case models.RoleAdmin, models.RoleAuthority:
		// unrestricted view
	default:
		id := actor.ID
		filters.VisibleTo = &id
	}

	return s.grievanceRepo.List(ctx, filters, page, size)
}

// Get loads a grievance with its update trail. Existence is checked before
// visibility so a hidden grievance yields Forbidden, not NotFound.
func (s *GrievanceService) Get(ctx context.Context, actor appauth.Actor, id uuid.UUID) (*models.Grievance, error) {
	grievance, err := s.grievanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appauth.CanViewGrievance(actor, grievance) {
		return nil, apperrors.ErrPermissionDenied
	}
	return grievance, nil
}

// AddUpdate appends a status update. Only AUTHORITY and ADMIN may update; the
// first update on an unassigned grievance assigns it to the acting user. Any
// target status is reachable from any current status.
func (s *GrievanceService) AddUpdate(ctx context.Context, actor appauth.Actor, grievanceID uuid.UUID, req *dto.AddGrievanceUpdateRequest) (*models.Grievance, error) {
	if !appauth.CanUpdateGrievance(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	status, ok := models.ParseGrievanceStatus(req.Status)
	if !ok {
		return nil, apperrors.ErrGrievanceStatusInvalid
	}

	grievance, err := s.grievanceRepo.GetByID(ctx, grievanceID)
	if err != nil {
		return nil, err
	}

	var assignTo *uuid.UUID
	if grievance.AssignedTo == nil {
		id := actor.ID
		assignTo = &id
	}

	update := &models.GrievanceUpdate{
		GrievanceID: grievanceID,
		UpdatedBy:   actor.ID,
		Status:      status,
		Remark:      req.Remark,
	}
	if err := s.grievanceRepo.AppendUpdate(ctx, update, assignTo); err != nil {
		s.logger.Error().Err(err).Str("grievanceId", grievanceID.String()).Msg("Failed to append grievance update")
		return nil, err
	}

	return s.grievanceRepo.GetByID(ctx, grievanceID)
}

// AttachPhoto records an uploaded photo path on the grievance. Only the
// submitter may attach photos, which rules out anonymous grievances.
func (s *GrievanceService) AttachPhoto(ctx context.Context, actor appauth.Actor, grievanceID uuid.UUID, path string) error {
	grievance, err := s.grievanceRepo.GetByID(ctx, grievanceID)
	if err != nil {
		return err
	}
	if !appauth.CanUploadGrievancePhoto(actor, grievance) {
		return apperrors.ErrPermissionDenied
	}
	return s.grievanceRepo.AddPhoto(ctx, grievanceID, path)
}
