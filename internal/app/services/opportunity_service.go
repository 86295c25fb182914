package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appauth "github.com/aegisplatform/aegis/internal/app/auth"
	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/app/repositories"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
)

// OpportunityService handles opportunity postings and applications
type OpportunityService struct {
	opportunityRepo repositories.IOpportunityRepository
	logger          zerolog.Logger
	now             func() time.Time
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(opportunityRepo repositories.IOpportunityRepository, logger zerolog.Logger) *OpportunityService {
	return &OpportunityService{
		opportunityRepo: opportunityRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// List returns opportunities newest first. Expired postings are always
// hidden; includeClosed lifts only the is_open filter. An unknown type
// filter is ignored.
func (s *OpportunityService) List(ctx context.Context, typeFilter string, includeClosed bool, page, size int) ([]models.Opportunity, int64, error) {
	today := startOfDay(s.now())
	filters := repositories.OpportunityFilters{DeadlineAfter: &today}
	if t, ok := models.ParseOpportunityType(typeFilter); ok {
		filters.Type = &t
	}
	if !includeClosed {
		open := true
		filters.IsOpen = &open
	}
	return s.opportunityRepo.List(ctx, filters, page, size)
}

// Get loads a single opportunity; visible to any authenticated user
func (s *OpportunityService) Get(ctx context.Context, id uuid.UUID) (*models.Opportunity, error) {
	return s.opportunityRepo.GetByID(ctx, id)
}

// Create posts a new opportunity; FACULTY or AUTHORITY only, with a deadline
// no earlier than today.
func (s *OpportunityService) Create(ctx context.Context, actor appauth.Actor, req *dto.CreateOpportunityRequest) (*models.Opportunity, error) {
	if !appauth.CanCreateOpportunity(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	oppType, ok := models.ParseOpportunityType(req.Type)
	if !ok {
		return nil, apperrors.ErrOpportunityTypeInvalid
	}
	if req.Deadline.Before(startOfDay(s.now())) {
		return nil, apperrors.NewValidationError("deadline must not be in the past")
	}

	opportunity := &models.Opportunity{
		FacultyID:   actor.ID,
		Title:       req.Title,
		Description: req.Description,
		Type:        oppType,
		Skills:      req.Skills,
		Duration:    req.Duration,
		Stipend:     req.Stipend,
		Deadline:    req.Deadline,
		IsOpen:      true,
	}
	if err := s.opportunityRepo.Create(ctx, opportunity); err != nil {
		return nil, err
	}
	s.logger.Info().Str("opportunityId", opportunity.ID.String()).Msg("Opportunity created")
	return opportunity, nil
}

// Close stops an opportunity from accepting applications. Closing is
// irreversible; creator or admin only.
func (s *OpportunityService) Close(ctx context.Context, actor appauth.Actor, id uuid.UUID) (*models.Opportunity, error) {
	opportunity, err := s.opportunityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appauth.CanManageOpportunity(actor, opportunity) {
		return nil, apperrors.ErrPermissionDenied
	}
	if err := s.opportunityRepo.Close(ctx, id); err != nil {
		return nil, err
	}
	opportunity.IsOpen = false
	return opportunity, nil
}

// Apply submits a student application. Closed postings and past deadlines are
// validation failures; a duplicate application is a conflict.
func (s *OpportunityService) Apply(ctx context.Context, actor appauth.Actor, opportunityID uuid.UUID, req *dto.ApplyRequest) (*models.Application, error) {
	if !appauth.CanApply(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	opportunity, err := s.opportunityRepo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if !opportunity.IsOpen {
		return nil, apperrors.ErrOpportunityClosed
	}
	if opportunity.Deadline.Before(startOfDay(s.now())) {
		return nil, apperrors.ErrDeadlinePassed
	}

	application := &models.Application{
		OpportunityID: opportunityID,
		StudentID:     actor.ID,
		Status:        models.ApplicationSubmitted,
		CoverLetter:   req.CoverLetter,
	}
	if err := s.opportunityRepo.CreateApplication(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// ListApplications returns applications for an opportunity; creator or admin
// only.
func (s *OpportunityService) ListApplications(ctx context.Context, actor appauth.Actor, opportunityID uuid.UUID) ([]models.Application, error) {
	opportunity, err := s.opportunityRepo.GetByID(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if !appauth.CanManageOpportunity(actor, opportunity) {
		return nil, apperrors.ErrPermissionDenied
	}
	return s.opportunityRepo.ListApplicationsByOpportunity(ctx, opportunityID)
}

// MyApplications returns the acting student's applications with their
// opportunities attached.
func (s *OpportunityService) MyApplications(ctx context.Context, actor appauth.Actor) ([]models.Application, error) {
	return s.opportunityRepo.ListApplicationsByStudent(ctx, actor.ID)
}

// UpdateApplicationStatus records a review decision; creator or admin only.
// Any of the five statuses may be set.
func (s *OpportunityService) UpdateApplicationStatus(ctx context.Context, actor appauth.Actor, applicationID uuid.UUID, newStatus string) (*models.Application, error) {
	status, ok := models.ParseApplicationStatus(newStatus)
	if !ok {
		return nil, apperrors.ErrApplicationStatusInvalid
	}

	application, err := s.opportunityRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	opportunity, err := s.opportunityRepo.GetByID(ctx, application.OpportunityID)
	if err != nil {
		return nil, err
	}
	if !appauth.CanManageOpportunity(actor, opportunity) {
		return nil, apperrors.ErrPermissionDenied
	}

	if err := s.opportunityRepo.UpdateApplicationStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}
	application.Status = status
	return application, nil
}

// AttachResume records an uploaded resume path; applicant only
func (s *OpportunityService) AttachResume(ctx context.Context, actor appauth.Actor, applicationID uuid.UUID, path string) error {
	application, err := s.opportunityRepo.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if !appauth.CanUploadResume(actor, application) {
		return apperrors.ErrPermissionDenied
	}
	return s.opportunityRepo.SetResumePath(ctx, applicationID, path)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
