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
	"github.com/aegisplatform/aegis/internal/pkg/auth"
	"github.com/aegisplatform/aegis/internal/pkg/validation"
)

// UserService handles profile and account management operations
type UserService struct {
	userRepo repositories.IUserRepository
	domains  validation.Domains
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, domains validation.Domains, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		domains:  domains,
		logger:   logger,
	}
}

// GetProfile loads the user's own profile
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates display name, department and avatar URL
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req.DisplayName, req.Department, req.AvatarURL); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// ChangePassword verifies the current password before storing a new hash
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash new password")
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

// ListUsers returns all accounts, admin only
func (s *UserService) ListUsers(ctx context.Context, actor appauth.Actor, page, size int) ([]models.User, int64, error) {
	if !appauth.CanListUsers(actor) {
		return nil, 0, apperrors.ErrPermissionDenied
	}
	return s.userRepo.List(ctx, page, size)
}

// ChangeRole promotes or demotes a user, admin only. The target user's email
// domain must be valid for the new role.
func (s *UserService) ChangeRole(ctx context.Context, actor appauth.Actor, targetID uuid.UUID, newRole string) (*models.User, error) {
	if !appauth.CanChangeRole(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	role, ok := models.ParseRole(newRole)
	if !ok {
		return nil, apperrors.NewValidationError("unknown role: " + newRole)
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !s.domains.EmailMatchesRole(target.Email, string(role)) {
		return nil, apperrors.ErrEmailDomainInvalid
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}
	s.logger.Info().Str("userId", targetID.String()).Str("role", string(role)).Msg("User role changed")

	target.Role = role
	return target, nil
}
