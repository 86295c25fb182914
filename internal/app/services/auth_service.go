package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aegisplatform/aegis/internal/app/models"
	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/app/repositories"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
	"github.com/aegisplatform/aegis/internal/pkg/auth"
	"github.com/aegisplatform/aegis/internal/pkg/validation"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	domains    validation.Domains
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	domains validation.Domains,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		domains:    domains,
		logger:     logger,
	}
}

// Register creates a new user account. ADMIN accounts can never be
// self-registered, and the email domain must match the requested role.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	role, ok := models.ParseRole(req.Role)
	if !ok {
		return nil, apperrors.NewValidationError("unknown role: " + req.Role)
	}
	if role == models.RoleAdmin {
		return nil, apperrors.NewForbiddenError("admin accounts cannot be self-registered")
	}

	email := strings.TrimSpace(req.Email)
	if !validation.IsEmail(email) {
		return nil, apperrors.ErrInvalidEmail
	}
	if !s.domains.EmailMatchesRole(email, string(role)) {
		return nil, apperrors.ErrEmailDomainInvalid
	}

	// Fast-fail duplicate check; the unique constraint remains authoritative
	// against races.
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to check email existence")
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, err
	}

	var department *string
	if d := strings.TrimSpace(req.Department); d != "" {
		department = &d
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		DisplayName:  req.DisplayName,
		Department:   department,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a token pair. A wrong password and an
// unknown email return the same error; a deactivated account is reported only
// after the password check succeeds.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Msg("Failed to load user for login")
		return nil, nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDeactivated
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Refresh validates a refresh token and re-derives a fresh pair from its
// subject. The old pair stays valid until it expires; there is no server-side
// token state to revoke.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.User, *dto.TokenResponse, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, nil, apperrors.ErrTokenExpired
		}
		return nil, nil, apperrors.ErrTokenInvalid
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, nil, apperrors.ErrTokenInvalid
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrTokenInvalid
		}
		s.logger.Error().Err(err).Msg("Failed to load user for refresh")
		return nil, nil, err
	}
	// A deactivated subject reads the same as a missing one: the refresh
	// token no longer identifies a usable account.
	if !user.IsActive {
		return nil, nil, apperrors.ErrTokenInvalid
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *AuthService) issueTokens(user *models.User) (*dto.TokenResponse, error) {
	access, refresh, expiresIn, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token pair")
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    expiresIn,
	}, nil
}
