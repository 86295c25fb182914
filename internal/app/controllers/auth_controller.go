package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appauth "github.com/aegisplatform/aegis/internal/app/auth"
	"github.com/aegisplatform/aegis/internal/app/models/dto"
	"github.com/aegisplatform/aegis/internal/app/services"
	"github.com/aegisplatform/aegis/internal/middleware"
	"github.com/aegisplatform/aegis/internal/pkg/apperrors"
)

// parseUUIDParam parses a UUID path parameter
func parseUUIDParam(ctx *gin.Context, paramName string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(paramName))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+paramName+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return id, true
}

// requireActor loads the authenticated actor; JWTAuth must have run first
func requireActor(ctx *gin.Context) (appauth.Actor, bool) {
	actor, ok := middleware.ActorFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return appauth.Actor{}, false
	}
	return actor, true
}

// AuthController handles registration and token endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register godoc
// @Summary Register a new account
// @Description Create an account. The email domain must match the requested role; ADMIN cannot be self-assigned.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.StructuredResponse{data=dto.UserResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.FromUser(user), "Account created successfully"))
}

// Login godoc
// @Summary Log in
// @Description Exchange credentials for an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.StructuredResponse{data=dto.AuthResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, tokens, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.AuthResponse{Token: *tokens, User: dto.FromUser(user)}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Login successful"))
}

// Refresh godoc
// @Summary Refresh tokens
// @Description Exchange a valid refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.StructuredResponse{data=dto.AuthResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	user, tokens, err := c.authService.Refresh(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.AuthResponse{Token: *tokens, User: dto.FromUser(user)}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Token refreshed"))
}

// Logout godoc
// @Summary Log out
// @Description Tokens are stateless, so logout is client-side discard; this endpoint exists for API symmetry.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.StructuredResponse{data=dto.SuccessResponse}
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(
		dto.SuccessResponse{Message: "Logged out"}, "Logout successful"))
}
