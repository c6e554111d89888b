package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mfk4us/bocc-client-panel/internal/common"
	"github.com/mfk4us/bocc-client-panel/internal/models"
	"github.com/mfk4us/bocc-client-panel/internal/repositories"
	"github.com/mfk4us/bocc-client-panel/internal/services"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService    services.AuthService
	sessionService services.SessionService
	profileRepo    repositories.ProfileRepository
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(authService services.AuthService, sessionService services.SessionService, profileRepo repositories.ProfileRepository) *AuthHandlers {
	return &AuthHandlers{
		authService:    authService,
		sessionService: sessionService,
		profileRepo:    profileRepo,
	}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	services.TokenResponse
	Profile *models.Profile `json:"profile"`
}

// Login handles user login with email and password
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	profile, err := h.profileRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if err := h.authService.VerifyPassword(profile, req.Password); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	tokenResponse, err := h.authService.GenerateToken(profile)
	if err != nil {
		log.Printf("token generation failed for %s: %v", profile.ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	// Seed the session so the panel has its scoping state on first load
	session, err := h.sessionService.Get(ctx, profile.ID)
	if err == nil {
		session.Role = profile.Role
		session.WorkflowName = profile.WorkflowName
		session.Email = profile.Email
		if err := h.sessionService.Save(ctx, profile.ID, session); err != nil {
			log.Printf("session seed failed for %s: %v", profile.ID, err)
		}
	}

	return c.JSON(http.StatusOK, LoginResponse{
		TokenResponse: *tokenResponse,
		Profile:       profile,
	})
}

// Me handles GET /me, returning the caller's own profile
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	profileID, ok := common.GetProfileIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	profile, err := h.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return common.SendNotFoundError(c, "profile")
	}

	return c.JSON(http.StatusOK, profile)
}
