package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfk4us/bocc-client-panel/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// TokenResponse is the login payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AuthService interface {
	VerifyPassword(profile *models.Profile, password string) error
	GenerateToken(profile *models.Profile) (*TokenResponse, error)
}

type authService struct {
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

func (s *authService) VerifyPassword(profile *models.Profile, password string) error {
	if profile.PasswordHash == "" {
		// Profiles provisioned from the admin panel have no login yet
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *authService) GenerateToken(profile *models.Profile) (*TokenResponse, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":           profile.ID.String(),
		"role":          profile.Role,
		"workflow_name": profile.WorkflowName,
		"email":         profile.Email,
		"iat":           now.Unix(),
		"exp":           now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}, nil
}
