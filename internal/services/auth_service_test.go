package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mfk4us/bocc-client-panel/internal/models"
)

func TestVerifyPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	profile := &models.Profile{PasswordHash: string(hash)}

	svc := NewAuthService("test-secret", time.Hour)

	assert.NoError(t, svc.VerifyPassword(profile, "s3cret"))
	assert.ErrorIs(t, svc.VerifyPassword(profile, "wrong"), ErrInvalidCredentials)
}

func TestVerifyPassword_NoHashRejectsLogin(t *testing.T) {
	svc := NewAuthService("test-secret", time.Hour)

	err := svc.VerifyPassword(&models.Profile{}, "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGenerateToken_CarriesIdentityClaims(t *testing.T) {
	profile := &models.Profile{
		ID:           uuid.New(),
		Email:        "owner@salon.example",
		Role:         models.RoleTenant,
		WorkflowName: "wf_salon",
	}

	svc := NewAuthService("test-secret", time.Hour)

	resp, err := svc.GenerateToken(profile)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	parsed, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, profile.ID.String(), claims["sub"])
	assert.Equal(t, models.RoleTenant, claims["role"])
	assert.Equal(t, "wf_salon", claims["workflow_name"])
	assert.Equal(t, "owner@salon.example", claims["email"])
}
