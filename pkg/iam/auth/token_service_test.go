package auth_test

import (
	"testing"
	"time"

	"github.com/hirehub/hirehub/pkg/iam/auth"
	"github.com/hirehub/hirehub/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService() *auth.JWTService {
	return auth.NewJWTService("test-secret", time.Hour, "hirehub")
}

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	service := newTokenService()
	userID := kernel.UserID("user-1")

	token, claims, err := service.GenerateAccessToken(userID, kernel.RoleRecruiter)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, claims.TokenID)

	validated, err := service.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, validated.UserID)
	assert.Equal(t, kernel.RoleRecruiter, validated.Role)
	assert.Equal(t, claims.TokenID, validated.TokenID)
	assert.WithinDuration(t, claims.ExpiresAt, validated.ExpiresAt, time.Second)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := newTokenService().GenerateAccessToken("user-1", kernel.RoleStudent)
	require.NoError(t, err)

	other := auth.NewJWTService("different-secret", time.Hour, "hirehub")
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsWrongIssuer(t *testing.T) {
	issued := auth.NewJWTService("test-secret", time.Hour, "someone-else")
	token, _, err := issued.GenerateAccessToken("user-1", kernel.RoleStudent)
	require.NoError(t, err)

	_, err = newTokenService().ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	expired := auth.NewJWTService("test-secret", -time.Minute, "hirehub")
	token, _, err := expired.GenerateAccessToken("user-1", kernel.RoleStudent)
	require.NoError(t, err)

	_, err = newTokenService().ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := newTokenService().ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
