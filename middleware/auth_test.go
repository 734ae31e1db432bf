package middleware

import (
	"testing"
	"time"

	"iotreg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	user := &models.User{ID: 7, Username: "admin"}
	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	SetJWTSecret("first-secret")
	user := &models.User{ID: 1, Username: "admin"}
	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	SetJWTSecret("second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	SetJWTSecret("test-secret")
	user := &models.User{ID: 1, Username: "admin"}
	token, err := GenerateToken(user, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}
