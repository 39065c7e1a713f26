package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"charhub/config"
	"charhub/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	user := &models.User{
		Model: gorm.Model{ID: 7},
		Email: "a@x.com",
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(TokenValidity), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenExpired(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	// Hand-build a token whose validity window has already passed.
	claims := &Claims{
		UserID: 7,
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)

	_, err = ParseToken(expired)
	assert.Error(t, err)
}

func TestParseTokenWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	user := &models.User{Model: gorm.Model{ID: 1}, Email: "a@x.com"}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "a-different-secret"
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}
