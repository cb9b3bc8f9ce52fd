package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Compact Tractor", "compact-tractor"},
		{"Charrue réversible 3 corps", "charrue-rversible-3-corps"},
		{"  Déjà --- Vu!  ", "dj-vu"},
		{"UPPER case", "upper-case"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.input), "Slugify(%q)", tt.input)
	}
}

func TestFormatSequenceNumber(t *testing.T) {
	assert.Equal(t, "CMD-000001", FormatSequenceNumber("CMD", 1))
	assert.Equal(t, "FAC-000123", FormatSequenceNumber("FAC", 123))
	assert.Equal(t, "PAY-1000000", FormatSequenceNumber("PAY", 1000000))
}

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, "jean@example.com", "admin")
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "jean@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "jean@example.com", "user")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTRejectsRefreshTokenAsAccess(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	refresh, err := manager.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := manager.GenerateAccessToken(uuid.New(), "jean@example.com", "user")
	require.NoError(t, err)

	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-passw0rd")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-passw0rd", hash)

	assert.True(t, CheckPasswordHash("s3cret-passw0rd", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
