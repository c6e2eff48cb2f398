package auth

import (
	"testing"
	"time"

	"reviewhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-long-enough"

func testUser() *models.User {
	return &models.User{
		ID:       "3f6c2c43-9a5e-4f07-9d39-02f2e9a54321",
		Username: "reader",
		Role:     models.RoleModerator,
	}
}

func TestTokenSignAndParse(t *testing.T) {
	signer := NewTokenSigner(testSecret, time.Hour)

	token, err := signer.Sign(testUser())
	require.NoError(t, err)

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "3f6c2c43-9a5e-4f07-9d39-02f2e9a54321", claims.UserID)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
}

func TestTokenParseRejectsWrongSecret(t *testing.T) {
	signer := NewTokenSigner(testSecret, time.Hour)
	token, err := signer.Sign(testUser())
	require.NoError(t, err)

	other := NewTokenSigner("another-secret-key-also-long-enough", time.Hour)
	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenParseRejectsExpired(t *testing.T) {
	signer := NewTokenSigner(testSecret, -time.Minute)
	token, err := signer.Sign(testUser())
	require.NoError(t, err)

	_, err = signer.Parse(token)
	assert.Error(t, err)
}

func TestTokenParseRejectsGarbage(t *testing.T) {
	signer := NewTokenSigner(testSecret, time.Hour)
	_, err := signer.Parse("not-a-token")
	assert.Error(t, err)
}
