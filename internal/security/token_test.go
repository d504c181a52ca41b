package security_test

import (
	"testing"
	"time"

	"borrowbay-backend/internal/security"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tokens := security.NewTokenManager("unit-test-secret-0123456789abcdef", time.Hour)

	token, err := tokens.GenerateAccessToken(3, "asha@test.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tokens.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, "asha@test.com", claims.Email)
}

func TestTokenManager_Expired(t *testing.T) {
	tokens := security.NewTokenManager("unit-test-secret-0123456789abcdef", time.Nanosecond)

	token, err := tokens.GenerateAccessToken(3, "asha@test.com")
	assert.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = tokens.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tokens := security.NewTokenManager("unit-test-secret-0123456789abcdef", time.Hour)
	other := security.NewTokenManager("another-secret-entirely-0123456789", time.Hour)

	token, err := tokens.GenerateAccessToken(3, "asha@test.com")
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	tokens := security.NewTokenManager("unit-test-secret-0123456789abcdef", time.Hour)

	_, err := tokens.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}
