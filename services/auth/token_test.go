package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService(t *testing.T) {
	_, err := NewTokenService("", 10)
	assert.Error(t, err)

	_, err = NewTokenService("secret", 0)
	assert.Error(t, err)
}

func TestGenerateAndParse(t *testing.T) {
	service, err := NewTokenService("test-secret", 60)
	require.NoError(t, err)

	token, err := service.GenerateToken(12, "eater@example.com")
	require.NoError(t, err)

	claims, err := service.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.UserID)
	assert.Equal(t, "eater@example.com", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseExpired(t *testing.T) {
	service, err := NewTokenService("test-secret", 1)
	require.NoError(t, err)

	issued := time.Now().Add(-2 * time.Hour)
	service.now = func() time.Time { return issued }
	token, err := service.GenerateToken(1, "eater@example.com")
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	issuer, err := NewTokenService("secret-a", 60)
	require.NoError(t, err)
	verifier, err := NewTokenService("secret-b", 60)
	require.NoError(t, err)

	token, err := issuer.GenerateToken(1, "eater@example.com")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	service, err := NewTokenService("test-secret", 60)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "eater@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	service, err := NewTokenService("test-secret", 60)
	require.NoError(t, err)

	_, err = service.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
