package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.True(t, IsPasswordHash(hash))
	assert.False(t, IsPasswordHash("admin123"))

	ok, err := VerifyPassword(hash, "admin123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateAdminToken(secret, 3)
	require.NoError(t, err)

	claims, err := ValidateAdminToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), claims.Generation)
	assert.Equal(t, "admin", claims.Subject)

	_, err = ValidateAdminToken([]byte("other-secret"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateAdminToken(secret, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminToken_RejectsOtherSubject(t *testing.T) {
	secret := []byte("test-secret")
	claims := AdminClaims{
		Generation: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "user",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = ValidateAdminToken(secret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
