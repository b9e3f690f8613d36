package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("s3cret", "donorconnect", time.Hour)

	token, ttl, err := svc.GenerateAccessToken("admin@donorconnect.example", "admin")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@donorconnect.example", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTRejections(t *testing.T) {
	svc := NewJWTService("s3cret", "donorconnect", time.Hour)
	token, _, err := svc.GenerateAccessToken("a@b.c", "admin")
	require.NoError(t, err)

	_, err = NewJWTService("other", "donorconnect", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTService("s3cret", "someone-else", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := svc.(*jwtService)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.GenerateAccessToken("a@b.c", "admin")
	require.NoError(t, err)
	_, err = NewJWTService("s3cret", "donorconnect", time.Hour).ValidateToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"iss": "donorconnect", "role": "admin"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.Error(t, h.Compare(hash, "wrong"))
}
