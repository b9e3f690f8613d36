package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/donorconnect/donor-api/config"
	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/pkg/auth"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
)

func newService(t *testing.T) (*Service, auth.JWTService) {
	t.Helper()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("letmein-please")
	require.NoError(t, err)

	jwtSvc := auth.NewJWTService("test-secret", "donorconnect", 2*time.Hour)
	return NewService([]config.OperatorConfig{
		{Email: "Admin@DonorConnect.example", PasswordHash: hash, Role: "admin"},
	}, jwtSvc, hasher), jwtSvc
}

func TestIssueToken(t *testing.T) {
	svc, jwtSvc := newService(t)

	resp, err := svc.IssueToken(context.Background(), &model.TokenRequest{
		Email:    "admin@donorconnect.example",
		Password: "letmein-please",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(7200), resp.ExpiresIn)

	claims, err := jwtSvc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "admin@donorconnect.example", claims.Email)
}

func TestIssueTokenRejectsBadCredentials(t *testing.T) {
	svc, _ := newService(t)

	for _, req := range []*model.TokenRequest{
		{Email: "admin@donorconnect.example", Password: "nope"},
		{Email: "stranger@donorconnect.example", Password: "letmein-please"},
	} {
		_, err := svc.IssueToken(context.Background(), req)
		assert.Equal(t, 401, apperrors.HTTPStatus(err))
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}
