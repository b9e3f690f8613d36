package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/donorconnect/donor-api/config"
	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/pkg/auth"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
const dummyHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8.5YBmQ7cP0qH1b5pD6gFQx0r2Lw1e"

type Service struct {
	operators map[string]config.OperatorConfig
	jwtSvc    auth.JWTService
	hasher    auth.PasswordHasher
}

func NewService(operators []config.OperatorConfig, jwtSvc auth.JWTService, hasher auth.PasswordHasher) *Service {
	byEmail := make(map[string]config.OperatorConfig, len(operators))
	for _, op := range operators {
		byEmail[strings.ToLower(strings.TrimSpace(op.Email))] = op
	}
	return &Service{
		operators: byEmail,
		jwtSvc:    jwtSvc,
		hasher:    hasher,
	}
}

// IssueToken exchanges operator credentials for an access token.
func (s *Service) IssueToken(ctx context.Context, req *model.TokenRequest) (*model.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	op, ok := s.operators[email]
	hash := op.PasswordHash
	if !ok {
		hash = dummyHash
	}

	if err := s.hasher.Compare(hash, req.Password); err != nil || !ok {
		log.Warn().Str("email", email).Msg("operator login failed")
		return nil, apperrors.Unauthorized(ErrInvalidCredentials)
	}

	role := op.Role
	if role == "" {
		role = model.RoleAdmin
	}

	token, ttl, err := s.jwtSvc.GenerateAccessToken(email, role)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	log.Info().Str("email", email).Str("role", role).Msg("operator token issued")

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}
