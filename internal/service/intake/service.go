package intake

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
	"github.com/donorconnect/donor-api/internal/service/matchmaker"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
)

const (
	NotPendingMessage     = "Matches can only be found for pending requests."
	MissingDetailsMessage = "Request details are missing."
)

type IntakeServicer interface {
	CreateRequest(ctx context.Context, in *model.CreateEmergencyRequest) (*model.EmergencyRequest, error)
	GetRequest(ctx context.Context, id string) (*model.EmergencyRequest, error)
	ListRequests(ctx context.Context, filters *model.RequestFilters) ([]*model.EmergencyRequest, error)
	FindMatches(ctx context.Context, id string) (*model.MatchResult, error)
	Evaluate(ctx context.Context, req *model.EmergencyRequest) (*model.MatchResult, error)
}

type Service struct {
	repo    repository.EmergencyRequestRepository
	matcher matchmaker.Matcher
}

func NewService(repo repository.EmergencyRequestRepository, matcher matchmaker.Matcher) *Service {
	return &Service{
		repo:    repo,
		matcher: matcher,
	}
}

// CreateRequest stores a new emergency request. New requests always start
// Pending.
func (s *Service) CreateRequest(ctx context.Context, in *model.CreateEmergencyRequest) (*model.EmergencyRequest, error) {
	req := &model.EmergencyRequest{
		ID:          "req_" + uuid.NewString(),
		RequestType: in.RequestType,
		BloodType:   in.BloodType,
		Organ:       in.Organ,
		Tissue:      in.Tissue,
		Location:    strings.TrimSpace(in.Location),
		Status:      model.RequestStatusPending,
		PatientName: strings.TrimSpace(in.PatientName),
	}

	if err := req.Validate(); err != nil {
		return nil, apperrors.NewValidation(err.Error(), err)
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, apperrors.NewInternal(err)
	}

	log.Info().
		Str("request_id", req.ID).
		Str("request_type", string(req.RequestType)).
		Str("location", req.Location).
		Msg("emergency request created")

	return req, nil
}

func (s *Service) GetRequest(ctx context.Context, id string) (*model.EmergencyRequest, error) {
	req, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("emergency request", err)
		}
		return nil, apperrors.NewInternal(err)
	}
	return req, nil
}

func (s *Service) ListRequests(ctx context.Context, filters *model.RequestFilters) ([]*model.EmergencyRequest, error) {
	if filters != nil && filters.Status != "" && !filters.Status.Valid() {
		return nil, apperrors.NewValidation("status must be Pending or Fulfilled", nil)
	}
	reqs, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return reqs, nil
}

// FindMatches loads the request and runs it through Evaluate. A missing
// request is an error with a nil result; every other outcome carries a
// result, alongside the error kind when it failed.
func (s *Service) FindMatches(ctx context.Context, id string) (*model.MatchResult, error) {
	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(ctx, req)
}

// Evaluate gates req on its status, derives the match query and calls the
// matchmaker. Non-pending and incomplete requests never reach it. The
// request status is left unchanged.
func (s *Service) Evaluate(ctx context.Context, req *model.EmergencyRequest) (*model.MatchResult, error) {
	if req.Status != model.RequestStatusPending {
		return failed(NotPendingMessage), apperrors.NewPrecondition(NotPendingMessage)
	}

	q, ok := QueryFor(req)
	if !ok {
		return failed(MissingDetailsMessage), apperrors.NewValidation(MissingDetailsMessage, nil)
	}

	matches, err := s.matcher.FindMatches(ctx, q)
	if err != nil {
		msg := matchmaker.UnavailableMessage
		if errors.Is(err, apperrors.ErrKindValidation) {
			msg = MissingDetailsMessage
		}
		return failed(msg), err
	}

	return &model.MatchResult{Matches: matches}, nil
}

// QueryFor derives the matchmaker query. detail is bloodType, else organ,
// else tissue; ok is false when no detail or no location is set.
func QueryFor(req *model.EmergencyRequest) (model.MatchQuery, bool) {
	detail, ok := req.Detail()
	location := strings.TrimSpace(req.Location)
	if !ok || location == "" {
		return model.MatchQuery{}, false
	}
	return model.MatchQuery{
		RequestType: req.RequestType,
		Detail:      detail,
		Location:    location,
	}, true
}

func failed(msg string) *model.MatchResult {
	return &model.MatchResult{Matches: []model.DonorMatch{}, Error: &msg}
}
