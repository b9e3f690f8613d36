package donor

import (
	"context"
	"errors"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
)

type DonorServicer interface {
	GetDonor(ctx context.Context, id string) (*model.Donor, error)
	ListDonors(ctx context.Context) ([]*model.Donor, error)
	History(ctx context.Context, id string) ([]*model.DonationHistoryEntry, error)
	Insights(ctx context.Context, id string) ([]*model.HealthInsight, error)
}

type Service struct {
	repo repository.DonorRepository
}

func NewService(repo repository.DonorRepository) *Service {
	return &Service{repo: repo}
}

func mapErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("donor", err)
	}
	return apperrors.NewInternal(err)
}

func (s *Service) GetDonor(ctx context.Context, id string) (*model.Donor, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return d, nil
}

func (s *Service) ListDonors(ctx context.Context) ([]*model.Donor, error) {
	donors, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return donors, nil
}

func (s *Service) History(ctx context.Context, id string) ([]*model.DonationHistoryEntry, error) {
	h, err := s.repo.History(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return h, nil
}

func (s *Service) Insights(ctx context.Context, id string) ([]*model.HealthInsight, error) {
	insights, err := s.repo.Insights(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return insights, nil
}
