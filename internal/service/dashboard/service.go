package dashboard

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
	"github.com/donorconnect/donor-api/internal/service/inventory"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
)

type Service struct {
	requests  repository.EmergencyRequestRepository
	inventory inventory.InventoryServicer
}

func NewService(requests repository.EmergencyRequestRepository, inv inventory.InventoryServicer) *Service {
	return &Service{requests: requests, inventory: inv}
}

// Overview gathers the admin landing-page numbers concurrently. Any failing
// source fails the whole overview.
func (s *Service) Overview(ctx context.Context) (*model.Overview, error) {
	var (
		reqs      []*model.EmergencyRequest
		blood     []*model.BloodInventory
		organs    []*model.OrganInventory
		campaigns []*model.Campaign
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reqs, err = s.requests.List(gctx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		blood, err = s.inventory.Blood(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		organs, err = s.inventory.Organs(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		campaigns, err = s.inventory.Campaigns(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperrors.NewInternal(err)
	}

	out := &model.Overview{
		CriticalBlood:     []model.BloodType{},
		HighUrgencyOrgans: []model.Organ{},
	}
	for _, r := range reqs {
		switch r.Status {
		case model.RequestStatusPending:
			out.PendingRequests++
		case model.RequestStatusFulfilled:
			out.FulfilledRequests++
		}
	}
	for _, b := range blood {
		if b.Status == model.StockStatusCritical {
			out.CriticalBlood = append(out.CriticalBlood, b.BloodType)
		}
	}
	for _, o := range organs {
		if o.Urgency == model.UrgencyHigh {
			out.HighUrgencyOrgans = append(out.HighUrgencyOrgans, o.Organ)
		}
	}
	for _, c := range campaigns {
		if c.Status == model.CampaignStatusActive {
			out.ActiveCampaigns++
		}
	}
	return out, nil
}
