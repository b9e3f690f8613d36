package inventory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
)

const (
	keyBlood     = "inventory:blood"
	keyOrgans    = "inventory:organs"
	keyTissues   = "inventory:tissues"
	keyForecast  = "inventory:forecast"
	keyDrives    = "drives"
	keyCampaigns = "campaigns"
)

type InventoryServicer interface {
	Blood(ctx context.Context) ([]*model.BloodInventory, error)
	Organs(ctx context.Context) ([]*model.OrganInventory, error)
	Tissues(ctx context.Context) ([]*model.TissueInventory, error)
	Forecast(ctx context.Context) ([]*model.DemandForecast, error)
	Drives(ctx context.Context) ([]*model.BloodDrive, error)
	Campaigns(ctx context.Context) ([]*model.Campaign, error)
}

// Service serves inventory, drives and campaigns through a short-lived read
// cache. Cached slices are shared between callers and must not be mutated.
type Service struct {
	inventory repository.InventoryRepository
	drives    repository.DriveRepository
	cache     *cache.Cache
}

func NewService(inventory repository.InventoryRepository, drives repository.DriveRepository, ttl, cleanup time.Duration) *Service {
	return &Service{
		inventory: inventory,
		drives:    drives,
		cache:     cache.New(ttl, cleanup),
	}
}

func cached[T any](ctx context.Context, c *cache.Cache, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if v, ok := c.Get(key); ok {
		return v.([]T), nil
	}

	items, err := load(ctx)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to load dashboard data")
		return nil, apperrors.NewInternal(err)
	}

	c.SetDefault(key, items)
	return items, nil
}

// Blood returns the blood inventory; rows without a status get one derived
// from their stock level.
func (s *Service) Blood(ctx context.Context) ([]*model.BloodInventory, error) {
	return cached(ctx, s.cache, keyBlood, func(ctx context.Context) ([]*model.BloodInventory, error) {
		rows, err := s.inventory.Blood(ctx)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			if r.Status == "" {
				r.Status = model.StockStatusForLevel(r.Level)
			}
		}
		return rows, nil
	})
}

func (s *Service) Organs(ctx context.Context) ([]*model.OrganInventory, error) {
	return cached(ctx, s.cache, keyOrgans, s.inventory.Organs)
}

func (s *Service) Tissues(ctx context.Context) ([]*model.TissueInventory, error) {
	return cached(ctx, s.cache, keyTissues, s.inventory.Tissues)
}

// Forecast returns the projected blood demand for the coming days.
func (s *Service) Forecast(ctx context.Context) ([]*model.DemandForecast, error) {
	return cached(ctx, s.cache, keyForecast, s.inventory.Forecast)
}

func (s *Service) Drives(ctx context.Context) ([]*model.BloodDrive, error) {
	return cached(ctx, s.cache, keyDrives, s.drives.ListDrives)
}

func (s *Service) Campaigns(ctx context.Context) ([]*model.Campaign, error) {
	return cached(ctx, s.cache, keyCampaigns, s.drives.ListCampaigns)
}

// Invalidate drops every cached list.
func (s *Service) Invalidate() {
	s.cache.Flush()
}
