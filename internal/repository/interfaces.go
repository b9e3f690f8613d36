package repository

import (
	"context"
	"errors"

	"github.com/donorconnect/donor-api/internal/model"
)

// ErrNotFound is returned by every repository when the entity does not exist.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	// EmergencyRequestRepository handles emergency request operations
	EmergencyRequestRepository interface {
		Create(ctx context.Context, req *model.EmergencyRequest) error
		Get(ctx context.Context, id string) (*model.EmergencyRequest, error)
		List(ctx context.Context, filters *model.RequestFilters) ([]*model.EmergencyRequest, error)
	}

	DonorRepository interface {
		Get(ctx context.Context, id string) (*model.Donor, error)
		List(ctx context.Context) ([]*model.Donor, error)
		History(ctx context.Context, donorID string) ([]*model.DonationHistoryEntry, error)
		Insights(ctx context.Context, donorID string) ([]*model.HealthInsight, error)
	}

	InventoryRepository interface {
		Blood(ctx context.Context) ([]*model.BloodInventory, error)
		Organs(ctx context.Context) ([]*model.OrganInventory, error)
		Tissues(ctx context.Context) ([]*model.TissueInventory, error)
		// Forecast returns the upcoming days ordered by DayOffset.
		Forecast(ctx context.Context) ([]*model.DemandForecast, error)
	}

	DriveRepository interface {
		ListDrives(ctx context.Context) ([]*model.BloodDrive, error)
		ListCampaigns(ctx context.Context) ([]*model.Campaign, error)
	}
)

// Store bundles the repositories the services are built from.
type Store struct {
	Requests  EmergencyRequestRepository
	Donors    DonorRepository
	Inventory InventoryRepository
	Drives    DriveRepository
}
