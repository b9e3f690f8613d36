package postgres

import (
	"context"
	"fmt"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
)

type inventoryRepository struct {
	BaseRepository
}

func NewInventoryRepository(base BaseRepository) repository.InventoryRepository {
	return &inventoryRepository{base}
}

func (r *inventoryRepository) Blood(ctx context.Context) ([]*model.BloodInventory, error) {
	query := `SELECT blood_type, level, units, status, last_donation FROM blood_inventory ORDER BY position`
	rows := []*model.BloodInventory{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list blood inventory: %w", err)
	}
	return rows, nil
}

func (r *inventoryRepository) Organs(ctx context.Context) ([]*model.OrganInventory, error) {
	query := `SELECT organ, donors_available, requests, urgency FROM organ_inventory ORDER BY position`
	rows := []*model.OrganInventory{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list organ inventory: %w", err)
	}
	return rows, nil
}

func (r *inventoryRepository) Tissues(ctx context.Context) ([]*model.TissueInventory, error) {
	query := `SELECT tissue, units, requests, last_updated FROM tissue_inventory ORDER BY position`
	rows := []*model.TissueInventory{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list tissue inventory: %w", err)
	}
	return rows, nil
}

type forecastRow struct {
	DayOffset int             `db:"day_offset"`
	Label     string          `db:"label"`
	BloodType model.BloodType `db:"blood_type"`
	Units     int             `db:"units"`
}

// Forecast folds the one-row-per-blood-type table into one entry per day.
func (r *inventoryRepository) Forecast(ctx context.Context) ([]*model.DemandForecast, error) {
	query := `SELECT day_offset, label, blood_type, units FROM demand_forecast ORDER BY day_offset, blood_type`
	var rows []forecastRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list demand forecast: %w", err)
	}

	days := []*model.DemandForecast{}
	for _, row := range rows {
		if n := len(days); n == 0 || days[n-1].DayOffset != row.DayOffset {
			days = append(days, &model.DemandForecast{
				DayOffset: row.DayOffset,
				Label:     row.Label,
				Demand:    make(map[model.BloodType]int),
			})
		}
		days[len(days)-1].Demand[row.BloodType] = row.Units
	}
	return days, nil
}
