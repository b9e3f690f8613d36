package postgres

import (
	"context"
	"fmt"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
)

type driveRepository struct {
	BaseRepository
}

func NewDriveRepository(base BaseRepository) repository.DriveRepository {
	return &driveRepository{base}
}

func (r *driveRepository) ListDrives(ctx context.Context) ([]*model.BloodDrive, error) {
	drives := []*model.BloodDrive{}
	if err := r.db.SelectContext(ctx, &drives, `SELECT id, name, location, date, time, organizer FROM blood_drives ORDER BY date, id`); err != nil {
		return nil, fmt.Errorf("failed to list blood drives: %w", err)
	}
	return drives, nil
}

func (r *driveRepository) ListCampaigns(ctx context.Context) ([]*model.Campaign, error) {
	query := `SELECT id, name, goal, start_date, end_date, status, description FROM campaigns ORDER BY id`
	campaigns := []*model.Campaign{}
	if err := r.db.SelectContext(ctx, &campaigns, query); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}
