package postgres

import (
	"context"
	"fmt"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
)

type emergencyRequestRepository struct {
	BaseRepository
}

func NewEmergencyRequestRepository(base BaseRepository) repository.EmergencyRequestRepository {
	return &emergencyRequestRepository{base}
}

const requestColumns = `id, request_type, blood_type, organ, tissue, location, status, patient_name`

func (r *emergencyRequestRepository) Create(ctx context.Context, req *model.EmergencyRequest) error {
	query := `
		INSERT INTO emergency_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.RequestType,
		req.BloodType,
		req.Organ,
		req.Tissue,
		req.Location,
		req.Status,
		req.PatientName,
	)
	if err != nil {
		return fmt.Errorf("failed to create emergency request: %w", err)
	}
	return nil
}

func (r *emergencyRequestRepository) Get(ctx context.Context, id string) (*model.EmergencyRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM emergency_requests WHERE id = $1`

	var req model.EmergencyRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, notFound(err, "emergency request")
	}
	return &req, nil
}

func (r *emergencyRequestRepository) List(ctx context.Context, filters *model.RequestFilters) ([]*model.EmergencyRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM emergency_requests`
	var args []interface{}

	if filters != nil && filters.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, filters.Status)
	}
	query += ` ORDER BY created_at, id`

	reqs := []*model.EmergencyRequest{}
	if err := r.db.SelectContext(ctx, &reqs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list emergency requests: %w", err)
	}
	return reqs, nil
}
