package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
)

type donorRepository struct {
	BaseRepository
}

func NewDonorRepository(base BaseRepository) repository.DonorRepository {
	return &donorRepository{base}
}

// donorRow carries the JSONB columns as raw bytes.
type donorRow struct {
	model.Donor
	DonationsJSON    []byte `db:"donations"`
	MedicalTestsJSON []byte `db:"medical_tests"`
	BadgesJSON       []byte `db:"badges"`
}

func (row *donorRow) decode() (*model.Donor, error) {
	d := row.Donor
	if err := json.Unmarshal(row.DonationsJSON, &d.Donations); err != nil {
		return nil, fmt.Errorf("failed to decode donations for donor %s: %w", d.ID, err)
	}
	if err := json.Unmarshal(row.MedicalTestsJSON, &d.MedicalTests); err != nil {
		return nil, fmt.Errorf("failed to decode medical tests for donor %s: %w", d.ID, err)
	}
	if err := json.Unmarshal(row.BadgesJSON, &d.Badges); err != nil {
		return nil, fmt.Errorf("failed to decode badges for donor %s: %w", d.ID, err)
	}
	return &d, nil
}

const donorColumns = `id, name, email, is_eligible, next_eligible_date, availability, donations, medical_tests, badges`

func (r *donorRepository) Get(ctx context.Context, id string) (*model.Donor, error) {
	var row donorRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+donorColumns+` FROM donors WHERE id = $1`, id); err != nil {
		return nil, notFound(err, "donor")
	}
	return row.decode()
}

func (r *donorRepository) List(ctx context.Context) ([]*model.Donor, error) {
	var rows []donorRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+donorColumns+` FROM donors ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}

	donors := make([]*model.Donor, 0, len(rows))
	for i := range rows {
		d, err := rows[i].decode()
		if err != nil {
			return nil, err
		}
		donors = append(donors, d)
	}
	return donors, nil
}

type historyRow struct {
	model.DonationHistoryEntry
	JourneyJSON []byte `db:"journey"`
}

// History reads the donor check and the entries in one transaction so a
// concurrent delete cannot yield an empty history for a missing donor.
func (r *donorRepository) History(ctx context.Context, donorID string) ([]*model.DonationHistoryEntry, error) {
	var rows []historyRow
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM donors WHERE id = $1)`, donorID); err != nil {
			return fmt.Errorf("failed to check donor: %w", err)
		}
		if !exists {
			return repository.ErrNotFound
		}

		query := `
			SELECT id, donor_id, date, location, type, details, status, journey
			FROM donation_history
			WHERE donor_id = $1
			ORDER BY position, id
		`
		if err := tx.SelectContext(ctx, &rows, query, donorID); err != nil {
			return fmt.Errorf("failed to list donation history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*model.DonationHistoryEntry, 0, len(rows))
	for i := range rows {
		e := rows[i].DonationHistoryEntry
		if err := json.Unmarshal(rows[i].JourneyJSON, &e.Journey); err != nil {
			return nil, fmt.Errorf("failed to decode journey for donation %s: %w", e.ID, err)
		}
		entries = append(entries, &e)
	}
	return entries, nil
}

func (r *donorRepository) Insights(ctx context.Context, donorID string) ([]*model.HealthInsight, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM donors WHERE id = $1)`, donorID); err != nil {
		return nil, fmt.Errorf("failed to check donor: %w", err)
	}
	if !exists {
		return nil, repository.ErrNotFound
	}

	query := `
		SELECT donor_id, title, value, insight
		FROM health_insights
		WHERE donor_id = $1
		ORDER BY position
	`
	insights := []*model.HealthInsight{}
	if err := r.db.SelectContext(ctx, &insights, query, donorID); err != nil {
		return nil, fmt.Errorf("failed to list health insights: %w", err)
	}
	return insights, nil
}
