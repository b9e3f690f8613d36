package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
	"github.com/donorconnect/donor-api/internal/repository/memory"
	apperrors "github.com/donorconnect/donor-api/pkg/errors"
)

type countingInventory struct {
	repository.InventoryRepository
	bloodCalls int
	rows       []*model.BloodInventory
	err        error
}

func (c *countingInventory) Blood(ctx context.Context) ([]*model.BloodInventory, error) {
	c.bloodCalls++
	return c.rows, c.err
}

func TestBloodDerivesMissingStatusAndCaches(t *testing.T) {
	inv := &countingInventory{rows: []*model.BloodInventory{
		{BloodType: model.BloodTypeONeg, Level: 15},
		{BloodType: model.BloodTypeBPos, Level: 45},
		{BloodType: model.BloodTypeAPos, Level: 80},
		{BloodType: model.BloodTypeBNeg, Level: 90, Status: model.StockStatusLow},
	}}
	store := memory.NewStore()
	svc := NewService(inv, store.Drives, time.Minute, time.Minute)

	rows, err := svc.Blood(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StockStatusCritical, rows[0].Status)
	assert.Equal(t, model.StockStatusLow, rows[1].Status)
	assert.Equal(t, model.StockStatusSafe, rows[2].Status)
	assert.Equal(t, model.StockStatusLow, rows[3].Status, "stored status wins")

	_, err = svc.Blood(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, inv.bloodCalls)

	svc.Invalidate()
	_, err = svc.Blood(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, inv.bloodCalls)
}

func TestLoadErrorsAreNotCached(t *testing.T) {
	inv := &countingInventory{err: errors.New("db down")}
	svc := NewService(inv, memory.NewStore().Drives, time.Minute, time.Minute)

	_, err := svc.Blood(context.Background())
	assert.Equal(t, 500, apperrors.HTTPStatus(err))

	inv.err = nil
	inv.rows = []*model.BloodInventory{{BloodType: model.BloodTypeAPos, Level: 10}}
	rows, err := svc.Blood(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestListsFromSeededStore(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Inventory, store.Drives, time.Minute, time.Minute)
	ctx := context.Background()

	organs, err := svc.Organs(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.OrganKidney, organs[0].Organ)

	tissues, err := svc.Tissues(ctx)
	require.NoError(t, err)
	assert.Len(t, tissues, 5)

	drives, err := svc.Drives(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Summer Blood Drive", drives[0].Name)

	campaigns, err := svc.Campaigns(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CampaignStatusActive, campaigns[0].Status)

	forecast, err := svc.Forecast(ctx)
	require.NoError(t, err)
	require.Len(t, forecast, 5)
	assert.Equal(t, "Today", forecast[0].Label)
	assert.Equal(t, 85, forecast[4].Demand[model.BloodTypeONeg])
}
