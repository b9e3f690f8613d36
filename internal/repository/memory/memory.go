package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/donorconnect/donor-api/internal/model"
	"github.com/donorconnect/donor-api/internal/repository"
)

// NewStore returns repositories over the seeded demo dataset. Every read
// hands back copies so callers never share mutable state with the store.
func NewStore() *repository.Store {
	return &repository.Store{
		Requests:  NewEmergencyRequestRepository(seedRequests()),
		Donors:    NewDonorRepository(seedDonors(), seedHistory(), seedInsights()),
		Inventory: NewInventoryRepository(seedBlood(), seedOrgans(), seedTissues(), seedForecast()),
		Drives:    NewDriveRepository(seedDrives(), seedCampaigns()),
	}
}

type emergencyRequestRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]*model.EmergencyRequest
}

func NewEmergencyRequestRepository(seed []*model.EmergencyRequest) repository.EmergencyRequestRepository {
	r := &emergencyRequestRepository{items: make(map[string]*model.EmergencyRequest, len(seed))}
	for _, req := range seed {
		r.order = append(r.order, req.ID)
		r.items[req.ID] = copyRequest(req)
	}
	return r
}

func (r *emergencyRequestRepository) Create(ctx context.Context, req *model.EmergencyRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[req.ID]; exists {
		return fmt.Errorf("emergency request %s already exists", req.ID)
	}
	r.order = append(r.order, req.ID)
	r.items[req.ID] = copyRequest(req)
	return nil
}

func (r *emergencyRequestRepository) Get(ctx context.Context, id string) (*model.EmergencyRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyRequest(req), nil
}

func (r *emergencyRequestRepository) List(ctx context.Context, filters *model.RequestFilters) ([]*model.EmergencyRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.EmergencyRequest, 0, len(r.order))
	for _, id := range r.order {
		req := r.items[id]
		if filters != nil && filters.Status != "" && req.Status != filters.Status {
			continue
		}
		out = append(out, copyRequest(req))
	}
	return out, nil
}

func copyRequest(req *model.EmergencyRequest) *model.EmergencyRequest {
	c := *req
	if req.BloodType != nil {
		v := *req.BloodType
		c.BloodType = &v
	}
	if req.Organ != nil {
		v := *req.Organ
		c.Organ = &v
	}
	if req.Tissue != nil {
		v := *req.Tissue
		c.Tissue = &v
	}
	return &c
}

type donorRepository struct {
	donors   map[string]*model.Donor
	order    []string
	history  []*model.DonationHistoryEntry
	insights []*model.HealthInsight
}

func NewDonorRepository(donors []*model.Donor, history []*model.DonationHistoryEntry, insights []*model.HealthInsight) repository.DonorRepository {
	r := &donorRepository{donors: make(map[string]*model.Donor, len(donors)), history: history, insights: insights}
	for _, d := range donors {
		r.order = append(r.order, d.ID)
		r.donors[d.ID] = d
	}
	return r
}

func (r *donorRepository) Get(ctx context.Context, id string) (*model.Donor, error) {
	d, ok := r.donors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyDonor(d), nil
}

func (r *donorRepository) List(ctx context.Context) ([]*model.Donor, error) {
	out := make([]*model.Donor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, copyDonor(r.donors[id]))
	}
	return out, nil
}

func (r *donorRepository) History(ctx context.Context, donorID string) ([]*model.DonationHistoryEntry, error) {
	if _, ok := r.donors[donorID]; !ok {
		return nil, repository.ErrNotFound
	}
	out := make([]*model.DonationHistoryEntry, 0)
	for _, h := range r.history {
		if h.DonorID != donorID {
			continue
		}
		c := *h
		c.Journey = append([]model.JourneyStep(nil), h.Journey...)
		out = append(out, &c)
	}
	return out, nil
}

func (r *donorRepository) Insights(ctx context.Context, donorID string) ([]*model.HealthInsight, error) {
	if _, ok := r.donors[donorID]; !ok {
		return nil, repository.ErrNotFound
	}
	out := make([]*model.HealthInsight, 0)
	for _, in := range r.insights {
		if in.DonorID == donorID {
			c := *in
			out = append(out, &c)
		}
	}
	return out, nil
}

func copyDonor(d *model.Donor) *model.Donor {
	c := *d
	if d.Donations.BloodType != nil {
		v := *d.Donations.BloodType
		c.Donations.BloodType = &v
	}
	c.Donations.Organs = append([]model.Organ(nil), d.Donations.Organs...)
	c.Donations.Tissues = append([]model.Tissue(nil), d.Donations.Tissues...)
	c.MedicalTests = append([]model.MedicalTest(nil), d.MedicalTests...)
	c.Badges = append([]model.Badge(nil), d.Badges...)
	return &c
}

type inventoryRepository struct {
	blood    []*model.BloodInventory
	organs   []*model.OrganInventory
	tissues  []*model.TissueInventory
	forecast []*model.DemandForecast
}

func NewInventoryRepository(blood []*model.BloodInventory, organs []*model.OrganInventory, tissues []*model.TissueInventory, forecast []*model.DemandForecast) repository.InventoryRepository {
	return &inventoryRepository{blood: blood, organs: organs, tissues: tissues, forecast: forecast}
}

func (r *inventoryRepository) Blood(ctx context.Context) ([]*model.BloodInventory, error) {
	return copyAll(r.blood), nil
}

func (r *inventoryRepository) Organs(ctx context.Context) ([]*model.OrganInventory, error) {
	return copyAll(r.organs), nil
}

func (r *inventoryRepository) Tissues(ctx context.Context) ([]*model.TissueInventory, error) {
	return copyAll(r.tissues), nil
}

func (r *inventoryRepository) Forecast(ctx context.Context) ([]*model.DemandForecast, error) {
	out := make([]*model.DemandForecast, len(r.forecast))
	for i, f := range r.forecast {
		c := *f
		c.Demand = make(map[model.BloodType]int, len(f.Demand))
		for bt, units := range f.Demand {
			c.Demand[bt] = units
		}
		out[i] = &c
	}
	return out, nil
}

type driveRepository struct {
	drives    []*model.BloodDrive
	campaigns []*model.Campaign
}

func NewDriveRepository(drives []*model.BloodDrive, campaigns []*model.Campaign) repository.DriveRepository {
	return &driveRepository{drives: drives, campaigns: campaigns}
}

func (r *driveRepository) ListDrives(ctx context.Context) ([]*model.BloodDrive, error) {
	return copyAll(r.drives), nil
}

func (r *driveRepository) ListCampaigns(ctx context.Context) ([]*model.Campaign, error) {
	return copyAll(r.campaigns), nil
}

// copyAll shallow-copies each element; the element types hold no pointers.
func copyAll[T any](in []*T) []*T {
	out := make([]*T, len(in))
	for i, v := range in {
		c := *v
		out[i] = &c
	}
	return out
}
