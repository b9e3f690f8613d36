package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestEmergencyRequestDetailPrecedence(t *testing.T) {
	cases := []struct {
		name   string
		req    EmergencyRequest
		want   string
		wantOK bool
	}{
		{"blood", EmergencyRequest{BloodType: ptr(BloodTypeONeg)}, "O-", true},
		{"organ", EmergencyRequest{Organ: ptr(OrganLiver)}, "Liver", true},
		{"tissue", EmergencyRequest{Tissue: ptr(TissueCornea)}, "Cornea", true},
		{"blood wins over organ", EmergencyRequest{BloodType: ptr(BloodTypeAPos), Organ: ptr(OrganKidney)}, "A+", true},
		{"organ wins over tissue", EmergencyRequest{Organ: ptr(OrganHeart), Tissue: ptr(TissueSkin)}, "Heart", true},
		{"empty blood falls through", EmergencyRequest{BloodType: ptr(BloodType("")), Tissue: ptr(TissueBone)}, "Bone", true},
		{"none", EmergencyRequest{}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.req.Detail()
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEmergencyRequestValidate(t *testing.T) {
	valid := EmergencyRequest{
		RequestType: DonationTypeBlood,
		BloodType:   ptr(BloodTypeONeg),
		Location:    "City Medical Center",
		Status:      RequestStatusPending,
		PatientName: "Emily White",
	}
	assert.NoError(t, valid.Validate())

	mismatched := valid
	mismatched.BloodType = nil
	mismatched.Organ = ptr(OrganKidney)
	assert.ErrorContains(t, mismatched.Validate(), "blood requests need a valid bloodType")

	two := valid
	two.Tissue = ptr(TissueCornea)
	assert.ErrorContains(t, two.Validate(), "exactly one")

	none := valid
	none.BloodType = nil
	assert.ErrorContains(t, none.Validate(), "exactly one")

	badType := valid
	badType.RequestType = "Plasma"
	assert.ErrorContains(t, badType.Validate(), "unknown request type")

	noLocation := valid
	noLocation.Location = "  "
	assert.ErrorContains(t, noLocation.Validate(), "location is required")

	unknownOrgan := EmergencyRequest{
		RequestType: DonationTypeOrgan,
		Organ:       ptr(Organ("Spleen")),
		Location:    "General Hospital",
		Status:      RequestStatusPending,
		PatientName: "John Smith",
	}
	assert.ErrorContains(t, unknownOrgan.Validate(), "valid organ")
}

func TestStockStatusForLevel(t *testing.T) {
	assert.Equal(t, StockStatusCritical, StockStatusForLevel(15))
	assert.Equal(t, StockStatusLow, StockStatusForLevel(30))
	assert.Equal(t, StockStatusLow, StockStatusForLevel(59))
	assert.Equal(t, StockStatusSafe, StockStatusForLevel(60))
}
