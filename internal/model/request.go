package model

import (
	"fmt"
	"strings"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "Pending"
	RequestStatusFulfilled RequestStatus = "Fulfilled"
)

func (s RequestStatus) Valid() bool {
	return s == RequestStatusPending || s == RequestStatusFulfilled
}

// EmergencyRequest is a pending or fulfilled need for a specific donation at
// a location. Exactly one of BloodType, Organ and Tissue is set and it
// matches RequestType.
type EmergencyRequest struct {
	ID          string        `json:"id" db:"id"`
	RequestType DonationType  `json:"requestType" db:"request_type"`
	BloodType   *BloodType    `json:"bloodType,omitempty" db:"blood_type"`
	Organ       *Organ        `json:"organ,omitempty" db:"organ"`
	Tissue      *Tissue       `json:"tissue,omitempty" db:"tissue"`
	Location    string        `json:"location" db:"location"`
	Status      RequestStatus `json:"status" db:"status"`
	PatientName string        `json:"patientName" db:"patient_name"`
}

// Detail returns bloodType, else organ, else tissue. The boolean is false
// when none is populated.
func (r *EmergencyRequest) Detail() (string, bool) {
	switch {
	case r.BloodType != nil && *r.BloodType != "":
		return string(*r.BloodType), true
	case r.Organ != nil && *r.Organ != "":
		return string(*r.Organ), true
	case r.Tissue != nil && *r.Tissue != "":
		return string(*r.Tissue), true
	}
	return "", false
}

// Validate checks the one-detail invariant and the enumerations.
func (r *EmergencyRequest) Validate() error {
	if !r.RequestType.Valid() {
		return fmt.Errorf("unknown request type %q", r.RequestType)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("unknown request status %q", r.Status)
	}
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("location is required")
	}
	if strings.TrimSpace(r.PatientName) == "" {
		return fmt.Errorf("patient name is required")
	}

	set := 0
	if r.BloodType != nil {
		set++
	}
	if r.Organ != nil {
		set++
	}
	if r.Tissue != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("exactly one of bloodType, organ or tissue must be set")
	}

	switch r.RequestType {
	case DonationTypeBlood:
		if r.BloodType == nil || !r.BloodType.Valid() {
			return fmt.Errorf("blood requests need a valid bloodType")
		}
	case DonationTypeOrgan:
		if r.Organ == nil || !r.Organ.Valid() {
			return fmt.Errorf("organ requests need a valid organ")
		}
	case DonationTypeTissue:
		if r.Tissue == nil || !r.Tissue.Valid() {
			return fmt.Errorf("tissue requests need a valid tissue")
		}
	}
	return nil
}

// CreateEmergencyRequest is the body of POST /admin/requests.
type CreateEmergencyRequest struct {
	RequestType DonationType `json:"requestType" binding:"required"`
	BloodType   *BloodType   `json:"bloodType"`
	Organ       *Organ       `json:"organ"`
	Tissue      *Tissue      `json:"tissue"`
	Location    string       `json:"location" binding:"required"`
	PatientName string       `json:"patientName" binding:"required"`
}

type RequestFilters struct {
	Status RequestStatus `form:"status"`
}

// MatchQuery is the normalized input sent to the matchmaker.
type MatchQuery struct {
	RequestType DonationType `json:"requestType" validate:"required,oneof=Blood Organ Tissue"`
	Detail      string       `json:"detail" validate:"required"`
	Location    string       `json:"location" validate:"required"`
}

// DonorMatch is one candidate donor as produced by the generative service.
type DonorMatch struct {
	DonorName   string `json:"donorName" validate:"required"`
	DonorID     string `json:"donorId" validate:"required"`
	MatchScore  int    `json:"matchScore" validate:"min=0,max=100"`
	Location    string `json:"location" validate:"required"`
	IsAvailable bool   `json:"isAvailable"`
}

// MatchResult is what find-match returns to the operator: the matches, or an
// empty list with a user-facing error message.
type MatchResult struct {
	Matches []DonorMatch `json:"matches"`
	Error   *string      `json:"error"`
}

// ContactDonorRequest is the body of POST /admin/requests/:id/contact.
type ContactDonorRequest struct {
	DonorID   string `json:"donorId" binding:"required"`
	DonorName string `json:"donorName" binding:"required"`
}
