package model

import "time"

const EventDonorContactRequested = "DONOR_CONTACT_REQUESTED"

// ContactAlert is published when an operator contacts a matched donor.
type ContactAlert struct {
	ID          string       `json:"id"`
	EventType   string       `json:"eventType"`
	RequestID   string       `json:"requestId"`
	DonorID     string       `json:"donorId"`
	DonorName   string       `json:"donorName"`
	DonorEmail  string       `json:"donorEmail,omitempty"`
	RequestType DonationType `json:"requestType"`
	Detail      string       `json:"detail"`
	Location    string       `json:"location"`
	RequestedBy string       `json:"requestedBy"`
	CreatedAt   time.Time    `json:"createdAt"`
}
