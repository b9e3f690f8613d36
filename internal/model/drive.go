package model

type BloodDrive struct {
	ID        string `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Location  string `json:"location" db:"location"`
	Date      string `json:"date" db:"date"`
	Time      string `json:"time" db:"time"`
	Organizer string `json:"organizer" db:"organizer"`
}

type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "Active"
	CampaignStatusCompleted CampaignStatus = "Completed"
	CampaignStatusUpcoming  CampaignStatus = "Upcoming"
)

type Campaign struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Goal        string         `json:"goal" db:"goal"`
	StartDate   string         `json:"startDate" db:"start_date"`
	EndDate     string         `json:"endDate" db:"end_date"`
	Status      CampaignStatus `json:"status" db:"status"`
	Description string         `json:"description" db:"description"`
}

// Overview is the admin landing-page summary.
type Overview struct {
	PendingRequests   int         `json:"pendingRequests"`
	FulfilledRequests int         `json:"fulfilledRequests"`
	CriticalBlood     []BloodType `json:"criticalBlood"`
	HighUrgencyOrgans []Organ     `json:"highUrgencyOrgans"`
	ActiveCampaigns   int         `json:"activeCampaigns"`
}
