package model

type StockStatus string

const (
	StockStatusCritical StockStatus = "Critical"
	StockStatusLow      StockStatus = "Low"
	StockStatusSafe     StockStatus = "Safe"
)

// StockStatusForLevel classifies a blood stock percentage.
func StockStatusForLevel(level int) StockStatus {
	switch {
	case level < 30:
		return StockStatusCritical
	case level < 60:
		return StockStatusLow
	default:
		return StockStatusSafe
	}
}

// BloodInventory is one row of the blood inventory table.
type BloodInventory struct {
	BloodType    BloodType   `json:"bloodType" db:"blood_type"`
	Level        int         `json:"level" db:"level"`
	Units        int         `json:"units" db:"units"`
	Status       StockStatus `json:"status" db:"status"`
	LastDonation string      `json:"lastDonation" db:"last_donation"`
}

type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

type OrganInventory struct {
	Organ           Organ   `json:"organ" db:"organ"`
	DonorsAvailable int     `json:"donorsAvailable" db:"donors_available"`
	Requests        int     `json:"requests" db:"requests"`
	Urgency         Urgency `json:"urgency" db:"urgency"`
}

type TissueInventory struct {
	Tissue      Tissue `json:"tissue" db:"tissue"`
	Units       int    `json:"units" db:"units"`
	Requests    int    `json:"requests" db:"requests"`
	LastUpdated string `json:"lastUpdated" db:"last_updated"`
}

// DemandForecast is the expected blood demand, in units, for one day ahead
// of today. DayOffset 0 is today.
type DemandForecast struct {
	DayOffset int               `json:"dayOffset"`
	Label     string            `json:"date"`
	Demand    map[BloodType]int `json:"demand"`
}
