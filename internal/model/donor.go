package model

type Availability string

const (
	AvailabilityAvailable   Availability = "Available"
	AvailabilityUnavailable Availability = "Unavailable"
)

type TestStatus string

const (
	TestStatusPassed  TestStatus = "Passed"
	TestStatusPending TestStatus = "Pending"
	TestStatusFailed  TestStatus = "Failed"
)

type MedicalTest struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Status TestStatus `json:"status"`
	Date   string     `json:"date,omitempty"`
}

type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Donations are what a donor has registered to give.
type Donations struct {
	BloodType *BloodType `json:"bloodType,omitempty"`
	Organs    []Organ    `json:"organs,omitempty"`
	Tissues   []Tissue   `json:"tissues,omitempty"`
}

// Donor is a registered donor profile.
type Donor struct {
	ID               string        `json:"id" db:"id"`
	Name             string        `json:"name" db:"name"`
	Email            string        `json:"email" db:"email"`
	IsEligible       bool          `json:"isEligible" db:"is_eligible"`
	NextEligibleDate string        `json:"nextEligibleDate" db:"next_eligible_date"`
	Availability     Availability  `json:"availability" db:"availability"`
	Donations        Donations     `json:"donations" db:"-"`
	MedicalTests     []MedicalTest `json:"medicalTests" db:"-"`
	Badges           []Badge       `json:"badges" db:"-"`
}

type HistoryStatus string

const (
	HistoryStatusCompleted HistoryStatus = "Completed"
	HistoryStatusScheduled HistoryStatus = "Scheduled"
	HistoryStatusCancelled HistoryStatus = "Cancelled"
)

type JourneyStep struct {
	Step   int    `json:"step"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// DonationHistoryEntry is one past or scheduled donation of a donor.
type DonationHistoryEntry struct {
	ID       string        `json:"id" db:"id"`
	DonorID  string        `json:"-" db:"donor_id"`
	Date     string        `json:"date" db:"date"`
	Location string        `json:"location" db:"location"`
	Type     DonationType  `json:"type" db:"type"`
	Details  string        `json:"details" db:"details"`
	Status   HistoryStatus `json:"status" db:"status"`
	Journey  []JourneyStep `json:"journey,omitempty" db:"-"`
}

// HealthInsight is one card on a donor's dashboard.
type HealthInsight struct {
	DonorID string `json:"-" db:"donor_id"`
	Title   string `json:"title" db:"title"`
	Value   string `json:"value" db:"value"`
	Insight string `json:"insight" db:"insight"`
}
