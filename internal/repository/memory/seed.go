package memory

import "github.com/donorconnect/donor-api/internal/model"

func ptr[T any](v T) *T { return &v }

// Seed data mirrors the dashboard's demo dataset.

func seedRequests() []*model.EmergencyRequest {
	return []*model.EmergencyRequest{
		{ID: "req_1", RequestType: model.DonationTypeOrgan, Organ: ptr(model.OrganLiver), Location: "General Hospital", Status: model.RequestStatusPending, PatientName: "John Smith"},
		{ID: "req_2", RequestType: model.DonationTypeBlood, BloodType: ptr(model.BloodTypeONeg), Location: "City Medical Center", Status: model.RequestStatusPending, PatientName: "Emily White"},
		{ID: "req_3", RequestType: model.DonationTypeBlood, BloodType: ptr(model.BloodTypeBNeg), Location: "St. Jude's Hospital", Status: model.RequestStatusFulfilled, PatientName: "Michael Brown"},
		{ID: "req_4", RequestType: model.DonationTypeTissue, Tissue: ptr(model.TissueCornea), Location: "Vision Center", Status: model.RequestStatusPending, PatientName: "Sam Ray"},
	}
}

var badges = []model.Badge{
	{ID: "badge_1", Name: "First Donation", Description: "Awarded for making your first donation.", Icon: "Award"},
	{ID: "badge_2", Name: "Life-Saver x5", Description: "Awarded for completing five donations.", Icon: "Star"},
	{ID: "badge_3", Name: "Community Hero", Description: "Awarded for donating during a critical shortage.", Icon: "Medal"},
	{ID: "badge_4", Name: "Blood Donor", Description: "You are a registered blood donor.", Icon: "Droplets"},
}

func seedDonors() []*model.Donor {
	return []*model.Donor{
		{
			ID:               "usr_1",
			Name:             "Jane Doe",
			Email:            "jane.doe@email.com",
			IsEligible:       true,
			NextEligibleDate: "Now",
			Availability:     model.AvailabilityAvailable,
			Donations: model.Donations{
				BloodType: ptr(model.BloodTypeOPos),
				Organs:    []model.Organ{model.OrganKidney, model.OrganLiver},
				Tissues:   []model.Tissue{model.TissueCornea},
			},
			MedicalTests: []model.MedicalTest{
				{ID: "test_1", Name: "Blood Type Verification", Status: model.TestStatusPassed, Date: "2023-10-15"},
				{ID: "test_2", Name: "Tissue Typing (HLA)", Status: model.TestStatusPassed, Date: "2023-10-15"},
				{ID: "test_3", Name: "Cross-matching", Status: model.TestStatusPending},
				{ID: "test_4", Name: "Serology Screening", Status: model.TestStatusPassed, Date: "2023-10-15"},
				{ID: "test_5", Name: "Medical History Review", Status: model.TestStatusPassed, Date: "2023-10-10"},
			},
			Badges: append([]model.Badge(nil), badges[:3]...),
		},
	}
}

func seedHistory() []*model.DonationHistoryEntry {
	return []*model.DonationHistoryEntry{
		{
			ID: "don_1", DonorID: "usr_1", Date: "2024-05-20", Location: "Community Center", Type: model.DonationTypeBlood, Details: "Whole Blood (O+)", Status: model.HistoryStatusCompleted,
			Journey: []model.JourneyStep{
				{Step: 1, Title: "Donation Received", Date: "2024-05-20", Status: "Completed"},
				{Step: 2, Title: "In Transit to Lab", Date: "2024-05-20", Status: "Completed"},
				{Step: 3, Title: "Testing & Processing", Date: "2024-05-21", Status: "Completed"},
				{Step: 4, Title: "Delivered to Hospital", Date: "2024-05-22", Status: "Completed"},
			},
		},
		{ID: "don_2", DonorID: "usr_1", Date: "2024-02-15", Location: "Red Cross Mobile Unit", Type: model.DonationTypeBlood, Details: "Platelets", Status: model.HistoryStatusCompleted},
		{ID: "don_5", DonorID: "usr_1", Date: "2024-08-28", Location: "City Medical Center", Type: model.DonationTypeOrgan, Details: "Scheduled Kidney Donation", Status: model.HistoryStatusScheduled},
		{ID: "don_3", DonorID: "usr_1", Date: "2023-11-10", Location: "General Hospital", Type: model.DonationTypeTissue, Details: "Cornea", Status: model.HistoryStatusCompleted},
		{ID: "don_4", DonorID: "usr_1", Date: "2023-08-05", Location: "Community Center", Type: model.DonationTypeBlood, Details: "Whole Blood (O+)", Status: model.HistoryStatusCompleted},
		{ID: "don_6", DonorID: "usr_1", Date: "2023-05-01", Location: "General Hospital", Type: model.DonationTypeOrgan, Details: "Kidney", Status: model.HistoryStatusCancelled},
	}
}

func seedBlood() []*model.BloodInventory {
	return []*model.BloodInventory{
		{BloodType: model.BloodTypeAPos, Level: 80, Units: 120, Status: model.StockStatusSafe, LastDonation: "2024-07-20"},
		{BloodType: model.BloodTypeANeg, Level: 60, Units: 80, Status: model.StockStatusSafe, LastDonation: "2024-07-18"},
		{BloodType: model.BloodTypeBPos, Level: 45, Units: 50, Status: model.StockStatusLow, LastDonation: "2024-07-21"},
		{BloodType: model.BloodTypeBNeg, Level: 90, Units: 30, Status: model.StockStatusLow, LastDonation: "2024-07-15"},
		{BloodType: model.BloodTypeABPos, Level: 25, Units: 15, Status: model.StockStatusCritical, LastDonation: "2024-07-10"},
		{BloodType: model.BloodTypeABNeg, Level: 70, Units: 45, Status: model.StockStatusSafe, LastDonation: "2024-07-19"},
		{BloodType: model.BloodTypeOPos, Level: 55, Units: 90, Status: model.StockStatusSafe, LastDonation: "2024-07-22"},
		{BloodType: model.BloodTypeONeg, Level: 15, Units: 10, Status: model.StockStatusCritical, LastDonation: "2024-07-05"},
	}
}

func seedOrgans() []*model.OrganInventory {
	return []*model.OrganInventory{
		{Organ: model.OrganKidney, DonorsAvailable: 25, Requests: 8, Urgency: model.UrgencyHigh},
		{Organ: model.OrganLiver, DonorsAvailable: 15, Requests: 5, Urgency: model.UrgencyHigh},
		{Organ: model.OrganHeart, DonorsAvailable: 8, Requests: 3, Urgency: model.UrgencyHigh},
		{Organ: model.OrganLung, DonorsAvailable: 12, Requests: 4, Urgency: model.UrgencyMedium},
		{Organ: model.OrganPancreas, DonorsAvailable: 5, Requests: 1, Urgency: model.UrgencyMedium},
		{Organ: model.OrganIntestine, DonorsAvailable: 3, Requests: 1, Urgency: model.UrgencyLow},
	}
}

func seedTissues() []*model.TissueInventory {
	return []*model.TissueInventory{
		{Tissue: model.TissueCornea, Units: 200, Requests: 15, LastUpdated: "2024-07-22"},
		{Tissue: model.TissueSkin, Units: 50, Requests: 8, LastUpdated: "2024-07-21"},
		{Tissue: model.TissueBone, Units: 120, Requests: 12, LastUpdated: "2024-07-20"},
		{Tissue: model.TissueHeartValve, Units: 80, Requests: 5, LastUpdated: "2024-07-22"},
		{Tissue: model.TissueTendon, Units: 150, Requests: 10, LastUpdated: "2024-07-19"},
	}
}

func seedDrives() []*model.BloodDrive {
	return []*model.BloodDrive{
		{ID: "drive_1", Name: "Summer Blood Drive", Location: "Central Park", Date: "2024-08-15", Time: "10:00 AM - 4:00 PM", Organizer: "Red Cross"},
		{ID: "drive_2", Name: "Community Health Fair", Location: "City Hall Plaza", Date: "2024-08-20", Time: "9:00 AM - 2:00 PM", Organizer: "City Health Dept."},
		{ID: "drive_3", Name: "University Campus Drive", Location: "State University Quad", Date: "2024-09-05", Time: "11:00 AM - 5:00 PM", Organizer: "Student Health Services"},
	}
}

func seedCampaigns() []*model.Campaign {
	return []*model.Campaign{
		{ID: "camp_1", Name: "Summer Blood Drive Challenge", Goal: "1000 Units", StartDate: "2024-07-01", EndDate: "2024-08-31", Status: model.CampaignStatusActive, Description: "Help us meet the high demand for blood during the summer months."},
		{ID: "camp_2", Name: "Holiday Giving Campaign", Goal: "500 Organ Donor Pledges", StartDate: "2024-11-15", EndDate: "2024-12-31", Status: model.CampaignStatusUpcoming, Description: "Give the gift of life this holiday season by pledging to be an organ donor."},
		{ID: "camp_3", Name: "Spring Tissue Drive", Goal: "300 Tissue Donations", StartDate: "2024-04-01", EndDate: "2024-04-30", Status: model.CampaignStatusCompleted, Description: "A successful drive to increase tissue reserves for surgeries."},
	}
}

func seedInsights() []*model.HealthInsight {
	return []*model.HealthInsight{
		{DonorID: "usr_1", Title: "Next Donation", Value: "August 28, 2024", Insight: "You're eligible soon! Mark your calendar."},
		{DonorID: "usr_1", Title: "Iron Levels", Value: "Normal", Insight: "Keep up the great work! Eat iron-rich foods like spinach and red meat."},
		{DonorID: "usr_1", Title: "Hydration Tip", Value: "Drink Up!", Insight: "Remember to drink plenty of water before and after your donation."},
		{DonorID: "usr_1", Title: "Donations Made", Value: "12", Insight: "You're a hero! Every donation can save up to 3 lives."},
	}
}

func seedForecast() []*model.DemandForecast {
	day := func(offset int, label string, aPos, oNeg, bPos int) *model.DemandForecast {
		return &model.DemandForecast{
			DayOffset: offset,
			Label:     label,
			Demand: map[model.BloodType]int{
				model.BloodTypeAPos: aPos,
				model.BloodTypeONeg: oNeg,
				model.BloodTypeBPos: bPos,
			},
		}
	}
	return []*model.DemandForecast{
		day(0, "Today", 40, 60, 30),
		day(1, "Tomorrow", 50, 75, 40),
		day(2, "In 2 Days", 45, 80, 35),
		day(3, "In 3 Days", 60, 70, 50),
		day(4, "In 4 Days", 55, 85, 45),
	}
}
