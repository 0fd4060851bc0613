package adoptions

import "time"

// @Enum house, apartment, farm, other
type HousingType string

const (
	HousingHouse     HousingType = "house"
	HousingApartment HousingType = "apartment"
	HousingFarm      HousingType = "farm"
	HousingOther     HousingType = "other"
)

func (h HousingType) Valid() bool {
	switch h {
	case HousingHouse, HousingApartment, HousingFarm, HousingOther:
		return true
	}
	return false
}

type Status string

const (
	StatusSubmitted   Status = "submitted"
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusOnHold      Status = "on_hold"
)

type Contact struct {
	Name  string
	Phone string
}

type Application struct {
	ID                string
	ApplicationNumber string
	AnimalID          string
	ApplicantID       string

	FullName   string
	Email      string
	Phone      string
	Address    string
	Age        int
	Occupation string

	HousingType   HousingType
	HousingOwned  bool
	YardAvailable bool
	YardFenced    bool // solo tiene sentido con YardAvailable

	PetExperience    string
	CurrentPets      string
	HouseholdMembers int
	ChildrenAges     string
	WorkSchedule     string
	TravelFrequency  string

	ExercisePlan       string
	TrainingCommitment bool
	VeterinaryBudget   int
	EmergencyContact   Contact

	References [2]Contact

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
