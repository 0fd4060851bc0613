package volunteers

import "time"

type Frequency string

const (
	FrequencyWeekly     Frequency = "weekly"
	FrequencyBiWeekly   Frequency = "bi-weekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyEventBased Frequency = "event-based"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly, FrequencyEventBased:
		return true
	}
	return false
}

type Status string

const (
	StatusSubmitted          Status = "submitted"
	StatusUnderReview        Status = "under_review"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusBackgroundCheck    Status = "background_check"
	StatusApproved           Status = "approved"
	StatusRejected           Status = "rejected"
	StatusInactive           Status = "inactive"
)

type Application struct {
	ID                string
	ApplicationNumber string
	ApplicantID       string

	Age                   int
	Occupation            string
	EmergencyContactName  string
	EmergencyContactPhone string

	Interests           []string
	AvailabilityDays    []string
	AvailabilityHours   string
	FrequencyPreference Frequency

	AnimalExperience    string
	VolunteerExperience string

	ReferenceName          string
	ReferencePhone         string
	BackgroundCheckConsent bool

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
