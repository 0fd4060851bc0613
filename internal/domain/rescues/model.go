package rescues

import (
	"time"

	"animal-rescue/internal/domain/animals"
)

// @Enum dog, cat, bird, livestock, wildlife, other
type AnimalType string

const (
	AnimalDog       AnimalType = "dog"
	AnimalCat       AnimalType = "cat"
	AnimalBird      AnimalType = "bird"
	AnimalLivestock AnimalType = "livestock"
	AnimalWildlife  AnimalType = "wildlife"
	AnimalOther     AnimalType = "other"
)

func (t AnimalType) Valid() bool {
	switch t {
	case AnimalDog, AnimalCat, AnimalBird, AnimalLivestock, AnimalWildlife, AnimalOther:
		return true
	}
	return false
}

// @Enum critical, urgent, standard
type EmergencyLevel string

const (
	LevelCritical EmergencyLevel = "critical"
	LevelUrgent   EmergencyLevel = "urgent"
	LevelStandard EmergencyLevel = "standard"
)

func (l EmergencyLevel) Valid() bool {
	return l == LevelCritical || l == LevelUrgent || l == LevelStandard
}

// @Enum phone, email, whatsapp
type ContactPreference string

const (
	PreferPhone    ContactPreference = "phone"
	PreferEmail    ContactPreference = "email"
	PreferWhatsApp ContactPreference = "whatsapp"
)

func (p ContactPreference) Valid() bool {
	return p == PreferPhone || p == PreferEmail || p == PreferWhatsApp
}

// Status: submitted → reviewing → assigned → in_progress → rescued → completed,
// o cancelled en cualquier punto.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusReviewing  Status = "reviewing"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusRescued    Status = "rescued"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusReviewing, StatusAssigned, StatusInProgress,
		StatusRescued, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type RescueRequest struct {
	ID              string
	ReferenceNumber string // lo ve quien reporta
	PublicID        string // para consultar el estado sin login

	AnimalType     AnimalType
	EmergencyLevel EmergencyLevel

	LocationAddress string
	Coordinates     *animals.Coordinates

	ContactName       string
	ContactPhone      string
	ContactEmail      string
	ContactPreference ContactPreference

	Description string
	Images      []string

	Status        Status
	AssignedTo    string
	PriorityScore int

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
