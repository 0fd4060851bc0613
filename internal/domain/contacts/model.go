package contacts

import "time"

type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyEmergency:
		return true
	}
	return false
}

type MessageType string

const (
	TypeGeneral   MessageType = "general"
	TypeAdoption  MessageType = "adoption"
	TypeVolunteer MessageType = "volunteer"
	TypeDonation  MessageType = "donation"
	TypeRescue    MessageType = "rescue"
	TypeComplaint MessageType = "complaint"
)

func (t MessageType) Valid() bool {
	switch t {
	case TypeGeneral, TypeAdoption, TypeVolunteer, TypeDonation, TypeRescue, TypeComplaint:
		return true
	}
	return false
}

type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusResponded  Status = "responded"
	StatusClosed     Status = "closed"
)

type Message struct {
	ID        string
	Reference string
	Name      string
	Email     string
	Phone     string
	Subject   string
	Body      string
	Urgency   Urgency
	Type      MessageType
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
