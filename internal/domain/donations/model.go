package donations

import "time"

type Type string

const (
	TypeOneTime Type = "one-time"
	TypeMonthly Type = "monthly"
)

type Purpose string

const (
	PurposeGeneral   Purpose = "general"
	PurposeMedical   Purpose = "medical"
	PurposeFood      Purpose = "food"
	PurposeShelter   Purpose = "shelter"
	PurposeEmergency Purpose = "emergency"
)

type PaymentMethod string

const (
	PaymentStripe       PaymentMethod = "stripe"
	PaymentPaypal       PaymentMethod = "paypal"
	PaymentJazzCash     PaymentMethod = "jazzcash"
	PaymentEasyPaisa    PaymentMethod = "easypaisa"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

const (
	Currency      = "PKR"
	MinimumAmount = 100
)

func (t Type) Valid() bool { return t == TypeOneTime || t == TypeMonthly }

func (p Purpose) Valid() bool {
	switch p {
	case PurposeGeneral, PurposeMedical, PurposeFood, PurposeShelter, PurposeEmergency:
		return true
	}
	return false
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentStripe, PaymentPaypal, PaymentJazzCash, PaymentEasyPaisa, PaymentBankTransfer:
		return true
	}
	return false
}

type Donation struct {
	ID            string
	TransactionID string
	DonorID       string

	Amount   int
	Currency string
	Type     Type
	Purpose  Purpose

	DonorName  string
	DonorEmail string
	DonorPhone string
	Anonymous  bool

	PaymentMethod     PaymentMethod
	Status            Status
	ProcessedAt       *time.Time
	FailureReason     string
	PublicRecognition bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
