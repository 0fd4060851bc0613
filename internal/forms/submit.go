package forms

import (
	"context"
	"errors"
	"fmt"

	"animal-rescue/internal/appstate"
	"animal-rescue/internal/domain/adoptions"
	"animal-rescue/internal/domain/contacts"
	"animal-rescue/internal/domain/donations"
	"animal-rescue/internal/domain/rescues"
	"animal-rescue/internal/domain/volunteers"
	"animal-rescue/internal/validation"
)

var (
	ErrUnknownKind = errors.New("unknown form kind")
	// ErrRejected: el servicio rechazó el registro por datos inválidos.
	// No es una falla remota.
	ErrRejected = errors.New("submission rejected")
)

// Services son los destinos de cada formulario.
type Services struct {
	Adoptions  *adoptions.Service
	Volunteers *volunteers.Service
	Rescues    *rescues.Service
	Contacts   *contacts.Service
	Donations  *donations.Service
}

// Outcome es la respuesta de un envío.
type Outcome struct {
	OK        bool              `json:"ok"`
	Reference string            `json:"reference,omitempty"`
	Message   string            `json:"message"`
	Errors    validation.Errors `json:"errors,omitempty"`
}

type receipt struct {
	reference string
	message   string
	notify    appstate.NotificationType
	title     string
}

type failure struct {
	message string
	title   string
}

var failures = map[string]failure{
	KindAdoption:  {"Failed to submit application. Please try again.", "Application failed"},
	KindVolunteer: {"Failed to submit application. Please try again.", "Application failed"},
	KindRescue:    {"Failed to submit rescue request. Please try again.", "Rescue request failed"},
	KindContact:   {"Failed to send message. Please try again.", "Message failed"},
	KindDonation:  {"Payment failed. Please try again.", "Donation failed"},
}

// submit persiste values según kind y arma el recibo para el visitante.
func (s Services) submit(ctx context.Context, kind string, values validation.Values, userID string) (receipt, error) {
	switch kind {
	case KindAdoption:
		if s.Adoptions == nil {
			break
		}
		app, err := s.Adoptions.Submit(ctx, adoptions.InputFromValues(values, userID))
		if err != nil {
			return receipt{}, rejected(err, adoptions.ErrInvalidInput)
		}
		return receipt{
			reference: app.ApplicationNumber,
			message:   "Application submitted successfully! Reference: " + app.ApplicationNumber,
			notify:    appstate.NotifyAdoptionUpdate,
			title:     "Adoption application received",
		}, nil

	case KindVolunteer:
		if s.Volunteers == nil {
			break
		}
		app, err := s.Volunteers.Submit(ctx, volunteers.InputFromValues(values, userID))
		if err != nil {
			return receipt{}, rejected(err, volunteers.ErrInvalidInput)
		}
		return receipt{
			reference: app.ApplicationNumber,
			message:   "Application submitted successfully! Reference: " + app.ApplicationNumber,
			notify:    appstate.NotifyVolunteerAssignment,
			title:     "Volunteer application received",
		}, nil

	case KindRescue:
		if s.Rescues == nil {
			break
		}
		rr, err := s.Rescues.Create(ctx, rescues.InputFromValues(values, userID))
		if err != nil {
			return receipt{}, rejected(err, rescues.ErrInvalidInput)
		}
		return receipt{
			reference: rr.ReferenceNumber,
			message:   fmt.Sprintf("Rescue request submitted successfully! Reference: %s. Track it with code %s", rr.ReferenceNumber, rr.PublicID),
			notify:    appstate.NotifyRescueUpdate,
			title:     "Rescue request received",
		}, nil

	case KindContact:
		if s.Contacts == nil {
			break
		}
		m, err := s.Contacts.Submit(ctx, contacts.InputFromValues(values))
		if err != nil {
			return receipt{}, rejected(err, contacts.ErrInvalidInput)
		}
		return receipt{
			reference: m.Reference,
			message:   "Message sent successfully! We'll get back to you soon.",
			notify:    appstate.NotifySuccess,
			title:     "Message sent",
		}, nil

	case KindDonation:
		if s.Donations == nil {
			break
		}
		d, err := s.Donations.Submit(ctx, donations.InputFromValues(values, userID))
		if err != nil {
			return receipt{}, rejected(err, donations.ErrInvalidInput)
		}
		return receipt{
			reference: d.TransactionID,
			message:   "Thank you for your generous donation! Transaction ID: " + d.TransactionID,
			notify:    appstate.NotifyDonationReceipt,
			title:     "Donation received",
		}, nil
	}
	return receipt{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
}

func rejected(err, invalid error) error {
	if errors.Is(err, invalid) {
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
	return err
}
