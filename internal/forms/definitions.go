// Package forms arma los formularios del sitio (adopción, voluntariado,
// rescate, contacto y donación) sobre wizard y los conecta con los
// servicios que persisten cada envío.
package forms

import (
	"animal-rescue/internal/validation"
	"animal-rescue/internal/wizard"
)

const (
	KindAdoption  = "adoption"
	KindVolunteer = "volunteer"
	KindRescue    = "rescue"
	KindContact   = "contact"
	KindDonation  = "donation"
)

// Definitions devuelve un mapa nuevo en cada llamada.
func Definitions() map[string]wizard.Definition {
	return map[string]wizard.Definition{
		KindAdoption: {
			Name:   KindAdoption,
			Schema: validation.Adoption,
			Steps:  validation.AdoptionSteps,
			Defaults: validation.Values{
				"housingOwned":       false,
				"yardAvailable":      false,
				"trainingCommitment": false,
			},
		},
		KindVolunteer: {
			Name:   KindVolunteer,
			Schema: validation.Volunteer,
			Defaults: validation.Values{
				"interests":              []any{},
				"availabilityDays":       []any{},
				"backgroundCheckConsent": false,
			},
		},
		KindRescue: {
			Name:     KindRescue,
			Schema:   validation.Rescue,
			Defaults: validation.Values{"contactPreference": "phone"},
		},
		KindContact: {
			Name:   KindContact,
			Schema: validation.Contact,
			Defaults: validation.Values{
				"urgencyLevel": "medium",
				"messageType":  "general",
			},
		},
		KindDonation: {
			Name:   KindDonation,
			Schema: validation.Donation,
			Defaults: validation.Values{
				"donationType":      "one-time",
				"purpose":           "general",
				"anonymous":         false,
				"publicRecognition": false,
			},
		},
	}
}
