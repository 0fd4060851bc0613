package volunteers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/platform/refcode"
	"animal-rescue/internal/ports/rowstore"
	"animal-rescue/internal/validation"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	Table  = "volunteer_applications"
	MinAge = 16
	MaxAge = 80
)

type Service struct {
	store rowstore.Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(store rowstore.Store, log logger.Logger) *Service {
	if store == nil {
		panic("volunteers: nil store")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		log:   log.With(map[string]any{"component": "volunteers"}),
		now:   time.Now,
	}
}

func (s *Service) Submit(ctx context.Context, app Application) (Application, error) {
	switch {
	case app.Age < MinAge || app.Age > MaxAge:
		return Application{}, fmt.Errorf("%w: age %d out of range", ErrInvalidInput, app.Age)
	case len(app.Interests) == 0 || len(app.AvailabilityDays) == 0:
		return Application{}, fmt.Errorf("%w: interests and availability required", ErrInvalidInput)
	case !app.FrequencyPreference.Valid():
		return Application{}, fmt.Errorf("%w: frequency %q", ErrInvalidInput, app.FrequencyPreference)
	case !app.BackgroundCheckConsent:
		return Application{}, fmt.Errorf("%w: background check consent required", ErrInvalidInput)
	}

	now := s.now().UTC()
	app.ID = uuid.NewString()
	app.ApplicationNumber = refcode.New("VA", now, 4)
	app.Status = StatusSubmitted
	app.CreatedAt = now
	app.UpdatedAt = now

	r, err := s.store.Insert(ctx, Table, toRow(app))
	if err != nil {
		s.log.Error("submit volunteer application failed", map[string]any{"err": err})
		return Application{}, fmt.Errorf("submit volunteer application: %w", err)
	}
	return fromRow(r), nil
}

func InputFromValues(v validation.Values, applicantID string) Application {
	return Application{
		ApplicantID:            applicantID,
		Age:                    v.Int("age"),
		Occupation:             v.String("occupation"),
		EmergencyContactName:   v.String("emergencyContactName"),
		EmergencyContactPhone:  v.String("emergencyContactPhone"),
		Interests:              v.Strings("interests"),
		AvailabilityDays:       v.Strings("availabilityDays"),
		AvailabilityHours:      v.String("availabilityHours"),
		FrequencyPreference:    Frequency(v.String("frequencyPreference")),
		AnimalExperience:       v.String("animalExperience"),
		VolunteerExperience:    v.String("volunteerExperience"),
		ReferenceName:          v.String("referenceName"),
		ReferencePhone:         v.String("referencePhone"),
		BackgroundCheckConsent: v.Bool("backgroundCheckConsent"),
	}
}

func toRow(a Application) rowstore.Row {
	return rowstore.Row{
		"id":                       a.ID,
		"application_number":       a.ApplicationNumber,
		"applicant_id":             a.ApplicantID,
		"age":                      a.Age,
		"occupation":               a.Occupation,
		"emergency_contact_name":   a.EmergencyContactName,
		"emergency_contact_phone":  a.EmergencyContactPhone,
		"interests":                nonNil(a.Interests),
		"availability_days":        nonNil(a.AvailabilityDays),
		"availability_hours":       a.AvailabilityHours,
		"frequency_preference":     string(a.FrequencyPreference),
		"animal_experience":        a.AnimalExperience,
		"volunteer_experience":     a.VolunteerExperience,
		"reference_name":           a.ReferenceName,
		"reference_phone":          a.ReferencePhone,
		"background_check_consent": a.BackgroundCheckConsent,
		"status":                   string(a.Status),
		"created_at":               a.CreatedAt,
		"updated_at":               a.UpdatedAt,
	}
}

func fromRow(r rowstore.Row) Application {
	return Application{
		ID:                     r.String("id"),
		ApplicationNumber:      r.String("application_number"),
		ApplicantID:            r.String("applicant_id"),
		Age:                    r.Int("age"),
		Occupation:             r.String("occupation"),
		EmergencyContactName:   r.String("emergency_contact_name"),
		EmergencyContactPhone:  r.String("emergency_contact_phone"),
		Interests:              r.Strings("interests"),
		AvailabilityDays:       r.Strings("availability_days"),
		AvailabilityHours:      r.String("availability_hours"),
		FrequencyPreference:    Frequency(r.String("frequency_preference")),
		AnimalExperience:       r.String("animal_experience"),
		VolunteerExperience:    r.String("volunteer_experience"),
		ReferenceName:          r.String("reference_name"),
		ReferencePhone:         r.String("reference_phone"),
		BackgroundCheckConsent: r.Bool("background_check_consent"),
		Status:                 Status(r.String("status")),
		CreatedAt:              r.Time("created_at"),
		UpdatedAt:              r.Time("updated_at"),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
