package adoptions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/platform/refcode"
	"animal-rescue/internal/ports/rowstore"
	"animal-rescue/internal/validation"
)

var ErrInvalidInput = errors.New("invalid input")

const Table = "adoption_applications"

type Service struct {
	store rowstore.Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(store rowstore.Store, log logger.Logger) *Service {
	if store == nil {
		panic("adoptions: nil store")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		log:   log.With(map[string]any{"component": "adoptions"}),
		now:   time.Now,
	}
}

// Submit asigna número APP-..., estado inicial y persiste.
func (s *Service) Submit(ctx context.Context, app Application) (Application, error) {
	if strings.TrimSpace(app.AnimalID) == "" || strings.TrimSpace(app.FullName) == "" {
		return Application{}, fmt.Errorf("%w: animal and applicant name required", ErrInvalidInput)
	}
	if !app.HousingType.Valid() {
		return Application{}, fmt.Errorf("%w: housing type %q", ErrInvalidInput, app.HousingType)
	}
	if !app.YardAvailable {
		app.YardFenced = false
	}

	now := s.now().UTC()
	app.ID = uuid.NewString()
	app.ApplicationNumber = refcode.New("APP", now, 4)
	app.Status = StatusSubmitted
	app.CreatedAt = now
	app.UpdatedAt = now

	r, err := s.store.Insert(ctx, Table, toRow(app))
	if err != nil {
		s.log.Error("submit adoption application failed", map[string]any{"err": err, "animal_id": app.AnimalID})
		return Application{}, fmt.Errorf("submit adoption application: %w", err)
	}
	return fromRow(r), nil
}

// InputFromValues convierte el registro del wizard (ya validado) en Application.
func InputFromValues(v validation.Values, applicantID string) Application {
	return Application{
		AnimalID:           v.String("animalId"),
		ApplicantID:        applicantID,
		FullName:           v.String("fullName"),
		Email:              v.String("email"),
		Phone:              v.String("phone"),
		Address:            v.String("address"),
		Age:                v.Int("age"),
		Occupation:         v.String("occupation"),
		HousingType:        HousingType(v.String("housingType")),
		HousingOwned:       v.Bool("housingOwned"),
		YardAvailable:      v.Bool("yardAvailable"),
		YardFenced:         v.Bool("yardFenced"),
		PetExperience:      v.String("petExperience"),
		CurrentPets:        v.String("currentPets"),
		HouseholdMembers:   v.Int("householdMembers"),
		ChildrenAges:       v.String("childrenAges"),
		WorkSchedule:       v.String("workSchedule"),
		TravelFrequency:    v.String("travelFrequency"),
		ExercisePlan:       v.String("exercisePlan"),
		TrainingCommitment: v.Bool("trainingCommitment"),
		VeterinaryBudget:   v.Int("veterinaryBudget"),
		EmergencyContact:   Contact{Name: v.String("emergencyContactName"), Phone: v.String("emergencyContactPhone")},
		References: [2]Contact{
			{Name: v.String("reference1Name"), Phone: v.String("reference1Phone")},
			{Name: v.String("reference2Name"), Phone: v.String("reference2Phone")},
		},
	}
}

func toRow(a Application) rowstore.Row {
	return rowstore.Row{
		"id":                      a.ID,
		"application_number":      a.ApplicationNumber,
		"animal_id":               a.AnimalID,
		"applicant_id":            a.ApplicantID,
		"full_name":               a.FullName,
		"email":                   a.Email,
		"phone":                   a.Phone,
		"address":                 a.Address,
		"age":                     a.Age,
		"occupation":              a.Occupation,
		"housing_type":            string(a.HousingType),
		"housing_owned":           a.HousingOwned,
		"yard_available":          a.YardAvailable,
		"yard_fenced":             a.YardFenced,
		"pet_experience":          a.PetExperience,
		"current_pets":            a.CurrentPets,
		"household_members":       a.HouseholdMembers,
		"children_ages":           a.ChildrenAges,
		"work_schedule":           a.WorkSchedule,
		"travel_frequency":        a.TravelFrequency,
		"exercise_plan":           a.ExercisePlan,
		"training_commitment":     a.TrainingCommitment,
		"veterinary_budget":       a.VeterinaryBudget,
		"emergency_contact_name":  a.EmergencyContact.Name,
		"emergency_contact_phone": a.EmergencyContact.Phone,
		"reference1_name":         a.References[0].Name,
		"reference1_phone":        a.References[0].Phone,
		"reference2_name":         a.References[1].Name,
		"reference2_phone":        a.References[1].Phone,
		"status":                  string(a.Status),
		"created_at":              a.CreatedAt,
		"updated_at":              a.UpdatedAt,
	}
}

func fromRow(r rowstore.Row) Application {
	return Application{
		ID:                 r.String("id"),
		ApplicationNumber:  r.String("application_number"),
		AnimalID:           r.String("animal_id"),
		ApplicantID:        r.String("applicant_id"),
		FullName:           r.String("full_name"),
		Email:              r.String("email"),
		Phone:              r.String("phone"),
		Address:            r.String("address"),
		Age:                r.Int("age"),
		Occupation:         r.String("occupation"),
		HousingType:        HousingType(r.String("housing_type")),
		HousingOwned:       r.Bool("housing_owned"),
		YardAvailable:      r.Bool("yard_available"),
		YardFenced:         r.Bool("yard_fenced"),
		PetExperience:      r.String("pet_experience"),
		CurrentPets:        r.String("current_pets"),
		HouseholdMembers:   r.Int("household_members"),
		ChildrenAges:       r.String("children_ages"),
		WorkSchedule:       r.String("work_schedule"),
		TravelFrequency:    r.String("travel_frequency"),
		ExercisePlan:       r.String("exercise_plan"),
		TrainingCommitment: r.Bool("training_commitment"),
		VeterinaryBudget:   r.Int("veterinary_budget"),
		EmergencyContact:   Contact{Name: r.String("emergency_contact_name"), Phone: r.String("emergency_contact_phone")},
		References: [2]Contact{
			{Name: r.String("reference1_name"), Phone: r.String("reference1_phone")},
			{Name: r.String("reference2_name"), Phone: r.String("reference2_phone")},
		},
		Status:    Status(r.String("status")),
		CreatedAt: r.Time("created_at"),
		UpdatedAt: r.Time("updated_at"),
	}
}
