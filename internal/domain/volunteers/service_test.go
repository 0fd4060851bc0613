package volunteers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"animal-rescue/internal/adapters/storage/memory"
	"animal-rescue/internal/validation"
)

func validApplication() Application {
	return Application{
		Age:                    24,
		EmergencyContactName:   "Bilal",
		EmergencyContactPhone:  "03001234567",
		Interests:              []string{"Dog walking & exercise"},
		AvailabilityDays:       []string{"Saturday", "Sunday"},
		AvailabilityHours:      "10am - 2pm",
		FrequencyPreference:    FrequencyWeekly,
		ReferenceName:          "Sara",
		ReferencePhone:         "03007654321",
		BackgroundCheckConsent: true,
	}
}

func TestSubmit(t *testing.T) {
	svc := NewService(memory.NewRowStore(), nil)

	app, err := svc.Submit(context.Background(), validApplication())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !strings.HasPrefix(app.ApplicationNumber, "VA-") || app.Status != StatusSubmitted {
		t.Fatalf("unexpected %+v", app)
	}
	if len(app.AvailabilityDays) != 2 || app.AvailabilityDays[1] != "Sunday" {
		t.Fatalf("availability lost: %v", app.AvailabilityDays)
	}
}

func TestSubmit_Rejects(t *testing.T) {
	svc := NewService(memory.NewRowStore(), nil)

	cases := map[string]func(*Application){
		"too young":  func(a *Application) { a.Age = 15 },
		"too old":    func(a *Application) { a.Age = 81 },
		"no consent": func(a *Application) { a.BackgroundCheckConsent = false },
		"no days":    func(a *Application) { a.AvailabilityDays = nil },
		"frequency":  func(a *Application) { a.FrequencyPreference = "daily" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			app := validApplication()
			mutate(&app)
			if _, err := svc.Submit(context.Background(), app); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestInputFromValues_ListsFromCommaString(t *testing.T) {
	app := InputFromValues(validation.Values{
		"age":                    "30",
		"interests":              []any{"Photography"},
		"availabilityDays":       "Monday,Friday",
		"backgroundCheckConsent": "true",
	}, "u1")
	if app.Age != 30 || len(app.Interests) != 1 || len(app.AvailabilityDays) != 2 || !app.BackgroundCheckConsent {
		t.Fatalf("unexpected %+v", app)
	}
}
