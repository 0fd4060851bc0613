package donations

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"animal-rescue/internal/adapters/storage/memory"
	"animal-rescue/internal/ports/rowstore"
	"animal-rescue/internal/validation"
)

type declineProcessor struct{}

func (declineProcessor) Process(_ context.Context, d Donation) (Donation, error) {
	return d, errors.New("card declined")
}

func sampleDonation() Donation {
	return Donation{
		Amount:        500,
		PaymentMethod: PaymentJazzCash,
		DonorName:     "Zainab",
		DonorEmail:    "zainab@example.com",
	}
}

func TestSubmit_SimulatedPaymentCompletes(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(memory.NewRowStore(), SimulatedProcessor{Now: func() time.Time { return fixed }}, nil)

	d, err := svc.Submit(context.Background(), sampleDonation())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !regexp.MustCompile(`^TXN-[0-9A-Z]+-[0-9A-Z]{6}$`).MatchString(d.TransactionID) {
		t.Fatalf("bad transaction id %q", d.TransactionID)
	}
	if d.Status != StatusCompleted || d.Currency != Currency {
		t.Fatalf("unexpected %+v", d)
	}
	if d.ProcessedAt == nil || !d.ProcessedAt.Equal(fixed) {
		t.Fatalf("processed_at not stamped: %v", d.ProcessedAt)
	}
	if d.Type != TypeOneTime || d.Purpose != PurposeGeneral {
		t.Fatalf("defaults not applied: %s %s", d.Type, d.Purpose)
	}
}

func TestSubmit_BelowMinimum(t *testing.T) {
	store := memory.NewRowStore()
	svc := NewService(store, nil, nil)

	in := sampleDonation()
	in.Amount = 99
	if _, err := svc.Submit(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmit_ProcessorFailureIsNotStored(t *testing.T) {
	store := memory.NewRowStore()
	svc := NewService(store, declineProcessor{}, nil)

	if _, err := svc.Submit(context.Background(), sampleDonation()); err == nil {
		t.Fatalf("expected error")
	}
	rows, err := store.Select(context.Background(), *rowstore.From(Table))
	if err != nil || len(rows) != 0 {
		t.Fatalf("expected no stored donations, got %d (%v)", len(rows), err)
	}
}

func TestSimulatedProcessor_Minimum(t *testing.T) {
	if _, err := (SimulatedProcessor{}).Process(context.Background(), Donation{Amount: 50}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestInputFromValues(t *testing.T) {
	d := InputFromValues(validation.Values{
		"amount":        "2500",
		"donationType":  "monthly",
		"purpose":       "medical",
		"paymentMethod": "easypaisa",
		"anonymous":     true,
	}, "donor-1")
	if d.Amount != 2500 || d.Type != TypeMonthly || d.Purpose != PurposeMedical || !d.Anonymous || d.DonorID != "donor-1" {
		t.Fatalf("unexpected %+v", d)
	}
}
