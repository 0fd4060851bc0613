package donations

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

const Table = "donations"

type Service struct {
	store     rowstore.Store
	processor Processor
	log       logger.Logger
	now       func() time.Time
}

func NewService(store rowstore.Store, processor Processor, log logger.Logger) *Service {
	if store == nil {
		panic("donations: nil store")
	}
	if processor == nil {
		processor = SimulatedProcessor{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:     store,
		processor: processor,
		log:       log.With(map[string]any{"component": "donations"}),
		now:       time.Now,
	}
}

// Submit procesa el pago y persiste el resultado con su transactionId TXN-...
func (s *Service) Submit(ctx context.Context, d Donation) (Donation, error) {
	if d.Type == "" {
		d.Type = TypeOneTime
	}
	if d.Purpose == "" {
		d.Purpose = PurposeGeneral
	}
	switch {
	case d.Amount < MinimumAmount:
		return Donation{}, fmt.Errorf("%w: minimum donation amount is Rs. %d", ErrInvalidInput, MinimumAmount)
	case !d.Type.Valid() || !d.Purpose.Valid():
		return Donation{}, fmt.Errorf("%w: donation type %q purpose %q", ErrInvalidInput, d.Type, d.Purpose)
	case !d.PaymentMethod.Valid():
		return Donation{}, fmt.Errorf("%w: payment method %q", ErrInvalidInput, d.PaymentMethod)
	case strings.TrimSpace(d.DonorName) == "" || strings.TrimSpace(d.DonorEmail) == "":
		return Donation{}, fmt.Errorf("%w: please provide your name and email", ErrInvalidInput)
	}

	now := s.now().UTC()
	d.ID = uuid.NewString()
	d.TransactionID = refcode.New("TXN", now, 6)
	d.Currency = Currency
	d.Status = StatusPending
	d.CreatedAt = now
	d.UpdatedAt = now

	processed, err := s.processor.Process(ctx, d)
	if err != nil {
		s.log.Warn("donation payment failed", map[string]any{"err": err, "transaction_id": d.TransactionID})
		return Donation{}, fmt.Errorf("process donation: %w", err)
	}

	r, err := s.store.Insert(ctx, Table, toRow(processed))
	if err != nil {
		s.log.Error("store donation failed", map[string]any{"err": err, "transaction_id": d.TransactionID})
		return Donation{}, fmt.Errorf("store donation: %w", err)
	}

	out := fromRow(r)
	s.log.Info("donation received", map[string]any{
		"transaction_id": out.TransactionID,
		"amount":         out.Amount,
		"method":         out.PaymentMethod,
	})
	return out, nil
}

func InputFromValues(v validation.Values, donorID string) Donation {
	return Donation{
		DonorID:           donorID,
		Amount:            v.Int("amount"),
		Type:              Type(v.String("donationType")),
		Purpose:           Purpose(v.String("purpose")),
		DonorName:         v.String("donorName"),
		DonorEmail:        v.String("donorEmail"),
		DonorPhone:        v.String("donorPhone"),
		Anonymous:         v.Bool("anonymous"),
		PaymentMethod:     PaymentMethod(v.String("paymentMethod")),
		PublicRecognition: v.Bool("publicRecognition"),
	}
}

func toRow(d Donation) rowstore.Row {
	r := rowstore.Row{
		"id":                 d.ID,
		"transaction_id":     d.TransactionID,
		"donor_id":           d.DonorID,
		"amount":             d.Amount,
		"currency":           d.Currency,
		"donation_type":      string(d.Type),
		"purpose":            string(d.Purpose),
		"donor_name":         d.DonorName,
		"donor_email":        d.DonorEmail,
		"donor_phone":        d.DonorPhone,
		"anonymous":          d.Anonymous,
		"payment_method":     string(d.PaymentMethod),
		"status":             string(d.Status),
		"failure_reason":     d.FailureReason,
		"public_recognition": d.PublicRecognition,
		"created_at":         d.CreatedAt,
		"updated_at":         d.UpdatedAt,
	}
	if d.ProcessedAt != nil {
		r["processed_at"] = *d.ProcessedAt
	}
	return r
}

func fromRow(r rowstore.Row) Donation {
	d := Donation{
		ID:                r.String("id"),
		TransactionID:     r.String("transaction_id"),
		DonorID:           r.String("donor_id"),
		Amount:            r.Int("amount"),
		Currency:          r.String("currency"),
		Type:              Type(r.String("donation_type")),
		Purpose:           Purpose(r.String("purpose")),
		DonorName:         r.String("donor_name"),
		DonorEmail:        r.String("donor_email"),
		DonorPhone:        r.String("donor_phone"),
		Anonymous:         r.Bool("anonymous"),
		PaymentMethod:     PaymentMethod(r.String("payment_method")),
		Status:            Status(r.String("status")),
		FailureReason:     r.String("failure_reason"),
		PublicRecognition: r.Bool("public_recognition"),
		CreatedAt:         r.Time("created_at"),
		UpdatedAt:         r.Time("updated_at"),
	}
	if t, ok := r.TimeOK("processed_at"); ok {
		d.ProcessedAt = &t
	}
	return d
}
