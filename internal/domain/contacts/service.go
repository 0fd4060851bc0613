package contacts

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

const Table = "contact_messages"

type Service struct {
	store rowstore.Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(store rowstore.Store, log logger.Logger) *Service {
	if store == nil {
		panic("contacts: nil store")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		log:   log.With(map[string]any{"component": "contacts"}),
		now:   time.Now,
	}
}

func (s *Service) Submit(ctx context.Context, m Message) (Message, error) {
	if m.Urgency == "" {
		m.Urgency = UrgencyMedium
	}
	if m.Type == "" {
		m.Type = TypeGeneral
	}
	if !m.Urgency.Valid() || !m.Type.Valid() {
		return Message{}, fmt.Errorf("%w: urgency %q type %q", ErrInvalidInput, m.Urgency, m.Type)
	}
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" || strings.TrimSpace(m.Body) == "" {
		return Message{}, fmt.Errorf("%w: name, email and message required", ErrInvalidInput)
	}

	now := s.now().UTC()
	m.ID = uuid.NewString()
	m.Reference = refcode.New("MSG", now, 4)
	m.Status = StatusNew
	m.CreatedAt = now
	m.UpdatedAt = now

	r, err := s.store.Insert(ctx, Table, toRow(m))
	if err != nil {
		s.log.Error("store contact message failed", map[string]any{"err": err, "type": m.Type})
		return Message{}, fmt.Errorf("store contact message: %w", err)
	}

	out := fromRow(r)
	if out.Urgency == UrgencyEmergency {
		s.log.Warn("emergency contact message", map[string]any{"reference": out.Reference, "subject": out.Subject})
	}
	return out, nil
}

func InputFromValues(v validation.Values) Message {
	return Message{
		Name:    v.String("name"),
		Email:   v.String("email"),
		Phone:   v.String("phone"),
		Subject: v.String("subject"),
		Body:    v.String("message"),
		Urgency: Urgency(v.String("urgencyLevel")),
		Type:    MessageType(v.String("messageType")),
	}
}

func toRow(m Message) rowstore.Row {
	return rowstore.Row{
		"id":            m.ID,
		"reference":     m.Reference,
		"name":          m.Name,
		"email":         m.Email,
		"phone":         m.Phone,
		"subject":       m.Subject,
		"message":       m.Body,
		"urgency_level": string(m.Urgency),
		"message_type":  string(m.Type),
		"status":        string(m.Status),
		"created_at":    m.CreatedAt,
		"updated_at":    m.UpdatedAt,
	}
}

func fromRow(r rowstore.Row) Message {
	return Message{
		ID:        r.String("id"),
		Reference: r.String("reference"),
		Name:      r.String("name"),
		Email:     r.String("email"),
		Phone:     r.String("phone"),
		Subject:   r.String("subject"),
		Body:      r.String("message"),
		Urgency:   Urgency(r.String("urgency_level")),
		Type:      MessageType(r.String("message_type")),
		Status:    Status(r.String("status")),
		CreatedAt: r.Time("created_at"),
		UpdatedAt: r.Time("updated_at"),
	}
}
