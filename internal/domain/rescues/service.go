package rescues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"animal-rescue/internal/domain/animals"
	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/ports/rowstore"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const MaxImages = 5

type Service struct {
	store rowstore.Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(store rowstore.Store, log logger.Logger) *Service {
	if store == nil {
		panic("rescues: nil store")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		log:   log.With(map[string]any{"component": "rescues"}),
		now:   time.Now,
	}
}

type CreateInput struct {
	AnimalType        AnimalType
	EmergencyLevel    EmergencyLevel
	LocationAddress   string
	Coordinates       *animals.Coordinates
	ContactName       string
	ContactPhone      string
	ContactEmail      string
	ContactPreference ContactPreference
	Description       string
	Images            []string
	CreatedBy         string
}

// Create sintetiza referencia, publicId y prioridad antes de persistir.
func (s *Service) Create(ctx context.Context, in CreateInput) (RescueRequest, error) {
	if !in.AnimalType.Valid() || !in.EmergencyLevel.Valid() {
		return RescueRequest{}, fmt.Errorf("%w: animal type and emergency level required", ErrInvalidInput)
	}
	if in.ContactPreference == "" {
		in.ContactPreference = PreferPhone
	}
	if !in.ContactPreference.Valid() {
		return RescueRequest{}, fmt.Errorf("%w: contact preference %q", ErrInvalidInput, in.ContactPreference)
	}
	if strings.TrimSpace(in.LocationAddress) == "" || strings.TrimSpace(in.ContactName) == "" {
		return RescueRequest{}, fmt.Errorf("%w: location and contact name required", ErrInvalidInput)
	}
	if len(in.Images) > MaxImages {
		return RescueRequest{}, fmt.Errorf("%w: at most %d images", ErrInvalidInput, MaxImages)
	}

	now := s.now().UTC()
	rr := RescueRequest{
		ID:                uuid.NewString(),
		ReferenceNumber:   NewReferenceNumber(now),
		PublicID:          NewPublicID(),
		AnimalType:        in.AnimalType,
		EmergencyLevel:    in.EmergencyLevel,
		LocationAddress:   strings.TrimSpace(in.LocationAddress),
		Coordinates:       in.Coordinates,
		ContactName:       strings.TrimSpace(in.ContactName),
		ContactPhone:      strings.TrimSpace(in.ContactPhone),
		ContactEmail:      strings.TrimSpace(in.ContactEmail),
		ContactPreference: in.ContactPreference,
		Description:       strings.TrimSpace(in.Description),
		Images:            in.Images,
		Status:            StatusSubmitted,
		PriorityScore:     PriorityScore(in.EmergencyLevel),
		CreatedBy:         in.CreatedBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	r, err := s.store.Insert(ctx, Table, toRow(rr))
	if err != nil {
		s.log.Error("create rescue request failed", map[string]any{"err": err, "level": rr.EmergencyLevel})
		return RescueRequest{}, fmt.Errorf("create rescue request: %w", err)
	}

	created := fromRow(r)
	s.log.Info("rescue request created", map[string]any{
		"reference": created.ReferenceNumber,
		"level":     created.EmergencyLevel,
		"priority":  created.PriorityScore,
	})
	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (RescueRequest, bool, error) {
	return s.getBy(ctx, colID, id)
}

func (s *Service) GetByPublicID(ctx context.Context, publicID string) (RescueRequest, bool, error) {
	return s.getBy(ctx, colPublicID, strings.ToUpper(strings.TrimSpace(publicID)))
}

// getBy: "no rows" del backend es found=false sin error.
func (s *Service) getBy(ctx context.Context, col, value string) (RescueRequest, bool, error) {
	if strings.TrimSpace(value) == "" {
		return RescueRequest{}, false, nil
	}
	r, err := s.store.SelectOne(ctx, Table, col, value)
	if errors.Is(err, rowstore.ErrNoRows) {
		return RescueRequest{}, false, nil
	}
	if err != nil {
		return RescueRequest{}, false, fmt.Errorf("get rescue request: %w", err)
	}
	return fromRow(r), true, nil
}

// ListByUser devuelve los reportes del usuario, más recientes primero.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]RescueRequest, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return []RescueRequest{}, nil
	}

	rows, err := s.store.Select(ctx, *rowstore.From(Table).
		Eq(colCreatedBy, userID).
		Order(colCreatedAt, false))
	if err != nil {
		return nil, fmt.Errorf("list rescue requests: %w", err)
	}

	out := make([]RescueRequest, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// UpdateInput: nil = no tocar. Cambiar el nivel recalcula la prioridad.
type UpdateInput struct {
	Status         *Status
	AssignedTo     *string
	EmergencyLevel *EmergencyLevel
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (RescueRequest, error) {
	if in.Status != nil && !in.Status.Valid() {
		return RescueRequest{}, fmt.Errorf("%w: status %q", ErrInvalidInput, *in.Status)
	}
	if in.EmergencyLevel != nil && !in.EmergencyLevel.Valid() {
		return RescueRequest{}, fmt.Errorf("%w: emergency level %q", ErrInvalidInput, *in.EmergencyLevel)
	}

	r, err := s.store.Update(ctx, Table, strings.TrimSpace(id), patchRow(in, s.now().UTC()))
	if errors.Is(err, rowstore.ErrNoRows) {
		return RescueRequest{}, ErrNotFound
	}
	if err != nil {
		return RescueRequest{}, fmt.Errorf("update rescue request: %w", err)
	}
	return fromRow(r), nil
}
