package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/ports/rowstore"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const FeaturedLimit = 6

// Valores de sortBy aceptados y su columna.
var sortColumns = map[string]string{
	"date_added":   colCreatedAt,
	"adoption_fee": colAdoptionFee,
	"name":         colName,
	"age":          colAgeYears,
}

type Service struct {
	store rowstore.Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(store rowstore.Store, log logger.Logger) *Service {
	if store == nil {
		panic("animals: nil store")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		log:   log.With(map[string]any{"component": "animals"}),
		now:   time.Now,
	}
}

// ListFilter: vacío o "all" no filtra.
type ListFilter struct {
	Type         string
	Size         string
	Gender       string
	SpecialNeeds bool
	Query        string
	SortBy       string
	SortOrder    string
}

// List devuelve solo animales disponibles. Un enum inválido falla antes de
// consultar al backend: o van todos los filtros o no va ninguno.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Animal, error) {
	q := rowstore.From(Table).Eq(colStatus, string(StatusAvailable))

	if v, ok := active(f.Type); ok {
		if !Type(v).Valid() {
			return nil, fmt.Errorf("%w: type %q", ErrInvalidInput, v)
		}
		q.Eq(colType, v)
	}
	if v, ok := active(f.Size); ok {
		if !Size(v).Valid() {
			return nil, fmt.Errorf("%w: size %q", ErrInvalidInput, v)
		}
		q.Eq(colSize, v)
	}
	if v, ok := active(f.Gender); ok {
		if !Gender(v).Valid() {
			return nil, fmt.Errorf("%w: gender %q", ErrInvalidInput, v)
		}
		q.Eq(colGender, v)
	}
	if f.SpecialNeeds {
		q.Eq(colSpecialNeeds, true)
	}
	q.Search(f.Query, colName, colBreed)

	col, asc, err := sortSpec(f.SortBy, f.SortOrder)
	if err != nil {
		return nil, err
	}
	q.Order(col, asc)

	rows, err := s.store.Select(ctx, *q)
	if err != nil {
		s.log.Error("list animals failed", map[string]any{"err": err})
		return nil, fmt.Errorf("list animals: %w", err)
	}
	return fromRows(rows), nil
}

// GetByID: (animal, true) o (zero, false); nunca una lista.
func (s *Service) GetByID(ctx context.Context, id string) (Animal, bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, false, nil
	}
	r, err := s.store.SelectOne(ctx, Table, colID, id)
	if errors.Is(err, rowstore.ErrNoRows) {
		return Animal{}, false, nil
	}
	if err != nil {
		return Animal{}, false, fmt.Errorf("get animal: %w", err)
	}
	return fromRow(r), true, nil
}

func (s *Service) Featured(ctx context.Context) ([]Animal, error) {
	q := rowstore.From(Table).
		Eq(colFeatured, true).
		Eq(colStatus, string(StatusAvailable)).
		Order(colCreatedAt, false).
		Take(FeaturedLimit)

	rows, err := s.store.Select(ctx, *q)
	if err != nil {
		return nil, fmt.Errorf("featured animals: %w", err)
	}
	return fromRows(rows), nil
}

type CreateInput struct {
	Name                    string
	Type                    Type
	Breed                   string
	AgeYears                int
	AgeMonths               int
	Gender                  Gender
	Size                    Size
	Weight                  *float64
	Color                   string
	Personality             []string
	MedicalHistory          string
	SpecialNeeds            bool
	SpecialNeedsDescription string
	GoodWith                []string
	Images                  []string
	Location                string
	Coordinates             *Coordinates
	AdoptionFee             int
	Status                  Status
	DateRescued             *time.Time
	Story                   string
	Featured                bool
}

func (s *Service) Create(ctx context.Context, createdBy string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	if !in.Type.Valid() || !in.Gender.Valid() || !in.Size.Valid() {
		return Animal{}, fmt.Errorf("%w: type, gender and size are required", ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = StatusAvailable
	}
	if !in.Status.Valid() {
		return Animal{}, fmt.Errorf("%w: status %q", ErrInvalidInput, in.Status)
	}
	if in.AgeYears < 0 || in.AgeMonths < 0 || in.AdoptionFee < 0 {
		return Animal{}, fmt.Errorf("%w: negative age or fee", ErrInvalidInput)
	}

	now := s.now().UTC()
	a := Animal{
		ID:                      uuid.NewString(),
		Name:                    strings.TrimSpace(in.Name),
		Type:                    in.Type,
		Breed:                   strings.TrimSpace(in.Breed),
		AgeYears:                in.AgeYears,
		AgeMonths:               in.AgeMonths,
		Gender:                  in.Gender,
		Size:                    in.Size,
		Weight:                  in.Weight,
		Color:                   strings.TrimSpace(in.Color),
		Personality:             in.Personality,
		MedicalHistory:          strings.TrimSpace(in.MedicalHistory),
		SpecialNeeds:            in.SpecialNeeds,
		SpecialNeedsDescription: strings.TrimSpace(in.SpecialNeedsDescription),
		GoodWith:                in.GoodWith,
		Images:                  in.Images,
		Location:                strings.TrimSpace(in.Location),
		Coordinates:             in.Coordinates,
		AdoptionFee:             in.AdoptionFee,
		Status:                  in.Status,
		DateRescued:             in.DateRescued,
		Story:                   strings.TrimSpace(in.Story),
		Featured:                in.Featured,
		CreatedBy:               createdBy,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	r, err := s.store.Insert(ctx, Table, toRow(a))
	if err != nil {
		return Animal{}, fmt.Errorf("create animal: %w", err)
	}
	return fromRow(r), nil
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	Name                    *string
	Type                    *Type
	Breed                   *string
	AgeYears                *int
	AgeMonths               *int
	Gender                  *Gender
	Size                    *Size
	Weight                  *float64
	Color                   *string
	Personality             *[]string
	MedicalHistory          *string
	SpecialNeeds            *bool
	SpecialNeedsDescription *string
	GoodWith                *[]string
	Images                  *[]string
	Location                *string
	Coordinates             *Coordinates
	AdoptionFee             *int
	Status                  *Status
	DateRescued             *time.Time
	Story                   *string
	Featured                *bool
}

// Update siempre estampa updated_at, aunque el patch venga vacío.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return Animal{}, fmt.Errorf("%w: name cannot be blank", ErrInvalidInput)
	}
	if in.Type != nil && !in.Type.Valid() ||
		in.Gender != nil && !in.Gender.Valid() ||
		in.Size != nil && !in.Size.Valid() ||
		in.Status != nil && !in.Status.Valid() {
		return Animal{}, fmt.Errorf("%w: invalid enum value", ErrInvalidInput)
	}

	r, err := s.store.Update(ctx, Table, id, patchRow(in, s.now().UTC()))
	if errors.Is(err, rowstore.ErrNoRows) {
		return Animal{}, ErrNotFound
	}
	if err != nil {
		return Animal{}, fmt.Errorf("update animal: %w", err)
	}
	return fromRow(r), nil
}

func active(v string) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || v == "all" {
		return "", false
	}
	return v, true
}

func sortSpec(sortBy, order string) (string, bool, error) {
	col := colCreatedAt
	if v := strings.TrimSpace(sortBy); v != "" {
		c, ok := sortColumns[v]
		if !ok {
			return "", false, fmt.Errorf("%w: sort_by %q", ErrInvalidInput, v)
		}
		col = c
	}

	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "desc":
		return col, false, nil
	case "asc":
		return col, true, nil
	default:
		return "", false, fmt.Errorf("%w: sort_order %q", ErrInvalidInput, order)
	}
}

func fromRows(rows []rowstore.Row) []Animal {
	out := make([]Animal, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out
}
