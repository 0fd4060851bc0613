// Package appstate guarda el estado por visitante: filtros de búsqueda,
// notificaciones y la última página de catálogo calculada.
package appstate

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"animal-rescue/internal/catalog"
)

type NotificationType string

const (
	NotifySuccess             NotificationType = "success"
	NotifyError               NotificationType = "error"
	NotifyInfo                NotificationType = "info"
	NotifyRescueUpdate        NotificationType = "rescue_update"
	NotifyAdoptionUpdate      NotificationType = "adoption_update"
	NotifyDonationReceipt     NotificationType = "donation_receipt"
	NotifyVolunteerAssignment NotificationType = "volunteer_assignment"
)

type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}

type State struct {
	Filters       catalog.Filters
	Notifications []Notification // más reciente primero
	Catalog       catalog.Page
}

func (s State) Unread() int {
	n := 0
	for _, it := range s.Notifications {
		if !it.Read {
			n++
		}
	}
	return n
}

// Action es cualquier mutación aceptada por Dispatch.
type Action interface {
	apply(State, func() time.Time) State
}

// FiltersPatch: nil = conservar el valor anterior.
type FiltersPatch struct {
	Query        *string
	Type         *string
	Age          *string
	Size         *string
	Gender       *string
	Location     *string
	SpecialNeeds *bool
	GoodWith     *[]string
	SortBy       *string
	SortOrder    *string
	Page         *int
	Limit        *int
}

type UpdateFilters struct{ Patch FiltersPatch }

type AddNotification struct {
	Type    NotificationType
	Title   string
	Message string
}

type RemoveNotification struct{ ID string }

type ClearNotifications struct{}

type MarkRead struct{ ID string }

type SetCatalog struct{ Page catalog.Page }

// Apply devuelve f con el patch aplicado, sin tocar ningún store.
func (p FiltersPatch) Apply(f catalog.Filters) catalog.Filters {
	setIf(&f.Query, p.Query)
	setIf(&f.Type, p.Type)
	setIf(&f.Age, p.Age)
	setIf(&f.Size, p.Size)
	setIf(&f.Gender, p.Gender)
	setIf(&f.Location, p.Location)
	setIf(&f.SpecialNeeds, p.SpecialNeeds)
	if p.GoodWith != nil {
		f.GoodWith = append([]string{}, (*p.GoodWith)...)
	}
	setIf(&f.SortBy, p.SortBy)
	setIf(&f.SortOrder, p.SortOrder)
	setIf(&f.Page, p.Page)
	setIf(&f.Limit, p.Limit)
	return f
}

func (a UpdateFilters) apply(s State, _ func() time.Time) State {
	s.Filters = a.Patch.Apply(s.Filters)
	return s
}

func (a AddNotification) apply(s State, now func() time.Time) State {
	if a.Type == "" {
		a.Type = NotifyInfo
	}
	n := Notification{
		ID:        uuid.NewString(),
		Type:      a.Type,
		Title:     a.Title,
		Message:   a.Message,
		CreatedAt: now().UTC(),
	}
	s.Notifications = append([]Notification{n}, s.Notifications...)
	return s
}

func (a RemoveNotification) apply(s State, _ func() time.Time) State {
	out := make([]Notification, 0, len(s.Notifications))
	for _, n := range s.Notifications {
		if n.ID != a.ID {
			out = append(out, n)
		}
	}
	s.Notifications = out
	return s
}

func (ClearNotifications) apply(s State, _ func() time.Time) State {
	s.Notifications = []Notification{}
	return s
}

func (a MarkRead) apply(s State, _ func() time.Time) State {
	out := make([]Notification, len(s.Notifications))
	copy(out, s.Notifications)
	for i := range out {
		if out[i].ID == a.ID {
			out[i].Read = true
		}
	}
	s.Notifications = out
	return s
}

func (a SetCatalog) apply(s State, _ func() time.Time) State {
	s.Catalog = a.Page
	return s
}

type Store struct {
	mu    sync.RWMutex
	state State
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		state: State{
			Filters:       catalog.DefaultFilters(),
			Notifications: []Notification{},
			Catalog:       catalog.Page{Page: 1},
		},
		now: time.Now,
	}
}

// Dispatch aplica la acción y devuelve el estado resultante.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = a.apply(s.state, s.now)
	return s.snapshot()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	out := s.state
	out.Filters.GoodWith = append([]string{}, s.state.Filters.GoodWith...)
	out.Notifications = append([]Notification{}, s.state.Notifications...)
	return out
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
