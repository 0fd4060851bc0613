package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"animal-rescue/internal/middleware"
	"animal-rescue/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/featured", featuredAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))

		// Alta y edición: solo staff/admin
		ar.Group(func(sr chi.Router) {
			sr.Use(middleware.RequireRole(auth.RoleStaff, auth.RoleAdmin))
			sr.Post("/", createAnimalHandler(svc))
			sr.Patch("/{animalID}", updateAnimalHandler(svc))
		})
	})
}

// Response es la forma pública de un animal.
type Response struct {
	ID                      string       `json:"id"`
	Name                    string       `json:"name"`
	Type                    Type         `json:"type"`
	Breed                   string       `json:"breed,omitempty"`
	AgeYears                int          `json:"age_years"`
	AgeMonths               int          `json:"age_months"`
	Gender                  Gender       `json:"gender"`
	Size                    Size         `json:"size"`
	Weight                  *float64     `json:"weight,omitempty"`
	Color                   string       `json:"color,omitempty"`
	Personality             []string     `json:"personality"`
	MedicalHistory          string       `json:"medical_history,omitempty"`
	SpecialNeeds            bool         `json:"special_needs"`
	SpecialNeedsDescription string       `json:"special_needs_description,omitempty"`
	GoodWith                []string     `json:"good_with"`
	Images                  []string     `json:"images"`
	Location                string       `json:"location"`
	Coordinates             *Coordinates `json:"location_coordinates,omitempty"`
	AdoptionFee             int          `json:"adoption_fee"`
	Status                  Status       `json:"status"`
	DateRescued             *time.Time   `json:"date_rescued,omitempty"`
	Story                   string       `json:"story,omitempty"`
	Featured                bool         `json:"featured"`
	CreatedAt               time.Time    `json:"created_at"`
	UpdatedAt               time.Time    `json:"updated_at"`
}

func NewResponse(a Animal) Response {
	return Response{
		ID:                      a.ID,
		Name:                    a.Name,
		Type:                    a.Type,
		Breed:                   a.Breed,
		AgeYears:                a.AgeYears,
		AgeMonths:               a.AgeMonths,
		Gender:                  a.Gender,
		Size:                    a.Size,
		Weight:                  a.Weight,
		Color:                   a.Color,
		Personality:             nonNil(a.Personality),
		MedicalHistory:          a.MedicalHistory,
		SpecialNeeds:            a.SpecialNeeds,
		SpecialNeedsDescription: a.SpecialNeedsDescription,
		GoodWith:                nonNil(a.GoodWith),
		Images:                  nonNil(a.Images),
		Location:                a.Location,
		Coordinates:             a.Coordinates,
		AdoptionFee:             a.AdoptionFee,
		Status:                  a.Status,
		DateRescued:             a.DateRescued,
		Story:                   a.Story,
		Featured:                a.Featured,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
	}
}

func NewResponses(items []Animal) []Response {
	out := make([]Response, 0, len(items))
	for _, a := range items {
		out = append(out, NewResponse(a))
	}
	return out
}

type createAnimalRequest struct {
	Name                    string       `json:"name"`
	Type                    Type         `json:"type"`
	Breed                   string       `json:"breed"`
	AgeYears                int          `json:"age_years"`
	AgeMonths               int          `json:"age_months"`
	Gender                  Gender       `json:"gender"`
	Size                    Size         `json:"size"`
	Weight                  *float64     `json:"weight"`
	Color                   string       `json:"color"`
	Personality             []string     `json:"personality"`
	MedicalHistory          string       `json:"medical_history"`
	SpecialNeeds            bool         `json:"special_needs"`
	SpecialNeedsDescription string       `json:"special_needs_description"`
	GoodWith                []string     `json:"good_with"`
	Images                  []string     `json:"images"`
	Location                string       `json:"location"`
	Coordinates             *Coordinates `json:"location_coordinates"`
	AdoptionFee             int          `json:"adoption_fee"`
	Status                  Status       `json:"status"`
	DateRescued             *time.Time   `json:"date_rescued"`
	Story                   string       `json:"story"`
	Featured                bool         `json:"featured"`
}

// Punteros para PATCH real: nil = no tocar.
type updateAnimalRequest struct {
	Name                    *string      `json:"name"`
	Type                    *Type        `json:"type"`
	Breed                   *string      `json:"breed"`
	AgeYears                *int         `json:"age_years"`
	AgeMonths               *int         `json:"age_months"`
	Gender                  *Gender      `json:"gender"`
	Size                    *Size        `json:"size"`
	Weight                  *float64     `json:"weight"`
	Color                   *string      `json:"color"`
	Personality             *[]string    `json:"personality"`
	MedicalHistory          *string      `json:"medical_history"`
	SpecialNeeds            *bool        `json:"special_needs"`
	SpecialNeedsDescription *string      `json:"special_needs_description"`
	GoodWith                *[]string    `json:"good_with"`
	Images                  *[]string    `json:"images"`
	Location                *string      `json:"location"`
	Coordinates             *Coordinates `json:"location_coordinates"`
	AdoptionFee             *int         `json:"adoption_fee"`
	Status                  *Status      `json:"status"`
	DateRescued             *time.Time   `json:"date_rescued"`
	Story                   *string      `json:"story"`
	Featured                *bool        `json:"featured"`
}

// listAnimalsHandler godoc
// @Summary List adoptable animals
// @Tags animals
// @Produce json
// @Param type query string false "dog, cat, bird, rabbit, livestock, wildlife, other"
// @Param size query string false "small, medium, large, extra-large"
// @Param gender query string false "male, female"
// @Param special_needs query bool false "only animals with special needs"
// @Param q query string false "search over name and breed"
// @Param sort_by query string false "date_added, adoption_fee, name, age"
// @Param sort_order query string false "asc, desc"
// @Success 200 {array} Response
// @Failure 400 {string} string
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), ListFilter{
			Type:         q.Get("type"),
			Size:         q.Get("size"),
			Gender:       q.Get("gender"),
			SpecialNeeds: strings.EqualFold(q.Get("special_needs"), "true"),
			Query:        q.Get("q"),
			SortBy:       q.Get("sort_by"),
			SortOrder:    q.Get("sort_order"),
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, NewResponses(items))
	}
}

// featuredAnimalsHandler godoc
// @Summary Featured animals for the home page
// @Tags animals
// @Produce json
// @Success 200 {array} Response
// @Router /animals/featured [get]
func featuredAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Featured(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, NewResponses(items))
	}
}

// getAnimalHandler godoc
// @Summary Get an animal
// @Tags animals
// @Produce json
// @Param animalID path string true "animal id"
// @Success 200 {object} Response
// @Failure 404 {string} string
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, found, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !found {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, NewResponse(a))
	}
}

func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:                    req.Name,
			Type:                    req.Type,
			Breed:                   req.Breed,
			AgeYears:                req.AgeYears,
			AgeMonths:               req.AgeMonths,
			Gender:                  req.Gender,
			Size:                    req.Size,
			Weight:                  req.Weight,
			Color:                   req.Color,
			Personality:             req.Personality,
			MedicalHistory:          req.MedicalHistory,
			SpecialNeeds:            req.SpecialNeeds,
			SpecialNeedsDescription: req.SpecialNeedsDescription,
			GoodWith:                req.GoodWith,
			Images:                  req.Images,
			Location:                req.Location,
			Coordinates:             req.Coordinates,
			AdoptionFee:             req.AdoptionFee,
			Status:                  req.Status,
			DateRescued:             req.DateRescued,
			Story:                   req.Story,
			Featured:                req.Featured,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, NewResponse(a))
	}
}

func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), UpdateInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, NewResponse(a))
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		http.Error(w, "upstream error", http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
