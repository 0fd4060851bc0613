package rescues

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"animal-rescue/internal/domain/animals"
	"animal-rescue/internal/middleware"
	"animal-rescue/internal/ports/auth"
	"animal-rescue/internal/validation"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/rescues", func(rr chi.Router) {
		rr.Post("/", createRescueHandler(svc))

		// Consulta pública por publicId (sin datos de contacto)
		rr.Get("/status/{publicID}", rescueStatusHandler(svc))

		rr.Group(func(sr chi.Router) {
			sr.Use(middleware.RequireRole(auth.RoleStaff, auth.RoleAdmin))
			sr.Get("/{rescueID}", getRescueHandler(svc))
			sr.Patch("/{rescueID}", updateRescueHandler(svc))
		})
	})

	// Reportes propios del usuario logueado
	r.Get("/me/rescues", listMyRescuesHandler(svc))
}

// InputFromValues arma el CreateInput desde un registro de formulario ya validado.
func InputFromValues(v validation.Values, createdBy string) CreateInput {
	in := CreateInput{
		AnimalType:        AnimalType(v.String("animalType")),
		EmergencyLevel:    EmergencyLevel(v.String("emergencyLevel")),
		LocationAddress:   v.String("locationAddress"),
		ContactName:       v.String("contactName"),
		ContactPhone:      v.String("contactPhone"),
		ContactEmail:      v.String("contactEmail"),
		ContactPreference: ContactPreference(v.String("contactPreference")),
		Description:       v.String("description"),
		Images:            v.Strings("images"),
		CreatedBy:         createdBy,
	}
	if _, ok := v["latitude"]; ok {
		in.Coordinates = &animals.Coordinates{Lat: v.Float("latitude"), Lng: v.Float("longitude")}
	}
	return in
}

type rescueResponse struct {
	ID                string               `json:"id"`
	ReferenceNumber   string               `json:"reference_number"`
	PublicID          string               `json:"public_id"`
	AnimalType        AnimalType           `json:"animal_type"`
	EmergencyLevel    EmergencyLevel       `json:"emergency_level"`
	LocationAddress   string               `json:"location_address"`
	Coordinates       *animals.Coordinates `json:"location_coordinates,omitempty"`
	ContactName       string               `json:"contact_name"`
	ContactPhone      string               `json:"contact_phone"`
	ContactEmail      string               `json:"contact_email"`
	ContactPreference ContactPreference    `json:"contact_preference"`
	Description       string               `json:"description"`
	Images            []string             `json:"images"`
	Status            Status               `json:"status"`
	AssignedTo        string               `json:"assigned_to,omitempty"`
	PriorityScore     int                  `json:"priority_score"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// rescueStatusResponse es lo único visible sin autenticación.
type rescueStatusResponse struct {
	ReferenceNumber string         `json:"reference_number"`
	PublicID        string         `json:"public_id"`
	AnimalType      AnimalType     `json:"animal_type"`
	EmergencyLevel  EmergencyLevel `json:"emergency_level"`
	Status          Status         `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type updateRescueRequest struct {
	Status         *Status         `json:"status"`
	AssignedTo     *string         `json:"assigned_to"`
	EmergencyLevel *EmergencyLevel `json:"emergency_level"`
}

type validationErrorResponse struct {
	Errors validation.Errors `json:"errors"`
}

func toRescueResponse(rr RescueRequest) rescueResponse {
	images := rr.Images
	if images == nil {
		images = []string{}
	}
	return rescueResponse{
		ID:                rr.ID,
		ReferenceNumber:   rr.ReferenceNumber,
		PublicID:          rr.PublicID,
		AnimalType:        rr.AnimalType,
		EmergencyLevel:    rr.EmergencyLevel,
		LocationAddress:   rr.LocationAddress,
		Coordinates:       rr.Coordinates,
		ContactName:       rr.ContactName,
		ContactPhone:      rr.ContactPhone,
		ContactEmail:      rr.ContactEmail,
		ContactPreference: rr.ContactPreference,
		Description:       rr.Description,
		Images:            images,
		Status:            rr.Status,
		AssignedTo:        rr.AssignedTo,
		PriorityScore:     rr.PriorityScore,
		CreatedAt:         rr.CreatedAt,
		UpdatedAt:         rr.UpdatedAt,
	}
}

// createRescueHandler godoc
// @Summary Report an animal in distress
// @Tags rescues
// @Accept json
// @Produce json
// @Success 201 {object} rescueResponse
// @Failure 422 {object} validationErrorResponse
// @Router /rescues [post]
func createRescueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var values validation.Values
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if values == nil {
			values = validation.Values{}
		}
		if _, ok := values["contactPreference"]; !ok {
			values["contactPreference"] = string(PreferPhone)
		}

		if res := validation.Rescue.Validate(values); !res.Valid() {
			writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{Errors: res.Errors})
			return
		}

		claims, _ := middleware.GetClaims(r.Context())
		rr, err := svc.Create(r.Context(), InputFromValues(values, claims.UserID))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRescueResponse(rr))
	}
}

// rescueStatusHandler godoc
// @Summary Track a rescue report by its public id
// @Tags rescues
// @Produce json
// @Param publicID path string true "public id"
// @Success 200 {object} rescueStatusResponse
// @Failure 404 {string} string
// @Router /rescues/status/{publicID} [get]
func rescueStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rr, found, err := svc.GetByPublicID(r.Context(), chi.URLParam(r, "publicID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !found {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, rescueStatusResponse{
			ReferenceNumber: rr.ReferenceNumber,
			PublicID:        rr.PublicID,
			AnimalType:      rr.AnimalType,
			EmergencyLevel:  rr.EmergencyLevel,
			Status:          rr.Status,
			CreatedAt:       rr.CreatedAt,
			UpdatedAt:       rr.UpdatedAt,
		})
	}
}

func getRescueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rr, found, err := svc.GetByID(r.Context(), chi.URLParam(r, "rescueID"))
		if err != nil {
			writeError(w, err)
			return
		}
		if !found {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toRescueResponse(rr))
	}
}

func updateRescueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRescueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rr, err := svc.Update(r.Context(), chi.URLParam(r, "rescueID"), UpdateInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRescueResponse(rr))
	}
}

func listMyRescuesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]rescueResponse, 0, len(items))
		for _, rr := range items {
			out = append(out, toRescueResponse(rr))
		}
		writeJSON(w, http.StatusOK, out)
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
