package visitor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"animal-rescue/internal/appstate"
	"animal-rescue/internal/catalog"
	"animal-rescue/internal/domain/animals"
)

// AnimalLister es lo que el catálogo necesita del servicio de animales.
type AnimalLister interface {
	List(ctx context.Context, f animals.ListFilter) ([]animals.Animal, error)
}

const catalogKey = "catalog"

func RegisterRoutes(r chi.Router, lister AnimalLister, pageSize int) {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}

	// Rutas planas: /me/* también lo comparten otros módulos.
	r.Get("/me/filters", getFiltersHandler())
	r.Patch("/me/filters", patchFiltersHandler())
	r.Get("/me/catalog", catalogHandler(lister, pageSize))

	r.Get("/me/notifications", listNotificationsHandler())
	r.Delete("/me/notifications", clearNotificationsHandler())
	r.Delete("/me/notifications/{notificationID}", removeNotificationHandler())
	r.Post("/me/notifications/{notificationID}/read", markReadHandler())
}

type filtersResponse struct {
	Query        string   `json:"query"`
	Type         string   `json:"type"`
	Age          string   `json:"age"`
	Size         string   `json:"size"`
	Gender       string   `json:"gender"`
	Location     string   `json:"location"`
	SpecialNeeds bool     `json:"special_needs"`
	GoodWith     []string `json:"good_with"`
	SortBy       string   `json:"sort_by"`
	SortOrder    string   `json:"sort_order"`
	Page         int      `json:"page"`
	Limit        int      `json:"limit,omitempty"`
}

// Campos nil no se tocan.
type filtersPatchRequest struct {
	Query        *string   `json:"query"`
	Type         *string   `json:"type"`
	Age          *string   `json:"age"`
	Size         *string   `json:"size"`
	Gender       *string   `json:"gender"`
	Location     *string   `json:"location"`
	SpecialNeeds *bool     `json:"special_needs"`
	GoodWith     *[]string `json:"good_with"`
	SortBy       *string   `json:"sort_by"`
	SortOrder    *string   `json:"sort_order"`
	Page         *int      `json:"page"`
	Limit        *int      `json:"limit"`
}

type catalogResponse struct {
	Items      []animals.Response `json:"items"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type notificationResponse struct {
	ID        string                    `json:"id"`
	Type      appstate.NotificationType `json:"type"`
	Title     string                    `json:"title"`
	Message   string                    `json:"message"`
	Read      bool                      `json:"read"`
	CreatedAt time.Time                 `json:"created_at"`
}

type notificationsResponse struct {
	Items  []notificationResponse `json:"items"`
	Unread int                    `json:"unread"`
}

func toFiltersResponse(f catalog.Filters) filtersResponse {
	good := f.GoodWith
	if good == nil {
		good = []string{}
	}
	return filtersResponse{
		Query:        f.Query,
		Type:         f.Type,
		Age:          f.Age,
		Size:         f.Size,
		Gender:       f.Gender,
		Location:     f.Location,
		SpecialNeeds: f.SpecialNeeds,
		GoodWith:     good,
		SortBy:       f.SortBy,
		SortOrder:    f.SortOrder,
		Page:         f.Page,
		Limit:        f.Limit,
	}
}

func toNotificationsResponse(st appstate.State) notificationsResponse {
	items := make([]notificationResponse, 0, len(st.Notifications))
	for _, n := range st.Notifications {
		items = append(items, notificationResponse(n))
	}
	return notificationsResponse{Items: items, Unread: st.Unread()}
}

func getFiltersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := FromContext(r.Context())
		writeJSON(w, http.StatusOK, toFiltersResponse(ws.Store.State().Filters))
	}
}

// patchFiltersHandler godoc
// @Summary Merge the visitor's search filters
// @Tags visitor
// @Accept json
// @Produce json
// @Success 200 {object} filtersResponse
// @Failure 400 {string} string
// @Router /me/filters [patch]
func patchFiltersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req filtersPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		ws := FromContext(r.Context())
		patch := appstate.FiltersPatch(req)

		if err := catalog.Validate(patch.Apply(ws.Store.State().Filters)); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		st := ws.Store.Dispatch(appstate.UpdateFilters{Patch: patch})
		writeJSON(w, http.StatusOK, toFiltersResponse(st.Filters))
	}
}

// catalogHandler godoc
// @Summary Current catalog page for the visitor's filters
// @Tags visitor
// @Produce json
// @Param page query int false "page number; also stored in the filters"
// @Success 200 {object} catalogResponse
// @Failure 400 {string} string
// @Failure 502 {string} string
// @Router /me/catalog [get]
func catalogHandler(lister AnimalLister, pageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := FromContext(r.Context())

		if raw := r.URL.Query().Get("page"); raw != "" {
			page, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			ws.Store.Dispatch(appstate.UpdateFilters{Patch: appstate.FiltersPatch{Page: &page}})
		}

		f := ws.Store.State().Filters
		if f.Limit <= 0 {
			f.Limit = pageSize
		}

		ticket := ws.Guard.Begin(catalogKey)
		// Tipo, tamaño, género y necesidades especiales se filtran en el
		// backend; edad, ubicación, goodWith y el texto libre en memoria.
		items, err := lister.List(r.Context(), animals.ListFilter{
			Type:         f.Type,
			Size:         f.Size,
			Gender:       f.Gender,
			SpecialNeeds: f.SpecialNeeds,
		})
		if err != nil {
			if errors.Is(err, animals.ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			ws.Store.Dispatch(appstate.AddNotification{
				Type:    appstate.NotifyError,
				Title:   "Catalog unavailable",
				Message: "Failed to load animals. Please try again.",
			})
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}

		page := catalog.Apply(items, f)
		ws.Guard.ApplyIfCurrent(ticket, func() {
			ws.Store.Dispatch(appstate.SetCatalog{Page: page})
		})

		writeJSON(w, http.StatusOK, catalogResponse{
			Items:      animals.NewResponses(page.Items),
			Total:      page.Total,
			TotalPages: page.TotalPages,
			Page:       page.Page,
			Limit:      page.Limit,
		})
	}
}

func listNotificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, toNotificationsResponse(FromContext(r.Context()).Store.State()))
	}
}

func clearNotificationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Store.Dispatch(appstate.ClearNotifications{})
		w.WriteHeader(http.StatusNoContent)
	}
}

func removeNotificationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := FromContext(r.Context()).Store.Dispatch(appstate.RemoveNotification{ID: chi.URLParam(r, "notificationID")})
		writeJSON(w, http.StatusOK, toNotificationsResponse(st))
	}
}

func markReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := FromContext(r.Context()).Store.Dispatch(appstate.MarkRead{ID: chi.URLParam(r, "notificationID")})
		writeJSON(w, http.StatusOK, toNotificationsResponse(st))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
