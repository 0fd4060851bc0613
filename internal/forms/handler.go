package forms

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"animal-rescue/internal/appstate"
	"animal-rescue/internal/middleware"
	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/validation"
	"animal-rescue/internal/visitor"
	"animal-rescue/internal/wizard"
)

// RegisterRoutes monta /forms/{kind}. submitMW se aplica solo al submit
// (rate limit).
func RegisterRoutes(r chi.Router, svcs Services, log logger.Logger, submitMW ...func(http.Handler) http.Handler) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "forms"})

	r.Route("/forms/{kind}", func(fr chi.Router) {
		fr.Get("/", stateHandler())
		fr.Post("/values", setValuesHandler())
		fr.Post("/next", nextHandler())
		fr.Post("/previous", previousHandler())
		fr.Post("/validate", validateHandler())
		fr.With(submitMW...).Post("/submit", submitHandler(svcs, log))
	})
}

type stateResponse struct {
	Kind       string            `json:"kind"`
	Step       int               `json:"step"`
	TotalSteps int               `json:"total_steps"`
	StepFields []string          `json:"step_fields"`
	Values     validation.Values `json:"values"`
	Submitting bool              `json:"submitting"`
	Errors     validation.Errors `json:"errors,omitempty"`
}

type validateResponse struct {
	Valid  bool              `json:"valid"`
	Errors validation.Errors `json:"errors"`
}

func toState(w *wizard.Wizard) stateResponse {
	step := w.Step()
	return stateResponse{
		Kind:       w.Name(),
		Step:       step,
		TotalSteps: w.TotalSteps(),
		StepFields: w.StepFields(step),
		Values:     w.Values(),
		Submitting: w.Submitting(),
	}
}

// wizardFor resuelve el wizard del visitante; 404 si kind no existe.
func wizardFor(w http.ResponseWriter, r *http.Request) (*wizard.Wizard, *visitor.Workspace, bool) {
	ws := visitor.FromContext(r.Context())
	wz, ok := ws.Wizard(chi.URLParam(r, "kind"))
	if !ok {
		http.Error(w, "unknown form", http.StatusNotFound)
		return nil, nil, false
	}
	return wz, ws, true
}

// decodeValues acepta body vacío.
func decodeValues(r *http.Request) (validation.Values, error) {
	var v validation.Values
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return v, nil
}

// stateHandler godoc
// @Summary Current state of a form wizard
// @Tags forms
// @Produce json
// @Param kind path string true "adoption, volunteer, rescue, contact, donation"
// @Success 200 {object} stateResponse
// @Failure 404 {string} string
// @Router /forms/{kind} [get]
func stateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wz, _, ok := wizardFor(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toState(wz))
	}
}

func setValuesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wz, _, ok := wizardFor(w, r)
		if !ok {
			return
		}
		v, err := decodeValues(r)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		wz.Set(v)
		writeJSON(w, http.StatusOK, toState(wz))
	}
}

// nextHandler godoc
// @Summary Validate the current step and advance
// @Tags forms
// @Accept json
// @Produce json
// @Param kind path string true "form kind"
// @Success 200 {object} stateResponse
// @Failure 422 {object} stateResponse
// @Router /forms/{kind}/next [post]
func nextHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wz, _, ok := wizardFor(w, r)
		if !ok {
			return
		}
		v, err := decodeValues(r)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if len(v) > 0 {
			wz.Set(v)
		}

		res := wz.Next()
		st := toState(wz)
		if !res.Valid() {
			st.Errors = res.Errors
			writeJSON(w, http.StatusUnprocessableEntity, st)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func previousHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wz, _, ok := wizardFor(w, r)
		if !ok {
			return
		}
		wz.Previous()
		writeJSON(w, http.StatusOK, toState(wz))
	}
}

// validateHandler valida sin mover el wizard: ?step=n un paso, sin step
// el registro completo.
func validateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wz, _, ok := wizardFor(w, r)
		if !ok {
			return
		}
		step := 0
		if raw := r.URL.Query().Get("step"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 || n > wz.TotalSteps() {
				http.Error(w, "invalid step", http.StatusBadRequest)
				return
			}
			step = n
		}
		res := wz.ValidateStep(step)
		writeJSON(w, http.StatusOK, validateResponse{Valid: res.Valid(), Errors: res.Errors})
	}
}

// submitHandler godoc
// @Summary Submit a completed form
// @Tags forms
// @Accept json
// @Produce json
// @Param kind path string true "form kind"
// @Success 201 {object} Outcome
// @Failure 409 {string} string
// @Failure 422 {object} Outcome
// @Failure 502 {object} Outcome
// @Router /forms/{kind}/submit [post]
func submitHandler(svcs Services, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wz, ws, ok := wizardFor(w, r)
		if !ok {
			return
		}
		v, err := decodeValues(r)
		if err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if len(v) > 0 {
			wz.Set(v)
		}

		kind := wz.Name()
		claims, _ := middleware.GetClaims(r.Context())

		var rc receipt
		res, err := wz.Submit(r.Context(), func(ctx context.Context, values validation.Values) error {
			var serr error
			rc, serr = svcs.submit(ctx, kind, values, claims.UserID)
			return serr
		})

		switch {
		case errors.Is(err, wizard.ErrNotLastStep), errors.Is(err, wizard.ErrSubmitting):
			http.Error(w, err.Error(), http.StatusConflict)
			return
		case errors.Is(err, ErrRejected):
			log.Warn("form submission rejected", map[string]any{"kind": kind, "err": err})
			writeJSON(w, http.StatusUnprocessableEntity, Outcome{OK: false, Message: "Please check your details and try again."})
			return
		case err != nil:
			f := failures[kind]
			log.Error("form submission failed", map[string]any{"kind": kind, "err": err, "visitor_id": ws.ID})
			ws.Store.Dispatch(appstate.AddNotification{Type: appstate.NotifyError, Title: f.title, Message: f.message})
			writeJSON(w, http.StatusBadGateway, Outcome{OK: false, Message: f.message})
			return
		case !res.Valid():
			writeJSON(w, http.StatusUnprocessableEntity, Outcome{OK: false, Message: "Please fix the highlighted fields", Errors: res.Errors})
			return
		}

		log.Info("form submitted", map[string]any{"kind": kind, "reference": rc.reference})
		ws.Store.Dispatch(appstate.AddNotification{Type: rc.notify, Title: rc.title, Message: rc.message})
		writeJSON(w, http.StatusCreated, Outcome{OK: true, Reference: rc.reference, Message: rc.message})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
