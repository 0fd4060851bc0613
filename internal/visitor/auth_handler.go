package visitor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"animal-rescue/internal/appstate"
	"animal-rescue/internal/ports/auth"
)

func RegisterAuthRoutes(r chi.Router) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/sign-in", signInHandler())
		ar.Post("/sign-up", signUpHandler())
		ar.Post("/sign-out", signOutHandler())
		ar.Get("/session", sessionHandler())
	})
}

type credentialsRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Profile  map[string]any `json:"profile"`
}

// sessionResponse no expone los tokens: quedan en el workspace.
type sessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	User          *auth.User `json:"user,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

func toSessionResponse(s auth.Session) sessionResponse {
	a, ok := s.(auth.Authenticated)
	if !ok {
		return sessionResponse{}
	}
	u := a.User
	out := sessionResponse{Authenticated: true, User: &u}
	if !a.Tokens.ExpiresAt.IsZero() {
		exp := a.Tokens.ExpiresAt
		out.ExpiresAt = &exp
	}
	return out
}

// signInHandler godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} sessionResponse
// @Failure 401 {string} string
// @Failure 503 {string} string
// @Router /auth/sign-in [post]
func signInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ws := FromContext(r.Context())
		a, err := ws.Session.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAuthError(w, err)
			return
		}
		ws.Store.Dispatch(appstate.AddNotification{
			Type:    appstate.NotifySuccess,
			Title:   "Signed in",
			Message: "Welcome back, " + a.User.Email,
		})
		writeJSON(w, http.StatusOK, toSessionResponse(a))
	}
}

func signUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Email) == "" || len(req.Password) < 6 {
			http.Error(w, "email and a password of at least 6 characters are required", http.StatusBadRequest)
			return
		}

		ws := FromContext(r.Context())
		s, err := ws.Session.SignUp(r.Context(), req.Email, req.Password, auth.SanitizeProfile(req.Profile))
		if err != nil {
			writeAuthError(w, err)
			return
		}
		if _, ok := s.(auth.Anonymous); ok {
			ws.Store.Dispatch(appstate.AddNotification{
				Type:    appstate.NotifyInfo,
				Title:   "Confirm your email",
				Message: "Check your inbox to confirm your account before signing in.",
			})
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(s))
	}
}

func signOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := FromContext(r.Context())
		// La sesión local queda anónima aunque el backend falle.
		if err := ws.Session.SignOut(r.Context()); err != nil {
			writeAuthError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// sessionHandler godoc
// @Summary Current session of the visitor
// @Tags auth
// @Produce json
// @Success 200 {object} sessionResponse
// @Router /auth/session [get]
func sessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws := FromContext(r.Context())
		s, err := ws.Session.Load(r.Context())
		if err != nil && !errors.Is(err, auth.ErrNotConfigured) {
			writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(s))
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		http.Error(w, "authentication is not configured", http.StatusServiceUnavailable)
	case errors.Is(err, auth.ErrUnauthorized):
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
	default:
		http.Error(w, "upstream error", http.StatusBadGateway)
	}
}
