package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"animal-rescue/internal/ports/auth"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, auth.ErrUnauthorized
	}
	return auth.Claims{UserID: "u1", Role: auth.RoleStaff}, nil
}

func claimsEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := GetClaims(r.Context())
		if !ok {
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		_, _ = w.Write([]byte(c.UserID + "/" + c.Role))
	})
}

func TestAuthContext(t *testing.T) {
	cases := []struct {
		name     string
		verifier auth.AuthVerifier
		headers  map[string]string
		want     string
	}{
		{"valid bearer", stubVerifier{}, map[string]string{"Authorization": "Bearer good"}, "u1/staff"},
		{"invalid bearer passes through", stubVerifier{}, map[string]string{"Authorization": "Bearer bad"}, "anonymous"},
		{"debug header ignored with verifier", stubVerifier{}, map[string]string{"X-Debug-User-ID": "dev"}, "anonymous"},
		{"dev mode default role", nil, map[string]string{"X-Debug-User-ID": "dev"}, "dev/adopter"},
		{"dev mode explicit role", nil, map[string]string{"X-Debug-User-ID": "dev", "X-Debug-Role": "admin"}, "dev/admin"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			AuthContext(tc.verifier)(claimsEcho()).ServeHTTP(rec, req)
			if got := rec.Body.String(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(auth.RoleStaff, auth.RoleAdmin)(claimsEcho())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: "u", Role: auth.RoleAdopter}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), auth.Claims{UserID: "u", Role: auth.RoleAdmin}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

type countingLimiter struct {
	limit int
	seen  map[string]int
	err   error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	l.seen[key]++
	return l.seen[key] <= l.limit, nil
}

func TestRateLimit(t *testing.T) {
	l := &countingLimiter{limit: 1, seen: map[string]int{}}
	h := RateLimit(l, zap.NewNop())(claimsEcho())

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	if code := do(); code != http.StatusOK {
		t.Fatalf("first request: %d", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("second request should be limited, got %d", code)
	}
	if l.seen["ip:10.0.0.1"] != 2 {
		t.Fatalf("expected ip key, got %v", l.seen)
	}

	l.err = errors.New("redis down")
	if code := do(); code != http.StatusOK {
		t.Fatalf("limiter failure must fail open, got %d", code)
	}
}

func TestRecoverAndRequestID(t *testing.T) {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(EchoRequestID)
	r.Use(Recover(zap.NewNop()))
	r.Use(StructuredLogger(zap.NewNop()))
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("request id not echoed")
	}
}
