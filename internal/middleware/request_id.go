package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// EchoRequestID devuelve en X-Request-ID el id que asignó chimw.RequestID.
// Va después de chimw.RequestID.
func EchoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(chimw.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
