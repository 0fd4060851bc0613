package middleware

import (
	"context"
	"net"
	"net/http"

	"go.uber.org/zap"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit limita por usuario autenticado o, si no hay, por IP. Si el
// limitador falla el request pasa.
func RateLimit(l Limiter, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			ok, err := l.Allow(r.Context(), key)
			if err != nil {
				log.Warn("rate limiter unavailable", zap.Error(err), zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if c, ok := GetClaims(r.Context()); ok && c.UserID != "" {
		return "user:" + c.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
