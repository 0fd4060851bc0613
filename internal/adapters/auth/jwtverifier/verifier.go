// Package jwtverifier valida localmente los access tokens HS256 emitidos
// por el backend de auth, sin ida y vuelta por request.
package jwtverifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"animal-rescue/internal/ports/auth"
)

var ErrTokenEmpty = errors.New("token is empty")

type tokenClaims struct {
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func New(secret string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("jwt secret required")
	}
	return &Verifier{secret: []byte(secret), now: time.Now}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc,
		func(*jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrUnauthorized, err)
	}

	sub := strings.TrimSpace(tc.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: token missing subject", auth.ErrUnauthorized)
	}

	claims := auth.Claims{
		UserID: sub,
		Email:  strings.ToLower(strings.TrimSpace(tc.Email)),
		Role:   auth.ResolveRole(tc.AppMetadata, tc.UserMetadata),
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	return claims, nil
}
