package auth

import (
	"context"
	"errors"
)

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotConfigured = errors.New("auth backend not configured")
	ErrUpstream      = errors.New("auth backend failure")
)

// Backend es el proveedor de identidad hospedado.
type Backend interface {
	SignIn(ctx context.Context, email, password string) (Authenticated, error)
	// SignUp puede devolver Anonymous si el backend exige confirmar el email.
	SignUp(ctx context.Context, email, password string, profile map[string]any) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (User, error)
	Refresh(ctx context.Context, refreshToken string) (Authenticated, error)
}

// AuthVerifier valida un access token localmente, sin llamar a Backend.
// Lo usa AuthContext en cada request.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
