package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"animal-rescue/internal/platform/httpclient"
	"animal-rescue/internal/ports/auth"
)

// Backend implementa auth.Backend sobre GoTrue (/auth/v1).
type Backend struct {
	c   *Client
	now func() time.Time
}

func NewBackend(c *Client) *Backend {
	return &Backend{c: c, now: time.Now}
}

type gotrueUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	AppMetadata  map[string]any `json:"app_metadata"`
	UserMetadata map[string]any `json:"user_metadata"`
}

type gotrueSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"`
	ExpiresAt    int64       `json:"expires_at"`
	User         *gotrueUser `json:"user"`

	// signup sin sesión devuelve el usuario en la raíz
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u gotrueUser) toUser() auth.User {
	return auth.User{
		ID:      u.ID,
		Email:   strings.ToLower(u.Email),
		Role:    auth.ResolveRole(u.AppMetadata, u.UserMetadata),
		Profile: u.UserMetadata,
	}
}

func (b *Backend) toAuthenticated(s gotrueSession) (auth.Authenticated, error) {
	if s.AccessToken == "" || s.User == nil || s.User.ID == "" {
		return auth.Authenticated{}, fmt.Errorf("%w: incomplete session", auth.ErrUpstream)
	}
	exp := time.Unix(s.ExpiresAt, 0).UTC()
	if s.ExpiresAt == 0 {
		exp = b.now().UTC().Add(time.Duration(s.ExpiresIn) * time.Second)
	}
	return auth.Authenticated{
		User: s.User.toUser(),
		Tokens: auth.Tokens{
			AccessToken:  s.AccessToken,
			RefreshToken: s.RefreshToken,
			ExpiresAt:    exp,
		},
	}, nil
}

func (b *Backend) SignIn(ctx context.Context, email, password string) (auth.Authenticated, error) {
	var s gotrueSession
	err := b.c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/auth/v1/token",
		Query:   url.Values{"grant_type": {"password"}},
		Headers: b.c.bearer(""),
		Body:    map[string]string{"email": email, "password": password},
	}, &s)
	if err != nil {
		return auth.Authenticated{}, mapAuthError("sign in", err)
	}
	return b.toAuthenticated(s)
}

func (b *Backend) SignUp(ctx context.Context, email, password string, profile map[string]any) (auth.Session, error) {
	if profile == nil {
		profile = map[string]any{}
	}
	var s gotrueSession
	err := b.c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/signup", b.c.bearer(""), map[string]any{
		"email":    email,
		"password": password,
		"data":     profile,
	}, &s)
	if err != nil {
		return auth.Anonymous{}, mapAuthError("sign up", err)
	}
	// Con confirmación de email pendiente no hay access_token.
	if s.AccessToken == "" {
		return auth.Anonymous{}, nil
	}
	return b.toAuthenticated(s)
}

func (b *Backend) SignOut(ctx context.Context, accessToken string) error {
	err := b.c.http.DoJSON(ctx, http.MethodPost, "/auth/v1/logout", b.c.bearer(accessToken), nil, nil)
	if err != nil && httpclient.StatusOf(err) != http.StatusUnauthorized {
		return mapAuthError("sign out", err)
	}
	return nil
}

func (b *Backend) GetUser(ctx context.Context, accessToken string) (auth.User, error) {
	if strings.TrimSpace(accessToken) == "" {
		return auth.User{}, auth.ErrUnauthorized
	}
	var u gotrueUser
	if err := b.c.http.DoJSON(ctx, http.MethodGet, "/auth/v1/user", b.c.bearer(accessToken), nil, &u); err != nil {
		return auth.User{}, mapAuthError("get user", err)
	}
	if u.ID == "" {
		return auth.User{}, auth.ErrUnauthorized
	}
	return u.toUser(), nil
}

func (b *Backend) Refresh(ctx context.Context, refreshToken string) (auth.Authenticated, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return auth.Authenticated{}, auth.ErrUnauthorized
	}
	var s gotrueSession
	err := b.c.http.Do(ctx, httpclient.Request{
		Method:  http.MethodPost,
		Path:    "/auth/v1/token",
		Query:   url.Values{"grant_type": {"refresh_token"}},
		Headers: b.c.bearer(""),
		Body:    map[string]string{"refresh_token": refreshToken},
	}, &s)
	if err != nil {
		return auth.Authenticated{}, mapAuthError("refresh", err)
	}
	return b.toAuthenticated(s)
}

// mapAuthError: 400/401/403/422 son credenciales rechazadas; lo demás es upstream.
func mapAuthError(op string, err error) error {
	switch httpclient.StatusOf(err) {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
		return fmt.Errorf("%s: %w", op, auth.ErrUnauthorized)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, auth.ErrUpstream, err)
}
