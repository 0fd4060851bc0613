package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"animal-rescue/internal/ports/auth"
)

type fakeBackend struct {
	users     map[string]string // email -> password
	signedOut []string
	refreshed int
	getUser   error
}

func (f *fakeBackend) SignIn(_ context.Context, email, password string) (auth.Authenticated, error) {
	if f.users[email] != password {
		return auth.Authenticated{}, auth.ErrUnauthorized
	}
	return auth.Authenticated{
		User:   auth.User{ID: "u-" + email, Email: email, Role: auth.RoleAdopter},
		Tokens: auth.Tokens{AccessToken: "at", RefreshToken: "rt", ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, nil
}

func (f *fakeBackend) SignUp(_ context.Context, email, password string, _ map[string]any) (auth.Session, error) {
	f.users[email] = password
	return auth.Anonymous{}, nil
}

func (f *fakeBackend) SignOut(_ context.Context, accessToken string) error {
	f.signedOut = append(f.signedOut, accessToken)
	return nil
}

func (f *fakeBackend) GetUser(_ context.Context, _ string) (auth.User, error) {
	if f.getUser != nil {
		return auth.User{}, f.getUser
	}
	return auth.User{ID: "u-1", Email: "a@b.c", Role: auth.RoleVolunteer}, nil
}

func (f *fakeBackend) Refresh(_ context.Context, _ string) (auth.Authenticated, error) {
	f.refreshed++
	return auth.Authenticated{
		User:   auth.User{ID: "u-1"},
		Tokens: auth.Tokens{AccessToken: "at2", RefreshToken: "rt2", ExpiresAt: time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)},
	}, nil
}

func newFake() *fakeBackend {
	return &fakeBackend{users: map[string]string{"ali@example.com": "secret"}}
}

func TestSignInAndOut_NotifySubscribersSynchronously(t *testing.T) {
	backend := newFake()
	m := NewManager(backend, nil)

	var seen []auth.Session
	m.Subscribe(func(s auth.Session) { seen = append(seen, s) })

	if _, err := m.SignIn(context.Background(), " Ali@Example.com ", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("subscriber must run before SignIn returns, got %d calls", len(seen))
	}
	if u, ok := auth.UserOf(seen[0]); !ok || u.Email != "ali@example.com" {
		t.Fatalf("unexpected session %#v", seen[0])
	}

	if err := m.SignOut(context.Background()); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("expected sign-out notification, got %d", len(seen))
	}
	if _, ok := seen[1].(auth.Anonymous); !ok {
		t.Fatalf("expected anonymous after sign out, got %#v", seen[1])
	}
	if len(backend.signedOut) != 1 || backend.signedOut[0] != "at" {
		t.Fatalf("backend sign out not called with access token: %v", backend.signedOut)
	}
}

func TestSignIn_BadCredentialsKeepAnonymous(t *testing.T) {
	m := NewManager(newFake(), nil)
	if _, err := m.SignIn(context.Background(), "ali@example.com", "nope"); !errors.Is(err, auth.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, ok := m.Current().(auth.Anonymous); !ok {
		t.Fatalf("session should stay anonymous")
	}
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager(newFake(), nil)
	calls := 0
	unsub := m.Subscribe(func(auth.Session) { calls++ })
	unsub()
	_, _ = m.SignIn(context.Background(), "ali@example.com", "secret")
	if calls != 0 {
		t.Fatalf("unsubscribed fn was called %d times", calls)
	}
}

func TestLoad_RefreshesExpiredTokens(t *testing.T) {
	backend := newFake()
	m := NewManager(backend, nil)
	_, _ = m.SignIn(context.Background(), "ali@example.com", "secret")

	m.now = func() time.Time { return time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC) }
	s, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a, ok := s.(auth.Authenticated)
	if !ok || a.Tokens.AccessToken != "at2" || backend.refreshed != 1 {
		t.Fatalf("expected refreshed session, got %#v", s)
	}
}

func TestLoad_RejectedTokenBecomesAnonymous(t *testing.T) {
	backend := newFake()
	m := NewManager(backend, nil)
	_, _ = m.SignIn(context.Background(), "ali@example.com", "secret")
	m.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	backend.getUser = auth.ErrUnauthorized
	s, err := m.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := s.(auth.Anonymous); !ok {
		t.Fatalf("expected anonymous, got %#v", s)
	}
}

func TestNilBackend(t *testing.T) {
	m := NewManager(nil, nil)
	if _, err := m.SignIn(context.Background(), "a@b.c", "x"); !errors.Is(err, auth.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := m.Load(context.Background()); !errors.Is(err, auth.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := m.SignOut(context.Background()); err != nil {
		t.Fatalf("sign out without backend should be a local no-op, got %v", err)
	}
}
