// Package session mantiene la sesión de auth de un visitante sobre el
// backend de identidad y avisa a los suscriptores de cada cambio.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/ports/auth"
)

type Manager struct {
	backend auth.Backend
	log     logger.Logger
	now     func() time.Time

	mu      sync.Mutex
	current auth.Session
	nextSub int
	subs    map[int]func(auth.Session)
}

// NewManager acepta backend nil: toda operación remota devuelve
// auth.ErrNotConfigured y la sesión queda anónima.
func NewManager(backend auth.Backend, log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		backend: backend,
		log:     log.With(map[string]any{"component": "session"}),
		now:     time.Now,
		current: auth.Anonymous{},
		subs:    make(map[int]func(auth.Session)),
	}
}

func (m *Manager) Current() auth.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe registra fn; se llama de forma síncrona en cada cambio.
func (m *Manager) Subscribe(fn func(auth.Session)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// Load revalida la sesión actual contra el backend. Un token vencido se
// intenta renovar; si el backend lo rechaza, la sesión pasa a anónima.
func (m *Manager) Load(ctx context.Context) (auth.Session, error) {
	if m.backend == nil {
		return m.Current(), auth.ErrNotConfigured
	}
	a, ok := m.Current().(auth.Authenticated)
	if !ok {
		return auth.Anonymous{}, nil
	}

	if a.Tokens.Expired(m.now()) {
		refreshed, err := m.backend.Refresh(ctx, a.Tokens.RefreshToken)
		if errors.Is(err, auth.ErrUnauthorized) {
			m.set(auth.Anonymous{})
			return auth.Anonymous{}, nil
		}
		if err != nil {
			return a, fmt.Errorf("refresh session: %w", err)
		}
		m.set(refreshed)
		return refreshed, nil
	}

	u, err := m.backend.GetUser(ctx, a.Tokens.AccessToken)
	if errors.Is(err, auth.ErrUnauthorized) {
		m.set(auth.Anonymous{})
		return auth.Anonymous{}, nil
	}
	if err != nil {
		return a, fmt.Errorf("load session: %w", err)
	}
	a.User = u
	m.set(a)
	return a, nil
}

func (m *Manager) SignIn(ctx context.Context, email, password string) (auth.Authenticated, error) {
	if m.backend == nil {
		return auth.Authenticated{}, auth.ErrNotConfigured
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return auth.Authenticated{}, fmt.Errorf("%w: email and password required", auth.ErrUnauthorized)
	}

	a, err := m.backend.SignIn(ctx, email, password)
	if err != nil {
		m.log.Warn("sign in failed", map[string]any{"email": email, "err": err})
		return auth.Authenticated{}, err
	}
	m.set(a)
	m.log.Info("signed in", map[string]any{"user_id": a.User.ID, "role": a.User.Role})
	return a, nil
}

// SignUp puede dejar la sesión anónima cuando el backend exige confirmar
// el email antes del primer login.
func (m *Manager) SignUp(ctx context.Context, email, password string, profile map[string]any) (auth.Session, error) {
	if m.backend == nil {
		return auth.Anonymous{}, auth.ErrNotConfigured
	}
	s, err := m.backend.SignUp(ctx, strings.ToLower(strings.TrimSpace(email)), password, profile)
	if err != nil {
		return auth.Anonymous{}, err
	}
	m.set(s)
	return s, nil
}

// SignOut siempre deja la sesión anónima, aunque el backend falle.
func (m *Manager) SignOut(ctx context.Context) error {
	prev := m.Current()
	m.set(auth.Anonymous{})

	a, ok := prev.(auth.Authenticated)
	if !ok || m.backend == nil {
		return nil
	}
	if err := m.backend.SignOut(ctx, a.Tokens.AccessToken); err != nil {
		m.log.Warn("remote sign out failed", map[string]any{"user_id": a.User.ID, "err": err})
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

func (m *Manager) set(s auth.Session) {
	m.mu.Lock()
	m.current = s
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]func(auth.Session), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, m.subs[id])
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
