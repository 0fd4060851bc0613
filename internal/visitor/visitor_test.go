package visitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"animal-rescue/internal/appstate"
	"animal-rescue/internal/domain/animals"
	"animal-rescue/internal/middleware"
	"animal-rescue/internal/ports/auth"
)

type fakeBackend struct{}

func (fakeBackend) SignIn(_ context.Context, email, password string) (auth.Authenticated, error) {
	if password != "secret" {
		return auth.Authenticated{}, auth.ErrUnauthorized
	}
	return auth.Authenticated{
		User:   auth.User{ID: "u1", Email: email, Role: auth.RoleVolunteer},
		Tokens: auth.Tokens{AccessToken: "at", ExpiresAt: time.Now().Add(time.Hour)},
	}, nil
}
func (fakeBackend) SignUp(context.Context, string, string, map[string]any) (auth.Session, error) {
	return auth.Anonymous{}, nil
}
func (fakeBackend) SignOut(context.Context, string) error { return nil }
func (fakeBackend) GetUser(context.Context, string) (auth.User, error) {
	return auth.User{ID: "u1", Email: "ali@example.com", Role: auth.RoleVolunteer}, nil
}
func (fakeBackend) Refresh(context.Context, string) (auth.Authenticated, error) {
	return auth.Authenticated{}, auth.ErrUnauthorized
}

type staticLister struct {
	items []animals.Animal
	last  animals.ListFilter
}

func (s *staticLister) List(_ context.Context, f animals.ListFilter) ([]animals.Animal, error) {
	s.last = f
	var out []animals.Animal
	for _, a := range s.items {
		if f.Type != "" && f.Type != "all" && string(a.Type) != f.Type {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

type harness struct {
	t      *testing.T
	srv    http.Handler
	cookie *http.Cookie
}

func newHarness(t *testing.T, backend auth.Backend, lister AnimalLister) *harness {
	t.Helper()
	reg := NewRegistry(Deps{Backend: backend})
	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil))
	r.Use(reg.Middleware)
	RegisterRoutes(r, lister, 2)
	RegisterAuthRoutes(r)
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		c, _ := middleware.GetClaims(r.Context())
		_, _ = w.Write([]byte(c.UserID))
	})
	return &harness{t: t, srv: r}
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	h.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.srv.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			h.cookie = c
		}
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestMiddleware_IssuesCookieOnceAndKeepsWorkspace(t *testing.T) {
	h := newHarness(t, nil, &staticLister{})

	h.do(http.MethodPatch, "/me/filters", `{"type":"dog"}`)
	if h.cookie == nil || h.cookie.Value == "" || !h.cookie.HttpOnly {
		t.Fatalf("expected visitor cookie, got %+v", h.cookie)
	}
	first := h.cookie.Value

	rec := h.do(http.MethodGet, "/me/filters", "")
	f := decode[filtersResponse](t, rec)
	if f.Type != "dog" || f.SortBy != "date_added" {
		t.Fatalf("filters not kept across requests: %+v", f)
	}
	if h.cookie.Value != first {
		t.Fatalf("cookie should not rotate for a live workspace")
	}
}

func TestPatchFilters_InvalidKeepsState(t *testing.T) {
	h := newHarness(t, nil, &staticLister{})
	h.do(http.MethodPatch, "/me/filters", `{"size":"large"}`)

	if rec := h.do(http.MethodPatch, "/me/filters", `{"age":"ancient","type":"cat"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	f := decode[filtersResponse](t, h.do(http.MethodGet, "/me/filters", ""))
	if f.Type != "all" || f.Size != "large" {
		t.Fatalf("invalid patch must not be applied: %+v", f)
	}
}

func TestCatalog_PagesWithStoredFilters(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lister := &staticLister{items: []animals.Animal{
		{ID: "1", Name: "Luna", Type: animals.TypeDog, AgeYears: 3, CreatedAt: base},
		{ID: "2", Name: "Buddy", Type: animals.TypeDog, AgeYears: 9, CreatedAt: base.Add(time.Hour)},
		{ID: "3", Name: "Rex", Type: animals.TypeDog, AgeYears: 1, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "4", Name: "Shadow", Type: animals.TypeCat, AgeYears: 1, CreatedAt: base.Add(3 * time.Hour)},
	}}
	h := newHarness(t, nil, lister)
	h.do(http.MethodPatch, "/me/filters", `{"type":"dog"}`)

	page := decode[catalogResponse](t, h.do(http.MethodGet, "/me/catalog", ""))
	if page.Total != 3 || page.TotalPages != 2 || len(page.Items) != 2 || page.Items[0].ID != "3" {
		t.Fatalf("unexpected page %+v", page)
	}
	if lister.last.Type != "dog" {
		t.Fatalf("type filter not pushed to the backend: %+v", lister.last)
	}

	page = decode[catalogResponse](t, h.do(http.MethodGet, "/me/catalog?page=2", ""))
	if page.Page != 2 || len(page.Items) != 1 || page.Items[0].ID != "1" {
		t.Fatalf("unexpected second page %+v", page)
	}
	if f := decode[filtersResponse](t, h.do(http.MethodGet, "/me/filters", "")); f.Page != 2 {
		t.Fatalf("page should be stored in filters, got %d", f.Page)
	}
}

func TestAuth_SignInDrivesClaimsAndNotifications(t *testing.T) {
	h := newHarness(t, fakeBackend{}, &staticLister{})

	if rec := h.do(http.MethodPost, "/auth/sign-in", `{"email":"ali@example.com","password":"nope"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec := h.do(http.MethodPost, "/auth/sign-in", `{"email":"ali@example.com","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("sign in: %d %s", rec.Code, rec.Body.String())
	}
	s := decode[sessionResponse](t, rec)
	if !s.Authenticated || s.User.ID != "u1" {
		t.Fatalf("unexpected session %+v", s)
	}

	if got := h.do(http.MethodGet, "/whoami", "").Body.String(); got != "u1" {
		t.Fatalf("workspace session should provide claims, got %q", got)
	}

	n := decode[notificationsResponse](t, h.do(http.MethodGet, "/me/notifications", ""))
	if len(n.Items) != 1 || n.Items[0].Type != appstate.NotifySuccess || n.Unread != 1 {
		t.Fatalf("expected sign-in notification, got %+v", n)
	}

	n = decode[notificationsResponse](t, h.do(http.MethodPost, "/me/notifications/"+n.Items[0].ID+"/read", ""))
	if n.Unread != 0 {
		t.Fatalf("mark read failed: %+v", n)
	}

	if rec := h.do(http.MethodPost, "/auth/sign-out", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("sign out: %d", rec.Code)
	}
	if got := h.do(http.MethodGet, "/whoami", "").Body.String(); got != "" {
		t.Fatalf("claims should be gone after sign out, got %q", got)
	}

	if rec := h.do(http.MethodDelete, "/me/notifications", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("clear: %d", rec.Code)
	}
}

func TestAuth_NotConfigured(t *testing.T) {
	h := newHarness(t, nil, &staticLister{})
	if rec := h.do(http.MethodPost, "/auth/sign-in", `{"email":"a@b.c","password":"x"}`); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	s := decode[sessionResponse](t, h.do(http.MethodGet, "/auth/session", ""))
	if s.Authenticated {
		t.Fatalf("expected anonymous session")
	}
}

func TestRegistry_SweepExpiresIdleWorkspaces(t *testing.T) {
	reg := NewRegistry(Deps{TTL: time.Minute})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	old := reg.Acquire("")
	now = now.Add(30 * time.Second)
	fresh := reg.Acquire("")

	now = now.Add(45 * time.Second)
	if n := reg.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept, got %d", n)
	}
	if _, ok := reg.Get(old.ID); ok {
		t.Fatalf("old workspace should be gone")
	}
	if again := reg.Acquire(fresh.ID); again != fresh {
		t.Fatalf("fresh workspace should be reused")
	}
}

func TestRegistry_CapEvictsIdlestWorkspace(t *testing.T) {
	reg := NewRegistry(Deps{TTL: time.Hour, MaxWorkspaces: 2})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	a := reg.Acquire("")
	now = now.Add(time.Second)
	b := reg.Acquire("")
	now = now.Add(time.Second)
	reg.Acquire(a.ID) // a pasa a ser el más reciente

	now = now.Add(time.Second)
	c := reg.Acquire("")
	if reg.Len() != 2 {
		t.Fatalf("expected cap of 2, got %d", reg.Len())
	}
	if _, ok := reg.Get(b.ID); ok {
		t.Fatalf("idlest workspace should have been evicted")
	}
	for _, ws := range []*Workspace{a, c} {
		if _, ok := reg.Get(ws.ID); !ok {
			t.Fatalf("workspace %s should survive", ws.ID)
		}
	}
}

func TestAttach_NeverCreatesWorkspaces(t *testing.T) {
	reg := NewRegistry(Deps{})
	var seen bool
	h := reg.Attach(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, seen = Lookup(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		if seen || len(rec.Result().Cookies()) != 0 {
			t.Fatalf("cookieless request should not get a workspace")
		}
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", reg.Len())
	}

	ws := reg.Acquire("")
	req := httptest.NewRequest(http.MethodGet, "/animals/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: ws.ID})
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !seen {
		t.Fatalf("existing workspace should be attached")
	}

	req = httptest.NewRequest(http.MethodGet, "/animals/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "forged"})
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen || reg.Len() != 1 {
		t.Fatalf("unknown cookie should not create a workspace")
	}
}

func TestWorkspace_WizardsPerKind(t *testing.T) {
	reg := NewRegistry(Deps{})
	ws := reg.Acquire("")
	if _, ok := ws.Wizard("adoption"); ok {
		t.Fatalf("no definitions registered, expected no wizard")
	}
}

func TestFromContext_PanicsWithoutWorkspace(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	FromContext(context.Background())
}
