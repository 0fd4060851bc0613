package visitor

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"animal-rescue/internal/middleware"
	"animal-rescue/internal/platform/logger"
	"animal-rescue/internal/ports/auth"
	"animal-rescue/internal/wizard"
)

const (
	CookieName           = "visitor_id"
	DefaultTTL           = 2 * time.Hour
	DefaultMaxWorkspaces = 10000
)

type Deps struct {
	Backend     auth.Backend // nil: auth no configurado
	Definitions map[string]wizard.Definition
	TTL         time.Duration
	Secure      bool // cookie solo por https
	Log         logger.Logger
	// MaxWorkspaces acota el registro; al llenarse se descarta el más inactivo.
	MaxWorkspaces int
}

// Registry guarda los workspaces en memoria y los expira por inactividad.
type Registry struct {
	deps Deps
	log  logger.Logger
	now  func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

func NewRegistry(deps Deps) *Registry {
	if deps.TTL <= 0 {
		deps.TTL = DefaultTTL
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.MaxWorkspaces <= 0 {
		deps.MaxWorkspaces = DefaultMaxWorkspaces
	}
	return &Registry{
		deps:  deps,
		log:   deps.Log.With(map[string]any{"component": "visitor"}),
		now:   time.Now,
		items: make(map[string]*Workspace),
	}
}

func (reg *Registry) Get(id string) (*Workspace, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	ws, ok := reg.items[id]
	if !ok || reg.expired(ws) {
		return nil, false
	}
	return ws, true
}

// Acquire devuelve el workspace de id o crea uno nuevo.
func (reg *Registry) Acquire(id string) *Workspace {
	now := reg.now()

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if ws, ok := reg.items[id]; ok && !reg.expired(ws) {
		ws.touch(now)
		return ws
	}
	if len(reg.items) >= reg.deps.MaxWorkspaces {
		reg.sweepLocked()
	}
	if len(reg.items) >= reg.deps.MaxWorkspaces {
		reg.evictIdlestLocked()
	}
	id = uuid.NewString()
	ws := newWorkspace(id, reg.deps, now)
	reg.items[id] = ws
	return ws
}

// find devuelve el workspace vivo de id sin crear ninguno.
func (reg *Registry) find(id string) (*Workspace, bool) {
	if id == "" {
		return nil, false
	}
	now := reg.now()
	reg.mu.Lock()
	defer reg.mu.Unlock()
	ws, ok := reg.items[id]
	if !ok || reg.expired(ws) {
		return nil, false
	}
	ws.touch(now)
	return ws, true
}

func (reg *Registry) evictIdlestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, ws := range reg.items {
		if seen := ws.idleSince(); oldestID == "" || seen.Before(oldest) {
			oldestID, oldest = id, seen
		}
	}
	if oldestID == "" {
		return
	}
	reg.items[oldestID].close()
	delete(reg.items, oldestID)
	reg.log.Warn("visitor registry full, evicted idlest workspace", map[string]any{"max": reg.deps.MaxWorkspaces})
}

func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.items)
}

// Sweep elimina los workspaces inactivos por más de TTL.
func (reg *Registry) Sweep() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.sweepLocked()
}

func (reg *Registry) sweepLocked() int {
	n := 0
	for id, ws := range reg.items {
		if reg.expired(ws) {
			ws.close()
			delete(reg.items, id)
			n++
		}
	}
	if n > 0 {
		reg.log.Debug("visitor workspaces swept", map[string]any{"removed": n, "remaining": len(reg.items)})
	}
	return n
}

// Run barre cada interval hasta que ctx termine.
func (reg *Registry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			reg.Sweep()
		}
	}
}

func (reg *Registry) expired(ws *Workspace) bool {
	return reg.now().Sub(ws.idleSince()) > reg.deps.TTL
}

type ctxKey struct{}

// Middleware resuelve el workspace desde la cookie (o crea uno) y lo deja
// en el contexto. Va solo en las rutas que usan estado del visitante.
func (reg *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := Lookup(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		id := cookieID(r)
		ws := reg.Acquire(id)
		if ws.ID != id {
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    ws.ID,
				Path:     "/",
				MaxAge:   int(reg.deps.TTL.Seconds()),
				HttpOnly: true,
				Secure:   reg.deps.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(withWorkspace(r.Context(), ws)))
	})
}

// Attach es la variante global: usa el workspace de la cookie si existe y
// nunca crea uno. Health checks y clientes sin cookie no dejan estado.
func (reg *Registry) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, ok := reg.find(cookieID(r))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withWorkspace(r.Context(), ws)))
	})
}

func cookieID(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

// withWorkspace deja ws en el contexto. Si no llegó un bearer token pero
// la sesión del workspace está autenticada, sus claims se usan para el
// request.
func withWorkspace(ctx context.Context, ws *Workspace) context.Context {
	ctx = context.WithValue(ctx, ctxKey{}, ws)
	if _, ok := middleware.GetClaims(ctx); !ok {
		if u, ok := ws.User(); ok {
			ctx = middleware.WithClaims(ctx, auth.ClaimsOf(u))
		}
	}
	return ctx
}

// FromContext entra en pánico si el Middleware no corrió: es un error de
// armado del router, no del cliente.
func FromContext(ctx context.Context) *Workspace {
	ws, ok := Lookup(ctx)
	if !ok {
		panic("visitor: workspace missing from request context")
	}
	return ws
}

func Lookup(ctx context.Context) (*Workspace, bool) {
	ws, ok := ctx.Value(ctxKey{}).(*Workspace)
	return ws, ok && ws != nil
}
