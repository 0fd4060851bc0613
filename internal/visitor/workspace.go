// Package visitor agrupa el estado de cada visitante del sitio (filtros,
// notificaciones, formularios a medio llenar y sesión) en un Workspace
// identificado por la cookie visitor_id.
package visitor

import (
	"sort"
	"sync"
	"time"

	"animal-rescue/internal/appstate"
	"animal-rescue/internal/ports/auth"
	"animal-rescue/internal/session"
	"animal-rescue/internal/wizard"
)

type Workspace struct {
	ID      string
	Store   *appstate.Store
	Guard   *appstate.Guard
	Session *session.Manager

	mu       sync.Mutex
	defs     map[string]wizard.Definition
	wizards  map[string]*wizard.Wizard
	user     *auth.User
	lastSeen time.Time
	unsub    func()
}

func newWorkspace(id string, deps Deps, now time.Time) *Workspace {
	ws := &Workspace{
		ID:       id,
		Store:    appstate.NewStore(),
		Guard:    appstate.NewGuard(),
		Session:  session.NewManager(deps.Backend, deps.Log),
		defs:     deps.Definitions,
		wizards:  make(map[string]*wizard.Wizard),
		lastSeen: now,
	}
	ws.unsub = ws.Session.Subscribe(ws.onSession)
	return ws
}

// onSession mantiene User() al día con la sesión.
func (ws *Workspace) onSession(s auth.Session) {
	u, ok := auth.UserOf(s)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if !ok {
		ws.user = nil
		return
	}
	ws.user = &u
}

// User devuelve el usuario logueado en este workspace, si hay.
func (ws *Workspace) User() (auth.User, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.user == nil {
		return auth.User{}, false
	}
	return *ws.user, true
}

// Wizard devuelve (creándolo la primera vez) el wizard del formulario kind.
func (ws *Workspace) Wizard(kind string) (*wizard.Wizard, bool) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if w, ok := ws.wizards[kind]; ok {
		return w, true
	}
	def, ok := ws.defs[kind]
	if !ok {
		return nil, false
	}
	w := wizard.New(def)
	ws.wizards[kind] = w
	return w, true
}

func (ws *Workspace) Kinds() []string {
	out := make([]string, 0, len(ws.defs))
	for k := range ws.defs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (ws *Workspace) touch(now time.Time) {
	ws.mu.Lock()
	ws.lastSeen = now
	ws.mu.Unlock()
}

func (ws *Workspace) idleSince() time.Time {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.lastSeen
}

func (ws *Workspace) close() {
	if ws.unsub != nil {
		ws.unsub()
	}
}
