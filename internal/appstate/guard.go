package appstate

import "sync"

// Ticket identifica una petición en curso para una clave.
type Ticket struct {
	key string
	seq uint64
}

// Guard descarta resultados de peticiones que ya fueron superadas por otra
// más nueva con la misma clave.
type Guard struct {
	mu     sync.Mutex
	latest map[string]uint64
}

func NewGuard() *Guard {
	return &Guard{latest: make(map[string]uint64)}
}

func (g *Guard) Begin(key string) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.latest[key]++
	return Ticket{key: key, seq: g.latest[key]}
}

func (g *Guard) Current(t Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.latest[t.key] == t.seq
}

// ApplyIfCurrent ejecuta fn solo si t sigue siendo el último ticket.
// fn corre con el lock tomado, así ninguna petición nueva se cuela en medio.
func (g *Guard) ApplyIfCurrent(t Ticket, fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.latest[t.key] != t.seq {
		return false
	}
	fn()
	return true
}
