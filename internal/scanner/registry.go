package scanner

import (
	"sync"
	"time"
)

// Registry keeps one Session per client-chosen session ID.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	factory  func() *Session
	now      func() time.Time
}

type entry struct {
	session  *Session
	lastUsed time.Time
}

func NewRegistry(factory func() *Session) *Registry {
	return &Registry{sessions: make(map[string]*entry), factory: factory, now: time.Now}
}

// Get returns the session for id, creating it on first use.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		e = &entry{session: r.factory()}
		r.sessions[id] = e
	}
	e.lastUsed = r.now()
	return e.session
}

// Lookup returns the session for id without creating one.
func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return e.session, true
}

// Prune drops sessions unused for longer than idle and reports how many.
func (r *Registry) Prune(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-idle)
	removed := 0
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
