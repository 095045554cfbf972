// Package sessions tracks the sessions currently connected to the server.
package sessions

import (
	"sort"
	"sync"
	"time"
)

// Info describes one connected session.
type Info struct {
	ID      string
	User    string
	Remote  string
	Started time.Time
}

// Registry tracks active sessions.
// Thread-safe for concurrent access.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Info
}

// NewRegistry creates a new session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]Info),
	}
}

// Register adds a session and returns the number of active sessions.
func (r *Registry) Register(info Info) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[info.ID] = info
	return len(r.sessions)
}

// Unregister removes a session and returns how long it was connected.
// Unknown IDs return zero.
func (r *Registry) Unregister(id string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	info, ok := r.sessions[id]
	if !ok {
		return 0
	}
	delete(r.sessions, id)
	return time.Since(info.Started)
}

// Get retrieves a session by ID.
func (r *Registry) Get(id string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CountUser returns how many sessions user has open.
func (r *Registry) CountUser(user string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, s := range r.sessions {
		if s.User == user {
			n++
		}
	}
	return n
}

// List returns the active sessions, oldest first.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Info, 0, len(r.sessions))
	for _, s := range r.sessions {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Started.Equal(list[j].Started) {
			return list[i].ID < list[j].ID
		}
		return list[i].Started.Before(list[j].Started)
	})
	return list
}
