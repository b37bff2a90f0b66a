/*
Package api
File: registry.go
Description:
    In-memory registry of running matches. Each Session owns one
    GameState and a mutex that serializes turn submissions for that game:
    the engine itself is single-threaded per state, so the session layer
    is responsible for never invoking it reentrantly.
*/

package api

import (
	"sync"

	"github.com/google/uuid"

	"github.com/sablearc/wellfall-server/internal/game"
)

// Session is one running match plus its submission lock.
type Session struct {
	mu    sync.Mutex
	State *game.GameState
}

// WithLock runs fn while holding the session's submission lock.
func (s *Session) WithLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Registry maps game ids to sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create registers a new match and returns its id.
func (r *Registry) Create(state *game.GameState) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.sessions[id] = &Session{State: state}
	return id
}

// Get returns the session for a game id, or nil.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}
