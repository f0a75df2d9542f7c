package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/btced/btced/internal/content"
	"github.com/btced/btced/internal/llm"
	"github.com/btced/btced/internal/simulator"
	"github.com/btced/btced/internal/store"
)

// Manager creates and looks up sessions. Safe for concurrent use.
type Manager struct {
	library  *content.Library
	provider llm.Provider
	events   store.EventRepo
	quote    simulator.QuoteFunc

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager builds a session manager. provider may be nil when no model is
// configured; sessions then run with the tutor in fallback mode.
func NewManager(lib *content.Library, provider llm.Provider, events store.EventRepo, quote simulator.QuoteFunc) *Manager {
	return &Manager{
		library:  lib,
		provider: provider,
		events:   events,
		quote:    quote,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session with a generated ID.
func (m *Manager) Create() *Session {
	s := newSession(uuid.NewString(), m.library, m.provider, m.events, m.quote)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session for id, or nil when unknown.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Delete removes a session. Its persisted events stay in the store.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
