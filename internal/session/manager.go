// Package session maps mounted admin screens onto server-side sessions.
// A session lives from screen mount until unmount or TTL eviction.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/VJNAVEEN2005/aic-query-service/internal/domain"
	"github.com/VJNAVEEN2005/aic-query-service/internal/query"
	"github.com/VJNAVEEN2005/aic-query-service/internal/suggest"
	"github.com/VJNAVEEN2005/aic-query-service/pkg/log"
)

// Session binds one screen's controller to its suggestion panel state.
type Session struct {
	ID     string
	Screen string
	Ctrl   *query.Controller

	mu          sync.Mutex
	suggestions []domain.Suggestion
	cursor      suggest.Cursor
}

// SetSuggestions replaces the panel content and clears the highlight.
func (s *Session) SetSuggestions(list []domain.Suggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = list
	s.cursor.Reset(len(list))
}

// ClearSuggestions closes the panel.
func (s *Session) ClearSuggestions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = nil
	s.cursor.Reset(0)
}

// CursorDown moves the highlight down and returns the new index.
func (s *Session) CursorDown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Down()
}

// CursorUp moves the highlight up and returns the new index.
func (s *Session) CursorUp() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Up()
}

// Highlighted returns the highlighted suggestion, if any.
func (s *Session) Highlighted() (domain.Suggestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.cursor.Index()
	if idx < 0 || idx >= len(s.suggestions) {
		return domain.Suggestion{}, false
	}
	return s.suggestions[idx], true
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Manager is the in-memory session registry with TTL eviction.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*entry
}

// NewManager creates a registry evicting sessions idle longer than ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		sessions: make(map[string]*entry),
	}
}

// Create registers a new session for the given controller.
func (m *Manager) Create(screen string, ctrl *query.Controller) *Session {
	s := &Session{
		ID:     uuid.New().String(),
		Screen: screen,
		Ctrl:   ctrl,
		cursor: suggest.NewCursor(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = &entry{session: s, lastSeen: time.Now()}
	m.mu.Unlock()

	return s
}

// Get returns the session and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	e.lastSeen = time.Now()
	return e.session, nil
}

// Remove drops a session; unknown ids are ignored.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle since before the cutoff and reports how many.
func (m *Manager) Sweep(now time.Time) int {
	cutoff := now.Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps on the given interval until the context is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if n := m.Sweep(now); n > 0 {
				l := log.L()
				l.Info().Int("evicted", n).Msg("expired idle sessions")
			}
		}
	}
}
