// Package session tracks short-lived editor sessions and their
// key/value state. Sessions lapse after an idle period rather than a
// fixed lifetime.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/snipframe-cloud/snipframe/pkg/apperr"
)

// Session is one editor session. Copies are returned to callers; the
// manager owns the canonical record.
type Session struct {
	ID           string            `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	LastAccessed time.Time         `json:"last_accessed"`
	Data         map[string]string `json:"data"`
}

// Manager owns the session map under one lock.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idleTTL  time.Duration
}

// NewManager returns a manager expiring sessions idle longer than
// idleTTL.
func NewManager(idleTTL time.Duration) *Manager {
	return &Manager{sessions: map[string]*Session{}, idleTTL: idleTTL}
}

// Create starts a session and returns its snapshot.
func (m *Manager) Create() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	s := &Session{
		ID:           uuid.New().String(),
		CreatedAt:    now,
		LastAccessed: now,
		Data:         map[string]string{},
	}
	m.sessions[s.ID] = s
	return snapshot(s)
}

// Get refreshes the idle clock and returns a snapshot. An idle-expired
// session is removed and reported as a session error.
func (m *Manager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.live(id)
	if err != nil {
		return Session{}, err
	}

	s.LastAccessed = time.Now()
	return snapshot(s), nil
}

// SetValue stores a key on the session and refreshes its idle clock.
func (m *Manager) SetValue(id, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.live(id)
	if err != nil {
		return err
	}

	s.Data[key] = value
	s.LastAccessed = time.Now()
	return nil
}

// GetValue reads a key from the session and refreshes its idle clock.
func (m *Manager) GetValue(id, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.live(id)
	if err != nil {
		return "", err
	}

	s.LastAccessed = time.Now()
	value, ok := s.Data[key]
	if !ok {
		return "", apperr.Session("key %q not set on session %s", key, id)
	}
	return value, nil
}

// Delete ends a session. Deleting an absent session is not an error.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// SweepExpired drops idle-expired sessions and returns how many were
// removed.
func (m *Manager) SweepExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.idleTTL)
	removed := 0
	for id, s := range m.sessions {
		if s.LastAccessed.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// live returns the stored session, expiring it lazily if its idle
// window has lapsed. Callers hold the lock.
func (m *Manager) live(id string) (*Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperr.Session("session not found: %s", id)
	}
	if time.Since(s.LastAccessed) > m.idleTTL {
		delete(m.sessions, id)
		return nil, apperr.Session("session expired: %s", id)
	}
	return s, nil
}

func snapshot(s *Session) Session {
	copied := *s
	copied.Data = make(map[string]string, len(s.Data))
	for k, v := range s.Data {
		copied.Data[k] = v
	}
	return copied
}
