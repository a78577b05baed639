package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omarshaarawi/hoopswrapped/internal/analytics"
	"github.com/omarshaarawi/hoopswrapped/internal/metrics"
	"github.com/omarshaarawi/hoopswrapped/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// Session pins one league snapshot and one team for a run of queries.
type Session struct {
	ID        string
	Team      *models.Team
	Analyzer  *analytics.Analyzer
	CreatedAt time.Time

	mu       sync.Mutex
	lastUsed time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastUsed = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	metrics  *metrics.Metrics
}

func NewSessionStore(ttl time.Duration, m *metrics.Metrics) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		metrics:  m,
	}
}

func (s *SessionStore) Add(team *models.Team, analyzer *analytics.Analyzer) *Session {
	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		Team:      team,
		Analyzer:  analyzer,
		CreatedAt: now,
		lastUsed:  now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetOpenSessions(n)
	return session
}

// Get returns a live session and refreshes its idle timer.
func (s *SessionStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := s.now()
	if now.Sub(session.idleSince()) > s.ttl {
		s.Remove(id)
		return nil, ErrSessionNotFound
	}
	session.touch(now)
	return session, nil
}

func (s *SessionStore) Remove(id string) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetOpenSessions(n)
	return ok
}

// Sweep drops every session idle for longer than the TTL.
func (s *SessionStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.idleSince()) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetOpenSessions(n)
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
