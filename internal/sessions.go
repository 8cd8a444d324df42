package internal

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionTTL = 24 * time.Hour

// Sessions is the process-wide session registry. It is the authority on
// whether a cookie is still good: entries expire 24 hours after login and
// the whole map dies with the process, so a restart logs everyone out.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]sessionEntry
}

type sessionEntry struct {
	Team      string
	ExpiresAt time.Time
}

func NewSessions() *Sessions {
	return &Sessions{byID: map[string]sessionEntry{}}
}

// Create registers a session for the team and returns its opaque ID.
func (s *Sessions) Create(team string) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.byID[id] = sessionEntry{Team: team, ExpiresAt: time.Now().Add(sessionTTL)}
	s.mu.Unlock()
	return id
}

// Team resolves a session ID to its team name, dropping expired entries.
func (s *Sessions) Team(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[id]
	if !ok {
		return "", false
	}
	if time.Now().After(e.ExpiresAt) {
		delete(s.byID, id)
		return "", false
	}
	return e.Team, true
}

func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
}
