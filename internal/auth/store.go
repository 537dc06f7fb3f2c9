package auth

import (
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// Session holds one authenticated user's OAuth token.
type Session struct {
	ID        string
	Email     string
	Token     *oauth2.Token
	CreatedAt time.Time
}

// Store keeps sessions between requests.
type Store interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
}

// MemoryStore is a Store backed by a map with a fixed session lifetime.
// Expired sessions are dropped lazily on lookup.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewMemoryStore returns a MemoryStore whose sessions expire after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: map[string]*Session{},
		ttl:      ttl,
	}
}

func (s *MemoryStore) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *MemoryStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Since(session.CreatedAt) > s.ttl {
		s.Delete(id)
		return nil, false
	}
	return session, true
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
