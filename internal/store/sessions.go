package store

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore maps secret per-connection tokens to participant handles.
// Handles are public; tokens only ever go to their own connection.
type SessionStore struct {
	handles map[string]string // token -> handle
	mu      sync.RWMutex
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		handles: make(map[string]string),
	}
}

// Issue mints a token for handle
func (s *SessionStore) Issue(handle string) string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles[token] = handle
	return token
}

// Lookup resolves a token to its handle
func (s *SessionStore) Lookup(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	handle, ok := s.handles[token]
	return handle, ok
}

// Revoke forgets a token once its connection closes
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handles, token)
}
