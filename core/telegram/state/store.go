package state

import "sync"

// Store keeps per-user sessions in memory. Sessions do not survive a restart:
// an interrupted conversation is simply abandoned.
type Store[S any] struct {
	mu       sync.RWMutex
	sessions map[int64]S
}

// NewStore constructs an empty in-memory session store.
func NewStore[S any]() *Store[S] {
	return &Store[S]{sessions: make(map[int64]S)}
}

// Get returns the session for a user and whether one exists. When no session
// exists the zero value of S is returned.
func (s *Store[S]) Get(userID int64) (S, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Set replaces the session for a user.
func (s *Store[S]) Set(userID int64, sess S) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

// Clear removes the session for a user.
func (s *Store[S]) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Len reports the number of active sessions.
func (s *Store[S]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
