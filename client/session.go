// Package client is the Go SDK for the KaamSetu marketplace API. It wraps the
// REST surface behind typed calls, keeps the auth session for the process, and
// drives the phone-verification flow that gates registration and login.
package client

import "sync"

// Session is the token/role pair produced by a successful login or registration.
type Session struct {
	Token string
	Role  string
}

// SessionStore holds the current auth session. It is written only by the
// verification flow's success paths and read by every authenticated request.
type SessionStore struct {
	mu      sync.RWMutex
	session Session
	set     bool
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Set stores the token and role for the remainder of the process lifetime.
func (s *SessionStore) Set(token, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{Token: token, Role: role}
	s.set = true
}

// Get returns the current session and whether one is set.
func (s *SessionStore) Get() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.set
}

// Clear removes the session; subsequent calls are made unauthenticated.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = Session{}
	s.set = false
}
