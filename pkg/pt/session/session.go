// Package session holds which user is logged in. There is no server-side
// authentication: any plausible email is accepted and remembered locally.
package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrInvalidEmail = errors.New("invalid email")
)

// Store persists the current user identifier across runs.
type Store interface {
	// Load returns "" when nothing is stored.
	Load() (string, error)
	Save(user string) error
	Clear() error
}

// Session is the single active identity for this client. The zero value is
// not usable; construct with New.
type Session struct {
	store Store

	mu   sync.RWMutex
	user string
}

func New(store Store) *Session {
	return &Session{store: store}
}

// Restore loads a persisted identity. A stored value that is not a valid
// identifier is ignored and cleared.
func (s *Session) Restore() error {
	user, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	user = strings.TrimSpace(user)
	if user != "" && checkIdentifier(user) != nil {
		return s.Logout()
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Login makes user the active identity and persists it.
func (s *Session) Login(user string) error {
	user = strings.TrimSpace(user)
	if err := checkIdentifier(user); err != nil {
		return err
	}
	if err := s.store.Save(user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Logout clears the identity in memory and in the store.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = ""
	s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// User returns the active identity, or "" when logged out.
func (s *Session) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Active() bool { return s.User() != "" }

// Require returns the active user or ErrNotLoggedIn.
func (s *Session) Require() (string, error) {
	if u := s.User(); u != "" {
		return u, nil
	}
	return "", ErrNotLoggedIn
}

func checkIdentifier(user string) error {
	if user == "" {
		return fmt.Errorf("%w: empty", ErrInvalidEmail)
	}
	if !strings.Contains(user, "@") {
		return fmt.Errorf("%w: %q has no @", ErrInvalidEmail, user)
	}
	return nil
}
