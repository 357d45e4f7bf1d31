package client

import (
	"fmt"

	"zipmyproject/internal/models"
)

// TokenStore persists a session token between runs, the way the SPA kept it
// in local storage. Implementations decide where it lives.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// MemoryTokenStore is an in-memory TokenStore for tests and short-lived
// sessions.
type MemoryTokenStore struct {
	token string
}

// Load returns the stored token, empty when none is set.
func (s *MemoryTokenStore) Load() (string, error) {
	return s.token, nil
}

// Save stores the token.
func (s *MemoryTokenStore) Save(token string) error {
	s.token = token
	return nil
}

// Clear removes the token.
func (s *MemoryTokenStore) Clear() error {
	s.token = ""
	return nil
}

// Session is the authentication state holder: it owns the current user and
// token and keeps the token store and API client in sync. Not safe for
// concurrent use; it models a single-threaded UI event loop.
type Session struct {
	client *Client
	store  TokenStore
	user   *models.User
}

// NewSession creates a session bound to an API client and token store.
func NewSession(apiClient *Client, store TokenStore) *Session {
	return &Session{
		client: apiClient,
		store:  store,
	}
}

// Restore re-establishes a session from a previously stored token. An invalid
// or expired token is cleared from the store and left as a logged-out state,
// not an error.
func (s *Session) Restore() error {
	token, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load stored token: %w", err)
	}
	if token == "" {
		return nil
	}

	s.client.SetToken(token)
	user, err := s.client.Me()
	if err != nil {
		s.client.ClearToken()
		if clearErr := s.store.Clear(); clearErr != nil {
			return fmt.Errorf("failed to clear stale token: %w", clearErr)
		}
		return nil
	}
	s.user = user
	return nil
}

// Login authenticates and stores the resulting token.
func (s *Session) Login(email, password string) error {
	resp, err := s.client.Login(email, password)
	if err != nil {
		return err
	}
	return s.establish(resp)
}

// Signup registers a new account and logs it straight in.
func (s *Session) Signup(name, email, password string) error {
	resp, err := s.client.Register(name, email, password)
	if err != nil {
		return err
	}
	return s.establish(resp)
}

func (s *Session) establish(resp *AuthResponse) error {
	if err := s.store.Save(resp.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	s.client.SetToken(resp.Token)
	user := resp.User
	s.user = &user
	return nil
}

// Logout drops the session state and stored token.
func (s *Session) Logout() error {
	s.user = nil
	s.client.ClearToken()
	return s.store.Clear()
}

// User returns the logged-in user, nil when logged out.
func (s *Session) User() *models.User {
	return s.user
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	return s.user != nil
}

// IsAdmin reports whether the logged-in user is an admin.
func (s *Session) IsAdmin() bool {
	return s.user != nil && s.user.IsAdmin
}
