// Package session holds the process-wide identity used to authorize API
// calls, backed by the local store so it survives restarts.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/followup/internal/db"
	"github.com/alexanderramin/followup/internal/domain"
	"github.com/alexanderramin/followup/internal/repository"
)

// Listener is notified with the new identity ("" on logout).
type Listener func(identity string)

// Session is the client's identity store. It is safe for concurrent use.
type Session struct {
	store repository.LocalStore
	uow   db.UnitOfWork

	mu        sync.RWMutex
	identity  string
	listeners []Listener
}

// New creates a Session over store. uow groups the registration writes;
// it may be nil when registration is not used.
func New(store repository.LocalStore, uow db.UnitOfWork) *Session {
	return &Session{store: store, uow: uow}
}

// Init loads the stored identity. Call once at startup.
func (s *Session) Init(ctx context.Context) error {
	id, err := repository.GetOrEmpty(ctx, s.store, repository.KeyTelegramID)
	if err != nil {
		return fmt.Errorf("loading identity: %w", err)
	}
	s.mu.Lock()
	s.identity = id
	s.mu.Unlock()
	return nil
}

// ValidateIdentity trims id and checks it is a non-empty string of digits.
func ValidateIdentity(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", &domain.ValidationError{Field: "telegram_id", Message: "Telegram ID is required"}
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", &domain.ValidationError{Field: "telegram_id", Message: "Telegram ID must contain only digits"}
		}
	}
	return id, nil
}

// SetIdentity validates and persists id, then notifies listeners.
func (s *Session) SetIdentity(ctx context.Context, id string) error {
	id, err := ValidateIdentity(id)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, repository.KeyTelegramID, id); err != nil {
		return fmt.Errorf("saving identity: %w", err)
	}
	s.set(id)
	return nil
}

// Identity returns the current identity or "".
func (s *Session) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Session) IsLoggedIn() bool {
	return s.Identity() != ""
}

// Clear logs out: the stored identity is removed and listeners notified.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Remove(ctx, repository.KeyTelegramID); err != nil {
		return fmt.Errorf("clearing identity: %w", err)
	}
	s.set("")
	return nil
}

// Subscribe registers fn for login and logout notifications. The returned
// func removes it.
func (s *Session) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
	idx := len(s.listeners) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.listeners) {
			s.listeners[idx] = nil
		}
	}
}

func (s *Session) set(id string) {
	s.mu.Lock()
	s.identity = id
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		if fn != nil {
			fn(id)
		}
	}
}
