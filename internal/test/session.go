package test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
)

// JWT returns a signed token expiring at exp. A zero exp omits the claim.
func JWT(t testing.TB, subject string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": subject}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return token
}

// SessionStoreStub keeps a session pair in memory and counts mutations.
type SessionStoreStub struct {
	mu      sync.Mutex
	Token   string
	User    model.User
	Present bool
	LoadErr error
	SaveErr error
	Saves   int
	Clears  int
}

// Load returns the stored pair or ErrNoSession.
func (s *SessionStoreStub) Load() (string, model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return "", model.User{}, s.LoadErr
	}
	if !s.Present {
		return "", model.User{}, domainErrors.ErrNoSession
	}
	return s.Token, s.User, nil
}

// Save stores the pair unless SaveErr is configured.
func (s *SessionStoreStub) Save(token string, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Token, s.User, s.Present = token, user, true
	s.Saves++
	return nil
}

// Clear drops the pair.
func (s *SessionStoreStub) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token, s.User, s.Present = "", model.User{}, false
	s.LoadErr = nil
	s.Clears++
	return nil
}

// ClearCount returns how many times Clear ran.
func (s *SessionStoreStub) ClearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Clears
}

// NavigatorStub counts login redirects.
type NavigatorStub struct {
	mu      sync.Mutex
	Reasons []string
}

// RedirectToLogin records the redirect reason.
func (n *NavigatorStub) RedirectToLogin(_ context.Context, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Reasons = append(n.Reasons, reason)
}

// Count returns the number of redirects.
func (n *NavigatorStub) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Reasons)
}

// NotifierStub collects notifications.
type NotifierStub struct {
	mu    sync.Mutex
	Items []model.Notification
}

// Add stores the notification and returns it unchanged.
func (n *NotifierStub) Add(_ context.Context, item model.Notification) model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Items = append(n.Items, item)
	return item
}

// Snapshot returns a copy of collected notifications.
func (n *NotifierStub) Snapshot() []model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Notification(nil), n.Items...)
}

// TeardownRecorderStub counts recorded teardowns.
type TeardownRecorderStub struct {
	mu      sync.Mutex
	Reasons []string
}

// SessionTeardown records the reason.
func (r *TeardownRecorderStub) SessionTeardown(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reasons = append(r.Reasons, reason)
}
