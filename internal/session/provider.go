// Package session owns the authenticated session of the operator and tears it
// down when the backend rejects its token.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
	"github.com/polkiloo/posdocs/internal/pkg/auth"
)

const ExpiredMessage = "Your session has expired. Please log in again."

const (
	ReasonUnauthorized = "unauthorized"
	ReasonExpired      = "expired"
)

// Navigator moves the operator to the login entry point.
type Navigator interface {
	RedirectToLogin(ctx context.Context, reason string)
}

// Notifier delivers operator-facing notifications.
type Notifier interface {
	Add(ctx context.Context, n model.Notification) model.Notification
}

// TeardownRecorder counts forced teardowns.
type TeardownRecorder interface {
	SessionTeardown(reason string)
}

// Provider is the single authority over the live session.
type Provider struct {
	store     Store
	navigator Navigator
	notifier  Notifier
	recorder  TeardownRecorder
	logger    *slog.Logger
	now       func() time.Time

	mu         sync.RWMutex
	current    *model.Credentials
	generation uint64
}

// NewProvider constructs a Provider. Navigator, notifier and recorder may be nil.
func NewProvider(store Store, navigator Navigator, notifier Notifier, recorder TeardownRecorder, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		store:     store,
		navigator: navigator,
		notifier:  notifier,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// Current returns the live credentials snapshot. An expired token is torn down.
func (p *Provider) Current(ctx context.Context) (model.Credentials, error) {
	p.mu.RLock()
	current := p.current
	p.mu.RUnlock()

	if current == nil {
		return model.Credentials{}, domainErrors.ErrNoSession
	}
	if current.Expired(p.now()) {
		p.Invalidate(ctx, *current, ReasonExpired)
		return model.Credentials{}, domainErrors.ErrNoSession
	}
	return *current, nil
}

// Establish persists a freshly issued token and starts a new session generation.
func (p *Provider) Establish(ctx context.Context, token string, user model.User) (model.Credentials, error) {
	expiresAt, err := auth.TokenExpiry(token)
	if err != nil {
		return model.Credentials{}, fmt.Errorf("establish session: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.Save(token, user); err != nil {
		return model.Credentials{}, fmt.Errorf("persist session: %w", err)
	}

	p.generation++
	creds := model.Credentials{Token: token, User: user, Generation: p.generation, ExpiresAt: expiresAt}
	p.current = &creds

	p.logger.InfoContext(ctx, "session established",
		slog.String("user", user.Username),
		slog.Uint64("generation", creds.Generation),
	)
	return creds, nil
}

// Logout ends the session on operator request.
func (p *Provider) Logout(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.generation++
	p.current = nil
	if err := p.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	p.logger.InfoContext(ctx, "session closed")
	return nil
}

// Invalidate tears the session down if creds still belongs to the live
// generation. Concurrent rejections of the same token tear down once.
func (p *Provider) Invalidate(ctx context.Context, creds model.Credentials, reason string) bool {
	p.mu.Lock()
	if p.current == nil || p.current.Generation != creds.Generation {
		p.mu.Unlock()
		return false
	}
	p.generation++
	p.current = nil
	clearErr := p.store.Clear()
	p.mu.Unlock()

	if clearErr != nil {
		p.logger.ErrorContext(ctx, "failed to clear session store", slog.Any("error", clearErr))
	}
	p.logger.WarnContext(ctx, "session torn down",
		slog.String("reason", reason),
		slog.String("user", creds.User.Username),
	)

	if p.recorder != nil {
		p.recorder.SessionTeardown(reason)
	}
	if p.notifier != nil {
		p.notifier.Add(ctx, model.Notification{
			Level:   model.LevelWarning,
			Kind:    model.KindSession,
			Message: ExpiredMessage,
		})
	}
	if p.navigator != nil {
		p.navigator.RedirectToLogin(ctx, reason)
	}
	return true
}

// Restore rehydrates the session from the store at start-up. Incomplete or
// expired sessions are cleared.
func (p *Provider) Restore(ctx context.Context) error {
	token, user, err := p.store.Load()
	if errors.Is(err, domainErrors.ErrNoSession) {
		return nil
	}
	if err != nil {
		p.logger.WarnContext(ctx, "discarding stored session", slog.Any("error", err))
		return p.store.Clear()
	}

	expiresAt, _ := auth.TokenExpiry(token)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !expiresAt.IsZero() && !p.now().Before(expiresAt) {
		p.logger.InfoContext(ctx, "stored session expired", slog.String("user", user.Username))
		return p.store.Clear()
	}

	p.generation++
	p.current = &model.Credentials{Token: token, User: user, Generation: p.generation, ExpiresAt: expiresAt}
	p.logger.InfoContext(ctx, "session restored", slog.String("user", user.Username))
	return nil
}
