package notify

import (
	"context"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

const LoginPath = "/login"

// Redirector tells the operator UI to navigate to the login page.
type Redirector struct {
	feed *Feed
}

// NewRedirector creates a Redirector writing to feed.
func NewRedirector(feed *Feed) *Redirector {
	return &Redirector{feed: feed}
}

// RedirectToLogin emits one redirect notification.
func (r *Redirector) RedirectToLogin(ctx context.Context, reason string) {
	r.feed.Add(ctx, model.Notification{
		Level:    model.LevelInfo,
		Kind:     model.KindRedirect,
		Message:  "Redirecting to login (" + reason + ")",
		Redirect: LoginPath,
	})
}
