package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/posdocs/internal/adapter/events"
	"github.com/polkiloo/posdocs/internal/session"
)

// Module provides the feed and binds it to the session collaborators.
var Module = fx.Provide(
	newFeed,
	fx.Annotate(NewRedirector, fx.As(new(session.Navigator))),
	func(f *Feed) session.Notifier { return f },
)

func newFeed(publisher events.Publisher, logger *slog.Logger) *Feed {
	return NewFeed(DefaultCapacity, publisher, logger)
}
