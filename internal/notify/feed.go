// Package notify keeps the operator notification feed.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/posdocs/internal/adapter/events"
	"github.com/polkiloo/posdocs/internal/domain/model"
)

const DefaultCapacity = 100

// Feed is a bounded, newest-first list of notifications.
type Feed struct {
	mu        sync.RWMutex
	items     []model.Notification
	next      int
	full      bool
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewFeed creates a feed holding at most capacity notifications.
func NewFeed(capacity int, publisher events.Publisher, logger *slog.Logger) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if publisher == nil {
		publisher = events.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		items:     make([]model.Notification, capacity),
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Add stores n, assigning its id and timestamp, and relays it.
func (f *Feed) Add(ctx context.Context, n model.Notification) model.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = f.now().UTC()
	}
	if n.Level == "" {
		n.Level = model.LevelInfo
	}

	f.mu.Lock()
	f.items[f.next] = n
	f.next = (f.next + 1) % len(f.items)
	if f.next == 0 {
		f.full = true
	}
	f.mu.Unlock()

	f.logger.Log(ctx, logLevel(n.Level), "operator notification",
		slog.String("kind", string(n.Kind)),
		slog.String("message", n.Message),
		slog.String("task_id", n.TaskID),
	)

	evt := events.Event{ID: n.ID, Type: events.TypeNotification, Payload: n, At: n.CreatedAt}
	if err := f.publisher.Publish(ctx, string(n.Kind), evt); err != nil {
		f.logger.WarnContext(ctx, "failed to relay notification", slog.Any("error", err))
	}
	return n
}

// List returns up to limit notifications, newest first. A non-positive limit returns all.
func (f *Feed) List(limit int) []model.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	size := f.next
	if f.full {
		size = len(f.items)
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]model.Notification, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (f.next - i + len(f.items)) % len(f.items)
		out = append(out, f.items[idx])
	}
	return out
}

func logLevel(level model.NotificationLevel) slog.Level {
	switch level {
	case model.LevelError:
		return slog.LevelError
	case model.LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
