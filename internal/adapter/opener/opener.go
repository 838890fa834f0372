// Package opener shows fetched documents to the operator in a browser tab.
package opener

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/browser"
)

// Opener opens a URL in a new browsing context.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Browser opens URLs in the system browser.
type Browser struct {
	open func(string) error
}

// NewBrowser creates an opener backed by the system browser.
func NewBrowser() *Browser {
	return &Browser{open: browser.OpenURL}
}

func (b *Browser) Open(_ context.Context, url string) error {
	if err := b.open(url); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// Detached leaves opening to the operator UI, which reads the URL from the task.
type Detached struct {
	logger *slog.Logger
}

// NewDetached creates an opener that only logs the URL.
func NewDetached(logger *slog.Logger) *Detached {
	return &Detached{logger: logger}
}

func (d *Detached) Open(ctx context.Context, url string) error {
	d.logger.DebugContext(ctx, "document ready to open", slog.String("url", url))
	return nil
}
