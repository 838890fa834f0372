package backend

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/posdocs/internal/config"
	"github.com/polkiloo/posdocs/internal/metrics"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{APIBaseURL: "http://example.com/api", RequestTimeout: 5 * time.Second, RequestRate: 2}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	client, err := newClient(clientParams{Config: cfg, Logger: logger, Metrics: metrics.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	httpClient, ok := client.(*HTTPClient)
	if !ok {
		t.Fatalf("expected *HTTPClient, got %T", client)
	}
	if httpClient.httpClient.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %s", httpClient.httpClient.Timeout)
	}
	if httpClient.recorder == nil {
		t.Fatal("expected metrics recorder to be wired")
	}
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if _, err := newClient(clientParams{Config: &config.Config{APIBaseURL: "/api"}, Logger: logger}); err == nil {
		t.Fatal("expected error for relative url")
	}
}
