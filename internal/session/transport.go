package session

import (
	"context"
	"net/http"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

// Invalidator tears a session down after the backend rejected it.
type Invalidator interface {
	Invalidate(ctx context.Context, creds model.Credentials, reason string) bool
}

// Transport attaches the bearer token carried in the request context and
// invalidates the session on 401 and 403 responses.
type Transport struct {
	Base        http.RoundTripper
	Invalidator Invalidator
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	creds, ok := CredentialsFrom(req.Context())
	if ok && creds.Token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+creds.Token)
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if ok && t.Invalidator != nil &&
		(resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		t.Invalidator.Invalidate(req.Context(), creds, ReasonUnauthorized)
	}
	return resp, nil
}
