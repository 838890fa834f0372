package session

import (
	"context"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

type credentialsKey struct{}

// WithCredentials attaches a credentials snapshot to ctx for outgoing requests.
func WithCredentials(ctx context.Context, creds model.Credentials) context.Context {
	return context.WithValue(ctx, credentialsKey{}, creds)
}

// CredentialsFrom returns the snapshot attached by WithCredentials.
func CredentialsFrom(ctx context.Context) (model.Credentials, bool) {
	creds, ok := ctx.Value(credentialsKey{}).(model.Credentials)
	return creds, ok
}
