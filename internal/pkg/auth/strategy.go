package auth

import "time"

// Signer issues and verifies opaque handles bound to an identifier.
type Signer interface {
	Sign(id string) (string, error)
	Verify(handle string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
