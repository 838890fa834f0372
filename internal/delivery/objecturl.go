package delivery

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
	"github.com/polkiloo/posdocs/internal/pkg/auth"
)

// BlobPath is the route prefix object URLs are served under.
const BlobPath = "/blob/"

type blobEntry struct {
	blob  model.Blob
	timer *time.Timer
}

// ObjectURLs hands out short-lived URLs for fetched payloads. Each URL is
// bound to exactly one payload and stops resolving once revoked. Entries are
// keyed by handle so revocation works after the handle itself has expired.
type ObjectURLs struct {
	baseURL string
	signer  auth.Signer

	mu      sync.Mutex
	entries map[string]*blobEntry
}

// NewObjectURLs creates a registry serving blobs under baseURL.
func NewObjectURLs(baseURL string, signer auth.Signer) *ObjectURLs {
	return &ObjectURLs{
		baseURL: strings.TrimRight(baseURL, "/"),
		signer:  signer,
		entries: make(map[string]*blobEntry),
	}
}

// Create registers payload and returns its URL and handle.
func (o *ObjectURLs) Create(payload model.Payload, filename string) (string, string, error) {
	id := uuid.NewString()
	handle, err := o.signer.Sign(id)
	if err != nil {
		return "", "", fmt.Errorf("sign object url: %w", err)
	}

	o.mu.Lock()
	o.entries[handle] = &blobEntry{blob: model.Blob{Payload: payload, Filename: filename}}
	o.mu.Unlock()

	return o.baseURL + BlobPath + handle, handle, nil
}

// Get resolves handle. Unknown, revoked, tampered and expired handles yield ErrNotFound.
func (o *ObjectURLs) Get(handle string) (*model.Blob, error) {
	if _, err := o.signer.Verify(handle); err != nil {
		return nil, domainErrors.ErrNotFound
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	entry, ok := o.entries[handle]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	blob := entry.blob
	return &blob, nil
}

// Revoke drops the payload behind handle. Revoking twice is a no-op.
func (o *ObjectURLs) Revoke(handle string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if entry, ok := o.entries[handle]; ok {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(o.entries, handle)
	}
}

// RevokeAfter schedules Revoke once d has elapsed.
func (o *ObjectURLs) RevokeAfter(handle string, d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	entry, ok := o.entries[handle]
	if !ok {
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	entry.timer = time.AfterFunc(d, func() { o.Revoke(handle) })
}

// Len reports the number of live object URLs.
func (o *ObjectURLs) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.entries)
}
