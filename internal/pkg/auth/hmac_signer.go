package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidHandle = errors.New("invalid handle")

// HMACSigner signs handles with an HMAC-SHA256 signature and an expiry.
type HMACSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACSigner builds HMACSigner with provided secret and options.
func NewHMACSigner(secret string, opts Options) *HMACSigner {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &HMACSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a URL-safe handle carrying id.
func (s *HMACSigner) Sign(id string) (string, error) {
	if id == "" || strings.Contains(id, ":") {
		return "", ErrInvalidHandle
	}
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s:%d", id, expires)
	handle := fmt.Sprintf("%s:%s", payload, s.sign(payload))
	return base64.RawURLEncoding.EncodeToString([]byte(handle)), nil
}

// Verify validates handle and returns the id it carries.
func (s *HMACSigner) Verify(handle string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(handle)
	if err != nil {
		return "", ErrInvalidHandle
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return "", ErrInvalidHandle
	}

	payload := strings.Join(parts[:2], ":")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[2])) {
		return "", ErrInvalidHandle
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", ErrInvalidHandle
	}
	if time.Unix(expires, 0).Before(s.now()) {
		return "", ErrInvalidHandle
	}

	return parts[0], nil
}

func (s *HMACSigner) Name() string {
	return "hmac"
}

func (s *HMACSigner) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
