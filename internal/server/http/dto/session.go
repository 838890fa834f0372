package dto

import (
	"time"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

// LoginRequest describes username/password payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionResponse describes the signed-in operator.
type SessionResponse struct {
	User      model.User `json:"user"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}
