package backend

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies backend failures for operator messaging.
type Kind string

const (
	KindNetwork Kind = "network"
	KindAuth    Kind = "auth"
	KindClient  Kind = "client"
	KindServer  Kind = "server"
)

const (
	networkMessage = "Unable to reach the server. Check your connection."
	authMessage    = "Your session has expired. Please log in again."
	serverMessage  = "The server encountered an error. Please try again later."
	genericMessage = "Something went wrong. Please try again."
)

var clientFallbacks = map[int]string{
	http.StatusBadRequest:          "The request was invalid.",
	http.StatusNotFound:            "The requested document was not found.",
	http.StatusConflict:            "The request conflicts with the current state of the order.",
	http.StatusUnprocessableEntity: "The document cannot be generated for this order.",
	http.StatusTooManyRequests:     "Too many requests. Please wait a moment and try again.",
}

// ErrUnauthorized matches any APIError of kind auth via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// APIError describes a failed backend call.
type APIError struct {
	Kind       Kind
	Status     int
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("backend %s error: %v", e.Kind, e.Err)
	case e.Message != "":
		return fmt.Sprintf("backend %s error (%d): %s", e.Kind, e.Status, e.Message)
	default:
		return fmt.Sprintf("backend %s error (%d)", e.Kind, e.Status)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports auth failures as ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Kind == KindAuth
}

// OperatorMessage renders the text shown to the operator for err.
func OperatorMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return genericMessage
	}

	switch apiErr.Kind {
	case KindNetwork:
		return networkMessage
	case KindAuth:
		return authMessage
	case KindServer:
		return serverMessage
	}

	if apiErr.Message != "" {
		return apiErr.Message
	}
	if msg, ok := clientFallbacks[apiErr.Status]; ok {
		return msg
	}
	return genericMessage
}

func classify(status int) Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindAuth
	case status >= 500:
		return KindServer
	default:
		return KindClient
	}
}
