package errors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrNoSession             = errors.New("no active session")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidAction         = errors.New("invalid document action")
	ErrInvalidDocumentType   = errors.New("invalid document type")
	ErrOverrideNotApplicable = errors.New("document type not applicable to order")
	ErrThermalUnavailable    = errors.New("thermal format unavailable for order")
)
