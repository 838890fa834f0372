package model

import "time"

// TaskState describes the lifecycle of a single document action invocation.
type TaskState string

const (
	TaskStateIdle    TaskState = "idle"
	TaskStateLoading TaskState = "loading"
	TaskStateSuccess TaskState = "success"
	TaskStateError   TaskState = "error"
)

// Terminal reports whether no further transition may happen.
func (s TaskState) Terminal() bool {
	return s == TaskStateSuccess || s == TaskStateError
}

// TaskRecord is the observable state of a document action.
type TaskRecord struct {
	ID        string         `json:"id"`
	OrderID   string         `json:"orderId"`
	Action    DocumentAction `json:"action"`
	Document  DocumentType   `json:"documentType"`
	Format    DocumentFormat `json:"format"`
	Filename  string         `json:"filename"`
	URL       string         `json:"url,omitempty"`
	Path      string         `json:"path,omitempty"`
	State     TaskState      `json:"state"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
