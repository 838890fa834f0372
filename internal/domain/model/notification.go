package model

import "time"

// NotificationLevel describes severity of operator-facing messages.
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelSuccess NotificationLevel = "success"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

// NotificationKind groups notifications by origin.
type NotificationKind string

const (
	KindDocument NotificationKind = "document"
	KindSession  NotificationKind = "session"
	KindRedirect NotificationKind = "redirect"
)

// Notification is an operator-facing message.
type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Kind      NotificationKind  `json:"kind"`
	Message   string            `json:"message"`
	Redirect  string            `json:"redirect,omitempty"`
	TaskID    string            `json:"taskId,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}
