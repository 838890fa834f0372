package handlers

import (
	"context"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

// SessionFacade describes session capabilities required by handlers.
type SessionFacade interface {
	Login(ctx context.Context, username, password string) (model.Credentials, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (model.Credentials, error)
}

// DocumentFacade exposes the document workflow of an order.
type DocumentFacade interface {
	Actions(ctx context.Context, orderID string) (*model.ActionSurface, error)
	Dispatch(ctx context.Context, orderID string, action model.DocumentAction, override model.DocumentType) (model.TaskRecord, error)
	Receipt(ctx context.Context, orderID string) (*model.ReceiptData, error)
}

// TaskFacade reads task history and notifications.
type TaskFacade interface {
	Task(ctx context.Context, id string) (*model.TaskRecord, error)
	Tasks(ctx context.Context, orderID string, limit int) ([]model.TaskRecord, error)
	Notifications(limit int) []model.Notification
}

// BlobFacade resolves object URLs.
type BlobFacade interface {
	Blob(handle string) (*model.Blob, error)
}

// Facade aggregates the full set of operations used across handlers.
type Facade interface {
	SessionFacade
	DocumentFacade
	TaskFacade
	BlobFacade
}
