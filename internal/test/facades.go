package test

import (
	"context"

	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
)

// FacadeStub implements the HTTP facade with overridable behaviour. Unset
// functions report ErrNotFound, or ErrNoSession for session lookups.
type FacadeStub struct {
	LoginFn         func(ctx context.Context, username, password string) (model.Credentials, error)
	LogoutFn        func(ctx context.Context) error
	SessionFn       func(ctx context.Context) (model.Credentials, error)
	ActionsFn       func(ctx context.Context, orderID string) (*model.ActionSurface, error)
	DispatchFn      func(ctx context.Context, orderID string, action model.DocumentAction, override model.DocumentType) (model.TaskRecord, error)
	ReceiptFn       func(ctx context.Context, orderID string) (*model.ReceiptData, error)
	TaskFn          func(ctx context.Context, id string) (*model.TaskRecord, error)
	TasksFn         func(ctx context.Context, orderID string, limit int) ([]model.TaskRecord, error)
	NotificationsFn func(limit int) []model.Notification
	BlobFn          func(handle string) (*model.Blob, error)
}

func (f FacadeStub) Login(ctx context.Context, username, password string) (model.Credentials, error) {
	if f.LoginFn != nil {
		return f.LoginFn(ctx, username, password)
	}
	return model.Credentials{Token: "token", User: model.User{ID: "1", Username: username}}, nil
}

func (f FacadeStub) Logout(ctx context.Context) error {
	if f.LogoutFn != nil {
		return f.LogoutFn(ctx)
	}
	return nil
}

func (f FacadeStub) Session(ctx context.Context) (model.Credentials, error) {
	if f.SessionFn != nil {
		return f.SessionFn(ctx)
	}
	return model.Credentials{}, domainErrors.ErrNoSession
}

func (f FacadeStub) Actions(ctx context.Context, orderID string) (*model.ActionSurface, error) {
	if f.ActionsFn != nil {
		return f.ActionsFn(ctx, orderID)
	}
	return nil, domainErrors.ErrNotFound
}

func (f FacadeStub) Dispatch(ctx context.Context, orderID string, action model.DocumentAction, override model.DocumentType) (model.TaskRecord, error) {
	if f.DispatchFn != nil {
		return f.DispatchFn(ctx, orderID, action, override)
	}
	return model.TaskRecord{}, domainErrors.ErrNotFound
}

func (f FacadeStub) Receipt(ctx context.Context, orderID string) (*model.ReceiptData, error) {
	if f.ReceiptFn != nil {
		return f.ReceiptFn(ctx, orderID)
	}
	return nil, domainErrors.ErrNotFound
}

func (f FacadeStub) Task(ctx context.Context, id string) (*model.TaskRecord, error) {
	if f.TaskFn != nil {
		return f.TaskFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (f FacadeStub) Tasks(ctx context.Context, orderID string, limit int) ([]model.TaskRecord, error) {
	if f.TasksFn != nil {
		return f.TasksFn(ctx, orderID, limit)
	}
	return nil, nil
}

func (f FacadeStub) Notifications(limit int) []model.Notification {
	if f.NotificationsFn != nil {
		return f.NotificationsFn(limit)
	}
	return nil
}

func (f FacadeStub) Blob(handle string) (*model.Blob, error) {
	if f.BlobFn != nil {
		return f.BlobFn(handle)
	}
	return nil, domainErrors.ErrNotFound
}

// HealthCheckerStub returns Err from HealthCheck.
type HealthCheckerStub struct {
	Err error
}

func (h HealthCheckerStub) HealthCheck(context.Context) error {
	return h.Err
}
