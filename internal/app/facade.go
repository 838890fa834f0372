package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/polkiloo/posdocs/internal/adapter/backend"
	"github.com/polkiloo/posdocs/internal/delivery"
	"github.com/polkiloo/posdocs/internal/domain/document"
	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
	"github.com/polkiloo/posdocs/internal/domain/repository"
	"github.com/polkiloo/posdocs/internal/session"
)

// Deliverer runs document deliveries in the background.
type Deliverer interface {
	OpenInTab(req delivery.Request) *delivery.Task
	SaveToDisk(req delivery.Request) *delivery.Task
	PrintDirect(req delivery.Request) *delivery.Task
}

// BlobSource resolves object URL handles.
type BlobSource interface {
	Get(handle string) (*model.Blob, error)
}

// NotificationSource lists recent operator notifications.
type NotificationSource interface {
	List(limit int) []model.Notification
}

// DocumentFacade is the entry point for the local action surface.
type DocumentFacade struct {
	client        backend.Client
	sessions      *session.Provider
	deliverer     Deliverer
	blobs         BlobSource
	tasks         repository.TaskRepository
	notifications NotificationSource
	logger        *slog.Logger
}

func NewDocumentFacade(
	client backend.Client,
	sessions *session.Provider,
	deliverer Deliverer,
	blobs BlobSource,
	tasks repository.TaskRepository,
	notifications NotificationSource,
	logger *slog.Logger,
) *DocumentFacade {
	return &DocumentFacade{
		client:        client,
		sessions:      sessions,
		deliverer:     deliverer,
		blobs:         blobs,
		tasks:         tasks,
		notifications: notifications,
		logger:        logger,
	}
}

func (f *DocumentFacade) Login(ctx context.Context, username, password string) (model.Credentials, error) {
	if username == "" || password == "" {
		return model.Credentials{}, domainErrors.ErrInvalidCredentials
	}
	token, user, err := f.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			return model.Credentials{}, domainErrors.ErrInvalidCredentials
		}
		return model.Credentials{}, err
	}
	return f.sessions.Establish(ctx, token, user)
}

func (f *DocumentFacade) Logout(ctx context.Context) error {
	return f.sessions.Logout(ctx)
}

func (f *DocumentFacade) Session(ctx context.Context) (model.Credentials, error) {
	return f.sessions.Current(ctx)
}

// Actions classifies the order and returns the surface the UI renders for it.
func (f *DocumentFacade) Actions(ctx context.Context, orderID string) (*model.ActionSurface, error) {
	_, order, err := f.order(ctx, orderID)
	if err != nil {
		return nil, err
	}

	surface := document.BuildSurface(*order)
	if surface.Rule == string(document.RuleFallback) {
		f.logger.WarnContext(ctx, "order matched no classification rule",
			slog.String("order", order.ID),
			slog.String("type", string(order.Type)),
			slog.String("payment_status", string(order.PaymentStatus)),
		)
	}
	return &surface, nil
}

// Dispatch starts a delivery of the recommended document, or of override when
// the order allows it.
func (f *DocumentFacade) Dispatch(ctx context.Context, orderID string, action model.DocumentAction, override model.DocumentType) (model.TaskRecord, error) {
	if !action.Valid() {
		return model.TaskRecord{}, domainErrors.ErrInvalidAction
	}

	creds, order, err := f.order(ctx, orderID)
	if err != nil {
		return model.TaskRecord{}, err
	}

	doc, err := document.Resolve(*order, override)
	if err != nil {
		return model.TaskRecord{}, err
	}
	format, err := document.FormatFor(*order, doc, action)
	if err != nil {
		return model.TaskRecord{}, err
	}

	req := delivery.Request{
		OrderID:     order.ID,
		Document:    doc,
		Action:      action,
		Format:      format,
		Endpoint:    document.EndpointFor(doc, order.ID, format),
		Filename:    document.FilenameFor(order.ID, doc, format),
		Credentials: creds,
	}

	var task *delivery.Task
	switch action {
	case model.ActionOpen:
		task = f.deliverer.OpenInTab(req)
	case model.ActionDownload:
		task = f.deliverer.SaveToDisk(req)
	default:
		task = f.deliverer.PrintDirect(req)
	}

	f.logger.InfoContext(ctx, "document dispatched",
		slog.String("order", order.ID),
		slog.String("action", string(action)),
		slog.String("document", string(doc)),
		slog.String("task", task.ID()),
	)
	return task.Record(), nil
}

func (f *DocumentFacade) Receipt(ctx context.Context, orderID string) (*model.ReceiptData, error) {
	creds, err := f.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	if orderID == "" {
		return nil, domainErrors.ErrNotFound
	}
	return f.client.Receipt(ctx, creds, orderID)
}

func (f *DocumentFacade) Task(ctx context.Context, id string) (*model.TaskRecord, error) {
	return f.tasks.Get(ctx, id)
}

func (f *DocumentFacade) Tasks(ctx context.Context, orderID string, limit int) ([]model.TaskRecord, error) {
	return f.tasks.ListByOrder(ctx, orderID, limit)
}

func (f *DocumentFacade) Notifications(limit int) []model.Notification {
	return f.notifications.List(limit)
}

func (f *DocumentFacade) Blob(handle string) (*model.Blob, error) {
	return f.blobs.Get(handle)
}

func (f *DocumentFacade) order(ctx context.Context, orderID string) (model.Credentials, *model.Order, error) {
	creds, err := f.sessions.Current(ctx)
	if err != nil {
		return model.Credentials{}, nil, err
	}
	if orderID == "" {
		return model.Credentials{}, nil, domainErrors.ErrNotFound
	}
	order, err := f.client.Order(ctx, creds, orderID)
	if err != nil {
		return model.Credentials{}, nil, fmt.Errorf("fetch order %s: %w", orderID, err)
	}
	if order.ID == "" {
		order.ID = orderID
	}
	return creds, order, nil
}
