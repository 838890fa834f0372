package repository

import (
	"context"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

// TaskRepository persists document action task records.
type TaskRepository interface {
	Save(ctx context.Context, task model.TaskRecord) error
	Get(ctx context.Context, id string) (*model.TaskRecord, error)
	ListByOrder(ctx context.Context, orderID string, limit int) ([]model.TaskRecord, error)
}
