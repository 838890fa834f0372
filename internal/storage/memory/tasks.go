// Package memory keeps document task history in process memory. It backs
// the service when no database is configured.
package memory

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
	"github.com/polkiloo/posdocs/internal/domain/repository"
)

// Retention is the number of tasks kept per order.
const Retention = 50

// Storage is an in-memory repository factory.
type Storage struct {
	tasks *taskRepository
}

// New creates empty storage.
func New() *Storage {
	return &Storage{tasks: &taskRepository{
		byID:    map[string]model.TaskRecord{},
		byOrder: map[string][]string{},
	}}
}

// Tasks returns the task history repository.
func (s *Storage) Tasks() repository.TaskRepository {
	return s.tasks
}

type taskRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.TaskRecord
	byOrder map[string][]string // newest first
}

func (r *taskRepository) Save(_ context.Context, task model.TaskRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[task.ID]; ok {
		task.CreatedAt = existing.CreatedAt
		r.byID[task.ID] = task
		return nil
	}

	r.byID[task.ID] = task
	ids := append([]string{task.ID}, r.byOrder[task.OrderID]...)
	if len(ids) > Retention {
		for _, id := range ids[Retention:] {
			delete(r.byID, id)
		}
		ids = ids[:Retention]
	}
	r.byOrder[task.OrderID] = ids
	return nil
}

func (r *taskRepository) Get(_ context.Context, id string) (*model.TaskRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.byID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &task, nil
}

func (r *taskRepository) ListByOrder(_ context.Context, orderID string, limit int) ([]model.TaskRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOrder[orderID]
	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}
	result := make([]model.TaskRecord, 0, limit)
	for _, id := range ids[:limit] {
		result = append(result, r.byID[id])
	}
	return result, nil
}

// HealthCheck always succeeds for in-memory storage.
func (s *Storage) HealthCheck(context.Context) error {
	return nil
}
