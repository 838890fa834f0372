package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
	"github.com/polkiloo/posdocs/internal/domain/repository"
)

// Tasks kept per order; older records are pruned on save.
const taskRetention = 50

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type taskRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Tasks returns the task history repository.
func (s *Storage) Tasks() repository.TaskRepository {
	return &taskRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS document_tasks (
            id TEXT PRIMARY KEY,
            order_id TEXT NOT NULL,
            action TEXT NOT NULL,
            document_type TEXT NOT NULL,
            format TEXT NOT NULL,
            filename TEXT NOT NULL,
            url TEXT NOT NULL DEFAULT '',
            path TEXT NOT NULL DEFAULT '',
            state TEXT NOT NULL,
            error TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`ALTER TABLE document_tasks ADD COLUMN IF NOT EXISTS url TEXT NOT NULL DEFAULT ''`,
		`CREATE INDEX IF NOT EXISTS idx_document_tasks_order ON document_tasks(order_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- TaskRepository implementation ---

func (r *taskRepository) Save(ctx context.Context, task model.TaskRecord) error {
	const upsert = `INSERT INTO document_tasks
                    (id, order_id, action, document_type, format, filename, url, path, state, error, created_at, updated_at)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                    ON CONFLICT (id) DO UPDATE SET
                        url = EXCLUDED.url,
                        path = EXCLUDED.path,
                        state = EXCLUDED.state,
                        error = EXCLUDED.error,
                        updated_at = EXCLUDED.updated_at`
	const prune = `DELETE FROM document_tasks
                   WHERE order_id = $1 AND id NOT IN (
                       SELECT id FROM document_tasks WHERE order_id = $1
                       ORDER BY created_at DESC LIMIT $2
                   )`

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsert,
			task.ID, task.OrderID, task.Action, task.Document, task.Format, task.Filename,
			task.URL, task.Path, task.State, task.Error, task.CreatedAt, task.UpdatedAt,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, prune, task.OrderID, taskRetention); err != nil {
			return err
		}
		return nil
	})
}

func (r *taskRepository) Get(ctx context.Context, id string) (*model.TaskRecord, error) {
	const query = `SELECT id, order_id, action, document_type, format, filename, url, path, state, error, created_at, updated_at
                   FROM document_tasks WHERE id=$1`
	var t model.TaskRecord
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.OrderID, &t.Action, &t.Document, &t.Format, &t.Filename, &t.URL, &t.Path, &t.State, &t.Error, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) ListByOrder(ctx context.Context, orderID string, limit int) ([]model.TaskRecord, error) {
	if limit <= 0 || limit > taskRetention {
		limit = taskRetention
	}
	const query = `SELECT id, order_id, action, document_type, format, filename, url, path, state, error, created_at, updated_at
                   FROM document_tasks WHERE order_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, orderID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TaskRecord
	for rows.Next() {
		var t model.TaskRecord
		if err := rows.Scan(&t.ID, &t.OrderID, &t.Action, &t.Document, &t.Format, &t.Filename, &t.URL, &t.Path, &t.State, &t.Error, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
