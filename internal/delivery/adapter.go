// Package delivery fetches documents with the session bearer token and hands
// them to the operator: a browser tab, a file on disk or a printer.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/posdocs/internal/adapter/backend"
	"github.com/polkiloo/posdocs/internal/adapter/events"
	"github.com/polkiloo/posdocs/internal/adapter/opener"
	"github.com/polkiloo/posdocs/internal/adapter/printer"
	"github.com/polkiloo/posdocs/internal/domain/model"
	"github.com/polkiloo/posdocs/internal/domain/repository"
	"github.com/polkiloo/posdocs/internal/worker"
)

const (
	defaultGrace   = 60 * time.Second
	defaultSettle  = 500 * time.Millisecond
	defaultCleanup = time.Second

	maxNameAttempts = 1000
	noPrinterText   = "No printer is configured for this document."
)

// Fetcher downloads a document binary from the backend.
type Fetcher interface {
	Document(ctx context.Context, creds model.Credentials, endpoint string) (*model.Payload, error)
}

// Notifier receives operator notifications.
type Notifier interface {
	Add(ctx context.Context, n model.Notification) model.Notification
}

// ActionRecorder observes finished deliveries.
type ActionRecorder interface {
	DocumentAction(action, document, state string, elapsed time.Duration)
}

// Submitter runs jobs in the background.
type Submitter interface {
	Submit(job worker.Job) error
}

// Request describes one delivery. Credentials are the session snapshot taken
// when the operator triggered the action.
type Request struct {
	OrderID     string
	Document    model.DocumentType
	Action      model.DocumentAction
	Format      model.DocumentFormat
	Endpoint    string
	Filename    string
	Credentials model.Credentials
}

// Options tune delivery timings and the download target.
type Options struct {
	DownloadDir string
	Grace       time.Duration
	Settle      time.Duration
	Cleanup     time.Duration
}

// Deps are the collaborators an Adapter drives.
type Deps struct {
	Fetcher   Fetcher
	URLs      *ObjectURLs
	Opener    opener.Opener
	Printer   printer.Printer
	Runner    Submitter
	Tasks     repository.TaskRepository
	Publisher events.Publisher
	Notifier  Notifier
	Recorder  ActionRecorder
	Logger    *slog.Logger
}

// Adapter implements the open, download and print deliveries.
type Adapter struct {
	Deps
	opts Options
	now  func() time.Time
}

// New constructs an Adapter. Zero timings fall back to the defaults.
func New(deps Deps, opts Options) *Adapter {
	if opts.Grace <= 0 {
		opts.Grace = defaultGrace
	}
	if opts.Settle <= 0 {
		opts.Settle = defaultSettle
	}
	if opts.Cleanup <= 0 {
		opts.Cleanup = defaultCleanup
	}
	if deps.Publisher == nil {
		deps.Publisher = events.Noop{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Adapter{Deps: deps, opts: opts, now: time.Now}
}

// OpenInTab fetches the document and opens it through an object URL that is
// revoked after the grace window.
func (a *Adapter) OpenInTab(req Request) *Task {
	return a.start(req, func(ctx context.Context, task *Task, payload *model.Payload) error {
		url, handle, err := a.URLs.Create(*payload, req.Filename)
		if err != nil {
			return err
		}
		task.update(func(r *model.TaskRecord) { r.URL = url })

		if err := a.Opener.Open(ctx, url); err != nil {
			a.URLs.Revoke(handle)
			return fmt.Errorf("open document: %w", err)
		}
		a.URLs.RevokeAfter(handle, a.opts.Grace)
		return nil
	})
}

// SaveToDisk fetches the document and writes it under the download directory.
func (a *Adapter) SaveToDisk(req Request) *Task {
	return a.start(req, func(_ context.Context, task *Task, payload *model.Payload) error {
		path, err := a.save(payload.Data, req.Filename)
		if err != nil {
			return err
		}
		task.update(func(r *model.TaskRecord) { r.Path = path })
		return nil
	})
}

// PrintDirect fetches the document and hands it to the printer once the object
// URL has settled. The URL is revoked after the cleanup delay.
func (a *Adapter) PrintDirect(req Request) *Task {
	return a.start(req, func(ctx context.Context, task *Task, payload *model.Payload) error {
		url, handle, err := a.URLs.Create(*payload, req.Filename)
		if err != nil {
			return err
		}
		task.update(func(r *model.TaskRecord) { r.URL = url })
		defer a.URLs.RevokeAfter(handle, a.opts.Cleanup)

		if err := sleep(ctx, a.opts.Settle); err != nil {
			return err
		}
		job := printer.Job{URL: url, Filename: req.Filename, Format: req.Format, Payload: *payload}
		if err := a.Printer.Print(ctx, job); err != nil {
			return fmt.Errorf("print document: %w", err)
		}
		return nil
	})
}

type deliverFunc func(ctx context.Context, task *Task, payload *model.Payload) error

func (a *Adapter) start(req Request, deliver deliverFunc) *Task {
	now := a.now().UTC()
	task := newTask(model.TaskRecord{
		ID:        uuid.NewString(),
		OrderID:   req.OrderID,
		Action:    req.Action,
		Document:  req.Document,
		Format:    req.Format,
		Filename:  req.Filename,
		State:     model.TaskStateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	})
	a.persist(context.Background(), task.Record())

	job := worker.Job{
		Name: fmt.Sprintf("%s %s", req.Action, req.Filename),
		Run: func(ctx context.Context) {
			a.run(ctx, task, req, deliver)
		},
		Abort: func(err error) {
			a.complete(context.Background(), task, now, err)
		},
	}
	if err := a.Runner.Submit(job); err != nil {
		a.complete(context.Background(), task, now, err)
	}
	return task
}

func (a *Adapter) run(ctx context.Context, task *Task, req Request, deliver deliverFunc) {
	started := a.now()
	a.persist(ctx, task.update(func(r *model.TaskRecord) {
		r.State = model.TaskStateLoading
		r.UpdatedAt = a.now().UTC()
	}))

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("delivery panic: %v", r)
			}
		}()
		payload, err := a.Fetcher.Document(ctx, req.Credentials, req.Endpoint)
		if err != nil {
			return err
		}
		return deliver(ctx, task, payload)
	}()

	a.complete(ctx, task, started, err)
}

func (a *Adapter) complete(ctx context.Context, task *Task, started time.Time, err error) {
	record, ok := task.finish(err, func(r *model.TaskRecord) {
		r.UpdatedAt = a.now().UTC()
		if err != nil {
			r.State = model.TaskStateError
			r.Error = operatorMessage(err)
			return
		}
		r.State = model.TaskStateSuccess
	})
	if !ok {
		return
	}
	defer task.markDone()

	a.persist(ctx, record)
	if a.Recorder != nil {
		a.Recorder.DocumentAction(string(record.Action), string(record.Document), string(record.State), a.now().Sub(started))
	}
	if err := a.Publisher.Publish(ctx, record.OrderID, events.Event{
		ID:      uuid.NewString(),
		Type:    events.TypeTask,
		OrderID: record.OrderID,
		Payload: record,
		At:      record.UpdatedAt,
	}); err != nil {
		a.Logger.Warn("task event not published", slog.String("task", record.ID), slog.String("error", err.Error()))
	}

	if err != nil {
		a.Logger.Error("document delivery failed",
			slog.String("task", record.ID),
			slog.String("order", record.OrderID),
			slog.String("action", string(record.Action)),
			slog.String("document", string(record.Document)),
			slog.String("error", err.Error()),
		)
		// Session teardown already told the operator.
		if errors.Is(err, backend.ErrUnauthorized) {
			return
		}
		a.notify(ctx, model.Notification{Level: model.LevelError, Message: record.Error, TaskID: record.ID})
		return
	}

	a.Logger.Info("document delivered",
		slog.String("task", record.ID),
		slog.String("order", record.OrderID),
		slog.String("action", string(record.Action)),
		slog.String("filename", record.Filename),
	)
	a.notify(ctx, model.Notification{Level: model.LevelSuccess, Message: successMessage(record), TaskID: record.ID})
}

func (a *Adapter) notify(ctx context.Context, n model.Notification) {
	if a.Notifier == nil {
		return
	}
	n.Kind = model.KindDocument
	a.Notifier.Add(ctx, n)
}

func (a *Adapter) persist(ctx context.Context, record model.TaskRecord) {
	if a.Tasks == nil {
		return
	}
	if err := a.Tasks.Save(context.WithoutCancel(ctx), record); err != nil {
		a.Logger.Warn("task not persisted", slog.String("task", record.ID), slog.String("error", err.Error()))
	}
}

// save writes data to a temp file and links it under the first free name, so
// concurrent saves of the same filename never overwrite each other.
func (a *Adapter) save(data []byte, filename string) (string, error) {
	dir := a.opts.DownloadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".posdocs-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}

	for n := 0; n < maxNameAttempts; n++ {
		path := filepath.Join(dir, candidateName(filename, n))
		err := os.Link(tmpName, path)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("save document: %w", err)
		}
	}
	return "", fmt.Errorf("save document: no free name for %s", filename)
}

func candidateName(filename string, n int) string {
	if n == 0 {
		return filename
	}
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(filename, ext), n, ext)
}

func operatorMessage(err error) string {
	if errors.Is(err, printer.ErrNoPrinter) {
		return noPrinterText
	}
	return backend.OperatorMessage(err)
}

func successMessage(record model.TaskRecord) string {
	switch record.Action {
	case model.ActionOpen:
		return fmt.Sprintf("Opened %s", record.Filename)
	case model.ActionDownload:
		return fmt.Sprintf("Saved %s", filepath.Base(record.Path))
	default:
		return fmt.Sprintf("Sent %s to the printer", record.Filename)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
