package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/posdocs/internal/adapter/printer"
	domainErrors "github.com/polkiloo/posdocs/internal/domain/errors"
	"github.com/polkiloo/posdocs/internal/domain/model"
)

// BackendStub serves canned backend responses and records document requests.
type BackendStub struct {
	mu sync.Mutex

	Token    string
	User     model.User
	LoginErr error

	Orders     map[string]*model.Order
	OrderErr   error
	ReceiptVal *model.ReceiptData
	ReceiptErr error

	Payload     *model.Payload
	DocumentErr error
	// Gate, when set, blocks Document until it is closed.
	Gate chan struct{}

	Endpoints []string
	Creds     []model.Credentials
}

// Login returns the configured token and user.
func (b *BackendStub) Login(context.Context, string, string) (string, model.User, error) {
	if b.LoginErr != nil {
		return "", model.User{}, b.LoginErr
	}
	return b.Token, b.User, nil
}

// Order returns the order registered under id.
func (b *BackendStub) Order(_ context.Context, creds model.Credentials, id string) (*model.Order, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Creds = append(b.Creds, creds)
	if b.OrderErr != nil {
		return nil, b.OrderErr
	}
	order, ok := b.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	found := *order
	return &found, nil
}

// Receipt returns the configured receipt.
func (b *BackendStub) Receipt(_ context.Context, creds model.Credentials, _ string) (*model.ReceiptData, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Creds = append(b.Creds, creds)
	if b.ReceiptErr != nil {
		return nil, b.ReceiptErr
	}
	return b.ReceiptVal, nil
}

// Document returns the configured payload.
func (b *BackendStub) Document(ctx context.Context, creds model.Credentials, endpoint string) (*model.Payload, error) {
	b.mu.Lock()
	b.Endpoints = append(b.Endpoints, endpoint)
	b.Creds = append(b.Creds, creds)
	gate := b.Gate
	b.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if b.DocumentErr != nil {
		return nil, b.DocumentErr
	}
	payload := *b.Payload
	return &payload, nil
}

// DocumentCalls returns the endpoints requested so far.
func (b *BackendStub) DocumentCalls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.Endpoints...)
}

// OpenerStub records opened URLs.
type OpenerStub struct {
	mu   sync.Mutex
	Err  error
	URLs []string
}

// Open records url.
func (o *OpenerStub) Open(_ context.Context, url string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.URLs = append(o.URLs, url)
	return o.Err
}

// Opened returns the recorded URLs.
func (o *OpenerStub) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.URLs...)
}

// PrinterStub records print jobs.
type PrinterStub struct {
	mu   sync.Mutex
	Err  error
	Jobs []printer.Job
}

// Print records job.
func (p *PrinterStub) Print(_ context.Context, job printer.Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Jobs = append(p.Jobs, job)
	return p.Err
}

// Name identifies the stub.
func (p *PrinterStub) Name() string { return "stub" }

// Printed returns the recorded jobs.
func (p *PrinterStub) Printed() []printer.Job {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]printer.Job(nil), p.Jobs...)
}

// TaskRepositoryStub keeps every saved state of every task.
type TaskRepositoryStub struct {
	mu      sync.Mutex
	SaveErr error
	History []model.TaskRecord
	latest  map[string]model.TaskRecord
}

// Save records task.
func (r *TaskRepositoryStub) Save(_ context.Context, task model.TaskRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.History = append(r.History, task)
	if r.SaveErr != nil {
		return r.SaveErr
	}
	if r.latest == nil {
		r.latest = make(map[string]model.TaskRecord)
	}
	r.latest[task.ID] = task
	return nil
}

// Get returns the last saved state of id.
func (r *TaskRepositoryStub) Get(_ context.Context, id string) (*model.TaskRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.latest[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &task, nil
}

// ListByOrder returns the last saved state of each task of orderID.
func (r *TaskRepositoryStub) ListByOrder(_ context.Context, orderID string, limit int) ([]model.TaskRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []model.TaskRecord
	for _, task := range r.latest {
		if task.OrderID == orderID {
			result = append(result, task)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// States returns the saved states of id in order.
func (r *TaskRepositoryStub) States(id string) []model.TaskState {
	r.mu.Lock()
	defer r.mu.Unlock()
	var states []model.TaskState
	for _, task := range r.History {
		if task.ID == id {
			states = append(states, task.State)
		}
	}
	return states
}

// ActionRecorderStub records finished deliveries.
type ActionRecorderStub struct {
	mu      sync.Mutex
	Actions []string
}

// DocumentAction records the outcome as "action/document/state".
func (r *ActionRecorderStub) DocumentAction(action, document, state string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Actions = append(r.Actions, action+"/"+document+"/"+state)
}

// Recorded returns the outcomes so far.
func (r *ActionRecorderStub) Recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Actions...)
}
