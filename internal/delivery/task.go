package delivery

import (
	"sync"

	"github.com/polkiloo/posdocs/internal/domain/model"
)

// Task tracks one fire-and-forget delivery. Done is closed once the task
// reaches a terminal state.
type Task struct {
	mu     sync.Mutex
	record model.TaskRecord
	err    error
	done   chan struct{}
}

func newTask(record model.TaskRecord) *Task {
	return &Task{record: record, done: make(chan struct{})}
}

// ID returns the task id.
func (t *Task) ID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record.ID
}

// Done is closed when the task succeeds or fails.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the failure cause once Done is closed.
func (t *Task) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Record returns a snapshot of the task state.
func (t *Task) Record() model.TaskRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record
}

func (t *Task) update(fn func(*model.TaskRecord)) model.TaskRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.record)
	return t.record
}

func (t *Task) finish(err error, fn func(*model.TaskRecord)) (model.TaskRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.record.State.Terminal() {
		return t.record, false
	}
	t.err = err
	fn(&t.record)
	return t.record, true
}

func (t *Task) markDone() {
	close(t.done)
}
