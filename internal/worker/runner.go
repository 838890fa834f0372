package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var (
	// ErrRunnerStopped is returned for jobs submitted after or aborted by Stop.
	ErrRunnerStopped = errors.New("runner stopped")
	// ErrQueueFull is returned when the job queue has no free slot.
	ErrQueueFull = errors.New("job queue full")
)

// Job is a unit of background work. Abort is called instead of Run when the
// job never gets to run.
type Job struct {
	Name  string
	Run   func(ctx context.Context)
	Abort func(err error)
}

// Runner executes jobs on a bounded pool under the service lifetime context.
type Runner struct {
	workers int
	logger  *slog.Logger

	jobs    chan Job
	quit    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

// NewRunner constructs a worker pool with queueSize pending slots.
func NewRunner(workers, queueSize int, logger *slog.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers * 16
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		workers: workers,
		logger:  logger,
		jobs:    make(chan Job, queueSize),
		quit:    make(chan struct{}),
	}
}

// Start launches the workers. Jobs run under ctx; Stop does not cancel it.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started || r.stopped {
		return
	}
	r.started = true

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(ctx)
	}
}

// Submit queues job without blocking.
func (r *Runner) Submit(job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return ErrRunnerStopped
	}

	select {
	case r.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Stop lets running jobs finish, waits for the workers and aborts queued jobs.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.stopped {
		r.stopped = true
		close(r.quit)
	}
	r.mu.Unlock()

	r.wg.Wait()

	for {
		select {
		case job := <-r.jobs:
			r.abort(job)
		default:
			return
		}
	}
}

func (r *Runner) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.quit:
			return
		case job := <-r.jobs:
			select {
			case <-r.quit:
				r.abort(job)
				return
			default:
			}
			if ctx.Err() != nil {
				r.abort(job)
				return
			}
			r.run(ctx, job)
		}
	}
}

func (r *Runner) abort(job Job) {
	r.logger.Warn("aborting queued job", slog.String("job", job.Name))
	if job.Abort != nil {
		job.Abort(ErrRunnerStopped)
	}
}

func (r *Runner) run(ctx context.Context, job Job) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("job panicked", slog.String("job", job.Name), slog.Any("panic", rec))
			if job.Abort != nil {
				job.Abort(errors.New("job panicked"))
			}
		}
	}()
	job.Run(ctx)
}
