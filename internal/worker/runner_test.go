package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/polkiloo/posdocs/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(0, 0, testLogger())
	if r.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", r.workers)
	}
	if cap(r.jobs) != 16 {
		t.Fatalf("expected queue default to 16, got %d", cap(r.jobs))
	}
}

func TestNewRunnerFromConfig(t *testing.T) {
	r := newRunner(&config.Config{WorkerPoolSize: 3}, testLogger())
	if r.workers != 3 {
		t.Fatalf("expected 3 workers, got %d", r.workers)
	}
}

func TestRunnerRunsJobsConcurrently(t *testing.T) {
	r := NewRunner(4, 8, testLogger())
	r.Start(context.Background())
	defer r.Stop()

	var (
		running int32
		peak    int32
		wg      sync.WaitGroup
	)
	release := make(chan struct{})

	for i := 0; i < 4; i++ {
		wg.Add(1)
		err := r.Submit(Job{Name: "job", Run: func(ctx context.Context) {
			defer wg.Done()
			n := atomic.AddInt32(&running, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			<-release
			atomic.AddInt32(&running, -1)
		}})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	deadline := time.After(time.Second)
	for atomic.LoadInt32(&peak) < 4 {
		select {
		case <-deadline:
			t.Fatalf("expected 4 concurrent jobs, peak %d", atomic.LoadInt32(&peak))
		case <-time.After(5 * time.Millisecond):
		}
	}
	close(release)
	wg.Wait()
}

func TestRunnerStopDrainsRunningAndAbortsQueued(t *testing.T) {
	r := NewRunner(1, 4, testLogger())
	r.Start(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	var ctxErr error
	if err := r.Submit(Job{Name: "blocking", Run: func(ctx context.Context) {
		close(started)
		<-release
		ctxErr = ctx.Err()
		finished.Store(true)
	}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	<-started

	var aborted []error
	var mu sync.Mutex
	for i := 0; i < 2; i++ {
		if err := r.Submit(Job{Name: "queued", Run: func(context.Context) {
			t.Error("queued job must not run after stop")
		}, Abort: func(err error) {
			mu.Lock()
			aborted = append(aborted, err)
			mu.Unlock()
		}}); err != nil {
			t.Fatalf("submit queued: %v", err)
		}
	}

	stopped := make(chan struct{})
	go func() {
		r.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("stop returned before the running job finished")
	case <-time.After(20 * time.Millisecond):
	}
	close(release)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop did not return after the running job finished")
	}

	if !finished.Load() || ctxErr != nil {
		t.Fatalf("expected running job to finish with a live context, got finished=%v err=%v", finished.Load(), ctxErr)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(aborted) != 2 {
		t.Fatalf("expected 2 aborted jobs, got %d", len(aborted))
	}
	for _, err := range aborted {
		if !errors.Is(err, ErrRunnerStopped) {
			t.Fatalf("unexpected abort error %v", err)
		}
	}

	if err := r.Submit(Job{Run: func(context.Context) {}}); !errors.Is(err, ErrRunnerStopped) {
		t.Fatalf("expected ErrRunnerStopped after stop, got %v", err)
	}
}

func TestRunnerQueueFull(t *testing.T) {
	r := NewRunner(1, 1, testLogger())
	if err := r.Submit(Job{Run: func(context.Context) {}}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := r.Submit(Job{Run: func(context.Context) {}}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	r.Stop()
}

func TestRunnerRecoversPanics(t *testing.T) {
	r := NewRunner(1, 2, testLogger())
	r.Start(context.Background())
	defer r.Stop()

	aborted := make(chan error, 1)
	_ = r.Submit(Job{Name: "panics", Run: func(context.Context) { panic("boom") }, Abort: func(err error) { aborted <- err }})

	select {
	case err := <-aborted:
		if err == nil {
			t.Fatal("expected abort error")
		}
	case <-time.After(time.Second):
		t.Fatal("expected panic to abort the job")
	}

	done := make(chan struct{})
	_ = r.Submit(Job{Run: func(context.Context) { close(done) }})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive panic")
	}
}
