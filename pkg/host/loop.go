package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/vango-dev/rxview/pkg/stream"
)

// Loop is a cooperative event loop. Tasks are posted from any goroutine and
// run one at a time, in posting order, on the goroutine that drives the
// loop.
type Loop struct {
	mu    sync.Mutex
	tasks []func() error
	wake  chan struct{}

	onError func(error)
	logger  *slog.Logger
}

var _ stream.Scheduler = (*Loop)(nil)

// PanicError is the error a task that panicked fails with.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("rxview: task panicked: %v", e.Value)
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithErrorHandler sets the function Run calls with each failed task's
// error. Default: log at error level.
func WithErrorHandler(fn func(error)) LoopOption {
	return func(l *Loop) {
		l.onError = fn
	}
}

// WithLoopLogger sets the loop's logger.
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// NewLoop creates an idle loop.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{wake: make(chan struct{}, 1)}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default().With("component", "loop")
	}
	if l.onError == nil {
		l.onError = func(err error) {
			l.logger.Error("task failed", "error", err)
		}
	}
	return l
}

// Post queues task. It is safe to call from any goroutine, including from
// inside a running task.
func (l *Loop) Post(task func() error) {
	if task == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

func (l *Loop) next() (func() error, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) == 0 {
		return nil, false
	}
	task := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return task, true
}

// RunPending runs queued tasks on the calling goroutine until the queue is
// empty, including tasks posted while it runs. Task errors are joined and
// returned.
func (l *Loop) RunPending() error {
	var errs []error
	for {
		task, ok := l.next()
		if !ok {
			return errors.Join(errs...)
		}
		if err := l.safeRun(task); err != nil {
			errs = append(errs, err)
		}
	}
}

// Run drives the loop until ctx is done. Task errors go to the error
// handler; a task that panics fails with a *PanicError and the loop keeps
// running.
func (l *Loop) Run(ctx context.Context) error {
	for {
		for {
			task, ok := l.next()
			if !ok {
				break
			}
			if err := l.safeRun(task); err != nil {
				l.onError(err)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// safeRun runs task, turning a panic into a *PanicError.
func (l *Loop) safeRun(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			l.logger.Error("task panic",
				"panic", r,
				"stack", string(stack))
			err = &PanicError{Value: r, Stack: stack}
		}
	}()
	return task()
}

// Do runs fn on the loop and waits for its result. It must not be called
// from a task, which would wait on itself. A panic in fn is returned as a
// *PanicError.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	l.Post(func() error {
		done <- l.safeRun(fn)
		return nil
	})

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
