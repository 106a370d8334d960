package component

import (
	"sync"
	"time"

	"github.com/vango-dev/rxview/pkg/stream"
	"github.com/vango-dev/rxview/pkg/vdom"
)

// renders records every view passed to a RenderFunc.
type renders struct {
	mu    sync.Mutex
	views []*vdom.VNode
	err   error
}

func (r *renders) fn(_ *Instance, v *vdom.VNode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
	return r.err
}

func (r *renders) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *renders) last() *vdom.VNode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.views) == 0 {
		return nil
	}
	return r.views[len(r.views)-1]
}

// countingSource wraps a producer and counts subscriptions and releases.
type countingSource[T any] struct {
	src          stream.Producer[T]
	subscribed   int
	unsubscribed int
}

func (c *countingSource[T]) Subscribe(o stream.Observer[T]) (stream.Subscription, error) {
	c.subscribed++
	sub, err := c.src.Subscribe(o)
	return stream.NewSub(sub.Unsubscribe, func() { c.unsubscribed++ }), err
}

// queue is a stream.Scheduler that holds tasks until flushed.
type queue struct {
	mu    sync.Mutex
	tasks []func() error
}

func (q *queue) Post(task func() error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
}

func (q *queue) flush() error {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, task := range tasks {
		if err := task(); err != nil {
			return err
		}
	}
	return nil
}

// recorder is an in-memory Recorder.
type recorder struct {
	mu        sync.Mutex
	mounts    int
	unmounts  int
	renders   int
	failures  map[string]int
	teardowns []time.Duration
}

func (r *recorder) Mounted(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mounts++
}

func (r *recorder) Unmounted(_ string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unmounts++
	r.teardowns = append(r.teardowns, d)
}

func (r *recorder) Rendered(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renders++
}

func (r *recorder) EmissionFailed(_ string, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures == nil {
		r.failures = make(map[string]int)
	}
	r.failures[kind]++
}

func staticView(text string) *Definition {
	return New("static", func(*Interactions, *Properties) any {
		return stream.Of(vdom.Div(vdom.Text(text)))
	})
}
