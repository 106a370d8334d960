package component

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/rxview/pkg/stream"
	"github.com/vango-dev/rxview/pkg/vdom"
)

const (
	busOpen int32 = iota
	busClosing
	busClosed
)

// Interactions is the named event bus of one component instance. Inner
// nodes publish through Listener handles; the definition observes the
// names it cares about with Get.
//
// Dispatch is synchronous. A dispatch made while another is still being
// delivered is queued and delivered after it, by the outermost call.
type Interactions struct {
	state atomic.Int32

	mu        sync.Mutex
	subs      map[string][]*busEntry
	listeners map[string]vdom.HandlerFunc
	queue     []busMessage
	draining  bool
}

type busEntry struct {
	o   stream.Observer[any]
	sub *stream.Sub
}

type busMessage struct {
	name    string
	payload any
}

func newInteractions() *Interactions {
	return &Interactions{
		subs:      make(map[string][]*busEntry),
		listeners: make(map[string]vdom.HandlerFunc),
	}
}

// Listener returns the write endpoint for name. The same function is
// returned for every call with the same name.
func (in *Interactions) Listener(name string) vdom.HandlerFunc {
	in.mu.Lock()
	defer in.mu.Unlock()

	if fn, ok := in.listeners[name]; ok {
		return fn
	}
	fn := vdom.HandlerFunc(func(payload any) error {
		return in.Dispatch(name, payload)
	})
	in.listeners[name] = fn
	return fn
}

// Get returns a producer of every payload dispatched under name after the
// subscription starts. Subscriptions still active when the bus closes are
// released without a completion.
func (in *Interactions) Get(name string) stream.Producer[any] {
	return stream.Create(func(o stream.Observer[any], sub *stream.Sub) error {
		e := &busEntry{o: o, sub: sub}

		in.mu.Lock()
		if in.state.Load() == busClosed {
			in.mu.Unlock()
			sub.Unsubscribe()
			return nil
		}
		in.subs[name] = append(in.subs[name], e)
		in.mu.Unlock()

		sub.Add(func() { in.remove(name, e) })
		return nil
	})
}

// Dispatch delivers payload to every subscriber of name, in subscription
// order. Subscriber errors are joined and returned; delivery to the other
// subscribers continues. After the bus is closed Dispatch does nothing.
// While the owning instance is being torn down it returns
// ErrDispatchDuringTeardown.
func (in *Interactions) Dispatch(name string, payload any) error {
	switch in.state.Load() {
	case busClosing:
		return ErrDispatchDuringTeardown
	case busClosed:
		return nil
	}

	in.mu.Lock()
	in.queue = append(in.queue, busMessage{name: name, payload: payload})
	if in.draining {
		in.mu.Unlock()
		return nil
	}
	in.draining = true
	in.mu.Unlock()

	defer func() {
		in.mu.Lock()
		in.queue = nil
		in.draining = false
		in.mu.Unlock()
	}()

	var errs []error
	for {
		in.mu.Lock()
		if len(in.queue) == 0 || in.state.Load() != busOpen {
			in.mu.Unlock()
			break
		}
		msg := in.queue[0]
		in.queue = in.queue[1:]
		entries := make([]*busEntry, len(in.subs[msg.name]))
		copy(entries, in.subs[msg.name])
		in.mu.Unlock()

		for _, e := range entries {
			if err := e.o.Next(msg.payload); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Subscribers returns the number of live subscriptions to name.
func (in *Interactions) Subscribers(name string) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.subs[name])
}

// Closed reports whether the bus has been closed.
func (in *Interactions) Closed() bool {
	return in.state.Load() == busClosed
}

func (in *Interactions) remove(name string, e *busEntry) {
	in.mu.Lock()
	defer in.mu.Unlock()

	entries := in.subs[name]
	for i, existing := range entries {
		if existing == e {
			in.subs[name] = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}
	if len(in.subs[name]) == 0 {
		delete(in.subs, name)
	}
}

// beginClose rejects synchronous dispatch until close.
func (in *Interactions) beginClose() {
	in.state.CompareAndSwap(busOpen, busClosing)
}

// close releases every subscription and turns listeners into no-ops.
func (in *Interactions) close() error {
	in.mu.Lock()
	in.state.Store(busClosed)
	var entries []*busEntry
	for _, list := range in.subs {
		entries = append(entries, list...)
	}
	in.subs = make(map[string][]*busEntry)
	in.queue = nil
	in.mu.Unlock()

	for _, e := range entries {
		e.sub.Unsubscribe()
	}
	return nil
}
