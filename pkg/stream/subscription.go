package stream

import (
	"sync"
	"sync/atomic"
)

// Subscription is the handle returned by Producer.Subscribe.
type Subscription interface {
	// Unsubscribe stops delivery and releases the subscription's resources.
	// Calling it more than once has no additional effect.
	Unsubscribe()

	// Closed reports whether the subscription has been released.
	Closed() bool
}

// Sub is a composite Subscription. Teardown functions run once, in reverse
// order of registration, on the first call to Unsubscribe.
type Sub struct {
	closed atomic.Bool

	mu        sync.Mutex
	teardowns []func()
}

var _ Subscription = (*Sub)(nil)

// NewSub creates an open subscription with optional teardown functions.
func NewSub(teardown ...func()) *Sub {
	s := &Sub{}
	for _, fn := range teardown {
		s.Add(fn)
	}
	return s
}

// Closed reports whether Unsubscribe has been called.
func (s *Sub) Closed() bool {
	return s.closed.Load()
}

// Add registers a teardown function. If the subscription is already closed
// the function runs immediately.
func (s *Sub) Add(fn func()) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		fn()
		return
	}
	s.teardowns = append(s.teardowns, fn)
	s.mu.Unlock()
}

// AddSubscription ties child to this subscription's lifetime.
func (s *Sub) AddSubscription(child Subscription) {
	if child == nil {
		return
	}
	s.Add(child.Unsubscribe)
}

// Unsubscribe closes the subscription and runs its teardowns.
func (s *Sub) Unsubscribe() {
	if s.closed.Swap(true) {
		return
	}

	s.mu.Lock()
	teardowns := s.teardowns
	s.teardowns = nil
	s.mu.Unlock()

	for i := len(teardowns) - 1; i >= 0; i-- {
		teardowns[i]()
	}
}

// ClosedSub returns a subscription that is already released.
func ClosedSub() Subscription {
	s := &Sub{}
	s.closed.Store(true)
	return s
}
