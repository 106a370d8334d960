package stream

import "sync"

// Controlled is a hot source fed from a fixed list of values. Nothing is
// emitted until Request is called, which makes the timing of every emission
// explicit in tests and demos. Values requested while nobody is subscribed
// are consumed and lost.
type Controlled[T any] struct {
	subject *Subject[T]

	mu      sync.Mutex
	pending []T
}

var _ Producer[int] = (*Controlled[int])(nil)

// NewControlled creates a Controlled source over values.
func NewControlled[T any](values ...T) *Controlled[T] {
	pending := make([]T, len(values))
	copy(pending, values)
	return &Controlled[T]{
		subject: NewSubject[T](),
		pending: pending,
	}
}

// Subscribe implements Producer.
func (c *Controlled[T]) Subscribe(o Observer[T]) (Subscription, error) {
	return c.subject.Subscribe(o)
}

// Request emits the next n values. The first subscriber error stops the
// request and is returned to the caller.
func (c *Controlled[T]) Request(n int) error {
	for i := 0; i < n; i++ {
		v, ok := c.pop()
		if !ok {
			return nil
		}
		if err := c.subject.Next(v); err != nil {
			return err
		}
	}
	return nil
}

// Fail terminates every subscriber with err and returns the first
// subscriber error.
func (c *Controlled[T]) Fail(err error) error {
	return c.subject.Error(err)
}

func (c *Controlled[T]) pop() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	if len(c.pending) == 0 {
		return zero, false
	}
	v := c.pending[0]
	c.pending = c.pending[1:]
	return v, true
}

// Remaining returns how many values have not been requested yet.
func (c *Controlled[T]) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Observers returns the number of active subscribers.
func (c *Controlled[T]) Observers() int {
	return c.subject.Len()
}
