package stream

import "sync/atomic"

// Observer receives the values of a Producer.
type Observer[T any] interface {
	// Next delivers one value. A returned error propagates back to the
	// caller that triggered the emission.
	Next(value T) error

	// Error terminates the stream with a failure.
	Error(err error) error

	// Complete terminates the stream normally.
	Complete() error
}

// Producer is a lazy source of values.
type Producer[T any] interface {
	Subscribe(o Observer[T]) (Subscription, error)
}

// ProducerFunc adapts a function to the Producer interface.
type ProducerFunc[T any] func(o Observer[T]) (Subscription, error)

// Subscribe implements Producer.
func (f ProducerFunc[T]) Subscribe(o Observer[T]) (Subscription, error) {
	return f(o)
}

// Funcs adapts plain functions to an Observer.
// A nil OnNext ignores values, a nil OnError hands the error back to the
// emitter and a nil OnComplete does nothing.
type Funcs[T any] struct {
	OnNext     func(T) error
	OnError    func(error) error
	OnComplete func() error
}

// Next implements Observer.
func (f Funcs[T]) Next(v T) error {
	if f.OnNext == nil {
		return nil
	}
	return f.OnNext(v)
}

// Error implements Observer.
func (f Funcs[T]) Error(err error) error {
	if f.OnError == nil {
		return err
	}
	return f.OnError(err)
}

// Complete implements Observer.
func (f Funcs[T]) Complete() error {
	if f.OnComplete == nil {
		return nil
	}
	return f.OnComplete()
}

// NextFunc returns an Observer that only handles values.
func NextFunc[T any](fn func(T) error) Observer[T] {
	return Funcs[T]{OnNext: fn}
}

// Create builds a Producer from a subscribe function. The function receives
// an observer that drops every delivery once sub is closed or the stream has
// terminated, and the subscription to attach teardown logic to.
func Create[T any](fn func(o Observer[T], sub *Sub) error) Producer[T] {
	return ProducerFunc[T](func(dst Observer[T]) (Subscription, error) {
		sub := NewSub()
		g := newGuard(dst, sub)
		err := fn(g, sub)
		return sub, err
	})
}

// guard enforces the delivery contract for one subscription: nothing after
// Unsubscribe, nothing after a terminal notification.
type guard[T any] struct {
	dst  Observer[T]
	sub  *Sub
	done atomic.Bool
}

func newGuard[T any](dst Observer[T], sub *Sub) *guard[T] {
	return &guard[T]{dst: dst, sub: sub}
}

func (g *guard[T]) Next(v T) error {
	if g.done.Load() || g.sub.Closed() {
		return nil
	}
	return g.dst.Next(v)
}

func (g *guard[T]) Error(err error) error {
	if g.sub.Closed() || g.done.Swap(true) {
		return nil
	}
	result := g.dst.Error(err)
	g.sub.Unsubscribe()
	return result
}

func (g *guard[T]) Complete() error {
	if g.sub.Closed() || g.done.Swap(true) {
		return nil
	}
	result := g.dst.Complete()
	g.sub.Unsubscribe()
	return result
}
