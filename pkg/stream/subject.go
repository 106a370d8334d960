package stream

import "sync"

// Subject is a multicast Producer that is also an Observer. Values pushed
// with Next reach every current subscriber in subscription order.
type Subject[T any] struct {
	mu        sync.Mutex
	observers []*guard[T]
	done      bool
	err       error
}

var (
	_ Producer[int] = (*Subject[int])(nil)
	_ Observer[int] = (*Subject[int])(nil)
)

// NewSubject creates a Subject with no subscribers.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe implements Producer. Subscribing to a terminated subject
// replays the terminal notification.
func (s *Subject[T]) Subscribe(o Observer[T]) (Subscription, error) {
	sub, g, terminated, err := s.add(o)
	if terminated {
		if err != nil {
			return sub, g.Error(err)
		}
		return sub, g.Complete()
	}
	return sub, nil
}

func (s *Subject[T]) add(o Observer[T]) (*Sub, *guard[T], bool, error) {
	sub := NewSub()
	g := newGuard(o, sub)

	s.mu.Lock()
	if s.done {
		err := s.err
		s.mu.Unlock()
		return sub, g, true, err
	}
	s.observers = append(s.observers, g)
	s.mu.Unlock()

	sub.Add(func() { s.remove(g) })
	return sub, g, false, nil
}

func (s *Subject[T]) remove(g *guard[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.observers {
		if existing == g {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// snapshot copies the observer list so delivery never holds the lock.
func (s *Subject[T]) snapshot() []*guard[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return nil
	}
	observers := make([]*guard[T], len(s.observers))
	copy(observers, s.observers)
	return observers
}

// Next delivers v to every subscriber. Delivery stops at the first
// subscriber error, which is returned.
func (s *Subject[T]) Next(v T) error {
	for _, o := range s.snapshot() {
		if err := o.Next(v); err != nil {
			return err
		}
	}
	return nil
}

// Error terminates the subject and every subscriber with err.
func (s *Subject[T]) Error(err error) error {
	observers := s.terminate(err)
	for _, o := range observers {
		if oerr := o.Error(err); oerr != nil {
			return oerr
		}
	}
	return nil
}

// Complete terminates the subject and every subscriber normally.
func (s *Subject[T]) Complete() error {
	observers := s.terminate(nil)
	for _, o := range observers {
		if err := o.Complete(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Subject[T]) terminate(err error) []*guard[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return nil
	}
	s.done = true
	s.err = err
	observers := s.observers
	s.observers = nil
	return observers
}

// Len returns the number of active subscribers.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers)
}

// BehaviorSubject is a Subject that holds a current value and delivers it
// to every new subscriber before any later value.
type BehaviorSubject[T any] struct {
	subject Subject[T]

	valueMu sync.RWMutex
	value   T
}

var _ Producer[int] = (*BehaviorSubject[int])(nil)

// NewBehaviorSubject creates a BehaviorSubject holding initial.
func NewBehaviorSubject[T any](initial T) *BehaviorSubject[T] {
	return &BehaviorSubject[T]{value: initial}
}

// Value returns the current value.
func (b *BehaviorSubject[T]) Value() T {
	b.valueMu.RLock()
	defer b.valueMu.RUnlock()
	return b.value
}

// Subscribe implements Producer.
func (b *BehaviorSubject[T]) Subscribe(o Observer[T]) (Subscription, error) {
	sub, g, terminated, err := b.subject.add(o)
	if terminated {
		if err != nil {
			return sub, g.Error(err)
		}
		return sub, g.Complete()
	}
	return sub, g.Next(b.Value())
}

// Next stores v as the current value and delivers it.
func (b *BehaviorSubject[T]) Next(v T) error {
	b.valueMu.Lock()
	b.value = v
	b.valueMu.Unlock()
	return b.subject.Next(v)
}

// Complete terminates every subscriber normally.
func (b *BehaviorSubject[T]) Complete() error {
	return b.subject.Complete()
}

// Len returns the number of active subscribers.
func (b *BehaviorSubject[T]) Len() int {
	return b.subject.Len()
}
