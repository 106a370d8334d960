package stream

import "time"

// Of emits the given values in order, then completes.
func Of[T any](values ...T) Producer[T] {
	return FromSlice(values)
}

// FromSlice emits each element of values in order, then completes.
func FromSlice[T any](values []T) Producer[T] {
	return Create(func(o Observer[T], sub *Sub) error {
		for _, v := range values {
			if sub.Closed() {
				return nil
			}
			if err := o.Next(v); err != nil {
				return err
			}
		}
		return o.Complete()
	})
}

// Empty completes immediately without emitting.
func Empty[T any]() Producer[T] {
	return Create(func(o Observer[T], _ *Sub) error {
		return o.Complete()
	})
}

// Never neither emits nor terminates.
func Never[T any]() Producer[T] {
	return Create(func(Observer[T], *Sub) error {
		return nil
	})
}

// Throw terminates immediately with err.
func Throw[T any](err error) Producer[T] {
	return Create(func(o Observer[T], _ *Sub) error {
		return o.Error(err)
	})
}

// Interval emits 0, 1, 2, ... every d. Ticks are delivered through sched,
// so a tick that is already queued when the subscription closes is dropped.
func Interval(sched Scheduler, d time.Duration) Producer[int] {
	return Create(func(o Observer[int], sub *Sub) error {
		ticker := time.NewTicker(d)
		stop := make(chan struct{})
		sub.Add(func() {
			ticker.Stop()
			close(stop)
		})

		go func() {
			n := 0
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					i := n
					n++
					sched.Post(func() error {
						return o.Next(i)
					})
				}
			}
		}()
		return nil
	})
}
