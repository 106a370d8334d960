package stream

import "sync"

// operate subscribes to src with the observer built by wire, tying the
// inner subscription to the outer one.
func operate[T, U any](src Producer[T], wire func(o Observer[U]) Observer[T]) Producer[U] {
	return Create(func(o Observer[U], sub *Sub) error {
		inner, err := src.Subscribe(wire(o))
		sub.AddSubscription(inner)
		return err
	})
}

// Map transforms each value with f.
func Map[T, U any](src Producer[T], f func(T) U) Producer[U] {
	return operate(src, func(o Observer[U]) Observer[T] {
		return Funcs[T]{
			OnNext:     func(v T) error { return o.Next(f(v)) },
			OnError:    o.Error,
			OnComplete: o.Complete,
		}
	})
}

// MapErr transforms each value with f. An error from f is returned to the
// emitter that produced the value; the stream itself stays open.
func MapErr[T, U any](src Producer[T], f func(T) (U, error)) Producer[U] {
	return operate(src, func(o Observer[U]) Observer[T] {
		return Funcs[T]{
			OnNext: func(v T) error {
				out, err := f(v)
				if err != nil {
					return err
				}
				return o.Next(out)
			},
			OnError:    o.Error,
			OnComplete: o.Complete,
		}
	})
}

// Filter forwards only the values for which keep returns true.
func Filter[T any](src Producer[T], keep func(T) bool) Producer[T] {
	return operate(src, func(o Observer[T]) Observer[T] {
		return Funcs[T]{
			OnNext: func(v T) error {
				if !keep(v) {
					return nil
				}
				return o.Next(v)
			},
			OnError:    o.Error,
			OnComplete: o.Complete,
		}
	})
}

// Tap calls f with each value before forwarding it.
func Tap[T any](src Producer[T], f func(T)) Producer[T] {
	return operate(src, func(o Observer[T]) Observer[T] {
		return Funcs[T]{
			OnNext: func(v T) error {
				f(v)
				return o.Next(v)
			},
			OnError:    o.Error,
			OnComplete: o.Complete,
		}
	})
}

// Scan emits the running accumulation of f over the values, starting from
// seed. Each subscription keeps its own accumulator.
func Scan[T, A any](src Producer[T], seed A, f func(A, T) A) Producer[A] {
	return operate(src, func(o Observer[A]) Observer[T] {
		acc := seed
		return Funcs[T]{
			OnNext: func(v T) error {
				acc = f(acc, v)
				return o.Next(acc)
			},
			OnError:    o.Error,
			OnComplete: o.Complete,
		}
	})
}

// Take emits the first n values, then completes.
func Take[T any](src Producer[T], n int) Producer[T] {
	if n <= 0 {
		return Empty[T]()
	}
	return operate(src, func(o Observer[T]) Observer[T] {
		seen := 0
		return Funcs[T]{
			OnNext: func(v T) error {
				seen++
				if err := o.Next(v); err != nil {
					return err
				}
				if seen == n {
					return o.Complete()
				}
				return nil
			},
			OnError:    o.Error,
			OnComplete: o.Complete,
		}
	})
}

// Distinct drops values equal to the previous one.
func Distinct[T comparable](src Producer[T]) Producer[T] {
	return DistinctFunc(src, func(a, b T) bool { return a == b })
}

// DistinctFunc drops values that equal reports as unchanged.
func DistinctFunc[T any](src Producer[T], equal func(a, b T) bool) Producer[T] {
	return operate(src, func(o Observer[T]) Observer[T] {
		var (
			last T
			has  bool
		)
		return Funcs[T]{
			OnNext: func(v T) error {
				if has && equal(last, v) {
					return nil
				}
				last, has = v, true
				return o.Next(v)
			},
			OnError:    o.Error,
			OnComplete: o.Complete,
		}
	})
}

// StartWith emits values before the values of src.
func StartWith[T any](src Producer[T], values ...T) Producer[T] {
	return Concat(FromSlice(values), src)
}

// Concat subscribes to each source in turn, moving to the next one when the
// current one completes.
func Concat[T any](sources ...Producer[T]) Producer[T] {
	return Create(func(o Observer[T], sub *Sub) error {
		var subscribeAt func(i int) error
		subscribeAt = func(i int) error {
			if i >= len(sources) {
				return o.Complete()
			}
			if sub.Closed() {
				return nil
			}
			inner, err := sources[i].Subscribe(Funcs[T]{
				OnNext:     o.Next,
				OnError:    o.Error,
				OnComplete: func() error { return subscribeAt(i + 1) },
			})
			sub.AddSubscription(inner)
			return err
		}
		return subscribeAt(0)
	})
}

// Merge interleaves the values of all sources. It completes once every
// source has completed.
func Merge[T any](sources ...Producer[T]) Producer[T] {
	if len(sources) == 0 {
		return Empty[T]()
	}
	return Create(func(o Observer[T], sub *Sub) error {
		remaining := len(sources)
		for _, src := range sources {
			inner, err := src.Subscribe(Funcs[T]{
				OnNext:  o.Next,
				OnError: o.Error,
				OnComplete: func() error {
					remaining--
					if remaining == 0 {
						return o.Complete()
					}
					return nil
				},
			})
			sub.AddSubscription(inner)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CombineLatest emits f(a, b) whenever either source emits, once both have
// emitted at least once.
func CombineLatest[A, B, R any](a Producer[A], b Producer[B], f func(A, B) R) Producer[R] {
	return Create(func(o Observer[R], sub *Sub) error {
		var (
			lastA      A
			lastB      B
			hasA, hasB bool
			completed  int
		)
		complete := func() error {
			completed++
			if completed == 2 {
				return o.Complete()
			}
			return nil
		}

		subA, err := a.Subscribe(Funcs[A]{
			OnNext: func(v A) error {
				lastA, hasA = v, true
				if !hasB {
					return nil
				}
				return o.Next(f(lastA, lastB))
			},
			OnError:    o.Error,
			OnComplete: complete,
		})
		sub.AddSubscription(subA)
		if err != nil {
			return err
		}

		subB, err := b.Subscribe(Funcs[B]{
			OnNext: func(v B) error {
				lastB, hasB = v, true
				if !hasA {
					return nil
				}
				return o.Next(f(lastA, lastB))
			},
			OnError:    o.Error,
			OnComplete: complete,
		})
		sub.AddSubscription(subB)
		return err
	})
}

// WithLatestFrom emits f(v, latest) for each value v of src, where latest is
// the most recent value of other. Values of src that arrive before other has
// emitted are dropped.
func WithLatestFrom[T, U, R any](src Producer[T], other Producer[U], f func(T, U) R) Producer[R] {
	return Create(func(o Observer[R], sub *Sub) error {
		var (
			latest U
			has    bool
		)
		otherSub, err := other.Subscribe(Funcs[U]{
			OnNext: func(v U) error {
				latest, has = v, true
				return nil
			},
			OnError: o.Error,
		})
		sub.AddSubscription(otherSub)
		if err != nil {
			return err
		}

		srcSub, err := src.Subscribe(Funcs[T]{
			OnNext: func(v T) error {
				if !has {
					return nil
				}
				return o.Next(f(v, latest))
			},
			OnError:    o.Error,
			OnComplete: o.Complete,
		})
		sub.AddSubscription(srcSub)
		return err
	})
}

// Using acquires a resource for the lifetime of each subscription. The
// resource is released when the subscription to the produced stream ends.
func Using[T any](resource func() Subscription, factory func() Producer[T]) Producer[T] {
	return Create(func(o Observer[T], sub *Sub) error {
		sub.AddSubscription(resource())
		inner, err := factory().Subscribe(o)
		sub.AddSubscription(inner)
		return err
	})
}

// ShareReplay shares one subscription to src among all subscribers and
// replays the latest value to late subscribers. The source subscription is
// released when the last subscriber leaves.
func ShareReplay[T any](src Producer[T]) Producer[T] {
	var (
		mu      sync.Mutex
		subject *Subject[T]
		conn    Subscription
		last    T
		has     bool
		refs    int
	)

	return ProducerFunc[T](func(o Observer[T]) (Subscription, error) {
		mu.Lock()
		if subject == nil {
			subject = NewSubject[T]()
		}
		current := subject
		replay, value := has, last
		refs++
		first := refs == 1
		mu.Unlock()

		inner, err := current.Subscribe(o)
		sub := NewSub(func() {
			mu.Lock()
			refs--
			var release Subscription
			if refs == 0 {
				release = conn
				conn = nil
				subject = nil
				has = false
			}
			mu.Unlock()
			if release != nil {
				release.Unsubscribe()
			}
		})
		sub.AddSubscription(inner)
		if err != nil {
			return sub, err
		}

		if replay {
			if err := o.Next(value); err != nil {
				return sub, err
			}
		}

		if first {
			source, err := src.Subscribe(Funcs[T]{
				OnNext: func(v T) error {
					mu.Lock()
					last, has = v, true
					mu.Unlock()
					return current.Next(v)
				},
				OnError:    current.Error,
				OnComplete: current.Complete,
			})
			mu.Lock()
			if subject == current {
				conn = source
				source = nil
			}
			mu.Unlock()
			if source != nil {
				source.Unsubscribe()
			}
			if err != nil {
				return sub, err
			}
		}
		return sub, nil
	})
}
