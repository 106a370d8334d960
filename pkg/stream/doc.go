// Package stream provides the minimal producer contract the component
// engine consumes, plus the sources and operators component definitions are
// written with.
//
// # Contract
//
// A Producer delivers values to an Observer until the Subscription returned
// by Subscribe is unsubscribed or the producer terminates:
//
//	sub, err := producer.Subscribe(stream.NextFunc(func(v int) error {
//	    fmt.Println(v)
//	    return nil
//	}))
//
// Emissions are synchronous. An error returned by an observer travels back
// to whoever triggered the emission, so a value is fully propagated before
// its source moves on to the next one. Subscribe always returns a usable
// Subscription; a non-nil error reports a failure raised by an emission that
// happened during the Subscribe call itself.
//
// # Unsubscription
//
// Unsubscribe is idempotent. Once it returns, no further value reaches the
// observer, including emissions that were already queued on a Scheduler
// when the subscription was closed.
//
// # Asynchronous sources
//
// Sources backed by timers or I/O never call observers from their own
// goroutine. They post onto a Scheduler (typically the owning tree's event
// loop) so delivery stays serialized.
package stream
