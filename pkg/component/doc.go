// Package component is the lifecycle engine for reactive components.
//
// A component is a Definition: a function from an interaction bus and a
// property stream to a view producer, or to an Output that also declares
// named event producers and a disposal action. The engine calls the
// function exactly once per mount, subscribes to the view, forwards every
// emitted view to the host through a RenderFunc, and routes each declared
// event to the listener its parent passed under the matching "on<Name>"
// property.
//
// # Lifecycle
//
// An Instance moves through Unmounted, Mounting, Live, TearingDown and
// Disposed. Update pushes new properties without resubscribing to the view.
// Unmount runs four steps in order and runs all of them even when one
// fails:
//
//  1. unsubscribe the view
//  2. unsubscribe every event output
//  3. run the disposal action
//  4. close the interaction bus
//
// Step failures are reported together as a *DisposalError once every step
// has run. Unmount is idempotent.
//
// # Errors
//
// Nothing is swallowed. A view producer that fails surfaces as a
// *ViewEmissionError from whatever call triggered the emission, an event
// producer or listener failure as an *EventEmissionError. A definition that
// returns something the engine cannot use fails Mount with an
// *InvalidDefinitionError before any subscription exists.
//
// # Concurrency
//
// An instance belongs to one event loop. Asynchronous producers hop onto
// that loop through a stream.Scheduler; deliveries that arrive after
// Unmount started are dropped.
package component
