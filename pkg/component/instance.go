package component

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/rxview/pkg/stream"
	"github.com/vango-dev/rxview/pkg/vdom"
)

// State is the lifecycle state of an Instance.
type State int32

const (
	StateUnmounted State = iota
	StateMounting
	StateLive
	StateTearingDown
	StateDisposed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "Unmounted"
	case StateMounting:
		return "Mounting"
	case StateLive:
		return "Live"
	case StateTearingDown:
		return "TearingDown"
	case StateDisposed:
		return "Disposed"
	default:
		return "Unknown"
	}
}

// RenderFunc is the host callback invoked with every view the instance
// emits. Its error is returned to whoever triggered the emission.
type RenderFunc func(inst *Instance, view *vdom.VNode) error

var instanceIDs atomic.Uint64

// Instance is one mounted component.
type Instance struct {
	id     uint64
	def    *Definition
	render RenderFunc
	opts   options
	logger *slog.Logger

	state  atomic.Int32
	bus    *Interactions
	props  *Properties
	latest atomic.Pointer[vdom.VNode]

	viewSub   stream.Subscription
	eventSubs []eventSub
	disposal  func() error
}

type eventSub struct {
	name string
	sub  stream.Subscription
}

// Mount creates an instance of def with the given initial properties. The
// definition function runs once, the view and every declared event are
// subscribed, and render is called for each view emitted, including any
// emitted synchronously before Mount returns.
//
// When Mount fails everything created so far has been released.
func Mount(def *Definition, props vdom.Props, render RenderFunc, opts ...Option) (*Instance, error) {
	if def == nil || def.fn == nil {
		return nil, &InvalidDefinitionError{Component: def.ComponentName(), Reason: "definition has no function", Got: def}
	}

	o := buildOptions(opts)
	inst := &Instance{
		id:     instanceIDs.Add(1),
		def:    def,
		render: render,
		opts:   o,
		bus:    newInteractions(),
		props:  newProperties(props),
	}
	inst.logger = o.logger.With("component", def.name, "instance_id", inst.id)
	inst.state.Store(int32(StateMounting))

	_, span := o.tracer.Start(context.Background(), "rxview.mount", trace.WithAttributes(inst.attributes()...))
	defer span.End()

	if err := inst.mount(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		inst.logger.Debug("mount failed", "error", err)
		return nil, err
	}

	o.recorder.Mounted(def.name)
	inst.logger.Debug("mounted", "events", len(inst.eventSubs))
	return inst, nil
}

func (i *Instance) mount() error {
	n, err := normalize(i.def.name, i.def.fn(i.bus, i.props))
	i.disposal = n.disposal
	if err != nil {
		return i.abort(err)
	}

	viewSub, err := n.view.Subscribe(&viewObserver{inst: i})
	i.viewSub = viewSub
	if err != nil {
		return i.abort(err)
	}

	for _, ev := range n.events {
		if i.State() != StateMounting {
			break
		}
		sub, err := ev.producer.Subscribe(&eventObserver{inst: i, name: ev.name})
		i.eventSubs = append(i.eventSubs, eventSub{name: ev.name, sub: sub})
		if err != nil {
			return i.abort(err)
		}
	}

	if !i.state.CompareAndSwap(int32(StateMounting), int32(StateLive)) {
		// Unmounted from inside a synchronous emission. Teardown may have
		// run before the subscriptions above were recorded.
		i.releaseLate()
	}
	return nil
}

// abort releases a partially mounted instance and returns cause, joined
// with any teardown failure. An instance already unmounted from inside a
// synchronous emission only has its late subscriptions released.
func (i *Instance) abort(cause error) error {
	if !i.state.CompareAndSwap(int32(StateMounting), int32(StateTearingDown)) {
		i.releaseLate()
		return cause
	}
	if err := i.teardown(); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (i *Instance) releaseLate() {
	if i.viewSub != nil {
		i.viewSub.Unsubscribe()
	}
	for _, ev := range i.eventSubs {
		if ev.sub != nil {
			ev.sub.Unsubscribe()
		}
	}
}

// Update replaces the instance's properties. The view is not resubscribed;
// producers built on Properties react to the new map. Errors raised while
// they react are returned.
func (i *Instance) Update(props vdom.Props) error {
	switch i.State() {
	case StateTearingDown, StateDisposed:
		return ErrInstanceDisposed
	}
	return i.props.set(props)
}

// Unmount tears the instance down. Every step runs even when an earlier
// one fails; failures are returned as a *DisposalError afterwards. Calls
// after the first return nil.
func (i *Instance) Unmount() error {
	for {
		s := i.state.Load()
		if State(s) == StateTearingDown || State(s) == StateDisposed {
			return nil
		}
		if i.state.CompareAndSwap(s, int32(StateTearingDown)) {
			break
		}
	}

	_, span := i.opts.tracer.Start(context.Background(), "rxview.unmount", trace.WithAttributes(i.attributes()...))
	defer span.End()

	start := time.Now()
	err := i.teardown()
	i.opts.recorder.Unmounted(i.def.name, time.Since(start))

	if err != nil {
		i.opts.recorder.EmissionFailed(i.def.name, KindDisposal)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		i.logger.Warn("teardown failed", "error", err)
		return err
	}
	i.logger.Debug("unmounted")
	return nil
}

func (i *Instance) teardown() error {
	i.bus.beginClose()

	steps := []struct {
		name string
		fn   func() error
	}{
		{StepView, i.unsubscribeView},
		{StepEvents, i.unsubscribeEvents},
		{StepDisposal, i.runDisposal},
		{StepBus, i.bus.close},
	}

	var failed []*StepError
	for _, step := range steps {
		if serr := runStep(step.name, step.fn); serr != nil {
			failed = append(failed, serr)
		}
	}
	i.state.Store(int32(StateDisposed))

	if len(failed) > 0 {
		return &DisposalError{Component: i.def.name, Steps: failed}
	}
	return nil
}

func (i *Instance) unsubscribeView() error {
	if i.viewSub != nil {
		i.viewSub.Unsubscribe()
	}
	return nil
}

func (i *Instance) unsubscribeEvents() error {
	var errs []error
	for _, ev := range i.eventSubs {
		if ev.sub == nil {
			continue
		}
		sub := ev.sub
		if serr := runStep(ev.name, func() error {
			sub.Unsubscribe()
			return nil
		}); serr != nil {
			errs = append(errs, serr)
		}
	}
	return errors.Join(errs...)
}

func (i *Instance) runDisposal() error {
	if i.disposal == nil {
		return nil
	}
	return i.disposal()
}

// accepting reports whether emissions may still reach the host or
// external listeners.
func (i *Instance) accepting() bool {
	s := i.State()
	return s == StateMounting || s == StateLive
}

func (i *Instance) attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("rxview.component", i.def.name),
		attribute.Int64("rxview.instance_id", int64(i.id)),
	}
}

// ID returns the process-unique instance identifier.
func (i *Instance) ID() uint64 { return i.id }

// Name returns the definition name.
func (i *Instance) Name() string { return i.def.name }

// Definition returns the definition the instance was mounted from.
func (i *Instance) Definition() *Definition { return i.def }

// State returns the current lifecycle state.
func (i *Instance) State() State { return State(i.state.Load()) }

// View returns the most recently emitted view, or nil if none has been
// emitted yet.
func (i *Instance) View() *vdom.VNode { return i.latest.Load() }

// Interactions returns the instance's bus.
func (i *Instance) Interactions() *Interactions { return i.bus }

// Properties returns the instance's live properties.
func (i *Instance) Properties() *Properties { return i.props }

// viewObserver projects view emissions onto the host.
type viewObserver struct {
	inst *Instance
}

func (o *viewObserver) Next(view *vdom.VNode) error {
	i := o.inst
	if !i.accepting() {
		i.logger.Debug("dropped view emission", "state", i.State())
		return nil
	}
	i.latest.Store(view)
	i.opts.recorder.Rendered(i.def.name)
	if i.render == nil {
		return nil
	}
	return i.render(i, view)
}

func (o *viewObserver) Error(err error) error {
	i := o.inst
	if !i.accepting() {
		i.logger.Debug("dropped view error", "error", err, "state", i.State())
		return nil
	}
	i.opts.recorder.EmissionFailed(i.def.name, KindView)
	return &ViewEmissionError{Component: i.def.name, Err: err}
}

func (o *viewObserver) Complete() error {
	return nil
}

// eventObserver forwards one declared event to the listener currently
// bound under its property key.
type eventObserver struct {
	inst *Instance
	name string
}

func (o *eventObserver) Next(payload any) error {
	i := o.inst
	if !i.accepting() {
		i.logger.Debug("dropped event emission", "event", o.name, "state", i.State())
		return nil
	}

	key := vdom.EventKey(o.name)
	listener := i.props.Value(key)
	if listener == nil {
		return nil
	}

	called, err := vdom.Invoke(listener, payload)
	if !called {
		i.logger.Warn("listener is not callable", "event", o.name, "key", key, "type", fmt.Sprintf("%T", listener))
		return nil
	}
	if err != nil {
		i.opts.recorder.EmissionFailed(i.def.name, KindEvent)
		return &EventEmissionError{Component: i.def.name, Event: o.name, Err: err}
	}
	return nil
}

func (o *eventObserver) Error(err error) error {
	i := o.inst
	if !i.accepting() {
		i.logger.Debug("dropped event error", "event", o.name, "error", err, "state", i.State())
		return nil
	}
	i.opts.recorder.EmissionFailed(i.def.name, KindEvent)
	return &EventEmissionError{Component: i.def.name, Event: o.name, Err: err}
}

func (o *eventObserver) Complete() error {
	return nil
}
