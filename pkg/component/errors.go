package component

import (
	"errors"
	"fmt"

	rxerrors "github.com/vango-dev/rxview/internal/errors"
)

// codedError is a sentinel that maps to a registered error code.
type codedError struct {
	code string
	msg  string
}

func (e *codedError) Error() string { return e.msg }

// Coded implements rxerrors.Coder.
func (e *codedError) Coded() *rxerrors.CodedError { return rxerrors.New(e.code) }

// ErrDispatchDuringTeardown is returned by a listener invoked synchronously
// while its instance is being unmounted.
var ErrDispatchDuringTeardown error = &codedError{
	code: rxerrors.CodeDispatchDuringTeardown,
	msg:  "rxview: dispatch during component teardown",
}

// ErrInstanceDisposed is returned by Update on an unmounted instance.
var ErrInstanceDisposed error = &codedError{
	code: rxerrors.CodeInstanceDisposed,
	msg:  "rxview: component instance disposed",
}

// InvalidDefinitionError reports a definition whose return value the engine
// cannot use.
type InvalidDefinitionError struct {
	Component string
	Reason    string
	Got       any
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("rxview: invalid definition %q: %s (got %T)", e.Component, e.Reason, e.Got)
}

// Coded implements rxerrors.Coder.
func (e *InvalidDefinitionError) Coded() *rxerrors.CodedError {
	return rxerrors.New(rxerrors.CodeInvalidDefinition).
		WithDetail(fmt.Sprintf("%s returned %T: %s.", e.Component, e.Got, e.Reason)).
		WithSuggestion("Return a stream.Producer[*vdom.VNode] or a component.Output with View set")
}

// ViewEmissionError wraps a failure raised by a component's view producer.
type ViewEmissionError struct {
	Component string
	Err       error
}

func (e *ViewEmissionError) Error() string {
	return fmt.Sprintf("rxview: view of %q failed: %v", e.Component, e.Err)
}

func (e *ViewEmissionError) Unwrap() error { return e.Err }

// Coded implements rxerrors.Coder.
func (e *ViewEmissionError) Coded() *rxerrors.CodedError {
	return rxerrors.New(rxerrors.CodeViewEmission).Wrap(e.Err)
}

// EventEmissionError wraps a failure raised by an event producer, or by the
// listener bound to it.
type EventEmissionError struct {
	Component string
	Event     string
	Err       error
}

func (e *EventEmissionError) Error() string {
	return fmt.Sprintf("rxview: event %q of %q failed: %v", e.Event, e.Component, e.Err)
}

func (e *EventEmissionError) Unwrap() error { return e.Err }

// Coded implements rxerrors.Coder.
func (e *EventEmissionError) Coded() *rxerrors.CodedError {
	return rxerrors.New(rxerrors.CodeEventEmission).Wrap(e.Err)
}

// StepError is the failure of one teardown step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// DisposalError collects the teardown steps that failed during Unmount.
// Every step ran regardless.
type DisposalError struct {
	Component string
	Steps     []*StepError
}

func (e *DisposalError) Error() string {
	return fmt.Sprintf("rxview: teardown of %q failed: %v", e.Component, e.Unwrap())
}

// Unwrap exposes the step errors to errors.Is and errors.As.
func (e *DisposalError) Unwrap() error {
	errs := make([]error, len(e.Steps))
	for i, s := range e.Steps {
		errs[i] = s
	}
	return errors.Join(errs...)
}

// Coded implements rxerrors.Coder.
func (e *DisposalError) Coded() *rxerrors.CodedError {
	return rxerrors.New(rxerrors.CodeDisposal).Wrap(e.Unwrap())
}

// Code returns the registered error code for an engine error, or "" when
// err does not carry one.
func Code(err error) string {
	var coder rxerrors.Coder
	if errors.As(err, &coder) {
		return coder.Coded().Code
	}
	return ""
}
