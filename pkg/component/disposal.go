package component

import (
	"fmt"
)

// Teardown step names, as reported in StepError.
const (
	StepView     = "view"
	StepEvents   = "events"
	StepDisposal = "disposal"
	StepBus      = "bus"
)

// toDisposal resolves the accepted disposal shapes to one action. It
// reports false for a value of any other type. A nil value resolves to a
// nil action.
func toDisposal(v any) (func() error, bool) {
	switch d := v.(type) {
	case nil:
		return nil, true
	case func() error:
		return d, true
	case func():
		if d == nil {
			return nil, true
		}
		return func() error {
			d()
			return nil
		}, true
	case interface{ Dispose() error }:
		return d.Dispose, true
	case interface{ Unsubscribe() }:
		return func() error {
			d.Unsubscribe()
			return nil
		}, true
	default:
		return nil, false
	}
}

// runStep runs one teardown step, turning a panic into the step's error so
// the remaining steps still run.
func runStep(step string, fn func() error) (serr *StepError) {
	defer func() {
		if r := recover(); r != nil {
			serr = &StepError{Step: step, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	if err := fn(); err != nil {
		return &StepError{Step: step, Err: err}
	}
	return nil
}
