package vdom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoHandler is returned by Fire when the node has no handler for the event.
var ErrNoHandler = errors.New("vdom: no handler for event")

// HandlerFunc is the canonical event handler shape. Component listeners
// are HandlerFuncs.
type HandlerFunc func(payload any) error

// IsHandler reports whether v is a callable Invoke accepts.
func IsHandler(v any) bool {
	switch v.(type) {
	case HandlerFunc, func(any) error, func(any), func() error, func():
		return true
	default:
		return false
	}
}

// Invoke calls handler with payload. It reports false when handler is not
// one of the supported callable shapes.
func Invoke(handler any, payload any) (bool, error) {
	switch h := handler.(type) {
	case HandlerFunc:
		return true, h(payload)
	case func(any) error:
		return true, h(payload)
	case func(any):
		h(payload)
		return true, nil
	case func() error:
		return true, h()
	case func():
		h()
		return true, nil
	default:
		return false, nil
	}
}

// Handler returns the handler bound to event on node. The EventKey prop
// wins; otherwise the event name is matched case-insensitively with or
// without its "on" prefix, so "click", "onclick" and "onClick" all find an
// "onClick" prop.
func (v *VNode) Handler(event string) (any, bool) {
	if v == nil {
		return nil, false
	}
	if value, ok := v.Props[EventKey(event)]; ok && IsHandler(value) {
		return value, true
	}
	want := strings.ToLower(event)
	if !strings.HasPrefix(want, "on") {
		want = "on" + want
	}
	for key, value := range v.Props {
		if strings.ToLower(key) == want && IsHandler(value) {
			return value, true
		}
	}
	return nil, false
}

// Fire invokes node's handler for event with payload.
func Fire(node *VNode, event string, payload any) error {
	handler, ok := node.Handler(event)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, event)
	}
	_, err := Invoke(handler, payload)
	return err
}
