package component

import (
	"sort"

	"github.com/vango-dev/rxview/pkg/stream"
	"github.com/vango-dev/rxview/pkg/vdom"
)

// Func is a component definition function. It is called once per mount
// and returns either a stream.Producer[*vdom.VNode] or an Output.
type Func func(in *Interactions, props *Properties) any

// Output is the full return shape of a definition.
type Output struct {
	// View produces the component's rendered subtree. Required.
	View stream.Producer[*vdom.VNode]

	// Events are the component's outputs. Each payload is passed to the
	// listener found under vdom.EventKey(name) in the current properties.
	Events map[string]stream.Producer[any]

	// Unsubscribe is an extra disposal action run during unmount. It may be
	// a stream.Subscription, anything with Unsubscribe() or Dispose() error,
	// a func() or a func() error.
	Unsubscribe any
}

// Definition is a named component definition. It is the value a
// vdom.Comp node refers to, so two nodes with the same *Definition are
// the same component type.
type Definition struct {
	name string
	fn   Func
}

var _ vdom.Component = (*Definition)(nil)

// New creates a Definition.
func New(name string, fn Func) *Definition {
	return &Definition{name: name, fn: fn}
}

// ComponentName implements vdom.Component.
func (d *Definition) ComponentName() string {
	if d == nil {
		return ""
	}
	return d.name
}

type namedEvent struct {
	name     string
	producer stream.Producer[any]
}

// normalized is the single shape every accepted definition result is
// reduced to.
type normalized struct {
	view     stream.Producer[*vdom.VNode]
	events   []namedEvent
	disposal func() error
}

// normalize reduces the raw result of a definition function. On failure
// the returned value still carries the disposal action if one could be
// resolved, so the caller can release it.
func normalize(name string, raw any) (normalized, error) {
	switch v := raw.(type) {
	case nil:
		return normalized{}, &InvalidDefinitionError{Component: name, Reason: "definition returned nil", Got: raw}
	case stream.Producer[*vdom.VNode]:
		return normalized{view: v}, nil
	case Output:
		return normalizeOutput(name, &v, raw)
	case *Output:
		if v == nil {
			return normalized{}, &InvalidDefinitionError{Component: name, Reason: "definition returned a nil *Output", Got: raw}
		}
		return normalizeOutput(name, v, raw)
	default:
		return normalized{}, &InvalidDefinitionError{Component: name, Reason: "not a view producer or Output", Got: raw}
	}
}

func normalizeOutput(name string, out *Output, raw any) (normalized, error) {
	disposal, ok := toDisposal(out.Unsubscribe)
	if !ok {
		return normalized{}, &InvalidDefinitionError{Component: name, Reason: "unsupported Unsubscribe value", Got: out.Unsubscribe}
	}
	n := normalized{disposal: disposal}

	if out.View == nil {
		return n, &InvalidDefinitionError{Component: name, Reason: "Output.View is nil", Got: raw}
	}
	n.view = out.View

	// Map order is random; subscribe in name order so teardown and error
	// reporting are reproducible.
	names := make([]string, 0, len(out.Events))
	for event := range out.Events {
		names = append(names, event)
	}
	sort.Strings(names)

	for _, event := range names {
		p := out.Events[event]
		if p == nil || event == "" {
			return n, &InvalidDefinitionError{Component: name, Reason: "event " + event + " has no producer", Got: raw}
		}
		n.events = append(n.events, namedEvent{name: event, producer: p})
	}
	return n, nil
}
