package component

import (
	"github.com/vango-dev/rxview/pkg/stream"
	"github.com/vango-dev/rxview/pkg/vdom"
)

// Properties is the live property map of one instance. It always holds the
// map from the most recent update. Every snapshot it hands out is a copy,
// so no reader ever sees a partially applied update.
type Properties struct {
	subject *stream.BehaviorSubject[vdom.Props]
}

func newProperties(initial vdom.Props) *Properties {
	return &Properties{subject: stream.NewBehaviorSubject(initial.Clone())}
}

// Get returns a snapshot of the current properties.
func (p *Properties) Get() vdom.Props {
	return p.subject.Value().Clone()
}

// Value returns the current value of key.
func (p *Properties) Value(key string) any {
	return p.subject.Value()[key]
}

// Stream emits the current properties on subscribe and again on every
// update.
func (p *Properties) Stream() stream.Producer[vdom.Props] {
	return stream.Map[vdom.Props, vdom.Props](p.subject, vdom.Props.Clone)
}

// Pluck emits the value of key on subscribe and on every update.
func (p *Properties) Pluck(key string) stream.Producer[any] {
	return stream.Map[vdom.Props, any](p.subject, func(props vdom.Props) any {
		return props[key]
	})
}

// set replaces the properties. Errors raised by observers reacting to the
// new map are returned.
func (p *Properties) set(props vdom.Props) error {
	return p.subject.Next(props.Clone())
}

func (p *Properties) subscribers() int {
	return p.subject.Len()
}
