package demo

import (
	"errors"
	"fmt"
	"io"

	"github.com/vango-dev/rxview/pkg/host"
	"github.com/vango-dev/rxview/pkg/render"
	"github.com/vango-dev/rxview/pkg/vdom"
)

// ErrNoTarget is returned when a step's element is not in the snapshot.
var ErrNoTarget = errors.New("demo: step target not found")

// Step fires Event on the Nth element (zero based) carrying Class.
type Step struct {
	Label string
	Class string
	Nth   int
	Event string
}

// SliderSteps exercises SliderList: nudge, remove one, add one, remove the
// first.
var SliderSteps = []Step{
	{Label: "nudge the first slider", Class: "nudge", Event: "click"},
	{Label: "remove the second slider", Class: "remove", Nth: 1, Event: "click"},
	{Label: "add a slider", Class: "add", Event: "click"},
	{Label: "remove the first slider", Class: "remove", Event: "click"},
}

// Run mounts root on a fresh tree and writes its HTML after mounting and
// after every step. Each step runs as a task on a loop drained with
// RunPending.
func Run(w io.Writer, r *render.Renderer, root *vdom.VNode, steps []Step, opts ...host.Option) (err error) {
	loop := host.NewLoop()
	tree := host.New(opts...)
	defer func() {
		err = errors.Join(err, tree.Close())
	}()

	loop.Post(func() error { return tree.Render(root) })
	if err := loop.RunPending(); err != nil {
		return err
	}
	if err := writeStep(w, r, "mounted", tree.Snapshot()); err != nil {
		return err
	}

	for _, step := range steps {
		loop.Post(func() error {
			target := vdom.FindByClass(tree.Snapshot(), step.Class, step.Nth)
			if target == nil {
				return fmt.Errorf("%w: %s[%d]", ErrNoTarget, step.Class, step.Nth)
			}
			return tree.Dispatch(target.HID, step.Event, nil)
		})
		if err := loop.RunPending(); err != nil {
			return fmt.Errorf("%s: %w", step.Label, err)
		}
		if err := writeStep(w, r, step.Label, tree.Snapshot()); err != nil {
			return err
		}
	}
	return nil
}

func writeStep(w io.Writer, r *render.Renderer, label string, snapshot *vdom.VNode) error {
	if _, err := fmt.Fprintf(w, "== %s\n", label); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, snapshot); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
