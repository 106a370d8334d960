// Package demo holds the example components served by "rxview serve" and
// driven headlessly by "rxview demo".
package demo

import (
	"time"

	"github.com/vango-dev/rxview/pkg/component"
	"github.com/vango-dev/rxview/pkg/stream"
	"github.com/vango-dev/rxview/pkg/vdom"
)

// Slider is one removable list entry. Its "id" property is shown and sent
// back through onRemove when its remove button is clicked.
var Slider = component.New("Slider", func(in *component.Interactions, props *component.Properties) any {
	id := stream.ShareReplay(props.Pluck("id"))
	level := stream.StartWith(stream.Scan(in.Get("nudge"), 0, func(n int, _ any) int { return n + 1 }), 0)

	view := stream.CombineLatest(id, level, func(id any, n int) *vdom.VNode {
		return vdom.Div(vdom.Class("slider"),
			vdom.Span(vdom.Class("slider-id"), vdom.Textf("#%v", id)),
			vdom.Button(vdom.Class("nudge"), vdom.OnClick(in.Listener("nudge")), vdom.Textf("%d", n)),
			vdom.Button(vdom.Class("remove"), vdom.OnClick(in.Listener("remove")), "remove"),
		)
	})

	return component.Output{
		View: view,
		Events: map[string]stream.Producer[any]{
			"remove": stream.WithLatestFrom(in.Get("remove"), id, func(_ any, id any) any { return id }),
		},
	}
})

type listOp func([]int) []int

// SliderList renders a keyed list of Sliders. The "ids" property seeds the
// list; sliders remove themselves and the add button appends a new one.
var SliderList = component.New("SliderList", func(in *component.Interactions, props *component.Properties) any {
	initial, _ := props.Value("ids").([]int)

	add := stream.Map(in.Get("add"), func(any) listOp {
		return func(ids []int) []int {
			next := 1
			for _, id := range ids {
				if id >= next {
					next = id + 1
				}
			}
			return append(append([]int(nil), ids...), next)
		}
	})
	remove := stream.Map(in.Get("remove"), func(v any) listOp {
		return func(ids []int) []int {
			var kept []int
			for _, id := range ids {
				if id != v {
					kept = append(kept, id)
				}
			}
			return kept
		}
	})

	items := stream.StartWith(stream.Scan(stream.Merge(add, remove), initial, func(ids []int, op listOp) []int {
		return op(ids)
	}), initial)

	return stream.Map(items, func(ids []int) *vdom.VNode {
		return vdom.Div(vdom.Class("sliders"),
			vdom.Button(vdom.Class("add"), vdom.OnClick(in.Listener("add")), "add"),
			vdom.Div(vdom.Class("list"), vdom.Range(ids, func(id int, _ int) *vdom.VNode {
				return vdom.Comp(Slider, vdom.A("id", id), vdom.Key(id), vdom.On("remove", in.Listener("remove")))
			})),
			vdom.IfElse(len(ids) == 0,
				vdom.P(vdom.Class("empty"), "no sliders"),
				vdom.P(vdom.Class("count"), vdom.Textf("%d sliders", len(ids))),
			),
		)
	})
})

// Counter shows a number changed by its two buttons, starting at the
// "start" property.
var Counter = component.New("Counter", func(in *component.Interactions, props *component.Properties) any {
	start, _ := props.Value("start").(int)

	steps := stream.Merge(
		stream.Map(in.Get("inc"), func(any) int { return 1 }),
		stream.Map(in.Get("dec"), func(any) int { return -1 }),
	)
	count := stream.StartWith(stream.Scan(steps, start, func(n, d int) int { return n + d }), start)

	return stream.Map(count, func(n int) *vdom.VNode {
		return vdom.Div(vdom.Class("counter"),
			vdom.Button(vdom.Class("dec"), vdom.OnClick(in.Listener("dec")), "-"),
			vdom.Span(vdom.Class("value"), vdom.Textf("%d", n)),
			vdom.Button(vdom.Class("inc"), vdom.OnClick(in.Listener("inc")), "+"),
		)
	})
})

// Clock counts seconds since mount. Ticks are posted to sched.
func Clock(sched stream.Scheduler, every time.Duration) *component.Definition {
	return component.New("Clock", func(*component.Interactions, *component.Properties) any {
		ticks := stream.StartWith(stream.Map(stream.Interval(sched, every), func(n int) int { return n + 1 }), 0)
		return stream.Map(ticks, func(n int) *vdom.VNode {
			return vdom.P(vdom.Class("clock"), vdom.Textf("up %d", n))
		})
	})
}

// App is the page served by "rxview serve".
func App(sched stream.Scheduler) *vdom.VNode {
	return vdom.Div(vdom.Class("app"),
		vdom.H1("rxview"),
		vdom.Comp(Clock(sched, time.Second)),
		vdom.Comp(Counter, vdom.A("start", 0)),
		vdom.Comp(SliderList, vdom.A("ids", []int{1, 2, 3})),
	)
}
