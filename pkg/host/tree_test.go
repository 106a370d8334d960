package host

import (
	"errors"
	"testing"

	"github.com/vango-dev/rxview/pkg/component"
	"github.com/vango-dev/rxview/pkg/stream"
	"github.com/vango-dev/rxview/pkg/vdom"
)

func static(name string, node *vdom.VNode) *component.Definition {
	return component.New(name, func(*component.Interactions, *component.Properties) any {
		return stream.Of(node)
	})
}

// switcher builds a root whose view is produced by mapping toggle through
// pick.
func switcher(toggle stream.Producer[int], pick func(int) *vdom.VNode) *vdom.VNode {
	return vdom.Comp(component.New("test", func(*component.Interactions, *component.Properties) any {
		return stream.Map(toggle, pick)
	}))
}

func mustRender(t *testing.T, tree *Tree, root *vdom.VNode) {
	t.Helper()
	if err := tree.Render(root); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func TestSimpleComponent(t *testing.T) {
	el := static("MyElement", vdom.H3(vdom.Class("myelementclass")))
	tree := New()
	defer tree.Close()

	mustRender(t, tree, vdom.Comp(el))

	if got := outline(tree.Snapshot()); got != "h3.myelementclass" {
		t.Errorf("snapshot = %s, want h3.myelementclass", got)
	}
}

func TestInnerStateAndPropertiesIndependent(t *testing.T) {
	numbers := stream.NewControlled(1, 2, 3, 4, 5, 6, 7, 8)
	el := component.New("MyElement", func(_ *component.Interactions, props *component.Properties) any {
		return stream.CombineLatest(props.Pluck("color"), stream.Producer[int](numbers), func(color any, n int) *vdom.VNode {
			return vdom.H3(vdom.Class("stateful-element"), vdom.StyleAttr("color: "+color.(string)), vdom.Textf("%d", n))
		})
	})
	root := component.New("test", func(*component.Interactions, *component.Properties) any {
		return stream.Map(stream.StartWith(stream.Of("#00FF00"), "#FF0000"), func(color string) *vdom.VNode {
			return vdom.Comp(el, vdom.A("color", color))
		})
	})

	tree := New()
	defer tree.Close()
	mustRender(t, tree, vdom.Comp(root))

	if tree.Snapshot() != nil {
		t.Fatalf("snapshot before any number = %s, want nothing", outline(tree.Snapshot()))
	}
	if len(tree.Instances()) != 2 {
		t.Fatalf("instances = %d, want 2", len(tree.Instances()))
	}

	if err := numbers.Request(8); err != nil {
		t.Fatal(err)
	}

	snap := tree.Snapshot()
	if got := outline(snap); got != `h3.stateful-element["8"]` {
		t.Errorf("snapshot = %s", got)
	}
	if style := snap.Props["style"]; style != "color: #00FF00" {
		t.Errorf("style = %v, want color: #00FF00", style)
	}
}

func TestTwoUnrelatedComponents(t *testing.T) {
	one := static("MyElement1", vdom.H1(vdom.Class("myelement1class")))
	two := static("MyElement2", vdom.H2(vdom.Class("myelement2class")))

	tree := New()
	defer tree.Close()
	mustRender(t, tree, vdom.Div(vdom.Comp(one), vdom.Comp(two)))

	if got := outline(tree.Snapshot()); got != "div[h1.myelement1class,h2.myelement2class]" {
		t.Errorf("snapshot = %s", got)
	}
	insts := tree.Instances()
	if len(insts) != 2 {
		t.Fatalf("instances = %d, want 2", len(insts))
	}
	if insts[0].Interactions() == insts[1].Interactions() {
		t.Error("sibling instances must not share a bus")
	}
}

func TestNestedComponents(t *testing.T) {
	inner := static("Inner", vdom.H3(vdom.Class("innerClass")))
	outer := static("Outer", vdom.Div(vdom.Class("outerClass"), vdom.Comp(inner)))

	tree := New()
	defer tree.Close()
	mustRender(t, tree, vdom.Comp(outer))

	if got := outline(tree.Snapshot()); got != "div.outerClass[h3.innerClass]" {
		t.Errorf("snapshot = %s", got)
	}
}

func TestEventsFromNestedComponent(t *testing.T) {
	numbers := stream.NewControlled[any](123, 456)
	el := component.New("MyElement", func(*component.Interactions, *component.Properties) any {
		return component.Output{
			View:   stream.Of(vdom.H3(vdom.Class("myelementclass"), vdom.Text("foobar"))),
			Events: map[string]stream.Producer[any]{"onMyEvent": numbers},
		}
	})

	var got []any
	root := component.New("Root", func(in *component.Interactions, _ *component.Properties) any {
		in.Get("myevent").Subscribe(stream.NextFunc(func(v any) error {
			got = append(got, v)
			return nil
		}))
		return stream.Of(vdom.Comp(el, vdom.On("myEvent", in.Listener("myevent"))))
	})

	tree := New()
	defer tree.Close()
	mustRender(t, tree, vdom.Comp(root))

	if out := outline(tree.Snapshot()); out != `h3.myelementclass["foobar"]` {
		t.Errorf("snapshot = %s", out)
	}
	if err := numbers.Request(1); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != 123 {
		t.Errorf("root received %v, want [123]", got)
	}
}

// A keyed list of sliders where each slider asks its parent to remove it.
func TestKeyedListRemovesItself(t *testing.T) {
	slider := component.New("Slider", func(in *component.Interactions, props *component.Properties) any {
		remove := stream.Map(in.Get("click"), func(any) bool { return true })
		id := stream.ShareReplay(props.Pluck("id"))
		view := stream.Map(id, func(id any) *vdom.VNode {
			return vdom.H3(vdom.Class("internalslider"), vdom.OnClick(in.Listener("click")), vdom.Textf("%v", id))
		})
		return component.Output{
			View: view,
			Events: map[string]stream.Producer[any]{
				"onRemove": stream.WithLatestFrom(remove, id, func(_ bool, id any) any { return id }),
			},
		}
	})

	sequence := stream.NewControlled[any]([]int{23}, []int{23, 45})
	root := component.New("test", func(in *component.Interactions, _ *component.Properties) any {
		items := stream.Scan(stream.Merge(stream.Producer[any](sequence), in.Get("remove")), []int(nil), func(items []int, x any) []int {
			if list, ok := x.([]int); ok {
				return list
			}
			var kept []int
			for _, id := range items {
				if id != x {
					kept = append(kept, id)
				}
			}
			return kept
		})
		return stream.Map(items, func(items []int) *vdom.VNode {
			return vdom.Div(vdom.Class("allSliders"), vdom.Range(items, func(id int, _ int) *vdom.VNode {
				return vdom.Comp(slider, vdom.A("id", id), vdom.Key(id), vdom.Class("slider"), vdom.On("remove", in.Listener("remove")))
			}))
		})
	})

	tree := New()
	defer tree.Close()
	mustRender(t, tree, vdom.Comp(root))

	if err := sequence.Request(2); err != nil {
		t.Fatal(err)
	}
	tree1 := tree.Snapshot()
	if got := outline(tree1); got != `div.allSliders[h3.internalslider["23"],h3.internalslider["45"]]` {
		t.Fatalf("tree1 = %s", got)
	}
	survivor := tree.Instances()[2]

	if err := tree.Dispatch(tree1.Children[0].HID, "click", nil); err != nil {
		t.Fatal(err)
	}
	tree2 := tree.Snapshot()
	if got := outline(tree2); got != `div.allSliders[h3.internalslider["45"]]` {
		t.Fatalf("tree2 = %s", got)
	}
	if tree.Instances()[1] != survivor {
		t.Error("keyed sibling should keep its instance")
	}

	if err := tree.Dispatch(tree2.Children[0].HID, "click", nil); err != nil {
		t.Fatal(err)
	}
	tree3 := tree.Snapshot()
	if len(tree3.Children) != 0 {
		t.Errorf("tree3 children = %s, want none", outline(tree3))
	}
	if survivor.State() != component.StateDisposed {
		t.Errorf("removed slider state = %v, want Disposed", survivor.State())
	}
}

func TestChildrenProperty(t *testing.T) {
	wrapper := component.New("SimpleWrapper", func(_ *component.Interactions, props *component.Properties) any {
		return stream.Map(props.Pluck("children"), func(children any) *vdom.VNode {
			return vdom.Div(vdom.Class("wrapper"), children)
		})
	})

	tree := New()
	defer tree.Close()
	mustRender(t, tree, vdom.Comp(wrapper,
		vdom.H1(vdom.Text("Hello")),
		vdom.H2(vdom.Text("World")),
	))

	if got := outline(tree.Snapshot()); got != `div.wrapper[h1["Hello"],h2["World"]]` {
		t.Errorf("snapshot = %s", got)
	}
}

func TestErrorsInsideComponentsNotSwallowed(t *testing.T) {
	controller := stream.NewControlled(0, 1, 2)
	el := component.New("MyElement", func(*component.Interactions, *component.Properties) any {
		return stream.MapErr(stream.Producer[int](controller), func(c int) (*vdom.VNode, error) {
			if c == 0 {
				return vdom.H3(vdom.Class("myelementclass")), nil
			}
			return nil, errors.New("The error")
		})
	})

	tree := New()
	defer tree.Close()
	mustRender(t, tree, vdom.Comp(el))

	if err := controller.Request(1); err != nil {
		t.Fatal(err)
	}
	if got := outline(tree.Snapshot()); got != "h3.myelementclass" {
		t.Errorf("snapshot = %s", got)
	}

	err := controller.Request(1)
	if err == nil || err.Error() != "The error" {
		t.Errorf("Request() error = %v, want The error", err)
	}
}

func TestViewDisposedAfterRemoval(t *testing.T) {
	var log []int
	numbers := stream.NewControlled(1, 2)
	toggle := stream.NewControlled(0, 1)
	el := component.New("MyElement", func(*component.Interactions, *component.Properties) any {
		return stream.Map(stream.Tap(stream.Producer[int](numbers), func(i int) { log = append(log, i) }), func(i int) *vdom.VNode {
			return vdom.H3(vdom.Class("myelementclass"), vdom.Textf("%d", i))
		})
	})

	tree := New()
	defer tree.Close()
	mustRender(t, tree, switcher(toggle, func(s int) *vdom.VNode {
		if s == 0 {
			return vdom.Comp(el)
		}
		return vdom.Div()
	}))

	toggle.Request(1)
	numbers.Request(1)
	if got := outline(tree.Snapshot()); got != `h3.myelementclass["1"]` {
		t.Errorf("snapshot = %s", got)
	}

	toggle.Request(1)
	if got := outline(tree.Snapshot()); got != "div" {
		t.Errorf("snapshot after removal = %s", got)
	}
	numbers.Request(1)
	if len(log) != 1 {
		t.Errorf("log = %v, want one value", log)
	}
	if numbers.Observers() != 0 {
		t.Errorf("numbers still has %d observers", numbers.Observers())
	}
}

func TestNoEventsAfterRemoval(t *testing.T) {
	var log, heard []any
	numbers := stream.NewControlled[any](1, 2, 3)
	toggle := stream.NewControlled(0, 1)
	el := component.New("MyElement", func(*component.Interactions, *component.Properties) any {
		return component.Output{
			View: stream.Of(vdom.H3(vdom.Class("myelementclass"))),
			Events: map[string]stream.Producer[any]{
				"onMyEvent": stream.Tap(stream.Producer[any](numbers), func(v any) { log = append(log, v) }),
			},
		}
	})
	onMyEvent := func(v any) { heard = append(heard, v) }

	tree := New()
	defer tree.Close()
	mustRender(t, tree, switcher(toggle, func(s int) *vdom.VNode {
		if s == 0 {
			return vdom.Comp(el, vdom.A("onMyEvent", onMyEvent))
		}
		return vdom.Div()
	}))

	toggle.Request(1)
	numbers.Request(2)
	toggle.Request(1)
	numbers.Request(1)

	if len(log) != 2 || len(heard) != 2 {
		t.Errorf("log = %v, heard = %v, want two values each", log, heard)
	}
}

func TestSubscriptionDisposedAfterRemoval(t *testing.T) {
	var log []int
	numbers := stream.NewControlled(1, 2)
	toggle := stream.NewControlled(0, 1)
	el := component.New("MyElement", func(*component.Interactions, *component.Properties) any {
		sub, _ := numbers.Subscribe(stream.NextFunc(func(i int) error {
			log = append(log, i)
			return nil
		}))
		return component.Output{
			View:        stream.Of(vdom.H3(vdom.Class("myelementclass"))),
			Unsubscribe: sub,
		}
	})

	tree := New()
	defer tree.Close()
	mustRender(t, tree, switcher(toggle, func(s int) *vdom.VNode {
		if s == 0 {
			return vdom.Comp(el)
		}
		return vdom.Div()
	}))

	toggle.Request(1)
	numbers.Request(1)
	if len(log) != 1 {
		t.Fatalf("log = %v, want one value", log)
	}

	toggle.Request(1)
	numbers.Request(1)
	if len(log) != 1 {
		t.Errorf("log = %v after removal, want one value", log)
	}
}

func TestDisposeFuncCalledAfterRemoval(t *testing.T) {
	var log []int
	numbers := stream.NewControlled(1, 2)
	toggle := stream.NewControlled(0, 1)
	sub, _ := numbers.Subscribe(stream.NextFunc(func(i int) error {
		log = append(log, i)
		return nil
	}))
	disposed := 0
	dispose := func() {
		disposed++
		sub.Unsubscribe()
	}
	el := component.New("MyElement", func(*component.Interactions, *component.Properties) any {
		return component.Output{
			View:        stream.Of(vdom.H3(vdom.Class("myelementclass"))),
			Unsubscribe: dispose,
		}
	})

	tree := New()
	defer tree.Close()
	mustRender(t, tree, switcher(toggle, func(s int) *vdom.VNode {
		if s == 0 {
			return vdom.Comp(el)
		}
		return vdom.Div()
	}))

	toggle.Request(1)
	numbers.Request(1)
	toggle.Request(1)
	numbers.Request(1)

	if len(log) != 1 {
		t.Errorf("log = %v, want one value", log)
	}
	if disposed != 1 {
		t.Errorf("dispose called %d times, want 1", disposed)
	}
}

func TestUsingResourceReleasedAfterRemoval(t *testing.T) {
	var log []int
	numbers := stream.NewControlled(1, 2)
	toggle := stream.NewControlled(0, 1)
	el := component.New("MyElement", func(*component.Interactions, *component.Properties) any {
		return stream.Using(
			func() stream.Subscription {
				sub, _ := numbers.Subscribe(stream.NextFunc(func(i int) error {
					log = append(log, i)
					return nil
				}))
				return sub
			},
			func() stream.Producer[*vdom.VNode] {
				return stream.Map(stream.Producer[int](numbers), func(int) *vdom.VNode {
					return vdom.H3(vdom.Class("myelementclass"))
				})
			},
		)
	})

	tree := New()
	defer tree.Close()
	mustRender(t, tree, switcher(toggle, func(s int) *vdom.VNode {
		if s == 0 {
			return vdom.Comp(el)
		}
		return vdom.Div()
	}))

	toggle.Request(1)
	numbers.Request(1)
	if got := outline(tree.Snapshot()); got != "h3.myelementclass" {
		t.Errorf("snapshot = %s", got)
	}
	if len(log) != 1 {
		t.Fatalf("log = %v, want one value", log)
	}

	toggle.Request(1)
	numbers.Request(1)
	if len(log) != 1 {
		t.Errorf("log = %v after removal, want one value", log)
	}
	if numbers.Observers() != 0 {
		t.Errorf("numbers still has %d observers", numbers.Observers())
	}
}

// Removing a nested component tears it down completely before the parent's
// new snapshot is committed.
func TestNestedTeardownBeforeCommit(t *testing.T) {
	var disposed bool
	var child *component.Instance
	inner := component.New("Inner", func(*component.Interactions, *component.Properties) any {
		return component.Output{
			View:        stream.Of(vdom.Span()),
			Unsubscribe: func() { disposed = true },
		}
	})
	outer := component.New("Outer", func(_ *component.Interactions, props *component.Properties) any {
		return stream.Map(props.Pluck("show"), func(show any) *vdom.VNode {
			return vdom.Div(vdom.If(show == true, vdom.Comp(inner)))
		})
	})

	var sawTornDown bool
	tree := New(OnCommit(func(snap *vdom.VNode) {
		if child != nil && len(snap.Children) == 0 {
			sawTornDown = disposed &&
				child.State() == component.StateDisposed &&
				child.Interactions().Closed()
		}
	}))
	defer tree.Close()

	mustRender(t, tree, vdom.Comp(outer, vdom.A("show", true)))
	child = tree.Instances()[1]

	mustRender(t, tree, vdom.Comp(outer, vdom.A("show", false)))
	if !sawTornDown {
		t.Error("inner component was not fully torn down at commit time")
	}
}

// A parent whose view changes while it is still rendering, because a child
// it mounts reports back synchronously, settles on the latest view.
func TestReentrantRenderCoalesced(t *testing.T) {
	child := component.New("Child", func(*component.Interactions, *component.Properties) any {
		return component.Output{
			View:   stream.Of(vdom.Span(vdom.Text("child"))),
			Events: map[string]stream.Producer[any]{"ready": stream.Of[any](true)},
		}
	})
	parent := component.New("Parent", func(in *component.Interactions, _ *component.Properties) any {
		count := stream.Scan(stream.Merge(in.Get("ready"), stream.Of[any](nil)), -1, func(n int, _ any) int { return n + 1 })
		return stream.Map(count, func(n int) *vdom.VNode {
			return vdom.Div(vdom.Textf("ready %d", n), vdom.Comp(child, vdom.On("ready", in.Listener("ready"))))
		})
	})

	tree := New()
	defer tree.Close()
	mustRender(t, tree, vdom.Comp(parent))

	if got := outline(tree.Snapshot()); got != `div["ready 1",span["child"]]` {
		t.Errorf("snapshot = %s", got)
	}
	if len(tree.Instances()) != 2 {
		t.Errorf("instances = %d, want 2", len(tree.Instances()))
	}
}

func TestUnmountOrderChildrenFirst(t *testing.T) {
	var order []string
	leaf := func(name string) *component.Definition {
		return component.New(name, func(*component.Interactions, *component.Properties) any {
			return component.Output{
				View:        stream.Of(vdom.Span()),
				Unsubscribe: func() { order = append(order, name) },
			}
		})
	}
	a, b := leaf("a"), leaf("b")
	parent := component.New("parent", func(*component.Interactions, *component.Properties) any {
		return component.Output{
			View:        stream.Of(vdom.Div(vdom.Comp(a), vdom.Comp(b))),
			Unsubscribe: func() { order = append(order, "parent") },
		}
	})

	tree := New()
	mustRender(t, tree, vdom.Comp(parent))
	if err := tree.Close(); err != nil {
		t.Fatal(err)
	}

	want := []string{"b", "a", "parent"}
	if len(order) != 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Errorf("order = %v, want %v", order, want)
	}
	if tree.Snapshot() != nil {
		t.Error("snapshot should be cleared on Close")
	}
	if err := tree.Render(vdom.Div()); !errors.Is(err, ErrTreeClosed) {
		t.Errorf("Render after Close = %v, want ErrTreeClosed", err)
	}
}

func TestPositionalReplaceRemounts(t *testing.T) {
	mounts := 0
	el := component.New("el", func(*component.Interactions, *component.Properties) any {
		mounts++
		return stream.Of(vdom.Span())
	})
	other := static("other", vdom.P())

	tree := New()
	defer tree.Close()
	mustRender(t, tree, vdom.Div(vdom.Comp(el)))
	mustRender(t, tree, vdom.Div(vdom.Comp(el)))
	if mounts != 1 {
		t.Errorf("mounts = %d after same-identity update, want 1", mounts)
	}

	mustRender(t, tree, vdom.Div(vdom.Comp(el, vdom.Key("x"))))
	if mounts != 2 {
		t.Errorf("mounts = %d after key change, want 2", mounts)
	}

	mustRender(t, tree, vdom.Div(vdom.Comp(other)))
	if got := outline(tree.Snapshot()); got != "div[p]" {
		t.Errorf("snapshot = %s", got)
	}
	if len(tree.Instances()) != 1 {
		t.Errorf("instances = %d, want 1", len(tree.Instances()))
	}
}

func TestDispatchUnknownHID(t *testing.T) {
	tree := New()
	defer tree.Close()
	mustRender(t, tree, vdom.Div())

	if err := tree.Dispatch("h99", "click", nil); !errors.Is(err, ErrUnknownHID) {
		t.Errorf("Dispatch() = %v, want ErrUnknownHID", err)
	}
}

type foreign struct{}

func (foreign) ComponentName() string { return "foreign" }

func TestUnsupportedComponent(t *testing.T) {
	tree := New()
	defer tree.Close()
	if err := tree.Render(vdom.Comp(foreign{})); !errors.Is(err, ErrUnsupportedComponent) {
		t.Errorf("Render() = %v, want ErrUnsupportedComponent", err)
	}
}
