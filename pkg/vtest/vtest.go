package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/rxview/pkg/component"
	"github.com/vango-dev/rxview/pkg/host"
	"github.com/vango-dev/rxview/pkg/render"
	"github.com/vango-dev/rxview/pkg/vdom"
)

// Harness is a mounted tree under test.
type Harness struct {
	t    testing.TB
	tree *host.Tree
	loop *host.Loop
}

// Mount renders def with the given attributes (see vdom.Comp) and returns
// a harness. It fails the test if mounting fails.
func Mount(t testing.TB, def *component.Definition, args ...any) *Harness {
	t.Helper()
	return MountNode(t, vdom.Comp(def, args...))
}

// MountNode renders an arbitrary root.
func MountNode(t testing.TB, root *vdom.VNode, opts ...host.Option) *Harness {
	t.Helper()
	h := &Harness{t: t, tree: host.New(opts...), loop: host.NewLoop()}
	t.Cleanup(func() {
		if err := h.tree.Close(); err != nil {
			t.Errorf("teardown failed: %v", err)
		}
	})
	if err := h.tree.Render(root); err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	return h
}

// Tree returns the underlying tree.
func (h *Harness) Tree() *host.Tree { return h.tree }

// Loop returns the scheduler for asynchronous producers.
func (h *Harness) Loop() *host.Loop { return h.loop }

// Snapshot returns the current settled tree.
func (h *Harness) Snapshot() *vdom.VNode { return h.tree.Snapshot() }

// HTML renders the current snapshot.
func (h *Harness) HTML() string {
	h.t.Helper()
	html, err := render.HTML(h.tree.Snapshot())
	if err != nil {
		h.t.Fatalf("render failed: %v", err)
	}
	return html
}

// Flush runs queued loop tasks and fails the test on error.
func (h *Harness) Flush() {
	h.t.Helper()
	if err := h.loop.RunPending(); err != nil {
		h.t.Fatalf("loop task failed: %v", err)
	}
}

// Fire dispatches event to the first element carrying class and fails the
// test if there is none or the handler returns an error.
func (h *Harness) Fire(class, event string, payload any) {
	h.t.Helper()
	if err := h.TryFire(class, event, payload); err != nil {
		h.t.Fatalf("fire %s on .%s: %v", event, class, err)
	}
}

// TryFire is Fire that returns the handler error instead of failing.
func (h *Harness) TryFire(class, event string, payload any) error {
	h.t.Helper()
	target := vdom.FindByClass(h.tree.Snapshot(), class, 0)
	if target == nil {
		h.t.Fatalf("no element with class %q in:\n%s", class, truncate(h.HTML(), 500))
	}
	return h.tree.Dispatch(target.HID, event, payload)
}

// ExpectHTML asserts the whole rendered snapshot.
func (h *Harness) ExpectHTML(want string) {
	h.t.Helper()
	if got := h.HTML(); got != want {
		h.t.Errorf("rendered output:\n got: %s\nwant: %s", got, want)
	}
}

// ExpectContains asserts that the rendered snapshot contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	ExpectContains(h.t, h.tree.Snapshot(), expected)
}

// ExpectNotContains asserts that the rendered snapshot does not contain
// unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	ExpectNotContains(h.t, h.tree.Snapshot(), unexpected)
}

// RenderToString renders a settled node, returning "" when it cannot be
// rendered.
func RenderToString(node *vdom.VNode) string {
	html, err := render.HTML(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectHTML asserts that node renders to exactly want.
func ExpectHTML(t testing.TB, node *vdom.VNode, want string) {
	t.Helper()
	got, err := render.HTML(node)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got != want {
		t.Errorf("rendered output:\n got: %s\nwant: %s", got, want)
	}
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, h.Snapshot(), "Welcome Admin")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, node, "class", "btn-primary")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
