package host

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vango-dev/rxview/pkg/component"
	"github.com/vango-dev/rxview/pkg/vdom"
)

var (
	// ErrUnknownHID is returned by Dispatch when no node in the current
	// snapshot has the hydration ID.
	ErrUnknownHID = errors.New("rxview: unknown hydration id")

	// ErrTreeClosed is returned by calls on a closed Tree.
	ErrTreeClosed = errors.New("rxview: tree closed")

	// ErrUnsupportedComponent is returned when a component node refers to
	// something other than a *component.Definition.
	ErrUnsupportedComponent = errors.New("rxview: unsupported component type")
)

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the tree's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

// WithComponentOptions sets the options every component is mounted with.
func WithComponentOptions(opts ...component.Option) Option {
	return func(t *Tree) {
		t.compOpts = append(t.compOpts, opts...)
	}
}

// OnCommit registers fn to be called with every new snapshot.
func OnCommit(fn func(snapshot *vdom.VNode)) Option {
	return func(t *Tree) {
		t.onCommit = fn
	}
}

// Tree is a mounted vdom tree.
type Tree struct {
	root     *mounted
	snapshot *vdom.VNode
	hids     *vdom.HIDGenerator
	commits  int
	depth    int
	closed   bool

	onCommit func(*vdom.VNode)
	compOpts []component.Option
	logger   *slog.Logger
}

// New creates an empty Tree.
func New(opts ...Option) *Tree {
	t := &Tree{hids: vdom.NewHIDGenerator()}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default().With("component", "host")
	}
	return t
}

// Render reconciles root against the mounted tree. The first call mounts
// it; later calls update it in place where identities match.
func (t *Tree) Render(root *vdom.VNode) error {
	if t.closed {
		return ErrTreeClosed
	}
	return t.batch(func() error {
		m, err := t.reconcile(t.root, root)
		t.root = m
		return err
	})
}

// Snapshot returns the tree as of the last commit, with components
// replaced by their rendered output. It is nil before the first Render and
// after Close. The snapshot must not be modified.
func (t *Tree) Snapshot() *vdom.VNode {
	return t.snapshot
}

// Commits returns how many snapshots have been produced.
func (t *Tree) Commits() int {
	return t.commits
}

// Dispatch calls the handler for event on the snapshot node with the given
// hydration ID.
func (t *Tree) Dispatch(hid, event string, payload any) error {
	if t.closed {
		return ErrTreeClosed
	}
	node := vdom.FindByHID(t.snapshot, hid)
	if node == nil {
		return fmt.Errorf("%w: %s", ErrUnknownHID, hid)
	}
	return t.batch(func() error {
		return vdom.Fire(node, event, payload)
	})
}

// Instances returns the mounted component instances, parents before
// children.
func (t *Tree) Instances() []*component.Instance {
	var out []*component.Instance
	var walk func(m *mounted)
	walk = func(m *mounted) {
		if m == nil {
			return
		}
		if m.inst != nil {
			out = append(out, m.inst)
		}
		walk(m.view)
		for _, c := range m.children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}

// Close unmounts everything. Teardown errors are returned; every
// instance is unmounted regardless.
func (t *Tree) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	err := t.unmount(t.root)
	t.root = nil
	t.snapshot = nil
	t.logger.Debug("tree closed")
	return err
}

// batch runs fn and commits once the outermost batch returns.
func (t *Tree) batch(fn func() error) error {
	err := t.nested(fn)
	if t.depth == 0 && !t.closed {
		t.commit()
	}
	return err
}

// nested runs fn one batch level deeper. The level is restored even when
// fn panics.
func (t *Tree) nested(fn func() error) error {
	t.depth++
	defer func() { t.depth-- }()
	return fn()
}

func (t *Tree) commit() {
	snap := settle(t.root)
	t.hids.Reset()
	vdom.AssignHIDs(snap, t.hids)
	t.snapshot = snap
	t.commits++
	t.logger.Debug("commit", "commits", t.commits)
	if t.onCommit != nil {
		t.onCommit(snap)
	}
}

// settle copies the mounted tree into a plain vdom tree, replacing each
// component with its rendered view.
func settle(m *mounted) *vdom.VNode {
	if m == nil {
		return nil
	}
	if m.node.Kind == vdom.KindComponent {
		return settle(m.view)
	}

	out := *m.node
	if m.node.Props != nil {
		out.Props = m.node.Props.Clone()
	}
	out.HID = ""
	out.Children = nil
	for _, c := range m.children {
		if s := settle(c); s != nil {
			out.Children = append(out.Children, s)
		}
	}
	return &out
}

// componentProps builds the properties a component node mounts with: its
// props without "key", plus its children under "children".
func componentProps(n *vdom.VNode) vdom.Props {
	props := n.Props.Without("key")
	if len(n.Children) > 0 {
		props["children"] = n.Children
	}
	return props
}
