package host

import (
	"errors"
	"fmt"

	"github.com/vango-dev/rxview/pkg/component"
	"github.com/vango-dev/rxview/pkg/vdom"
)

// mounted is one node of the retained tree.
type mounted struct {
	tree     *Tree
	node     *vdom.VNode
	children []*mounted

	// Component nodes only.
	inst       *component.Instance
	view       *mounted
	rendering  bool
	pending    *vdom.VNode
	hasPending bool

	removed bool
}

func (t *Tree) reconcile(old *mounted, next *vdom.VNode) (*mounted, error) {
	switch {
	case next == nil:
		if old == nil {
			return nil, nil
		}
		return nil, t.unmount(old)
	case old == nil:
		return t.mount(next)
	case !vdom.SameIdentity(old.node, next):
		uerr := t.unmount(old)
		m, err := t.mount(next)
		return m, errors.Join(uerr, err)
	}
	return old, t.update(old, next)
}

func (t *Tree) update(m *mounted, next *vdom.VNode) error {
	m.node = next
	if next.Kind == vdom.KindComponent {
		return m.inst.Update(componentProps(next))
	}
	children, err := t.reconcileChildren(m.children, next.Children)
	m.children = children
	return err
}

func (t *Tree) mount(n *vdom.VNode) (*mounted, error) {
	m := &mounted{tree: t, node: n}
	if n.Kind != vdom.KindComponent {
		children, err := t.reconcileChildren(nil, n.Children)
		m.children = children
		return m, err
	}

	def, ok := n.Comp.(*component.Definition)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedComponent, n.Comp)
	}
	inst, err := component.Mount(def, componentProps(n), m.render, t.compOpts...)
	if err != nil {
		// Views rendered before the failure may have mounted children.
		m.removed = true
		if m.view != nil {
			err = errors.Join(err, t.unmount(m.view))
			m.view = nil
		}
		return nil, err
	}
	m.inst = inst
	if m.removed {
		// Removed by a re-entrant render while it was mounting.
		return nil, inst.Unmount()
	}
	return m, nil
}

// reconcileChildren matches next against old, keyed children by key and
// the rest by position. Unmatched old children are unmounted, in reverse
// order, before new ones are mounted.
func (t *Tree) reconcileChildren(old []*mounted, next []*vdom.VNode) ([]*mounted, error) {
	keyed := make(map[string]*mounted)
	var unkeyed []*mounted
	for _, m := range old {
		if m.node.Key != "" {
			keyed[m.node.Key] = m
		} else {
			unkeyed = append(unkeyed, m)
		}
	}

	matches := make([]*mounted, len(next))
	used := make(map[*mounted]bool, len(old))
	pos := 0
	for i, n := range next {
		if n == nil {
			continue
		}
		var candidate *mounted
		if n.Key != "" {
			candidate = keyed[n.Key]
		} else if pos < len(unkeyed) {
			candidate = unkeyed[pos]
			pos++
		}
		if candidate != nil && !used[candidate] && vdom.SameIdentity(candidate.node, n) {
			matches[i] = candidate
			used[candidate] = true
		}
	}

	var errs []error
	for i := len(old) - 1; i >= 0; i-- {
		if !used[old[i]] {
			errs = append(errs, t.unmount(old[i]))
		}
	}

	out := make([]*mounted, 0, len(next))
	for i, n := range next {
		if n == nil {
			continue
		}
		m, err := t.reconcile(matches[i], n)
		errs = append(errs, err)
		if m != nil {
			out = append(out, m)
		}
	}
	return out, errors.Join(errs...)
}

// unmount tears down m's descendants in reverse order, then m's own
// instance.
func (t *Tree) unmount(m *mounted) error {
	if m == nil || m.removed {
		return nil
	}
	m.removed = true

	var errs []error
	if m.view != nil {
		errs = append(errs, t.unmount(m.view))
		m.view = nil
	}
	for i := len(m.children) - 1; i >= 0; i-- {
		errs = append(errs, t.unmount(m.children[i]))
	}
	m.children = nil
	if m.inst != nil {
		errs = append(errs, m.inst.Unmount())
	}
	return errors.Join(errs...)
}

// render is the component.RenderFunc of a component slot. A render that
// arrives while the slot is already rendering is coalesced: only the
// latest pending view is reconciled once the current one finishes.
func (m *mounted) render(_ *component.Instance, view *vdom.VNode) error {
	if m.removed {
		return nil
	}
	if m.rendering {
		m.pending, m.hasPending = view, true
		return nil
	}

	t := m.tree
	return t.batch(func() error {
		m.rendering = true
		defer func() { m.rendering = false }()

		for {
			next, err := t.reconcile(m.view, view)
			if m.removed {
				return errors.Join(err, t.unmount(next))
			}
			m.view = next
			if err != nil {
				m.pending, m.hasPending = nil, false
				return err
			}
			if !m.hasPending || m.removed {
				return nil
			}
			view = m.pending
			m.pending, m.hasPending = nil, false
		}
	})
}
