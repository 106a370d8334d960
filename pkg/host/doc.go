// Package host is a retained-mode tree that mounts component nodes through
// the component engine.
//
// A Tree holds the mounted form of a vdom tree. Element, text and fragment
// nodes are kept as they are; component nodes are mounted with
// component.Mount and their latest view is reconciled in their place each
// time it is emitted. Children are matched by key when they have one and
// by position otherwise. A node whose kind, tag, component or key changed
// is unmounted and mounted again; anything else is updated in place, which
// for a component means Instance.Update with the new properties.
//
// After every settled change the Tree rebuilds its snapshot: the same tree
// with every component replaced by its rendered output and hydration IDs
// assigned to interactive elements. Dispatch finds a handler in the
// snapshot by hydration ID and calls it.
//
// A Tree is not safe for concurrent use. Run every call, and every
// asynchronous emission of the components it hosts, on one Loop.
package host
