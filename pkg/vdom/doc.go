// Package vdom defines the view tree that component definitions produce.
//
// # Core Types
//
// VNode is the fundamental building block representing elements, text,
// fragments, component references and raw HTML. Props holds attributes and
// event handlers. Attr and EventHandler are used to build Props.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    P("Content"),
//	    OnClick(handler),
//	)
//
// Component references take the same arguments; attributes become the
// component's properties:
//
//	Comp(Slider, A("id", 23), Key(23), On("remove", listener))
//
// # Identity
//
// SameIdentity decides whether a node can update a mounted one in place:
// kind, tag, component reference and key must all match.
//
// # Hydration
//
// AssignHIDs walks a settled tree and assigns hydration IDs to interactive
// elements (those with event handlers) so hosts can route client events.
package vdom
