// Package render writes settled vdom trees as HTML.
//
// A settled tree is what host.Tree.Snapshot returns: plain elements, text,
// fragments and raw HTML, with every component already replaced by its
// output. Rendering a component node is an error.
//
//	html, err := render.HTML(tree.Snapshot())
//
// Text and attribute values are escaped. Event handlers are not written as
// attributes; an element that has them is written with its hydration ID
// as data-hid and one data-on-<event> marker per handler, which is what the
// live client binds to. Raw nodes are written unescaped and should only
// carry trusted content.
package render
