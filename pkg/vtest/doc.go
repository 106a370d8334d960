// Package vtest provides testing helpers for rxview components.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, Counter, vdom.A("start", 1))
//	    h.ExpectContains(`<span class="value">1</span>`)
//	    h.Fire("inc", "click", nil)
//	    h.ExpectContains(`<span class="value">2</span>`)
//	}
//
// Mount registers a cleanup that unmounts the tree and fails the test if
// any teardown step failed.
//
// # Asynchronous Sources
//
// Producers that hop onto a scheduler, such as stream.Interval, should be
// given h.Loop(). Queued tasks run when h.Flush is called.
//
// # Render Assertions
//
// The free functions assert on any settled node:
//
//	vtest.ExpectContains(t, node, "Welcome")
//	vtest.ExpectNotContains(t, node, "Login")
//	vtest.ExpectElement(t, node, "button")
//	vtest.ExpectAttribute(t, node, "class", "btn-primary")
package vtest
