package vdom

import "strings"

// A sets an arbitrary attribute on an element, or a property on a
// component node.
func A(key string, value any) Attr { return Attr{Key: key, Value: value} }

// ID sets the id attribute.
func ID(id string) Attr { return A("id", id) }

// Class sets the class attribute. Multiple classes are space separated.
func Class(classes ...string) Attr { return A("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return A("style", style) }

// Value sets the value attribute.
func Value(value any) Attr { return A("value", value) }

// Disabled sets the disabled attribute.
func Disabled(disabled bool) Attr { return A("disabled", disabled) }
