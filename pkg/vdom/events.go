package vdom

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// EventKey maps an event name to the property key its listener is passed
// under: "remove" becomes "onRemove". Names already of the form "onX" are
// returned unchanged.
func EventKey(name string) string {
	if name == "" {
		return ""
	}
	if rest, ok := strings.CutPrefix(name, "on"); ok && rest != "" {
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsUpper(r) {
			return name
		}
	}
	r, size := utf8.DecodeRuneInString(name)
	return "on" + string(unicode.ToUpper(r)) + name[size:]
}

// On binds handler to the named event under EventKey(name):
// On("remove", h) sets "onRemove".
func On(name string, handler any) EventHandler {
	if name == "" {
		return EventHandler{}
	}
	return EventHandler{Event: EventKey(name), Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return On("click", handler) }

// OnInput handles input events (fired when value changes).
func OnInput(handler any) EventHandler { return On("input", handler) }

// OnChange handles change events (fired when value is committed).
func OnChange(handler any) EventHandler { return On("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return On("submit", handler) }
