package vdom

import "testing"

func TestAssignHIDs(t *testing.T) {
	tree := Div(
		Button(OnClick(func() {})),
		Span("static"),
		Fragment(Ul(Li(On("select", func() {})))),
	)
	gen := NewHIDGenerator()

	if n := AssignHIDs(tree, gen); n != 2 {
		t.Fatalf("AssignHIDs() = %d, want 2", n)
	}
	if got := FindByHID(tree, "h1"); got == nil || got.Tag != "button" {
		t.Errorf("h1 = %v, want button", got)
	}
	if got := FindByHID(tree, "h2"); got == nil || got.Tag != "li" {
		t.Errorf("h2 = %v, want li", got)
	}
	if FindByHID(tree, "h3") != nil || FindByHID(tree, "") != nil {
		t.Error("FindByHID should miss unknown ids")
	}
	if tree.Children[1].HID != "" {
		t.Errorf("static span HID = %q, want empty", tree.Children[1].HID)
	}

	gen.Reset()
	if gen.Next() != "h1" {
		t.Error("Reset should restart numbering")
	}
}

func TestAssignHIDsClearsStale(t *testing.T) {
	span := Span("was interactive")
	span.HID = "h9"
	AssignHIDs(Div(span), NewHIDGenerator())
	if span.HID != "" {
		t.Errorf("stale HID = %q, want cleared", span.HID)
	}
}
