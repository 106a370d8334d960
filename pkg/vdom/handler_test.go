package vdom

import (
	"errors"
	"testing"
)

func TestInvokeShapes(t *testing.T) {
	var got any
	calls := 0
	boom := errors.New("boom")

	tests := []struct {
		name    string
		handler any
		ok      bool
		err     error
	}{
		{"HandlerFunc", HandlerFunc(func(p any) error { got = p; return nil }), true, nil},
		{"func(any) error", func(p any) error { return boom }, true, boom},
		{"func(any)", func(p any) { got = p }, true, nil},
		{"func() error", func() error { calls++; return nil }, true, nil},
		{"func()", func() { calls++ }, true, nil},
		{"string", "nope", false, nil},
		{"nil", nil, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := Invoke(tt.handler, 42)
			if ok != tt.ok {
				t.Errorf("ok = %v, want %v", ok, tt.ok)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
		})
	}
	if got != 42 {
		t.Errorf("payload = %v, want 42", got)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestFireMatchesEventNames(t *testing.T) {
	clicks := 0
	node := Button(OnClick(func() { clicks++ }))

	for _, name := range []string{"click", "onclick", "onClick", "Click"} {
		if err := Fire(node, name, nil); err != nil {
			t.Errorf("Fire(%q) error = %v", name, err)
		}
	}
	if clicks != 4 {
		t.Errorf("clicks = %d, want 4", clicks)
	}

	if err := Fire(node, "input", nil); !errors.Is(err, ErrNoHandler) {
		t.Errorf("Fire(input) error = %v, want ErrNoHandler", err)
	}
}

func TestEventKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"remove", "onRemove"},
		{"click", "onClick"},
		{"Foo", "onFoo"},
		{"onRemove", "onRemove"},
		{"once", "onOnce"},
		{"on", "onOn"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EventKey(tt.name); got != tt.want {
			t.Errorf("EventKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestHandlerPrefersEventKey(t *testing.T) {
	var got []string
	node := Button(Props{
		"onclick": func() { got = append(got, "lower") },
		"onClick": func() { got = append(got, "exact") },
	})

	for i := 0; i < 20; i++ {
		if err := Fire(node, "click", nil); err != nil {
			t.Fatal(err)
		}
	}
	for i, name := range got {
		if name != "exact" {
			t.Fatalf("call %d went to %q, want exact", i, name)
		}
	}

	if err := Fire(Button(Props{"onclick": func() { got = append(got, "lower") }}), "click", nil); err != nil {
		t.Errorf("Fire() on lowercase prop error = %v", err)
	}
	if got[len(got)-1] != "lower" {
		t.Error("lowercase prop should still match")
	}
}

func TestIfElse(t *testing.T) {
	a, b := P("a"), P("b")
	if IfElse(true, a, b) != a {
		t.Error("IfElse(true) should return the first node")
	}
	if IfElse(false, a, b) != b {
		t.Error("IfElse(false) should return the second node")
	}
	if If(false, a) != nil {
		t.Error("If(false) should return nil")
	}
}
