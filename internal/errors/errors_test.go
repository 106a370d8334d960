package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "invalid definition",
			code:    CodeInvalidDefinition,
			wantMsg: "Invalid component definition",
			wantCat: CategoryDefinition,
		},
		{
			name:    "disposal",
			code:    CodeDisposal,
			wantMsg: "Component teardown failed",
			wantCat: CategoryTeardown,
		},
		{
			name:    "config",
			code:    CodeConfigInvalid,
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "unknown demo %q", "x")
	if err.Message != `unknown demo "x"` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Error() != `unknown demo "x"` {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New(CodeConfigLoad).Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if got := err.Error(); got != "C002: Configuration could not be loaded: disk full" {
		t.Errorf("Error() = %q", got)
	}
	if FromError(nil, CodeConfigLoad) != nil {
		t.Error("FromError(nil) should be nil")
	}
	if FromError(err, CodeDisposal) != err {
		t.Error("FromError should return an existing CodedError unchanged")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeInvalidDefinition).
		WithDetail("Slider returned a nil view").
		WithSuggestion("Set Output.View")
	out := err.Format()

	for _, want := range []string{"ERROR R001: Invalid component definition", "Slider returned a nil view", "Hint: Set Output.View", "Learn more:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
	if err.Summary() != "R001: Invalid component definition" {
		t.Errorf("Summary() = %q", err.Summary())
	}
}

func TestFormatJoinedCause(t *testing.T) {
	DisableColors()
	defer EnableColors()

	cause := stderrors.Join(stderrors.New("view: closed twice"), stderrors.New("bus: panic: boom"))
	out := New(CodeDisposal).Wrap(cause).Format()
	for _, want := range []string{"Causes:", "    - view: closed twice", "    - bus: panic: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"", 10, nil},
		{"short", 10, []string{"short"}},
		{"one two three four", 9, []string{"one two", "three", "four"}},
		{"unbreakableword x", 5, []string{"unbreakableword", "x"}},
	}
	for _, tt := range tests {
		got := wrapText(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

type coded struct{}

func (coded) Error() string      { return "coded" }
func (coded) Coded() *CodedError { return New(CodeViewEmission) }

func TestRender(t *testing.T) {
	DisableColors()
	defer EnableColors()

	if out := Render(coded{}); !strings.Contains(out, "R002") {
		t.Errorf("Render(Coder) = %q", out)
	}
	if ce, ok := As(fmt.Errorf("outer: %w", coded{})); !ok || ce.Code != CodeViewEmission {
		t.Errorf("As(wrapped Coder) = %v, %v", ce, ok)
	}
	if _, ok := As(stderrors.New("plain")); ok {
		t.Error("As(plain) = true")
	}
	if out := Render(stderrors.New("plain")); !strings.Contains(out, "ERROR: plain") {
		t.Errorf("Render(plain) = %q", out)
	}
}

func TestGetAllCodesSorted(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] > codes[i] {
			t.Errorf("codes not sorted: %v", codes)
		}
	}
	if _, ok := GetTemplate(CodeDispatchDuringTeardown); !ok {
		t.Error("R005 should be registered")
	}
}
