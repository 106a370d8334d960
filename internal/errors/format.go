package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
	ansiGray   = "\033[90m"
)

// colorEnabled starts off when NO_COLOR is set.
var colorEnabled = os.Getenv("NO_COLOR") == ""

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

func paint(text string, codes ...string) string {
	if !colorEnabled || len(codes) == 0 {
		return text
	}
	return strings.Join(codes, "") + text + ansiReset
}

// Format renders the error for a terminal. A wrapped error spanning
// several lines, such as a joined teardown failure, is listed line by line.
func (e *CodedError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		b.WriteString(paint("ERROR "+e.Code+":", ansiRed, ansiBold))
	} else {
		b.WriteString(paint("ERROR:", ansiRed, ansiBold))
	}
	b.WriteString(" " + e.Message + "\n\n")

	if e.Wrapped != nil {
		lines := strings.Split(e.Wrapped.Error(), "\n")
		if len(lines) == 1 {
			b.WriteString("  " + paint("Cause: ", ansiYellow) + lines[0] + "\n\n")
		} else {
			b.WriteString("  " + paint("Causes:", ansiYellow) + "\n")
			for _, line := range lines {
				b.WriteString("    - " + line + "\n")
			}
			b.WriteString("\n")
		}
	}

	for _, line := range wrapText(e.Detail, 70) {
		b.WriteString("  " + line + "\n")
	}
	if e.Detail != "" {
		b.WriteString("\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  " + paint("Hint: ", ansiCyan) + e.Suggestion + "\n\n")
	}
	if e.DocURL != "" {
		b.WriteString("  " + paint("Learn more: ", ansiGray) + e.DocURL + "\n")
	}
	return b.String()
}

// Summary returns "CODE: Message" without the wrapped error.
func (e *CodedError) Summary() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// wrapText breaks text into lines of at most width bytes, splitting on
// spaces. Words longer than width get a line of their own.
func wrapText(text string, width int) []string {
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) > width:
			lines = append(lines, line)
			line = word
		default:
			line += " " + word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// Coder is implemented by typed errors that map to a registered code.
type Coder interface {
	Coded() *CodedError
}

// As returns the CodedError for err: err itself or one it wraps, or the
// Coded form of a wrapped Coder.
func As(err error) (*CodedError, bool) {
	var ce *CodedError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	var coder Coder
	if stderrors.As(err, &coder) {
		return coder.Coded(), true
	}
	return nil, false
}

// PrintError prints a formatted error to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}

// Fprint writes Render(err) to w.
func Fprint(w io.Writer, err error) {
	fmt.Fprint(w, Render(err))
}

// Render formats err for terminal display.
func Render(err error) string {
	if ce, ok := As(err); ok {
		return ce.Format()
	}
	return "\n" + paint("ERROR:", ansiRed, ansiBold) + " " + err.Error() + "\n\n"
}
