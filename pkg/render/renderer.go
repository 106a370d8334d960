package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/rxview/pkg/vdom"
)

// ErrUnsettled is returned when a tree still contains component nodes.
var ErrUnsettled = errors.New("render: component node in tree; render a host snapshot")

// Config configures a Renderer.
type Config struct {
	// Pretty enables indented output. Intended for the CLI and tests.
	Pretty bool

	// Indent is the per-level indentation in pretty mode.
	// Default: two spaces.
	Indent string
}

// Renderer writes vdom trees as HTML. It holds no per-render state and may
// be shared.
type Renderer struct {
	config Config
}

// New creates a Renderer.
func New(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// HTML renders node compactly.
func HTML(node *vdom.VNode) (string, error) {
	return New(Config{}).RenderToString(node)
}

// RenderToString renders node to a string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter renders node to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	sw := &stickyWriter{w: w}
	if err := r.renderNode(sw, node, 0); err != nil {
		return err
	}
	return sw.err
}

// stickyWriter remembers the first write error and drops later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) WriteString(str string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, str)
}

func (r *Renderer) renderNode(w *stickyWriter, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		w.WriteString(escapeHTML(node.Text))
	case vdom.KindRaw:
		w.WriteString(node.Text)
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
	case vdom.KindComponent:
		return fmt.Errorf("%w: %s", ErrUnsettled, node.Comp.ComponentName())
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
	return nil
}

func (r *Renderer) renderElement(w *stickyWriter, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.WriteString("<")
	w.WriteString(tag)
	r.renderAttributes(w, node)
	w.WriteString(">")

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			w.WriteString("\n")
		}
		return nil
	}

	block := hasElementChild(node) && !isInlineElement(tag)
	if r.config.Pretty && block {
		w.WriteString("\n")
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}
	if r.config.Pretty && block {
		r.writeIndent(w, depth)
	}

	w.WriteString("</")
	w.WriteString(tag)
	w.WriteString(">")
	if r.config.Pretty {
		w.WriteString("\n")
	}
	return nil
}

// renderAttributes writes props in key order. Handlers, keys, nested nodes
// and "_"-prefixed props are skipped; handler names are written as
// data-on-<event> markers after the hydration ID.
func (r *Renderer) renderAttributes(w *stickyWriter, node *vdom.VNode) {
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events []string
	for _, key := range keys {
		value := node.Props[key]
		if strings.HasPrefix(key, "_") || key == "key" || key == "children" {
			continue
		}
		if vdom.IsEventKey(key) && vdom.IsHandler(value) {
			events = append(events, strings.ToLower(key[2:]))
			continue
		}

		switch key {
		case "className":
			key = "class"
		case "htmlFor":
			key = "for"
		}

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					w.WriteString(" " + key)
				}
				continue
			}
		}

		str, ok := attrString(value)
		if !ok || str == "" {
			continue
		}
		w.WriteString(" " + key + `="` + escapeAttr(str) + `"`)
	}

	if node.HID != "" {
		w.WriteString(` data-hid="` + escapeAttr(node.HID) + `"`)
	}
	for _, event := range events {
		w.WriteString(" data-on-" + event + `="true"`)
	}
}

// attrString converts a prop value to its attribute text. It reports false
// for values that have no attribute form.
func attrString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		if v {
			return "true", true
		}
		return "false", true
	case fmt.Stringer:
		return v.String(), true
	case *vdom.VNode, []*vdom.VNode:
		return "", false
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

func hasElementChild(node *vdom.VNode) bool {
	for _, child := range node.Children {
		if child != nil && child.Kind != vdom.KindText && child.Kind != vdom.KindRaw {
			return true
		}
	}
	return false
}

func (r *Renderer) writeIndent(w *stickyWriter, depth int) {
	w.WriteString(strings.Repeat(r.config.Indent, depth))
}
