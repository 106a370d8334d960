package host

import (
	"fmt"
	"strings"

	"github.com/vango-dev/rxview/pkg/vdom"
)

// outline renders a compact description of a snapshot:
// tag.class[children], text in quotes.
func outline(n *vdom.VNode) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case vdom.KindText, vdom.KindRaw:
		return fmt.Sprintf("%q", n.Text)
	}

	var b strings.Builder
	b.WriteString(n.Tag)
	if class, ok := n.Props["class"].(string); ok && class != "" {
		b.WriteString(".")
		b.WriteString(class)
	}
	if len(n.Children) > 0 {
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = outline(c)
		}
		b.WriteString("[")
		b.WriteString(strings.Join(parts, ","))
		b.WriteString("]")
	}
	return b.String()
}
