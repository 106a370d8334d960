package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// H creates an element node with the given tag.
// Arguments can be: nil, Attr, []Attr, Props, *VNode, []*VNode, Component,
// string, EventHandler.
func H(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}
	applyArgs(node, args)
	return node
}

// Comp creates a node referencing component c. Attributes become the
// component's properties and child nodes are forwarded as its "children"
// property by the host.
func Comp(c Component, args ...any) *VNode {
	node := &VNode{
		Kind:     KindComponent,
		Comp:     c,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}
	applyArgs(node, args)
	return node
}

func applyArgs(node *VNode, args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			setAttr(node, v)

		case []Attr:
			for _, a := range v {
				setAttr(node, a)
			}

		case Props:
			for key, value := range v {
				setAttr(node, Attr{Key: key, Value: value})
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case Component:
			// Embedded component without properties
			node.Children = append(node.Children, Comp(v))

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, Text(v))

		case EventHandler:
			if v.Event != "" {
				node.Props[v.Event] = v.Handler
			}
		}
	}
}

func setAttr(node *VNode, a Attr) {
	if a.Key == "" {
		return
	}
	if a.Key == "key" {
		node.Key = keyString(a.Value)
		return
	}
	node.Props[a.Key] = a.Value
}

// Document structure elements

func Div(args ...any) *VNode     { return H("div", args...) }
func Span(args ...any) *VNode    { return H("span", args...) }
func P(args ...any) *VNode       { return H("p", args...) }
func Section(args ...any) *VNode { return H("section", args...) }
func Header(args ...any) *VNode  { return H("header", args...) }
func Footer(args ...any) *VNode  { return H("footer", args...) }
func Main(args ...any) *VNode    { return H("main", args...) }
func Nav(args ...any) *VNode     { return H("nav", args...) }
func H1(args ...any) *VNode      { return H("h1", args...) }
func H2(args ...any) *VNode      { return H("h2", args...) }
func H3(args ...any) *VNode      { return H("h3", args...) }

// Lists

func Ul(args ...any) *VNode { return H("ul", args...) }
func Ol(args ...any) *VNode { return H("ol", args...) }
func Li(args ...any) *VNode { return H("li", args...) }

// Forms

func Form(args ...any) *VNode   { return H("form", args...) }
func Button(args ...any) *VNode { return H("button", args...) }
func Input(args ...any) *VNode  { return H("input", args...) }
func Label(args ...any) *VNode  { return H("label", args...) }
func Br(args ...any) *VNode     { return H("br", args...) }
