package vdom

import "strings"

// FindByClass returns the nth element (zero based, document order) whose
// class list contains class.
func FindByClass(node *VNode, class string, nth int) *VNode {
	var found *VNode
	seen := 0
	var walk func(n *VNode) bool
	walk = func(n *VNode) bool {
		if n == nil {
			return false
		}
		if n.Kind == KindElement && HasClass(n, class) {
			if seen == nth {
				found = n
				return true
			}
			seen++
		}
		for _, child := range n.Children {
			if walk(child) {
				return true
			}
		}
		return false
	}
	walk(node)
	return found
}

// HasClass reports whether node's class attribute lists class.
func HasClass(node *VNode, class string) bool {
	if node == nil {
		return false
	}
	classes, _ := node.Props["class"].(string)
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}
