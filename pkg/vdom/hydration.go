package vdom

import "strconv"

// HIDGenerator numbers interactive elements "h1", "h2", ... It is not safe
// for concurrent use; hosts own one per tree.
type HIDGenerator struct {
	n int
}

// NewHIDGenerator returns a generator starting at h1.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID.
func (g *HIDGenerator) Next() string {
	g.n++
	return "h" + strconv.Itoa(g.n)
}

// Reset restarts numbering at h1.
func (g *HIDGenerator) Reset() {
	g.n = 0
}

// AssignHIDs gives every element with an event handler the next ID, in
// document order, and returns how many were assigned. Elements without
// handlers keep an empty HID.
func AssignHIDs(root *VNode, gen *HIDGenerator) int {
	if root == nil {
		return 0
	}
	count := 0
	if root.IsInteractive() {
		root.HID = gen.Next()
		count++
	} else {
		root.HID = ""
	}
	for _, child := range root.Children {
		count += AssignHIDs(child, gen)
	}
	return count
}

// FindByHID returns the node with the given hydration ID, or nil.
func FindByHID(root *VNode, hid string) *VNode {
	if root == nil || hid == "" {
		return nil
	}
	if root.HID == hid {
		return root
	}
	for _, child := range root.Children {
		if found := FindByHID(child, hid); found != nil {
			return found
		}
	}
	return nil
}
