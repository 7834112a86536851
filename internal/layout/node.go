// Package layout models the page as a tree of nodes carrying the attributes
// and scroll metrics the pager reads. It stands in for a document tree so the
// navigation logic can run, and be tested, without a renderer.
package layout

import "slices"

// Attributes understood by the pager.
const (
	// AttrScrollStages mirrors a section's stage count for presentation
	// code. The pager reads the count from the section config, never from
	// this attribute.
	AttrScrollStages = "data-scroll-stages"
	AttrScrollLock   = "data-scroll-lock"
	// AttrStageIndex is written on every stage change for presentation
	// code; stage state itself lives in the pager.
	AttrStageIndex  = "data-scroll-stage-index"
	AttrAllowScroll = "data-allow-scroll"
)

// Node is one element of the page tree.
type Node struct {
	ID      string
	Classes []string

	// Vertical scroll metrics, in pixels.
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64

	// Horizontal scroll metrics, used by carousels.
	ScrollLeft  float64
	ScrollWidth float64
	ClientWidth float64

	attrs    map[string]string
	parent   *Node
	children []*Node
}

// NewNode creates a detached node.
func NewNode(id string, classes ...string) *Node {
	return &Node{
		ID:      id,
		Classes: classes,
		attrs:   make(map[string]string),
	}
}

// Attr returns the attribute value and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	v, ok := n.attrs[name]
	return v, ok
}

// SetAttr sets an attribute and returns the node for chaining.
func (n *Node) SetAttr(name, value string) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	return n
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, name)
}

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes, class)
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child nodes in document order.
func (n *Node) Children() []*Node {
	return n.children
}

// Append attaches children to the node, detaching them from any previous parent.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Remove detaches child from the node. It is a no-op for foreign nodes.
func (n *Node) Remove(child *Node) {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// Closest returns the nearest node, starting at n itself and walking up,
// that satisfies match.
func (n *Node) Closest(match func(*Node) bool) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if match(cur) {
			return cur
		}
	}
	return nil
}

// AllowScrollTarget returns the closest ancestor exempted from page-level
// gesture capture, or nil.
func (n *Node) AllowScrollTarget() *Node {
	if n == nil {
		return nil
	}
	return n.Closest(func(c *Node) bool {
		v, ok := c.Attr(AttrAllowScroll)
		return ok && v == "true"
	})
}

// Walk visits the descendants of n in document order. Returning false from
// visit stops the walk.
func (n *Node) Walk(visit func(*Node) bool) {
	n.walk(visit)
}

func (n *Node) walk(visit func(*Node) bool) bool {
	for _, c := range n.children {
		if !visit(c) {
			return false
		}
		if !c.walk(visit) {
			return false
		}
	}
	return true
}

// MaxScrollTop is the largest reachable vertical offset.
func (n *Node) MaxScrollTop() float64 {
	return max(n.ScrollHeight-n.ClientHeight, 0)
}

// SetScrollTop moves the vertical offset, clamped to the scrollable range.
func (n *Node) SetScrollTop(v float64) {
	n.ScrollTop = min(max(v, 0), n.MaxScrollTop())
}

// SetScrollLeft moves the horizontal offset, clamped to the scrollable range.
func (n *Node) SetScrollLeft(v float64) {
	n.ScrollLeft = min(max(v, 0), max(n.ScrollWidth-n.ClientWidth, 0))
}
