// Package scrolllock resolves the inner container a section must scroll to
// its end before the page may move past that section.
package scrolllock

import (
	"corestudio/internal/layout"
	"corestudio/internal/stage"
)

// Self makes the section itself the lock container.
const Self = "self"

// epsilon absorbs sub-pixel drift left behind by smooth scrolling.
const epsilon = 1.0

// LockContainerFor returns the lock container declared by section, or nil
// when the section declares none or the declaration cannot be resolved.
func LockContainerFor(section *layout.Node) *layout.Node {
	if section == nil {
		return nil
	}
	selector, ok := section.Attr(layout.AttrScrollLock)
	if !ok || selector == "" {
		return nil
	}
	if selector == Self {
		return section
	}
	target, err := section.Query(selector)
	if err != nil {
		return nil
	}
	return target
}

// HasScrollSpace reports whether container can still scroll in direction.
func HasScrollSpace(container *layout.Node, direction stage.Direction) bool {
	if container == nil {
		return false
	}
	maxTop := container.ScrollHeight - container.ClientHeight
	if maxTop <= 0 {
		return false
	}
	switch direction {
	case stage.Forward:
		return container.ScrollTop < maxTop-epsilon
	case stage.Backward:
		return container.ScrollTop > epsilon
	default:
		return false
	}
}

// ApplyManualScroll shifts the container's offset by delta, bypassing any
// native momentum.
func ApplyManualScroll(container *layout.Node, delta float64) {
	if container == nil {
		return
	}
	container.SetScrollTop(container.ScrollTop + delta)
}
