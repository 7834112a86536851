package pager

import (
	"math"

	"corestudio/internal/gesture"
	"corestudio/internal/scrolllock"
	"corestudio/internal/stage"
)

// Wheel arbitrates a wheel event. In order: horizontal gestures never page;
// input during a cooldown is dropped; a lock container with room in the
// gesture's direction absorbs it; allow-scroll regions scroll natively;
// anything else accumulates toward the wheel threshold.
func (n *Navigator) Wheel(ev gesture.Wheel) gesture.Result {
	allowTarget := ev.Target.AllowScrollTarget()
	if ev.IsHorizontal() {
		return gesture.Result{PreventDefault: allowTarget == nil, Outcome: gesture.Horizontal}
	}

	if n.state.Animating {
		return gesture.Result{PreventDefault: true, Outcome: gesture.Cooldown}
	}

	dir := ev.Direction()
	lock := n.lockContainer()
	if lock != nil && dir != stage.None && scrolllock.HasScrollSpace(lock, dir) {
		scrolllock.ApplyManualScroll(lock, ev.DeltaY)
		return gesture.Result{PreventDefault: true, Outcome: gesture.LockScrolled}
	}

	if allowTarget != nil {
		return gesture.Result{Outcome: gesture.Native}
	}

	if dir == stage.None {
		return gesture.Result{PreventDefault: true, Outcome: gesture.Ignored}
	}

	if !n.state.Wheel.Add(dir, math.Abs(ev.DeltaY), n.timing.WheelThreshold) {
		return gesture.Result{PreventDefault: true, Outcome: gesture.Accumulated}
	}

	if !n.Step(dir) {
		return gesture.Result{PreventDefault: true, Outcome: gesture.Ignored}
	}
	return gesture.Result{PreventDefault: true, Outcome: gesture.Navigated}
}
