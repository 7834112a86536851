package pager

import (
	"math"

	"corestudio/internal/gesture"
	"corestudio/internal/scrolllock"
	"corestudio/internal/stage"
)

// TouchStart records where a gesture began and which container, if any,
// should receive it.
func (n *Navigator) TouchStart(ev gesture.Touch) {
	n.state.Touch.StartY = ev.Y
	n.state.Touch.LastY = ev.Y
	if allow := ev.Target.AllowScrollTarget(); allow != nil {
		n.state.Touch.Container = allow
		return
	}
	n.state.Touch.Container = n.lockContainer()
}

// TouchMove drains the active lock container while it has room. Moves
// without a receiving container are suppressed; allow-scroll regions are
// left to scroll natively.
func (n *Navigator) TouchMove(ev gesture.Touch) gesture.Result {
	container := n.state.Touch.Container
	if container == nil {
		return gesture.Result{PreventDefault: true, Outcome: gesture.NoTarget}
	}

	delta := n.state.Touch.LastY - ev.Y
	if math.Abs(delta) < n.timing.TouchJitter {
		return gesture.Result{Outcome: gesture.Jitter}
	}

	if container != n.lockContainer() {
		return gesture.Result{Outcome: gesture.Native}
	}

	dir := stage.DirectionOf(delta)
	if scrolllock.HasScrollSpace(container, dir) {
		scrolllock.ApplyManualScroll(container, delta)
		n.state.Touch.LastY = ev.Y
		return gesture.Result{PreventDefault: true, Outcome: gesture.LockScrolled}
	}
	return gesture.Result{Outcome: gesture.Ignored}
}

// TouchEnd turns a completed swipe into a navigation step. Short swipes,
// swipes while the lock container still has room, and swipes that began in
// a foreign allow-scroll region do not navigate. A swipe ending while the
// lock container has room is dropped without scrolling it.
func (n *Navigator) TouchEnd(ev gesture.Touch) gesture.Result {
	if n.state.Animating {
		n.state.Touch.Container = nil
		return gesture.Result{Outcome: gesture.Cooldown}
	}

	deltaY := n.state.Touch.StartY - ev.Y
	if math.Abs(deltaY) < n.timing.TouchThreshold {
		n.state.Touch.Container = nil
		return gesture.Result{Outcome: gesture.Jitter}
	}

	dir := stage.DirectionOf(deltaY)
	lock := n.lockContainer()
	if lock != nil && scrolllock.HasScrollSpace(lock, dir) {
		n.state.Touch.Container = nil
		return gesture.Result{Outcome: gesture.LockPending}
	}

	target := n.state.Touch.Container
	n.state.Touch.Container = nil
	if target != nil && target != lock {
		return gesture.Result{Outcome: gesture.ForeignTarget}
	}

	if !n.Step(dir) {
		return gesture.Result{Outcome: gesture.Ignored}
	}
	return gesture.Result{Outcome: gesture.Navigated}
}
