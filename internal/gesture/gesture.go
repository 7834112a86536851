// Package gesture classifies wheel and touch input before the pager acts on it.
package gesture

import (
	"math"

	"corestudio/internal/layout"
	"corestudio/internal/stage"
)

// Wheel is a single wheel event. Positive DeltaY scrolls down the page.
type Wheel struct {
	DeltaX float64
	DeltaY float64
	Target *layout.Node
}

// Touch is a touch point sample. Y grows downward.
type Touch struct {
	Y      float64
	Target *layout.Node
}

// Outcome names what the pager did with an input event.
type Outcome int

const (
	Ignored Outcome = iota
	Horizontal
	Cooldown
	LockScrolled
	Native
	Accumulated
	Navigated
	NoTarget
	Jitter
	LockPending
	ForeignTarget
)

var outcomeNames = map[Outcome]string{
	Ignored:       "ignored",
	Horizontal:    "horizontal",
	Cooldown:      "cooldown",
	LockScrolled:  "lock-scrolled",
	Native:        "native",
	Accumulated:   "accumulated",
	Navigated:     "navigated",
	NoTarget:      "no-target",
	Jitter:        "jitter",
	LockPending:   "lock-pending",
	ForeignTarget: "foreign-target",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return "unknown"
}

// Result tells the host whether to suppress its default handling of the
// event, and why.
type Result struct {
	PreventDefault bool
	Outcome        Outcome
}

// IsHorizontal reports whether the wheel event is dominated by its
// horizontal component.
func (w Wheel) IsHorizontal() bool {
	return math.Abs(w.DeltaX) > math.Abs(w.DeltaY)
}

// Direction returns the vertical direction of the wheel event.
func (w Wheel) Direction() stage.Direction {
	return stage.DirectionOf(w.DeltaY)
}

// Accumulator sums partial wheel movement until a threshold is crossed.
type Accumulator struct {
	Delta     float64
	Direction stage.Direction
}

// Add accounts for a wheel delta of magnitude abs in direction dir and
// reports whether threshold was reached. Flipping direction discards the
// pending amount; reaching the threshold resets it.
func (a *Accumulator) Add(dir stage.Direction, abs, threshold float64) bool {
	if a.Direction != dir {
		a.Direction = dir
		a.Delta = 0
	}
	a.Delta += abs
	if a.Delta < threshold {
		return false
	}
	a.Delta = 0
	return true
}

// Reset clears the pending amount and direction.
func (a *Accumulator) Reset() {
	a.Delta = 0
	a.Direction = stage.None
}
