package pager

import (
	"slices"

	"corestudio/internal/gesture"
	"corestudio/internal/layout"
	"corestudio/internal/section"
)

// State holds everything the navigator mutates. It is owned by a single
// Navigator and only changed through its methods.
type State struct {
	Sections     []*section.Section
	CurrentIndex int
	// StageState holds the current stage of each section, by position.
	StageState []int
	Animating  bool
	Wheel      gesture.Accumulator
	Touch      TouchState
}

// TouchState tracks the gesture in progress.
type TouchState struct {
	StartY float64
	LastY  float64
	// Container receives the gesture: an allow-scroll region or the active
	// section's lock container. Nil means page-level handling only.
	Container *layout.Node
}

func (s State) clone() State {
	s.Sections = slices.Clone(s.Sections)
	s.StageState = slices.Clone(s.StageState)
	return s
}
