// Package pager implements the full-page scroll controller: it turns wheel
// and touch input into stage steps within a section or moves between
// full-viewport sections, one transition at a time.
package pager

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"corestudio/internal/eventbus"
	"corestudio/internal/layout"
	"corestudio/internal/scrolllock"
	"corestudio/internal/section"
	"corestudio/internal/stage"
)

// Timing holds the gesture thresholds and cooldown durations.
type Timing struct {
	WheelThreshold float64
	TouchThreshold float64
	// TouchJitter is the smallest touch movement that scrolls a container.
	TouchJitter   float64
	Animation     time.Duration
	Settle        time.Duration
	StageCooldown time.Duration
}

// DefaultTiming returns the stock thresholds and durations.
func DefaultTiming() Timing {
	return Timing{
		WheelThreshold: 40,
		TouchThreshold: 45,
		TouchJitter:    2,
		Animation:      900 * time.Millisecond,
		Settle:         350 * time.Millisecond,
		StageCooldown:  700 * time.Millisecond,
	}
}

// Scroller brings a section into view. Implementations may animate.
type Scroller interface {
	ScrollIntoView(s *section.Section)
}

// ScrollerFunc adapts a function to the Scroller interface.
type ScrollerFunc func(s *section.Section)

func (f ScrollerFunc) ScrollIntoView(s *section.Section) { f(s) }

// Options configures a Navigator. Zero values fall back to defaults.
type Options struct {
	Timing    Timing
	Scheduler Scheduler
	Scroller  Scroller
	Bus       eventbus.EventBus
	Logger    *zap.Logger
}

// Navigator owns the section list, the active index and the cooldown lock.
type Navigator struct {
	state    State
	timing   Timing
	sched    Scheduler
	scroller Scroller
	bus      eventbus.EventBus
	log      *zap.Logger
	tag      uint64
}

// New creates a navigator with no sections.
func New(opts Options) *Navigator {
	n := &Navigator{
		timing:   opts.Timing,
		sched:    opts.Scheduler,
		scroller: opts.Scroller,
		bus:      opts.Bus,
		log:      opts.Logger,
	}
	if n.timing == (Timing{}) {
		n.timing = DefaultTiming()
	}
	if n.sched == nil {
		n.sched = nopScheduler{}
	}
	if n.scroller == nil {
		n.scroller = ScrollerFunc(func(*section.Section) {})
	}
	if n.log == nil {
		n.log = zap.NewNop()
	}
	return n
}

// Attach syncs the navigator with the registry now and after every change.
// It returns a function that detaches it again.
func (n *Navigator) Attach(r *section.Registry) func() {
	n.SetSections(r.Sections())
	return r.Subscribe(n.SetSections)
}

// State returns a snapshot of the navigator state.
func (n *Navigator) State() State {
	return n.state.clone()
}

// CurrentIndex returns the position of the active section.
func (n *Navigator) CurrentIndex() int {
	return n.state.CurrentIndex
}

// Current returns the active section, or nil when there are none.
func (n *Navigator) Current() *section.Section {
	return n.sectionAt(n.state.CurrentIndex)
}

// StageOf returns the recorded stage of the section at index.
func (n *Navigator) StageOf(index int) int {
	if index < 0 || index >= len(n.state.StageState) {
		return 0
	}
	return n.state.StageState[index]
}

// IsAnimating reports whether a cooldown window is open.
func (n *Navigator) IsAnimating() bool {
	return n.state.Animating
}

// SetSections replaces the section list, keeping each position's recorded
// stage clamped to its section's current stage count. The active section's
// stage is re-announced with no direction; no cooldown is started.
func (n *Navigator) SetSections(sections []*section.Section) {
	previous := n.state.StageState
	n.state.Sections = sections
	n.state.StageState = make([]int, len(sections))
	for i, s := range sections {
		prev := 0
		if i < len(previous) {
			prev = previous[i]
		}
		normalized := stage.ClampIndex(prev, s.Stages())
		n.state.StageState[i] = normalized
		s.Node.SetAttr(layout.AttrStageIndex, strconv.Itoa(normalized))
	}

	if len(sections) == 0 {
		n.state.CurrentIndex = 0
		return
	}
	n.state.CurrentIndex = min(max(n.state.CurrentIndex, 0), len(sections)-1)
	n.setStageIndex(n.state.CurrentIndex, n.state.StageState[n.state.CurrentIndex], stage.None)
}

// Step moves one stage or one section in dir. It reports whether anything
// changed; input during a cooldown or past either end is dropped.
func (n *Navigator) Step(dir stage.Direction) bool {
	if dir == stage.None || n.state.Animating {
		return false
	}
	if n.tryStageStep(dir) {
		return true
	}
	next := n.state.CurrentIndex + int(dir)
	if next < 0 || next >= len(n.state.Sections) {
		return false
	}
	n.state.Wheel.Reset()
	n.scrollToIndex(next, dir)
	return true
}

// GoTo jumps straight to the section at index, entering it as if it had
// been reached by stepping in the jump's direction.
func (n *Navigator) GoTo(index int) bool {
	if n.state.Animating {
		return false
	}
	if index < 0 || index >= len(n.state.Sections) || index == n.state.CurrentIndex {
		return false
	}
	dir := stage.Forward
	if index < n.state.CurrentIndex {
		dir = stage.Backward
	}
	n.state.Wheel.Reset()
	n.scrollToIndex(index, dir)
	return true
}

// IndexOf returns the position of the section with the given id, or -1.
func (n *Navigator) IndexOf(id string) int {
	for i, s := range n.state.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Expire closes the cooldown window opened under tag. Expiries belonging to
// a cooldown that was since replaced are ignored.
func (n *Navigator) Expire(tag uint64) {
	if tag != n.tag {
		return
	}
	n.state.Animating = false
}

func (n *Navigator) tryStageStep(dir stage.Direction) bool {
	current := n.Current()
	if current == nil {
		return false
	}
	maxStage := current.Stages()
	if maxStage <= 1 {
		return false
	}
	idx := n.state.CurrentIndex
	cur := n.state.StageState[idx]
	switch {
	case dir == stage.Forward && cur < maxStage-1:
		n.setStageIndex(idx, cur+1, dir)
	case dir == stage.Backward && cur > 0:
		n.setStageIndex(idx, cur-1, dir)
	default:
		return false
	}
	n.startCooldown(n.timing.StageCooldown)
	return true
}

func (n *Navigator) scrollToIndex(index int, dir stage.Direction) {
	target := n.sectionAt(index)
	if target == nil {
		return
	}
	n.scroller.ScrollIntoView(target)
	n.startCooldown(n.timing.Animation + n.timing.Settle)

	old := n.state.CurrentIndex
	n.state.CurrentIndex = index

	var entry int
	switch dir {
	case stage.Forward:
		entry = 0
	case stage.Backward:
		entry = target.Stages() - 1
	default:
		entry = n.state.StageState[index]
	}
	from := ""
	if prev := n.sectionAt(old); prev != nil {
		from = prev.ID
	}
	n.log.Debug("section change",
		zap.String("from", from),
		zap.String("to", target.ID),
		zap.Stringer("direction", dir),
		zap.Int("entry_stage", entry))
	n.setStageIndex(index, entry, dir)

	if n.bus != nil {
		n.bus.Publish(eventbus.ActiveSectionChangedEvent{
			OldIndex:  old,
			NewIndex:  index,
			SectionID: target.ID,
			Direction: dir,
		})
	}
}

func (n *Navigator) setStageIndex(index, next int, dir stage.Direction) {
	s := n.sectionAt(index)
	if s == nil {
		return
	}
	maxStage := s.Stages()
	clamped := stage.ClampIndex(next, maxStage)
	n.state.StageState[index] = clamped
	s.Node.SetAttr(layout.AttrStageIndex, strconv.Itoa(clamped))

	if dir != stage.None {
		n.log.Debug("stage change",
			zap.String("section", s.ID),
			zap.Int("stage", clamped),
			zap.Int("max_stage", maxStage),
			zap.Stringer("direction", dir))
	}
	if n.bus != nil {
		n.bus.Publish(eventbus.SectionStageChangedEvent{Change: stage.Change{
			SectionID:  s.ID,
			StageIndex: clamped,
			MaxStage:   maxStage,
			Direction:  dir,
		}})
	}
}

func (n *Navigator) startCooldown(d time.Duration) {
	n.state.Animating = true
	if c, ok := n.sched.(Canceler); ok {
		c.Cancel(n.tag)
	}
	n.tag++
	n.sched.Schedule(n.tag, d)
}

func (n *Navigator) sectionAt(index int) *section.Section {
	if index < 0 || index >= len(n.state.Sections) {
		return nil
	}
	return n.state.Sections[index]
}

func (n *Navigator) lockContainer() *layout.Node {
	current := n.Current()
	if current == nil {
		return nil
	}
	return scrolllock.LockContainerFor(current.Node)
}
