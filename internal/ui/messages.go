package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cooldownExpiredMsg closes the pager cooldown opened under tag
type cooldownExpiredMsg struct {
	tag uint64
}

// teaScheduler turns pager cooldowns into tick commands. The commands are
// collected while a message is handled and returned from Update. A tick
// cannot be stopped once started, so a canceled tag is forgotten and its
// message dropped on arrival.
type teaScheduler struct {
	pending []tea.Cmd
	live    map[uint64]struct{}
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{live: make(map[uint64]struct{})}
}

func (s *teaScheduler) Schedule(tag uint64, d time.Duration) {
	s.live[tag] = struct{}{}
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return cooldownExpiredMsg{tag: tag}
	}))
}

func (s *teaScheduler) Cancel(tag uint64) {
	delete(s.live, tag)
}

// fired reports whether msg belongs to a scheduled, uncanceled cooldown and
// forgets its tag.
func (s *teaScheduler) fired(msg cooldownExpiredMsg) bool {
	if _, ok := s.live[msg.tag]; !ok {
		return false
	}
	delete(s.live, msg.tag)
	return true
}

func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
