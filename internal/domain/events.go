package domain

import "corestudio/internal/stage"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSectionStageChanged  EventType = stage.EventName
	EventSectionsChanged      EventType = "sections-changed"
	EventActiveSectionChanged EventType = "active-section-changed"
	EventLocaleChanged        EventType = "locale-changed"
	EventConfigLoaded         EventType = "config-loaded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SectionStageChangedEvent is emitted on the section whose stage the pager
// just set, once per stage or section transition touching it.
type SectionStageChangedEvent struct {
	stage.Change
}

func (e SectionStageChangedEvent) Type() EventType { return EventSectionStageChanged }

// SectionsChangedEvent is emitted when sections are registered or removed.
type SectionsChangedEvent struct {
	IDs []string
}

func (e SectionsChangedEvent) Type() EventType { return EventSectionsChanged }

// ActiveSectionChangedEvent is emitted after the pager moved to another section.
type ActiveSectionChangedEvent struct {
	OldIndex  int
	NewIndex  int
	SectionID string
	Direction stage.Direction
}

func (e ActiveSectionChangedEvent) Type() EventType { return EventActiveSectionChanged }

// LocaleChangedEvent is emitted when the user picks another language
type LocaleChangedEvent struct {
	Locale string
}

func (e LocaleChangedEvent) Type() EventType { return EventLocaleChanged }

// ConfigLoadedEvent is emitted once the configuration has been read.
// Defaults is set when no file existed at Path.
type ConfigLoadedEvent struct {
	Path     string
	Defaults bool
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }
