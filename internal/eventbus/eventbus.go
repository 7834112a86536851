package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"corestudio/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSectionStageChanged  = domain.EventSectionStageChanged
	EventSectionsChanged      = domain.EventSectionsChanged
	EventActiveSectionChanged = domain.EventActiveSectionChanged
	EventLocaleChanged        = domain.EventLocaleChanged
	EventConfigLoaded         = domain.EventConfigLoaded
)

// Re-export domain event types
type SectionStageChangedEvent = domain.SectionStageChangedEvent
type SectionsChangedEvent = domain.SectionsChangedEvent
type ActiveSectionChangedEvent = domain.ActiveSectionChangedEvent
type LocaleChangedEvent = domain.LocaleChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	// SetLogger replaces the logger that reports handler panics
	SetLogger(log *zap.Logger)
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Publish runs every handler before returning, so a listener always observes
// state that was fully updated by the publisher.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	log      *zap.Logger
}

// New creates a new event bus
func New(log *zap.Logger) EventBus {
	if log == nil {
		log = zap.NewNop()
	}
	return &bus{
		handlers: make(map[EventType][]subscription),
		log:      log,
	}
}

// Publish delivers an event to all subscribers in subscription order
func (b *bus) Publish(event DomainEvent) {
	// Copy to avoid holding the lock while handlers run; a handler may subscribe
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.deliver(s.handler, event)
	}
}

func (b *bus) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	b.mu.Lock()
	b.log = log
	b.mu.Unlock()
}

func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.mu.RLock()
			log := b.log
			b.mu.RUnlock()
			log.Error("event handler panic",
				zap.String("event", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}
