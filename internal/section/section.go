// Package section keeps the ordered list of full-viewport sections and the
// per-section paging configuration the pager reads.
package section

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"corestudio/internal/eventbus"
	"corestudio/internal/layout"
)

var (
	ErrDuplicateSection = errors.New("section already registered")
	ErrUnknownSection   = errors.New("section not registered")
)

// Config declares how the pager treats a section.
type Config struct {
	ID string
	// StageCount is the number of internal stages; values below 1 mean 1.
	StageCount int
	// ScrollLock names the descendant that must be scrolled to its end
	// before the page moves on: a selector, "self", or empty for none.
	ScrollLock string
}

// Stages returns the effective stage count.
func (c Config) Stages() int {
	if c.StageCount < 1 {
		return 1
	}
	return c.StageCount
}

// Section is a registered section and its node in the page tree.
type Section struct {
	Config
	Node *layout.Node
}

// Registry holds the ordered sections of a page.
type Registry struct {
	root      *layout.Node
	sections  []*Section
	listeners map[uint64]func([]*Section)
	nextID    uint64
	bus       eventbus.EventBus
}

// NewRegistry creates a registry whose section nodes are mounted under root.
// bus may be nil.
func NewRegistry(root *layout.Node, bus eventbus.EventBus) *Registry {
	if root == nil {
		root = layout.NewNode("")
	}
	return &Registry{
		root:      root,
		listeners: make(map[uint64]func([]*Section)),
		bus:       bus,
	}
}

// Root returns the node that contains every section node.
func (r *Registry) Root() *layout.Node {
	return r.root
}

// Register appends a section.
func (r *Registry) Register(cfg Config, node *layout.Node) (*Section, error) {
	return r.Insert(len(r.sections), cfg, node)
}

// Insert places a section at index, clamped to the current bounds.
func (r *Registry) Insert(index int, cfg Config, node *layout.Node) (*Section, error) {
	if r.indexOf(cfg.ID) >= 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSection, cfg.ID)
	}
	if node == nil {
		node = layout.NewNode(cfg.ID)
	}
	s := &Section{Config: cfg, Node: node}
	writeAttrs(s)

	index = min(max(index, 0), len(r.sections))
	r.sections = slices.Insert(r.sections, index, s)
	r.remount()
	r.notify()
	return s, nil
}

// Update replaces the paging configuration of a registered section.
func (r *Registry) Update(cfg Config) error {
	idx := r.indexOf(cfg.ID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSection, cfg.ID)
	}
	r.sections[idx].Config = cfg
	writeAttrs(r.sections[idx])
	r.notify()
	return nil
}

// Unregister removes a section.
func (r *Registry) Unregister(id string) error {
	idx := r.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSection, id)
	}
	r.sections = slices.Delete(r.sections, idx, idx+1)
	r.remount()
	r.notify()
	return nil
}

// Sections returns a snapshot of the ordered sections.
func (r *Registry) Sections() []*Section {
	return slices.Clone(r.sections)
}

// Get returns the section with the given id.
func (r *Registry) Get(id string) (*Section, bool) {
	idx := r.indexOf(id)
	if idx < 0 {
		return nil, false
	}
	return r.sections[idx], true
}

// Subscribe registers fn to run after every change of the section list.
// It returns an unsubscribe function.
func (r *Registry) Subscribe(fn func([]*Section)) func() {
	r.nextID++
	id := r.nextID
	r.listeners[id] = fn
	return func() { delete(r.listeners, id) }
}

func (r *Registry) indexOf(id string) int {
	return slices.IndexFunc(r.sections, func(s *Section) bool { return s.ID == id })
}

// remount keeps the section nodes as the direct children of root, in order.
func (r *Registry) remount() {
	for _, c := range slices.Clone(r.root.Children()) {
		r.root.Remove(c)
	}
	for _, s := range r.sections {
		r.root.Append(s.Node)
	}
}

func (r *Registry) notify() {
	snapshot := r.Sections()
	ids := make([]uint64, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		r.listeners[id](snapshot)
	}
	if r.bus != nil {
		sectionIDs := make([]string, len(snapshot))
		for i, s := range snapshot {
			sectionIDs[i] = s.ID
		}
		r.bus.Publish(eventbus.SectionsChangedEvent{IDs: sectionIDs})
	}
}

func writeAttrs(s *Section) {
	s.Node.SetAttr(layout.AttrScrollStages, strconv.Itoa(s.Stages()))
	if s.ScrollLock != "" {
		s.Node.SetAttr(layout.AttrScrollLock, s.ScrollLock)
	} else {
		s.Node.RemoveAttr(layout.AttrScrollLock)
	}
}
