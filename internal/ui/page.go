package ui

import (
	"corestudio/internal/domain"
	"corestudio/internal/eventbus"
	"corestudio/internal/layout"
	"corestudio/internal/section"
)

// Node ids of the scrollable regions inside sections
const (
	TimelineID = "process-timeline-scroll"
	CarouselID = "projects-carousel"
)

// sectionConfigs lists the page's sections in order
var sectionConfigs = []section.Config{
	{ID: "hero"},
	{ID: "about"},
	{ID: "services", StageCount: 2},
	{ID: "process", ScrollLock: "#" + TimelineID},
	{ID: "projects"},
	{ID: "why-core", StageCount: 3},
	{ID: "contacts"},
}

// page is the node tree behind the screen
type page struct {
	registry *section.Registry
	timeline *layout.Node
	carousel *layout.Node
	cards    []*layout.Node
}

func newPage(bus eventbus.EventBus, projects []domain.Project) (*page, error) {
	p := &page{
		registry: section.NewRegistry(layout.NewNode("main"), bus),
	}

	for _, cfg := range sectionConfigs {
		node := layout.NewNode(cfg.ID, "section")
		switch cfg.ID {
		case "process":
			p.timeline = layout.NewNode(TimelineID, "timeline")
			node.Append(p.timeline)
		case "projects":
			p.carousel = layout.NewNode(CarouselID, "carousel").
				SetAttr(layout.AttrAllowScroll, "true")
			for _, project := range projects {
				card := layout.NewNode("project-"+project.ID, "card")
				p.cards = append(p.cards, card)
				p.carousel.Append(card)
			}
			node.Append(p.carousel)
		}
		if _, err := p.registry.Register(cfg, node); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// sectionNode returns the node of the section with the given id
func (p *page) sectionNode(id string) *layout.Node {
	if s, ok := p.registry.Get(id); ok {
		return s.Node
	}
	return nil
}
