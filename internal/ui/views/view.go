package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"corestudio/internal/domain"
)

// Screen geometry shared with hit testing. Rows are absolute terminal rows.
const (
	NavHeight = 1
	// ContentTop is the first row of section content, below the nav bar and
	// the section's top padding.
	ContentTop  = NavHeight + 1
	ContentLeft = 4
	// HeaderLines is the title, hint and spacer above a section's scrollable part.
	HeaderLines = 3
	// ScrollableTop is the first row of the timeline or the carousel.
	ScrollableTop = ContentTop + HeaderLines

	CardWidth  = 30
	CardGap    = 2
	CardHeight = 8
)

// Translator resolves message ids for the active locale.
type Translator func(id string, data ...map[string]any) string

// NavItem is one entry of the navigation bar
type NavItem struct {
	Key    string
	Label  string
	Active bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Height     int
	Nav        []NavItem
	Locale     string
	SectionID  string
	Stage      int
	MaxStage   int
	T          Translator
	Timeline   string
	TimelineUp bool
	TimelineDn bool
	Projects   []domain.Project
	// CarouselLeft is the carousel's horizontal offset in columns
	CarouselLeft int
	Help         string
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		return ""
	}

	nav := r.renderNav(state)
	helpView := ""
	if state.Help != "" {
		helpView = r.styles.Help.Render(state.Help)
	}
	bodyHeight := state.Height - NavHeight - lipgloss.Height(helpView)
	if helpView == "" {
		bodyHeight = state.Height - NavHeight
	}

	body := r.styles.Section.
		Width(state.Width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(r.renderSection(state))

	parts := []string{nav, body}
	if helpView != "" {
		parts = append(parts, helpView)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (r *Renderer) renderNav(state ViewState) string {
	items := make([]string, 0, len(state.Nav)+1)
	for _, item := range state.Nav {
		label := fmt.Sprintf("%s %s", item.Key, item.Label)
		if item.Active {
			items = append(items, r.styles.NavActive.Render(label))
		} else {
			items = append(items, r.styles.NavItem.Render(label))
		}
	}
	items = append(items, r.styles.NavLocale.Render(strings.ToUpper(state.Locale)))
	row := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	return r.styles.Nav.Width(state.Width).MaxWidth(state.Width).Render(row)
}

// NavItemAt returns the index of the nav item under column x, or -1
func (r *Renderer) NavItemAt(items []NavItem, x int) int {
	left := r.styles.Nav.GetPaddingLeft()
	for i, item := range items {
		style := r.styles.NavItem
		if item.Active {
			style = r.styles.NavActive
		}
		w := lipgloss.Width(style.Render(fmt.Sprintf("%s %s", item.Key, item.Label)))
		if x >= left && x < left+w {
			return i
		}
		left += w
	}
	return -1
}

func (r *Renderer) renderSection(state ViewState) string {
	switch state.SectionID {
	case "hero":
		return r.renderHero(state)
	case "about":
		return r.renderText(state, "about_title", "about_body")
	case "services":
		return r.renderServices(state)
	case "process":
		return r.renderProcess(state)
	case "projects":
		return r.renderProjects(state)
	case "why-core":
		return r.renderWhyCore(state)
	case "contacts":
		return r.renderText(state, "contacts_title", "contacts_body")
	default:
		return ""
	}
}

func (r *Renderer) renderHero(state ViewState) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		r.styles.HeroTitle.Render(spaced(state.T("hero_title"))),
		r.styles.Body.Render(state.T("hero_tagline")),
		"",
		r.styles.Hint.Render(state.T("hero_hint")),
	)
}

func (r *Renderer) renderText(state ViewState, titleID, bodyID string) string {
	width := max(state.Width-2*ContentLeft, 20)
	return lipgloss.JoinVertical(lipgloss.Left,
		r.styles.Title.Render(state.T(titleID)),
		"",
		r.styles.Body.Width(width).Render(state.T(bodyID)),
	)
}

// servicesPerStage is how many services each stage of the section shows.
const servicesPerStage = 3

var serviceIDs = []string{
	"service_branding",
	"service_art_direction",
	"service_packaging",
	"service_editorial",
	"service_digital",
	"service_motion",
}

func (r *Renderer) renderServices(state ViewState) string {
	start := min(state.Stage*servicesPerStage, len(serviceIDs))
	end := min(start+servicesPerStage, len(serviceIDs))

	lines := []string{
		r.styles.Title.Render(state.T("services_title")),
		r.styles.Hint.Render(state.T("services_page", map[string]any{
			"Page":  state.Stage + 1,
			"Pages": max(state.MaxStage, 1),
		})),
		"",
	}
	for i, id := range serviceIDs[start:end] {
		lines = append(lines, fmt.Sprintf("%s %s",
			r.styles.Bullet.Render(fmt.Sprintf("%02d", start+i+1)),
			r.styles.Body.Render(state.T(id))))
	}
	lines = append(lines, "", r.stageDots(state.Stage, state.MaxStage))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r *Renderer) renderProcess(state ViewState) string {
	up, down := " ", " "
	if state.TimelineUp {
		up = "▲"
	}
	if state.TimelineDn {
		down = "▼"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		r.styles.Title.Render(state.T("process_title"))+" "+r.styles.ScrollMarker.Render(up+down),
		r.styles.Hint.Render(state.T("process_hint")),
		"",
		r.styles.Timeline.Render(state.Timeline),
	)
}

func (r *Renderer) renderProjects(state ViewState) string {
	first := state.CarouselLeft / (CardWidth + CardGap)
	visible := max((state.Width-2*ContentLeft)/(CardWidth+CardGap), 1)

	cards := make([]string, 0, visible)
	for i := first; i < len(state.Projects) && i < first+visible; i++ {
		cards = append(cards, r.renderCard(state.Projects[i]), strings.Repeat(" ", CardGap))
	}
	marker := fmt.Sprintf("%d/%d", min(first+1, len(state.Projects)), len(state.Projects))
	return lipgloss.JoinVertical(lipgloss.Left,
		r.styles.Title.Render(state.T("projects_title"))+" "+r.styles.ScrollMarker.Render(marker),
		r.styles.Hint.Render(state.T("projects_hint")),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, cards...),
	)
}

func (r *Renderer) renderCard(p domain.Project) string {
	inner := CardWidth - 4
	body := lipgloss.JoinVertical(lipgloss.Left,
		r.styles.CardTitle.Render(truncate(p.Title, inner)),
		r.styles.CardMeta.Render(truncate(p.Category+" · "+p.Year, inner)),
		"",
		lipgloss.NewStyle().Width(inner).MaxHeight(3).Render(p.Description),
	)
	return r.styles.Card.Width(CardWidth - 2).Height(CardHeight - 2).MaxHeight(CardHeight).Render(body)
}

func (r *Renderer) renderWhyCore(state ViewState) string {
	lines := []string{r.styles.Title.Render(state.T("why_core_title")), ""}
	for i := 0; i <= state.Stage && i < 3; i++ {
		lines = append(lines,
			r.styles.Bullet.Render("→ ")+r.styles.Body.Render(state.T(fmt.Sprintf("why_core_reason_%d", i+1))),
			"")
	}
	lines = append(lines, r.stageDots(state.Stage, state.MaxStage))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (r *Renderer) stageDots(current, total int) string {
	if total <= 1 {
		return ""
	}
	dots := make([]string, total)
	for i := range dots {
		if i == current {
			dots[i] = r.styles.StageDotOn.Render("●")
		} else {
			dots[i] = r.styles.StageDots.Render("○")
		}
	}
	return strings.Join(dots, " ")
}

// TimelineContent lays out the process steps for the timeline viewport
func (r *Renderer) TimelineContent(entries []domain.TimelineEntry, width int) string {
	textWidth := max(width-8, 20)
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(r.styles.StepLabel.Render(e.Step))
		b.WriteString(r.styles.StepTitle.Render(e.Title))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().PaddingLeft(5).Width(textWidth).Render(e.Description))
	}
	return b.String()
}

func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
