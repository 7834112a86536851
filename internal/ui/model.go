package ui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"corestudio/internal/config"
	"corestudio/internal/content"
	"corestudio/internal/eventbus"
	"corestudio/internal/gesture"
	"corestudio/internal/layout"
	"corestudio/internal/locale"
	"corestudio/internal/pager"
	"corestudio/internal/scrolllock"
	"corestudio/internal/section"
	"corestudio/internal/stage"
	"corestudio/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	log     *zap.Logger
	locale  *locale.Switcher
	content *content.Content

	width    int
	height   int
	help     help.Model
	keys     keyMap
	timeline viewport.Model

	page     *page
	pager    *pager.Navigator
	sched    *teaScheduler
	renderer *views.Renderer

	// visible is the id of the section on screen, active the one the nav
	// bar highlights
	visible  string
	active   string
	stages   map[string]stage.Change
	dragging bool

	unsubscribe []func()
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, sw *locale.Switcher, data *content.Content, log *zap.Logger) (*Model, error) {
	if bus == nil || sw == nil || data == nil {
		return nil, errors.New("ui: bus, locale and content are required")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	m := &Model{
		bus:      bus,
		config:   cfg,
		log:      log,
		locale:   sw,
		content:  data,
		help:     help.New(),
		keys:     newKeyMap(),
		timeline: viewport.New(0, 0),
		sched:    newTeaScheduler(),
		renderer: views.NewRenderer(),
		stages:   make(map[string]stage.Change),
	}

	p, err := newPage(bus, data.Projects)
	if err != nil {
		return nil, err
	}
	m.page = p

	// Subscribe before attaching so the initial stage announcement is seen
	m.unsubscribe = append(m.unsubscribe,
		bus.Subscribe(eventbus.EventSectionStageChanged, m.onStageChanged),
		bus.Subscribe(eventbus.EventActiveSectionChanged, m.onActiveSectionChanged))

	m.pager = pager.New(pager.Options{
		Timing:    timingFrom(cfg.Scroll),
		Scheduler: m.sched,
		Scroller:  m,
		Bus:       bus,
		Logger:    log.Named("pager"),
	})
	m.unsubscribe = append(m.unsubscribe, m.pager.Attach(p.registry))
	if current := m.pager.Current(); current != nil {
		m.visible = current.ID
		m.active = current.ID
	}
	return m, nil
}

func timingFrom(s config.ScrollSettings) pager.Timing {
	return pager.Timing{
		WheelThreshold: s.WheelThreshold,
		TouchThreshold: s.TouchThreshold,
		TouchJitter:    s.TouchJitter,
		Animation:      s.Animation(),
		Settle:         s.Settle(),
		StageCooldown:  s.StageCooldown(),
	}
}

// Close releases the model's subscriptions
func (m *Model) Close() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
}

// ScrollIntoView shows a section. The terminal swaps the screen at once;
// the pager cooldown still covers the animation time.
func (m *Model) ScrollIntoView(s *section.Section) {
	m.visible = s.ID
}

func (m *Model) onStageChanged(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.SectionStageChangedEvent)
	if !ok {
		return
	}
	m.stages[ev.SectionID] = ev.Change
}

func (m *Model) onActiveSectionChanged(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.ActiveSectionChangedEvent)
	if !ok {
		return
	}
	m.active = ev.SectionID
	m.log.Debug("active section",
		zap.String("section", ev.SectionID),
		zap.Stringer("direction", ev.Direction))
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Core Studio")
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case cooldownExpiredMsg:
		if m.sched.fired(msg) {
			m.pager.Expire(msg.tag)
		} else {
			m.log.Debug("dropped canceled cooldown", zap.Uint64("tag", msg.tag))
		}
	}

	return m, tea.Batch(cmd, m.sched.drain())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	scroll := m.config.Scroll
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Locale):
		next := m.locale.Next()
		m.log.Info("locale switched", zap.String("locale", next))
	case key.Matches(msg, m.keys.Up):
		m.wheel(gesture.Wheel{DeltaY: -scroll.WheelLineDelta, Target: m.page.sectionNode(m.visible)})
	case key.Matches(msg, m.keys.Down):
		m.wheel(gesture.Wheel{DeltaY: scroll.WheelLineDelta, Target: m.page.sectionNode(m.visible)})
	case key.Matches(msg, m.keys.Left):
		m.wheel(gesture.Wheel{DeltaX: -scroll.HorizontalDelta, Target: m.horizontalTarget()})
	case key.Matches(msg, m.keys.Right):
		m.wheel(gesture.Wheel{DeltaX: scroll.HorizontalDelta, Target: m.horizontalTarget()})
	case key.Matches(msg, m.keys.Home):
		m.pager.GoTo(0)
	case key.Matches(msg, m.keys.End):
		m.pager.GoTo(len(m.pager.State().Sections) - 1)
	case key.Matches(msg, m.keys.Jump):
		m.pager.GoTo(int(msg.String()[0] - '1'))
	}
	return nil
}

// horizontalTarget is where arrow keys point sideways input
func (m *Model) horizontalTarget() *layout.Node {
	if m.visible == "projects" {
		return m.page.carousel
	}
	return m.page.sectionNode(m.visible)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	scroll := m.config.Scroll
	target := m.hitTest(msg.X, msg.Y)

	switch {
	case msg.Action == tea.MouseActionPress && tea.MouseEvent(msg).IsWheel():
		ev := gesture.Wheel{Target: target}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			ev.DeltaY = -scroll.WheelLineDelta
		case tea.MouseButtonWheelDown:
			ev.DeltaY = scroll.WheelLineDelta
		case tea.MouseButtonWheelLeft:
			ev.DeltaX = -scroll.HorizontalDelta
		case tea.MouseButtonWheelRight:
			ev.DeltaX = scroll.HorizontalDelta
		}
		// Shift turns a vertical notch sideways, as browsers do
		if msg.Shift && ev.DeltaX == 0 {
			ev.DeltaX = ev.DeltaY / scroll.WheelLineDelta * scroll.HorizontalDelta
			ev.DeltaY = 0
		}
		m.wheel(ev)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y < views.NavHeight {
			if i := m.renderer.NavItemAt(m.navItems(), msg.X); i >= 0 {
				m.pager.GoTo(i)
			}
			return
		}
		m.dragging = true
		m.pager.TouchStart(gesture.Touch{Y: float64(msg.Y) * scroll.CellHeightPX, Target: target})

	case msg.Action == tea.MouseActionMotion && m.dragging:
		res := m.pager.TouchMove(gesture.Touch{Y: float64(msg.Y) * scroll.CellHeightPX, Target: target})
		if res.Outcome == gesture.LockScrolled {
			m.syncTimeline()
		}

	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		res := m.pager.TouchEnd(gesture.Touch{Y: float64(msg.Y) * scroll.CellHeightPX, Target: target})
		m.log.Debug("drag", zap.Stringer("outcome", res.Outcome))
	}
}

// wheel hands a wheel event to the pager and performs the native scroll
// the pager leaves to the host
func (m *Model) wheel(ev gesture.Wheel) {
	res := m.pager.Wheel(ev)
	m.log.Debug("wheel",
		zap.Float64("dx", ev.DeltaX),
		zap.Float64("dy", ev.DeltaY),
		zap.Stringer("outcome", res.Outcome))

	switch {
	case res.Outcome == gesture.LockScrolled:
		m.syncTimeline()
	case !res.PreventDefault && ev.IsHorizontal() && ev.Target.AllowScrollTarget() == m.page.carousel:
		m.scrollCarousel(ev.DeltaX)
	}
}

func (m *Model) scrollCarousel(dx float64) {
	step := float64(views.CardWidth + views.CardGap)
	c := m.page.carousel
	if dx > 0 {
		c.SetScrollLeft(c.ScrollLeft + step)
	} else if dx < 0 {
		c.SetScrollLeft(c.ScrollLeft - step)
	}
}

// hitTest returns the deepest node under the cell at x, y
func (m *Model) hitTest(x, y int) *layout.Node {
	if y < views.NavHeight {
		return m.page.registry.Root()
	}
	top := views.ScrollableTop
	switch m.visible {
	case "process":
		if y >= top && y < top+m.timeline.Height {
			return m.page.timeline
		}
	case "projects":
		if y >= top && y < top+views.CardHeight && x >= views.ContentLeft {
			stride := views.CardWidth + views.CardGap
			idx := int(m.page.carousel.ScrollLeft)/stride + (x-views.ContentLeft)/stride
			if idx < len(m.page.cards) {
				return m.page.cards[idx]
			}
			return m.page.carousel
		}
	}
	return m.page.sectionNode(m.visible)
}

// resize lays out the scrollable regions and mirrors their size onto the
// page nodes
func (m *Model) resize() {
	helpHeight := 0
	if m.config.UI.ShowHelp {
		helpHeight = lipgloss.Height(m.help.View(m.keys))
	}
	body := m.height - views.NavHeight - helpHeight

	m.timeline.Width = max(m.width-2*views.ContentLeft-2, 10)
	m.timeline.Height = max(body-2-views.HeaderLines, 1)
	m.timeline.SetContent(m.renderer.TimelineContent(m.content.Timeline, m.timeline.Width))

	cell := m.config.Scroll.CellHeightPX
	t := m.page.timeline
	t.ScrollHeight = float64(m.timeline.TotalLineCount()) * cell
	t.ClientHeight = float64(m.timeline.Height) * cell
	t.SetScrollTop(t.ScrollTop)
	m.syncTimeline()

	c := m.page.carousel
	c.ScrollWidth = float64(len(m.content.Projects) * (views.CardWidth + views.CardGap))
	c.ClientWidth = float64(max(m.width-2*views.ContentLeft, 0))
	c.SetScrollLeft(c.ScrollLeft)
}

// syncTimeline moves the viewport to the timeline node's scroll offset
func (m *Model) syncTimeline() {
	t := m.page.timeline
	if t.ScrollTop >= t.MaxScrollTop() {
		m.timeline.GotoBottom()
		return
	}
	m.timeline.SetYOffset(int(t.ScrollTop / m.config.Scroll.CellHeightPX))
}

func (m *Model) navItems() []views.NavItem {
	sections := m.page.registry.Sections()
	items := make([]views.NavItem, len(sections))
	for i, s := range sections {
		items[i] = views.NavItem{
			Key:    strconv.Itoa(i + 1),
			Label:  m.locale.T("nav_" + strings.ReplaceAll(s.ID, "-", "_")),
			Active: s.ID == m.active,
		}
	}
	return items
}

// View renders the UI
func (m *Model) View() string {
	t := m.page.timeline
	state := views.ViewState{
		Width:        m.width,
		Height:       m.height,
		Nav:          m.navItems(),
		Locale:       m.locale.Current(),
		SectionID:    m.visible,
		T:            m.locale.T,
		Timeline:     m.timeline.View(),
		TimelineUp:   scrolllock.HasScrollSpace(t, stage.Backward),
		TimelineDn:   scrolllock.HasScrollSpace(t, stage.Forward),
		Projects:     m.content.Projects,
		CarouselLeft: int(m.page.carousel.ScrollLeft),
	}
	if change, ok := m.stages[m.visible]; ok {
		state.Stage = change.StageIndex
		state.MaxStage = change.MaxStage
	}
	if m.config.UI.ShowHelp {
		state.Help = m.help.View(m.keys)
	}
	return m.renderer.Render(state)
}
