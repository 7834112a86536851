package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Brand palette
const (
	colorInk    = lipgloss.Color("#0D0D0D")
	colorSlate  = lipgloss.Color("#212425")
	colorBianco = lipgloss.Color("#F5F1E8")
	colorSand   = lipgloss.Color("#E9CFA5")
	colorGold   = lipgloss.Color("#B98B5A")
	colorMuted  = lipgloss.Color("241")
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Nav          lipgloss.Style
	NavItem      lipgloss.Style
	NavActive    lipgloss.Style
	NavLocale    lipgloss.Style
	Section      lipgloss.Style
	HeroTitle    lipgloss.Style
	Title        lipgloss.Style
	Body         lipgloss.Style
	Hint         lipgloss.Style
	Dim          lipgloss.Style
	Bullet       lipgloss.Style
	StepLabel    lipgloss.Style
	StepTitle    lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style
	Timeline     lipgloss.Style
	ScrollMarker lipgloss.Style
	StageDots    lipgloss.Style
	StageDotOn   lipgloss.Style
	Help         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Nav: lipgloss.NewStyle().
			Background(colorSlate).
			Foreground(colorBianco).
			Padding(0, 1),
		NavItem: lipgloss.NewStyle().
			Background(colorSlate).
			Foreground(colorBianco).
			Padding(0, 1),
		NavActive: lipgloss.NewStyle().
			Background(colorSand).
			Foreground(colorInk).
			Bold(true).
			Padding(0, 1),
		NavLocale: lipgloss.NewStyle().
			Background(colorSlate).
			Foreground(colorGold).
			Padding(0, 1),
		Section: lipgloss.NewStyle().Padding(1, 4),
		HeroTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSand).
			MarginBottom(1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSand),
		Body:      lipgloss.NewStyle().Foreground(colorBianco),
		Hint:      lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Dim:       lipgloss.NewStyle().Faint(true),
		Bullet:    lipgloss.NewStyle().Foreground(colorGold).Bold(true),
		StepLabel: lipgloss.NewStyle().Foreground(colorGold).Bold(true).Width(5),
		StepTitle: lipgloss.NewStyle().Foreground(colorBianco).Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGold).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().Bold(true).Foreground(colorSand),
		CardMeta:  lipgloss.NewStyle().Foreground(colorMuted),
		Timeline: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorGold).
			PaddingLeft(1),
		ScrollMarker: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		StageDots:    lipgloss.NewStyle().Foreground(colorMuted),
		StageDotOn:   lipgloss.NewStyle().Foreground(colorSand),
		Help:         lipgloss.NewStyle().Faint(true).Padding(0, 1),
	}
}
