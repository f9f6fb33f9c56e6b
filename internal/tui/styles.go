package tui

import (
	"github.com/charmbracelet/lipgloss"

	"timegrid/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorBar         lipgloss.Color
	colorTimed       lipgloss.Color
	colorToday       lipgloss.Color
	colorWarning     lipgloss.Color

	colorBarBg      lipgloss.Color
	colorTimedBg    lipgloss.Color
	colorBarBgAlt   lipgloss.Color
	colorTimedBgAlt lipgloss.Color

	// Title style
	TitleStyle lipgloss.Style

	// Grid headers
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style
	DayNumberStyle      lipgloss.Style
	DayNumberMutedStyle lipgloss.Style
	DayNumberTodayStyle lipgloss.Style
	TimeColumnStyle     lipgloss.Style

	// Bar styles (full-day and gantt)
	BarStyle    lipgloss.Style
	BarAltStyle lipgloss.Style

	// Timed record styles (hour grid)
	TimedStyle    lipgloss.Style
	TimedAltStyle lipgloss.Style

	// Gantt group header
	GroupHeaderStyle lipgloss.Style

	// Empty cell
	EmptyCellStyle lipgloss.Style

	// Status message
	StatusStyle  lipgloss.Style
	LoadingStyle lipgloss.Style

	// Help text
	HelpStyle lipgloss.Style

	// Prompt box
	PromptStyle lipgloss.Style

	// Separator style
	SeparatorStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorBar = palette.Bar
	s.colorTimed = palette.Timed
	s.colorToday = palette.Today
	s.colorWarning = palette.Warning

	s.colorBarBg = palette.BarBg
	s.colorTimedBg = palette.TimedBg
	s.colorBarBgAlt = palette.BarBgAlt
	s.colorTimedBgAlt = palette.TimedBgAlt

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)

	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(s.colorToday)

	s.DayNumberStyle = lipgloss.NewStyle().
		Foreground(s.colorFg)

	s.DayNumberMutedStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.DayNumberTodayStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnToday).
		Background(s.colorToday).
		Bold(true)

	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Width(6)

	s.BarStyle = lipgloss.NewStyle().
		Background(s.colorBarBg).
		Foreground(s.colorFg).
		Bold(true)

	s.BarAltStyle = lipgloss.NewStyle().
		Background(s.colorBarBgAlt).
		Foreground(s.colorFg).
		Bold(true)

	s.TimedStyle = lipgloss.NewStyle().
		Background(s.colorTimedBg).
		Foreground(s.colorFg)

	s.TimedAltStyle = lipgloss.NewStyle().
		Background(s.colorTimedBgAlt).
		Foreground(s.colorFg)

	s.GroupHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent)

	s.EmptyCellStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Bold(true)

	s.LoadingStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted).
		Italic(true)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFgMuted)

	s.PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorAccent).
		Padding(0, 1)

	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(s.colorBgSelection)

	return s
}

// BarStyleForLane alternates shades on adjacent lanes so stacked bars stay
// visually separate.
func (s *Styles) BarStyleForLane(lane int) lipgloss.Style {
	if lane%2 == 1 {
		return s.BarAltStyle
	}
	return s.BarStyle
}

// TimedStyleForLane alternates shades on adjacent timed lanes.
func (s *Styles) TimedStyleForLane(lane int) lipgloss.Style {
	if lane%2 == 1 {
		return s.TimedAltStyle
	}
	return s.TimedStyle
}
