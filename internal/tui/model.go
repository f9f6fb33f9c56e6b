// Package tui provides the interactive grid viewer for timegrid.
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"timegrid/internal/config"
	"timegrid/internal/db"
	"timegrid/internal/gantt"
	"timegrid/internal/grid"
	"timegrid/internal/layout"
	"timegrid/internal/record"
	"timegrid/internal/tui/commands"
	"timegrid/internal/tui/theme"
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   record.Repository
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// View state
	mode    layout.Mode
	overlap layout.OverlapMode
	anchor  time.Time
	loc     *time.Location
	offset  record.OffsetFunc

	// Calendar fetch state (month, day and hour views). Each navigation
	// bumps the token; responses carrying an older token are dropped.
	calToken uint64
	bounds   grid.Bounds
	records  []record.Normalized
	loading  bool

	// Gantt state machine (owns its own token space)
	ganttCtl *gantt.Controller

	// Go-to-date prompt
	prompt       textinput.Model
	promptActive bool

	// Terminal dimensions and scroll
	width  int
	height int
	scroll int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// New creates a new TUI model.
func New(repo record.Repository, cfg *config.Config) *Model {
	ti := textinput.New()
	ti.Placeholder = "2025-03-07"
	ti.CharLimit = 10
	ti.Width = 12

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("frappe")
	}

	loc := time.Local
	if cfg.View.Timezone != "" {
		if l, lerr := time.LoadLocation(cfg.View.Timezone); lerr == nil {
			loc = l
		}
	}
	offset := record.LocationOffset(loc)

	anchor := time.Now().In(loc)
	step := grid.UnitDay
	if cfg.Gantt.Step == "hour" {
		step = grid.UnitHour
	}

	m := &Model{
		repo:     repo,
		config:   cfg,
		theme:    t,
		styles:   NewStyles(t),
		mode:     layout.ParseMode(cfg.View.Mode),
		overlap:  layout.ParseOverlapMode(cfg.View.OverlapMode),
		anchor:   anchor,
		loc:      loc,
		offset:   offset,
		ganttCtl: gantt.New(anchor, step, cfg.Gantt.StepCount, offset),
		prompt:   ti,
	}
	m.bounds = m.calendarBounds()
	// The initial fetch issued by Init must carry the token the model
	// already holds; Init cannot return an updated model.
	m.calToken = 1
	m.loading = true
	return m
}

// Init initializes the model by fetching the first window.
func (m Model) Init() tea.Cmd {
	if m.mode == layout.ModeGantt {
		req := m.ganttCtl.Refresh()
		LogFetch(req.Token, req.Bounds)
		return commands.FetchRequest(m.repo, req)
	}
	LogFetch(m.calToken, m.bounds)
	return commands.FetchWindow(m.repo, m.calToken, m.bounds)
}

// calendarBounds computes the grid window for the current calendar mode.
func (m Model) calendarBounds() grid.Bounds {
	switch m.mode {
	case layout.ModeDay, layout.ModeHour:
		// Both flavors window whole days; hour mode only changes the
		// vertical scale of the timed lane.
		return grid.Days(m.anchor, m.config.View.DaysVisible)
	default:
		return grid.Month(m.anchor, m.config.View.WeekStartsMonday)
	}
}

// refetch issues a fresh window fetch for the current view.
func (m Model) refetch() (Model, tea.Cmd) {
	if m.mode == layout.ModeGantt {
		req := m.ganttCtl.Refresh()
		LogFetch(req.Token, req.Bounds)
		m.loading = true
		return m, commands.FetchRequest(m.repo, req)
	}

	m.bounds = m.calendarBounds()
	m.calToken++
	m.loading = true
	LogFetch(m.calToken, m.bounds)
	return m, commands.FetchWindow(m.repo, m.calToken, m.bounds)
}

// metrics builds engine metrics from the configured layout values and the
// live gantt zoom.
func (m Model) metrics() layout.Metrics {
	return layout.Metrics{
		CellWidth:       m.config.Layout.CellWidth,
		RowHeight:       m.config.Layout.RowHeight,
		PixelsPerHour:   m.config.Layout.PixelsPerHour,
		PixelsPerSecond: m.config.Gantt.PixelsPerSecond,
		Zoom:            m.ganttCtl.Zoom(),
		BarGutter:       m.config.Layout.BarGutter,
	}
}

// layoutResult runs one engine pass over the current window.
func (m Model) layoutResult() layout.Result {
	engine := layout.Engine{Mode: m.mode, Overlap: m.overlap, Metrics: m.metrics()}
	if m.mode == layout.ModeGantt {
		return engine.Layout(m.ganttCtl.Records(), m.ganttCtl.Bounds())
	}
	return engine.Layout(m.records, m.bounds)
}

// Run starts the TUI.
func Run(repo record.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo record.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	ownsRepo := repo == nil
	if repo == nil {
		opened, err := openRepo(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		repo = opened
	}

	model := New(repo, cfg)
	p := tea.NewProgram(*model, tea.WithAltScreen())
	_, err := p.Run()
	if ownsRepo {
		_ = repo.Close()
	}
	return err
}

func openRepo(dbPath string) (record.Repository, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is empty")
	}
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	repo, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return repo, nil
}
