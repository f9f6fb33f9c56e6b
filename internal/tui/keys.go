package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"timegrid/internal/grid"
	"timegrid/internal/layout"
	"timegrid/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.promptActive {
		return m.handlePromptKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// View modes
	case "m":
		return m.switchMode(layout.ModeMonth)
	case "d":
		return m.switchMode(layout.ModeDay)
	case "u":
		return m.switchMode(layout.ModeHour)
	case "g":
		return m.switchMode(layout.ModeGantt)
	case "tab":
		next := (m.mode + 1) % 4
		return m.switchMode(next)

	// Paging
	case "l", "right":
		return m.page(1)
	case "h", "left":
		return m.page(-1)

	// Vertical scroll
	case "j", "down":
		m.scroll++
		return m, nil
	case "k", "up":
		if m.scroll > 0 {
			m.scroll--
		}
		return m, nil

	// Jump to today
	case "t":
		m.anchor = time.Now().In(m.loc)
		m.scroll = 0
		if m.mode == layout.ModeGantt {
			// Rebuild the controller so the new anchor takes effect.
			m.ganttCtl = m.ganttCtl.Rebase(m.anchor)
		}
		updated, cmd := m.refetch()
		return updated, cmd

	// Gantt zoom
	case "+", "=":
		if m.mode == layout.ModeGantt {
			req := m.ganttCtl.ZoomChange(m.config.Gantt.ZoomFactor * 2)
			LogFetch(req.Token, req.Bounds)
			m.loading = true
			return m, commands.FetchRequest(m.repo, req)
		}
		return m, nil
	case "-":
		if m.mode == layout.ModeGantt {
			req := m.ganttCtl.ZoomChange(0.5)
			LogFetch(req.Token, req.Bounds)
			m.loading = true
			return m, commands.FetchRequest(m.repo, req)
		}
		return m, nil

	// Gantt step toggle
	case "s":
		if m.mode == layout.ModeGantt {
			req := m.ganttCtl.StepTypeToggle()
			LogFetch(req.Token, req.Bounds)
			m.loading = true
			return m, commands.FetchRequest(m.repo, req)
		}
		return m, nil

	// Overlap mode toggle
	case "o":
		if m.overlap == layout.OverlapStrict {
			m.overlap = layout.OverlapTouch
		} else {
			m.overlap = layout.OverlapStrict
		}
		m.statusMsg = "Overlap mode: " + m.overlap.String()
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, nil

	// Copy visible records
	case "y":
		return m.copyVisible()

	// Go-to-date prompt
	case "/":
		m.promptActive = true
		m.prompt.SetValue("")
		m.prompt.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

// handlePromptKeys handles keys while the go-to-date prompt is open.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.promptActive = false
		m.prompt.Blur()
		m.prompt.SetValue("")
		return m, nil

	case "enter":
		value := strings.TrimSpace(m.prompt.Value())
		m.promptActive = false
		m.prompt.Blur()
		m.prompt.SetValue("")
		if value == "" {
			return m, nil
		}
		t, err := time.ParseInLocation("2006-01-02", value, m.loc)
		if err != nil {
			m.statusMsg = fmt.Sprintf("Invalid date: %s", value)
			m.statusTime = time.Now().Add(3 * time.Second)
			return m, nil
		}
		m.anchor = t
		m.scroll = 0
		if m.mode == layout.ModeGantt {
			m.ganttCtl = m.ganttCtl.Rebase(m.anchor)
		}
		updated, cmd := m.refetch()
		return updated, cmd
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// switchMode changes the active view and refetches its window.
func (m Model) switchMode(mode layout.Mode) (tea.Model, tea.Cmd) {
	if mode == m.mode {
		return m, nil
	}
	LogViewChange(m.mode.String(), mode.String(), "key")
	m.mode = mode
	m.scroll = 0
	if mode == layout.ModeGantt {
		m.ganttCtl = m.ganttCtl.Rebase(m.anchor)
	}
	updated, cmd := m.refetch()
	return updated, cmd
}

// page shifts the visible window by delta pages in the current view.
func (m Model) page(delta int) (tea.Model, tea.Cmd) {
	if m.mode == layout.ModeGantt {
		req := m.ganttCtl.PageChange(delta)
		LogFetch(req.Token, req.Bounds)
		m.loading = true
		return m, commands.FetchRequest(m.repo, req)
	}

	switch m.mode {
	case layout.ModeDay, layout.ModeHour:
		m.anchor = m.anchor.AddDate(0, 0, delta*m.config.View.DaysVisible)
	default:
		m.anchor = m.anchor.AddDate(0, delta, 0)
	}
	updated, cmd := m.refetch()
	return updated, cmd
}

// copyVisible writes a plain-text listing of the visible records to the
// clipboard.
func (m Model) copyVisible() (tea.Model, tea.Cmd) {
	recs := m.records
	if m.mode == layout.ModeGantt {
		recs = m.ganttCtl.Records()
	}
	if len(recs) == 0 {
		m.statusMsg = "Nothing to copy"
		m.statusTime = time.Now().Add(3 * time.Second)
		return m, nil
	}

	var sb strings.Builder
	for _, n := range recs {
		start := time.Unix(n.Start, 0).In(m.loc)
		end := time.Unix(n.End, 0).In(m.loc)
		if n.FullDay {
			fmt.Fprintf(&sb, "%s  %s\n", start.Format("2006-01-02"), n.Title)
		} else {
			fmt.Fprintf(&sb, "%s %s-%s  %s\n",
				start.Format("2006-01-02"), start.Format("15:04"), end.Format("15:04"), n.Title)
		}
	}

	if err := clipboard.WriteAll(sb.String()); err != nil {
		m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
	} else {
		m.statusMsg = fmt.Sprintf("Copied %d records", len(recs))
	}
	m.statusTime = time.Now().Add(3 * time.Second)
	return m, nil
}

// windowTitle names the visible window for the header.
func (m Model) windowTitle() string {
	switch m.mode {
	case layout.ModeGantt:
		b := m.ganttCtl.Bounds()
		if b.Unit == grid.UnitHour {
			return b.Start.Format("Jan 2 15:04") + " – " + b.End().Format("Jan 2 15:04")
		}
		return b.Start.Format("Jan 2") + " – " + b.End().AddDate(0, 0, -1).Format("Jan 2, 2006")
	case layout.ModeDay, layout.ModeHour:
		last := m.bounds.Start.AddDate(0, 0, m.config.View.DaysVisible-1)
		return m.bounds.Start.Format("Mon Jan 2") + " – " + last.Format("Mon Jan 2, 2006")
	default:
		return m.anchor.Format("January 2006")
	}
}
