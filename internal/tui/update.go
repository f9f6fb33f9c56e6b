package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"timegrid/internal/record"
	"timegrid/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.RecordsLoadedMsg:
		return m.handleRecordsLoaded(msg)

	case commands.FetchErrMsg:
		return m.handleFetchErr(msg)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.promptActive {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleRecordsLoaded applies a fetch response, dropping stale tokens.
// Responses race with navigation: the last request issued always wins, no
// matter the order responses come back in.
func (m Model) handleRecordsLoaded(msg commands.RecordsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Gantt {
		applied := m.ganttCtl.Apply(msg.Token, msg.Records)
		LogFetchResult(msg.Token, applied, len(msg.Records))
		if applied {
			m.loading = false
		}
		return m, nil
	}

	if msg.Token != m.calToken {
		LogFetchResult(msg.Token, false, len(msg.Records))
		return m, nil
	}
	m.records = record.NormalizeAll(msg.Records, m.offset)
	m.bounds = msg.Bounds
	m.loading = false
	LogFetchResult(msg.Token, true, len(msg.Records))
	return m, nil
}

// handleFetchErr reports a failed fetch. Stale failures are dropped the same
// way stale responses are; a current failure keeps the previous records
// visible.
func (m Model) handleFetchErr(msg commands.FetchErrMsg) (tea.Model, tea.Cmd) {
	if msg.Gantt {
		if !m.ganttCtl.Fail(msg.Token) {
			return m, nil
		}
	} else {
		if msg.Token != m.calToken {
			return m, nil
		}
	}

	LogError("fetch", msg.Err)
	m.loading = false
	m.err = msg.Err
	m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
	m.statusTime = time.Now().Add(5 * time.Second)
	return m, tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}
