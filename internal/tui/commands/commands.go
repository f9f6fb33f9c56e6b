// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"timegrid/internal/gantt"
	"timegrid/internal/grid"
	"timegrid/internal/record"
)

// RecordsLoadedMsg is sent when a window fetch completes. Token ties the
// response back to the navigation state that requested it; the model drops
// responses whose token is no longer current.
type RecordsLoadedMsg struct {
	Token   uint64
	Gantt   bool // response to a gantt controller request
	Bounds  grid.Bounds
	Records []record.Record
}

// FetchErrMsg is sent when a window fetch fails.
type FetchErrMsg struct {
	Token uint64
	Gantt bool
	Err   error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// FetchWindow fetches the records intersecting a calendar grid window.
func FetchWindow(repo gantt.Fetcher, token uint64, b grid.Bounds) tea.Cmd {
	return fetch(repo, token, b, false)
}

// FetchRequest runs a gantt controller request.
func FetchRequest(repo gantt.Fetcher, req gantt.Request) tea.Cmd {
	return fetch(repo, req.Token, req.Bounds, true)
}

func fetch(repo gantt.Fetcher, token uint64, b grid.Bounds, isGantt bool) tea.Cmd {
	return func() tea.Msg {
		recs, err := repo.ListByRange(context.Background(), b.StartUnix(), b.EndUnix())
		if err != nil {
			return FetchErrMsg{Token: token, Gantt: isGantt, Err: err}
		}
		return RecordsLoadedMsg{Token: token, Gantt: isGantt, Bounds: b, Records: recs}
	}
}
