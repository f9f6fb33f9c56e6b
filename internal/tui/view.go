package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"timegrid/internal/grid"
	"timegrid/internal/layout"
)

const (
	minCellWidth = 8
	weekRows     = 6
	daysPerWeek  = 7
)

// View renders the current grid.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")

	res := m.layoutResult()
	switch m.mode {
	case layout.ModeGantt:
		sb.WriteString(m.renderGantt(res))
	case layout.ModeDay, layout.ModeHour:
		sb.WriteString(m.renderDayHour(res))
	default:
		sb.WriteString(m.renderMonth(res))
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())

	return sb.String()
}

func (m Model) renderHeader() string {
	title := m.styles.TitleStyle.Render(fmt.Sprintf("timegrid · %s", m.windowTitle()))
	mode := m.styles.HelpStyle.Render(fmt.Sprintf("[%s]", m.mode))
	line := title + " " + mode
	if m.loading {
		line += " " + m.styles.LoadingStyle.Render("loading…")
	}
	return line + "\n"
}

func (m Model) renderFooter() string {
	if m.promptActive {
		return m.styles.PromptStyle.Render("go to date: " + m.prompt.View())
	}

	help := "m/d/u/g views · h/l page · j/k scroll · t today · / date · y copy · o overlap · q quit"
	if m.mode == layout.ModeGantt {
		help = "m/d/u/g views · h/l page · t today · +/- zoom · s step · y copy · q quit"
	}
	out := m.styles.HelpStyle.Render(help)
	if m.statusMsg != "" {
		out += "\n" + m.styles.StatusStyle.Render(m.statusMsg)
	}
	return out
}

// renderMonth paints the 42-cell month grid: a weekday header, then six week
// rows of day numbers with their bar lanes below.
func (m Model) renderMonth(res layout.Result) string {
	cellW := m.cellWidth()
	b := res.Bounds

	var sb strings.Builder

	// Weekday header from the first week row.
	for c := 0; c < daysPerWeek; c++ {
		name := b.CellStart(c).Format("Mon")
		sb.WriteString(m.styles.DayHeaderStyle.Width(cellW).Render(name))
	}
	sb.WriteString("\n")

	// Coalesce each record's per-cell segments into horizontal runs. Lanes
	// are assigned per cell, so a multi-day bar can change lanes mid-row; a
	// lane change closes the run and opens a new one, which keeps every cell
	// painted exactly once. The title renders only on the caption run.
	type runKey struct{ row, lane, col int }
	type barRun struct {
		placed  layout.Placed
		span    int
		caption bool
	}
	type barID struct {
		id  int64
		row int
	}
	starts := make(map[runKey]barRun)
	rowLanes := make([]int, weekRows)
	segsByBar := make(map[barID][]layout.Placed)
	var barOrder []barID
	for _, p := range res.Bars {
		if p.Row < 0 || p.Row >= weekRows {
			continue
		}
		if p.Lane+1 > rowLanes[p.Row] {
			rowLanes[p.Row] = p.Lane + 1
		}
		k := barID{p.Record.ID, p.Row}
		if _, ok := segsByBar[k]; !ok {
			barOrder = append(barOrder, k)
		}
		segsByBar[k] = append(segsByBar[k], p)
	}
	for _, k := range barOrder {
		segs := segsByBar[k]
		sort.Slice(segs, func(i, j int) bool { return segs[i].Col < segs[j].Col })
		for i := 0; i < len(segs); {
			j := i + 1
			for j < len(segs) && segs[j].Col == segs[j-1].Col+1 && segs[j].Lane == segs[i].Lane {
				j++
			}
			run := barRun{placed: segs[i], span: segs[j-1].Col - segs[i].Col + 1}
			for _, s := range segs[i:j] {
				if s.Caption {
					run.caption = true
				}
			}
			starts[runKey{k.row, segs[i].Lane, segs[i].Col}] = run
			i = j
		}
	}

	today := time.Now().In(m.loc)
	todayCell := b.CellIndex(today.Unix())
	anchorMonth := m.anchor.Month()

	for r := 0; r < weekRows; r++ {
		// Day number line.
		for c := 0; c < daysPerWeek; c++ {
			day := b.CellStart(r*daysPerWeek + c)
			label := fmt.Sprintf("%2d ", day.Day())
			style := m.styles.DayNumberStyle
			if day.Month() != anchorMonth {
				style = m.styles.DayNumberMutedStyle
			}
			if r*daysPerWeek+c == todayCell {
				style = m.styles.DayNumberTodayStyle
			}
			sb.WriteString(style.Render(label))
			sb.WriteString(strings.Repeat(" ", cellW-len(label)))
		}
		sb.WriteString("\n")

		// Bar lanes for this week row.
		for lane := 0; lane < rowLanes[r]; lane++ {
			for c := 0; c < daysPerWeek; c++ {
				if run, ok := starts[runKey{r, lane, c}]; ok {
					w := run.span*cellW - 1
					label := strings.Repeat(" ", w)
					if run.caption {
						label = " " + truncateStr(run.placed.Record.Title, w-1)
					}
					sb.WriteString(m.styles.BarStyleForLane(lane).Width(w).Render(label))
					sb.WriteString(" ")
					c += run.span - 1
					continue
				}
				sb.WriteString(strings.Repeat(" ", cellW))
			}
			sb.WriteString("\n")
		}
	}

	return m.clipScroll(sb.String())
}

// renderDayHour lists each visible day: full-day bars first, then the timed
// records placed in that day's column, ordered by their vertical position.
func (m Model) renderDayHour(res layout.Result) string {
	days := m.config.View.DaysVisible

	type entry struct {
		top   float64
		label string
		lane  int
	}
	timed := make([][]entry, days)
	for _, p := range res.Timed {
		if !p.Caption {
			continue
		}
		day := p.Cell
		if day < 0 || day >= days {
			continue
		}
		start := time.Unix(p.Segment.Start, 0).In(m.loc)
		end := time.Unix(p.Record.End, 0).In(m.loc)
		label := fmt.Sprintf(" %s–%s %s ",
			start.Format("15:04"), end.Format("15:04"), p.Record.Title)
		timed[day] = append(timed[day], entry{top: p.Top, label: label, lane: p.Lane})
	}

	bars := make([][]layout.Placed, days)
	for _, p := range res.Bars {
		if p.Cell < 0 || p.Cell >= days || !p.Caption {
			continue
		}
		bars[p.Cell] = append(bars[p.Cell], p)
	}

	today := time.Now().In(m.loc)
	var sb strings.Builder
	for d := 0; d < days; d++ {
		day := res.Bounds.Start.AddDate(0, 0, d)
		header := day.Format("Mon Jan 2")
		style := m.styles.DayHeaderStyle.Align(lipgloss.Left)
		if sameDay(day, today) {
			style = m.styles.DayHeaderTodayStyle.Align(lipgloss.Left)
		}
		sb.WriteString(style.Render(header))
		sb.WriteString("\n")

		for _, p := range bars[d] {
			label := " " + p.Record.Title + " "
			sb.WriteString("  ")
			sb.WriteString(m.styles.BarStyleForLane(p.Lane).Render(label))
			sb.WriteString("\n")
		}

		sort.Slice(timed[d], func(i, j int) bool { return timed[d][i].top < timed[d][j].top })
		for _, e := range timed[d] {
			sb.WriteString("  ")
			sb.WriteString(m.styles.TimedStyleForLane(e.lane).Render(e.label))
			sb.WriteString("\n")
		}

		if len(bars[d]) == 0 && len(timed[d]) == 0 {
			sb.WriteString(m.styles.EmptyCellStyle.Render("  (no records)"))
			sb.WriteString("\n")
		}
	}

	return m.clipScroll(sb.String())
}

// renderGantt paints the grouped timeline: one header line per group, then a
// text row per lane with bars scaled to the terminal width.
func (m Model) renderGantt(res layout.Result) string {
	avail := m.width - 2
	if avail < 10 {
		avail = 10
	}
	if res.TotalWidth <= 0 {
		return m.styles.EmptyCellStyle.Render("  (empty window)") + "\n"
	}
	scale := float64(avail) / res.TotalWidth

	// Axis line.
	b := res.Bounds
	axisFormat := "Jan 2"
	if b.Unit == grid.UnitHour {
		axisFormat = "Jan 2 15:04"
	}
	left := b.Start.Format(axisFormat)
	right := b.End().Format(axisFormat)
	pad := avail - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	axis := m.styles.HelpStyle.Render(left + strings.Repeat("·", pad) + right)

	// Bucket bars by group, then by lane within the group.
	type laneKey struct {
		group int
		lane  int
	}
	lanes := make(map[laneKey][]layout.Placed)
	for _, p := range res.Bars {
		g := m.groupIndexFor(res, p.Top)
		lanes[laneKey{g, p.Lane}] = append(lanes[laneKey{g, p.Lane}], p)
	}

	var sb strings.Builder
	sb.WriteString(axis)
	sb.WriteString("\n")

	for gi, g := range res.Groups {
		name := g.Key
		if name == "" {
			name = "(ungrouped)"
		}
		sb.WriteString(m.styles.GroupHeaderStyle.Render("▸ " + name))
		sb.WriteString("\n")

		for lane := 0; lane < g.LaneCount; lane++ {
			bars := lanes[laneKey{gi, lane}]
			sort.Slice(bars, func(i, j int) bool { return bars[i].Left < bars[j].Left })

			col := 0
			for _, p := range bars {
				c0 := int(p.Left * scale)
				w := int(p.Width * scale)
				if w < 1 {
					w = 1
				}
				if c0 < col {
					c0 = col
				}
				if c0 >= avail {
					break
				}
				if c0+w > avail {
					w = avail - c0
				}
				if w < 1 {
					continue
				}
				sb.WriteString(strings.Repeat(" ", c0-col))
				label := truncateStr(" "+p.Record.Title, w)
				sb.WriteString(m.styles.BarStyleForLane(lane).Width(w).Render(label))
				col = c0 + w
			}
			sb.WriteString("\n")
		}
	}

	if len(res.Groups) == 0 {
		sb.WriteString(m.styles.EmptyCellStyle.Render("  (no records in window)"))
		sb.WriteString("\n")
	}

	return m.clipScroll(sb.String())
}

// groupIndexFor finds the group whose vertical slot contains top.
func (m Model) groupIndexFor(res layout.Result, top float64) int {
	for i, g := range res.Groups {
		if top >= g.Top && top < g.Top+g.Height {
			return i
		}
	}
	return 0
}

// cellWidth is the month grid's column width for the current terminal.
func (m Model) cellWidth() int {
	w := m.width / daysPerWeek
	if w < minCellWidth {
		w = minCellWidth
	}
	return w
}

// clipScroll drops m.scroll lines from the top and clips to the viewport.
func (m Model) clipScroll(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if m.scroll >= len(lines) {
		return ""
	}
	lines = lines[m.scroll:]
	// Header and footer occupy a few terminal lines.
	visible := m.height - 5
	if visible > 0 && len(lines) > visible {
		lines = lines[:visible]
	}
	return strings.Join(lines, "\n") + "\n"
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
