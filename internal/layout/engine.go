package layout

import (
	"timegrid/internal/grid"
	"timegrid/internal/record"
)

// Mode selects which projector strategy the engine applies.
type Mode int

const (
	ModeMonth Mode = iota
	ModeDay
	ModeHour
	ModeGantt
)

// String returns the mode name as it appears in configuration.
func (m Mode) String() string {
	switch m {
	case ModeDay:
		return "day"
	case ModeHour:
		return "hour"
	case ModeGantt:
		return "gantt"
	default:
		return "month"
	}
}

// ParseMode parses a view mode name. Unknown names fall back to month.
func ParseMode(s string) Mode {
	switch s {
	case "day":
		return ModeDay
	case "hour":
		return ModeHour
	case "gantt":
		return ModeGantt
	default:
		return ModeMonth
	}
}

// Engine is the parameterized layout engine. One engine value serves all
// three grid flavors; the duplicated per-view control flow of ad hoc
// implementations collapses into the mode switch here. Engines are cheap
// value types holding configuration only — every Layout call recomputes
// from scratch.
type Engine struct {
	Mode    Mode
	Overlap OverlapMode // predicate for timed lanes; bars always use touch
	Metrics Metrics
}

// Placed pairs a segment with its computed geometry.
type Placed struct {
	Segment
	Geometry
}

// GroupLayout is one gantt group's vertical slot: a header row followed by
// LaneCount bar rows.
type GroupLayout struct {
	Key       string
	Top       float64
	Height    float64
	LaneCount int
}

// Result is one layout pass, ready for a rendering collaborator.
type Result struct {
	Bounds grid.Bounds

	// Bars are full-day (and month-view) day-cell bars.
	Bars []Placed
	// BarLanes is the lane count per day cell, driving cell height.
	BarLanes []int

	// Timed are hour-grid placements (day and hour modes).
	Timed []Placed

	// Groups and TotalWidth describe the gantt timeline (gantt mode).
	Groups     []GroupLayout
	TotalWidth float64
}

// LaneCountMax returns the largest per-cell bar lane count, or zero.
func (r Result) LaneCountMax() int {
	m := 0
	for _, n := range r.BarLanes {
		if n > m {
			m = n
		}
	}
	return m
}

// Layout runs a full pass: segment, pack lanes, project. recs must be in
// data-source order (sorted by start upstream); the engine preserves that
// order rather than enforcing it.
func (e Engine) Layout(recs []record.Normalized, b grid.Bounds) Result {
	switch e.Mode {
	case ModeGantt:
		return e.layoutGantt(recs, b)
	case ModeDay, ModeHour:
		return e.layoutDayHour(recs, b)
	default:
		return e.layoutMonth(recs, b)
	}
}

// layoutMonth packs every record — full-day or timed — as a day bar in the
// 42-cell grid. Bars use the touch-inclusive predicate so two bars meeting
// on a boundary day keep separate lanes.
func (e Engine) layoutMonth(recs []record.Normalized, b grid.Bounds) Result {
	res := Result{Bounds: b, BarLanes: make([]int, b.CellCount)}

	segs := Segments(recs, b)
	for cell, cellSegs := range GroupByCell(segs, b.CellCount) {
		asg := AssignLanes(cellSegs, OverlapTouch)
		res.BarLanes[cell] = asg.LaneCount
		for i, s := range cellSegs {
			res.Bars = append(res.Bars, Placed{
				Segment:  s,
				Geometry: ProjectMonth(s, asg.Lanes[i], e.Metrics),
			})
		}
	}
	return res
}

// layoutDayHour lays the same window out twice: full-day records as bars in
// a day-cell lane above the grid, timed records in hour columns below. The
// two passes assign lanes independently, one per unit granularity.
func (e Engine) layoutDayHour(recs []record.Normalized, b grid.Bounds) Result {
	res := Result{Bounds: b, BarLanes: make([]int, b.CellCount)}

	var fullDay, timed []record.Normalized
	for _, n := range recs {
		if n.FullDay {
			fullDay = append(fullDay, n)
		} else {
			timed = append(timed, n)
		}
	}

	barSegs := Segments(fullDay, b)
	for cell, cellSegs := range GroupByCell(barSegs, b.CellCount) {
		asg := AssignLanes(cellSegs, OverlapTouch)
		res.BarLanes[cell] = asg.LaneCount
		for i, s := range cellSegs {
			res.Bars = append(res.Bars, Placed{
				Segment:  s,
				Geometry: ProjectMonth(s, asg.Lanes[i], e.Metrics),
			})
		}
	}

	timedSegs := Segments(timed, b)
	for _, cellSegs := range GroupByCell(timedSegs, b.CellCount) {
		asg := AssignLanes(cellSegs, e.Overlap)
		extra := Widen(cellSegs, asg, e.Overlap)
		for i, s := range cellSegs {
			res.Timed = append(res.Timed, Placed{
				Segment:  s,
				Geometry: ProjectHour(s, asg.Lanes[i], asg.LaneCount, extra[i], b, e.Metrics),
			})
		}
	}
	return res
}

// layoutGantt clips records to the window, groups them by GroupKey in first
// appearance order, and packs lanes independently per group. Each group
// renders as a header row plus its lane rows; bar tops are offset by the
// accumulated height of the groups above.
func (e Engine) layoutGantt(recs []record.Normalized, b grid.Bounds) Result {
	res := Result{Bounds: b}
	res.TotalWidth = float64(b.EndUnix()-b.StartUnix()) *
		e.Metrics.PixelsPerSecond * e.Metrics.EffectiveZoom()

	// Bucket by group key, keeping first-appearance order.
	var keys []string
	byKey := make(map[string][]Segment)
	for _, n := range recs {
		s, ok := ClipToWindow(n, b)
		if !ok {
			continue
		}
		key := n.GroupKey
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], s)
	}

	headerH := e.Metrics.RowHeight
	top := 0.0
	for _, key := range keys {
		segs := byKey[key]
		asg := AssignLanes(segs, e.Overlap)
		extra := Widen(segs, asg, e.Overlap)

		group := GroupLayout{
			Key:       key,
			Top:       top,
			Height:    headerH + float64(asg.LaneCount)*e.Metrics.RowHeight,
			LaneCount: asg.LaneCount,
		}
		res.Groups = append(res.Groups, group)

		for i, s := range segs {
			g := ProjectGantt(s, asg.Lanes[i], b, e.Metrics, res.TotalWidth)
			g.Top += group.Top + headerH
			if extra[i] > 0 {
				g.Height = e.Metrics.RowHeight * float64(1+extra[i])
			}
			if g.Clipped {
				// Excluded from output entirely, not merely hidden.
				continue
			}
			res.Bars = append(res.Bars, Placed{Segment: s, Geometry: g})
		}

		top += group.Height
	}
	return res
}
