package layout

import "timegrid/internal/grid"

// Metrics carries the pixel scale of the target grid. The TUI measures in
// character cells; the values are unit-agnostic.
type Metrics struct {
	// CellWidth is the width of one day column.
	CellWidth float64

	// RowHeight is the height of one lane row (month bars, gantt bars).
	RowHeight float64

	// PixelsPerHour scales the hour-grid vertical axis.
	PixelsPerHour float64

	// PixelsPerSecond scales the gantt horizontal axis before zoom.
	PixelsPerSecond float64

	// Zoom multiplies the gantt scale. Zero means 1.
	Zoom float64

	// BarGutter is trimmed from a month bar's right edge so adjacent
	// bars stay visually separate.
	BarGutter float64
}

// EffectiveZoom returns the zoom factor, defaulting to 1.
func (m Metrics) EffectiveZoom() float64 {
	if m.Zoom <= 0 {
		return 1
	}
	return m.Zoom
}

// Geometry is the render-ready placement of one segment. The engine emits
// no markup itself; a rendering collaborator consumes these.
type Geometry struct {
	Lane int

	// Row and Col locate the cell in the month grid (Row = week row).
	// Col is the day column in the hour grid.
	Row int
	Col int

	Left   float64
	Top    float64
	Width  float64
	Height float64

	// Caption marks the segment that renders the record's title: the
	// temporal first piece, or the first cell of a continued week row.
	Caption bool

	// Clipped marks gantt bars entirely outside the window; renderers
	// skip them rather than hide them.
	Clipped bool
}

const daysPerWeekRow = 7

// ProjectMonth places a full-day (or month-view) bar inside the 42-cell
// grid. Bar width is clipped to the remaining days of the bar's week row; a
// record continuing past the row re-renders with a fresh caption on the next
// row's first cell, so the usable text width is recomputed per row.
func ProjectMonth(s Segment, lane int, m Metrics) Geometry {
	row := s.Cell / daysPerWeekRow
	col := s.Cell % daysPerWeekRow

	span := s.Remaining
	if left := daysPerWeekRow - col; span > left {
		span = left
	}

	width := float64(span)*m.CellWidth - m.BarGutter
	if width < 0 {
		width = 0
	}

	return Geometry{
		Lane:    lane,
		Row:     row,
		Col:     col,
		Left:    float64(col) * m.CellWidth,
		Top:     float64(lane) * m.RowHeight,
		Width:   width,
		Height:  m.RowHeight,
		Caption: s.First || col == 0,
	}
}

// ProjectHour places a timed segment inside its day column of the hour
// grid. Overlapping segments split the column width by lane; extraLanes is
// the widening pass result and expands the segment into adjacent free lanes.
// The segmenter has already clipped the segment to its day, so height never
// runs past the column.
func ProjectHour(s Segment, lane, laneCount, extraLanes int, b grid.Bounds, m Metrics) Geometry {
	dayStart := b.CellStart(s.Cell).Unix()

	top := float64(s.Start-dayStart) / 3600 * m.PixelsPerHour
	height := float64(s.End-s.Start) / 3600 * m.PixelsPerHour

	// A zero or near-zero duration still gets a visible marker.
	if minH := m.PixelsPerHour / 4; height < minH {
		height = minH
	}

	if laneCount < 1 {
		laneCount = 1
	}
	laneWidth := m.CellWidth / float64(laneCount)

	return Geometry{
		Lane:    lane,
		Col:     s.Cell,
		Left:    float64(s.Cell)*m.CellWidth + float64(lane)*laneWidth,
		Top:     top,
		Width:   laneWidth * float64(1+extraLanes),
		Height:  height,
		Caption: s.First,
	}
}

// ProjectGantt places a bar on the gantt timeline. Bars entirely outside
// [0, totalWidth] come back Clipped so the renderer can drop them from
// output instead of painting them off-screen.
func ProjectGantt(s Segment, lane int, b grid.Bounds, m Metrics, totalWidth float64) Geometry {
	scale := m.PixelsPerSecond * m.EffectiveZoom()

	left := float64(s.Start-b.StartUnix()) * scale
	width := float64(s.End-s.Start) * scale
	if width < 1 {
		width = 1
	}

	return Geometry{
		Lane:    lane,
		Left:    left,
		Top:     float64(lane) * m.RowHeight,
		Width:   width,
		Height:  m.RowHeight,
		Caption: s.First,
		Clipped: left+width <= 0 || left >= totalWidth,
	}
}
