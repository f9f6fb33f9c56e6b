// Package grid computes the visible window of a calendar or gantt view:
// its start instant, cell count and cell granularity. Bounds are a pure
// function of the navigation anchor and the view configuration; callers
// that want "now" derive the anchor themselves.
package grid

import "time"

// Unit is the granularity of one grid cell.
type Unit int

const (
	// UnitDay cells are calendar days (23-25h around DST transitions).
	UnitDay Unit = iota
	// UnitHour cells are fixed 3600-second steps.
	UnitHour
)

// String returns the unit name.
func (u Unit) String() string {
	if u == UnitHour {
		return "hour"
	}
	return "day"
}

const (
	// MonthCells is the fixed size of the month grid: 6 full weeks,
	// regardless of month length or leap effects.
	MonthCells = 6 * 7

	// GanttMargin is the number of extra steps kept before and after a
	// gantt page so edge-crossing bars remain visible.
	GanttMargin = 3
)

// Bounds describes the visible grid window. Start is the beginning of cell 0
// in the viewer's location; cells follow contiguously.
type Bounds struct {
	Start     time.Time
	CellCount int
	Unit      Unit
}

// CellStart returns the start instant of cell i. Day cells advance by
// calendar days so DST-shortened or -lengthened days stay aligned to
// local midnight.
func (b Bounds) CellStart(i int) time.Time {
	if b.Unit == UnitHour {
		return b.Start.Add(time.Duration(i) * time.Hour)
	}
	return b.Start.AddDate(0, 0, i)
}

// End returns the exclusive end instant of the window.
func (b Bounds) End() time.Time {
	return b.CellStart(b.CellCount)
}

// StartUnix returns the window start in epoch seconds.
func (b Bounds) StartUnix() int64 { return b.Start.Unix() }

// EndUnix returns the exclusive window end in epoch seconds.
func (b Bounds) EndUnix() int64 { return b.End().Unix() }

// CellIndex returns the cell containing the given instant, or -1 if the
// instant falls outside the window.
func (b Bounds) CellIndex(sec int64) int {
	if sec < b.StartUnix() || sec >= b.EndUnix() {
		return -1
	}
	if b.Unit == UnitHour {
		return int((sec - b.StartUnix()) / 3600)
	}
	// Walk by calendar days; CellCount is small (<= 48) so a scan is fine
	// and stays correct across DST boundaries.
	for i := 0; i < b.CellCount; i++ {
		if sec < b.CellStart(i+1).Unix() {
			return i
		}
	}
	return b.CellCount - 1
}

// DayIndex returns the number of calendar days between the window start and
// the given instant. Negative values mean the instant precedes the window;
// values may exceed CellCount. Computed on local dates, not 86400s buckets,
// so DST days count as one.
func (b Bounds) DayIndex(sec int64) int {
	t := time.Unix(sec, 0).In(b.Start.Location())
	a := truncateToDay(b.Start)
	d := truncateToDay(t)
	// Hours/24 truncation is safe here: two local midnights differ by a
	// whole number of days give or take a DST hour.
	return int(d.Sub(a).Round(24*time.Hour) / (24 * time.Hour))
}

// Month returns the 42-cell month grid containing anchor. The grid starts on
// the first configured week-start day on or before the 1st of the month and
// always spans six whole weeks; the longest month needs at most 37 of those
// 42 cells, so the fixed window never clips.
func Month(anchor time.Time, weekStartsMonday bool) Bounds {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	start := walkBackToWeekStart(first, weekStartsMonday)
	return Bounds{Start: start, CellCount: MonthCells, Unit: UnitDay}
}

// Days returns a window of daysShown calendar days starting at anchor's
// local midnight. Day and hour views share this window; hour granularity
// only changes how timed records are scaled within a day cell.
func Days(anchor time.Time, daysShown int) Bounds {
	if daysShown < 1 {
		daysShown = 1
	}
	return Bounds{Start: truncateToDay(anchor), CellCount: daysShown, Unit: UnitDay}
}

// GanttPage returns the gantt window for the given page offset: stepCount
// cells of the step unit shifted by pageOffset pages, with GanttMargin extra
// steps on both sides.
func GanttPage(anchor time.Time, step Unit, stepCount, pageOffset int) Bounds {
	if stepCount < 1 {
		stepCount = 1
	}
	origin := truncateToDay(anchor)
	if step == UnitHour {
		origin = anchor.Truncate(time.Hour)
	}
	shift := pageOffset*stepCount - GanttMargin

	var start time.Time
	if step == UnitHour {
		start = origin.Add(time.Duration(shift) * time.Hour)
	} else {
		start = origin.AddDate(0, 0, shift)
	}

	return Bounds{Start: start, CellCount: stepCount + 2*GanttMargin, Unit: step}
}

// walkBackToWeekStart returns the latest week-start day on or before t.
func walkBackToWeekStart(t time.Time, weekStartsMonday bool) time.Time {
	target := time.Sunday
	if weekStartsMonday {
		target = time.Monday
	}
	for t.Weekday() != target {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// truncateToDay returns t with the time component removed.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
