// Package layout is the time-interval layout engine: it splits normalized
// records into per-cell segments, packs overlapping segments into parallel
// lanes, and projects lane assignments into rendering geometry. Every pass
// is a pure function of (records, bounds, config); nothing here holds state
// between renders.
package layout

import (
	"timegrid/internal/grid"
	"timegrid/internal/record"
)

// Segment is a record's contribution to one grid cell. Segments are built
// fresh on every layout pass and discarded once geometry is computed.
type Segment struct {
	Record record.Normalized

	// Cell is the day column this segment belongs to.
	Cell int

	// Start and End are the segment's span in epoch seconds, clipped to
	// its cell for timed records. Full-day segments cover whole cells.
	Start int64
	End   int64

	// First and Last mark the temporal start/end piece of a possibly
	// multi-cell record; captions and border caps render only on those.
	First bool
	Last  bool

	// Remaining counts the in-bounds cells this record still covers from
	// Cell forward, including Cell itself.
	Remaining int
}

// Segments splits records into per-cell segments against day-granularity
// bounds. Input order is preserved: the lane assigner's tie-break depends
// on it. Records with no in-bounds contribution produce nothing.
func Segments(recs []record.Normalized, b grid.Bounds) []Segment {
	out := make([]Segment, 0, len(recs))
	for _, n := range recs {
		if n.FullDay {
			out = append(out, segmentFullDay(n, b)...)
		} else {
			out = append(out, segmentTimed(n, b)...)
		}
	}
	return out
}

// segmentFullDay emits one segment per day cell the record covers.
//
// A record whose start precedes the window still contributes a segment
// pinned to cell 0, marked not-first, so it keeps its lane when it scrolls
// into view. Emission is capped at the last grid cell.
func segmentFullDay(n record.Normalized, b grid.Bounds) []Segment {
	day0 := b.DayIndex(n.Start)
	lastDay := b.DayIndex(n.End)

	if lastDay < 0 || day0 >= b.CellCount {
		// No overlap with the visible window: expected when paging.
		return nil
	}

	firstCell := day0
	if firstCell < 0 {
		firstCell = 0
	}
	lastCell := lastDay
	if lastCell > b.CellCount-1 {
		lastCell = b.CellCount - 1
	}

	segs := make([]Segment, 0, lastCell-firstCell+1)
	for cell := firstCell; cell <= lastCell; cell++ {
		segs = append(segs, Segment{
			Record:    n,
			Cell:      cell,
			Start:     b.CellStart(cell).Unix(),
			End:       b.CellStart(cell + 1).Unix(),
			First:     cell == firstCell && day0 >= 0,
			Last:      cell == lastCell && lastDay <= b.CellCount-1,
			Remaining: lastCell - cell + 1,
		})
	}
	return segs
}

// segmentTimed splits a timed record into one segment per calendar day it
// touches. A record crossing midnight continues on the next day with its
// start reset to that day's 00:00; the recursion is bounded by the number
// of days the record spans.
func segmentTimed(n record.Normalized, b grid.Bounds) []Segment {
	day0 := b.DayIndex(n.Start)
	lastDay := b.DayIndex(n.End)

	// A record ending exactly on a midnight does not touch that day,
	// unless it is a zero-length event sitting on the boundary.
	if n.End > n.Start && lastDay > day0 && n.End == b.CellStart(lastDay).Unix() {
		lastDay--
	}

	if lastDay < 0 || day0 >= b.CellCount {
		return nil
	}

	firstCell := day0
	if firstCell < 0 {
		firstCell = 0
	}
	lastCell := lastDay
	if lastCell > b.CellCount-1 {
		lastCell = b.CellCount - 1
	}

	segs := make([]Segment, 0, lastCell-firstCell+1)
	for cell := firstCell; cell <= lastCell; cell++ {
		dayStart := b.CellStart(cell).Unix()
		dayEnd := b.CellStart(cell + 1).Unix()

		segStart := n.Start
		if segStart < dayStart {
			segStart = dayStart
		}
		segEnd := n.End
		if segEnd > dayEnd {
			segEnd = dayEnd
		}
		if segEnd < segStart {
			continue
		}

		segs = append(segs, Segment{
			Record:    n,
			Cell:      cell,
			Start:     segStart,
			End:       segEnd,
			First:     segStart == n.Start,
			Last:      segEnd == n.End,
			Remaining: lastCell - cell + 1,
		})
	}
	return segs
}

// ClipToWindow clips a record to the bounds window as a single segment, the
// shape the gantt timeline consumes. Reports false when the record does not
// intersect the window at all.
func ClipToWindow(n record.Normalized, b grid.Bounds) (Segment, bool) {
	winStart := b.StartUnix()
	winEnd := b.EndUnix()

	if n.End < winStart || n.Start >= winEnd {
		return Segment{}, false
	}

	s := Segment{
		Record:    n,
		Start:     n.Start,
		End:       n.End,
		First:     n.Start >= winStart,
		Last:      n.End < winEnd,
		Remaining: 1,
	}
	if s.Start < winStart {
		s.Start = winStart
	}
	if s.End > winEnd {
		s.End = winEnd
	}
	return s, true
}
