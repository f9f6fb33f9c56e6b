package layout

import (
	"testing"
	"time"

	"timegrid/internal/grid"
	"timegrid/internal/record"
)

func fullDay(id int64, start, end time.Time) record.Normalized {
	return record.Normalized{
		Record:  record.Record{ID: id, Start: start.Unix(), End: end.Unix()},
		FullDay: true,
	}
}

func timed(id int64, start, end time.Time) record.Normalized {
	return record.Normalized{
		Record: record.Record{ID: id, Start: start.Unix(), End: end.Unix()},
	}
}

func TestSegmentFullDay_MultiCell(t *testing.T) {
	// Friday Mar 7 .. Monday Mar 10 in the March 2025 month grid
	// (monday-start, so week rows end on Sunday).
	b := grid.Month(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), true)
	rec := fullDay(1,
		time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	segs := Segments([]record.Normalized{rec}, b)

	if len(segs) != 4 {
		t.Fatalf("got %d segments, want 4 (Fri..Mon)", len(segs))
	}
	if !segs[0].First {
		t.Error("Friday segment must be First")
	}
	if segs[0].Last {
		t.Error("Friday segment must not be Last")
	}
	if !segs[3].Last {
		t.Error("Monday segment must be Last")
	}
	if segs[3].First {
		t.Error("Monday segment must not be First")
	}
	if segs[0].Remaining != 4 {
		t.Errorf("Friday Remaining = %d, want 4", segs[0].Remaining)
	}
	if segs[3].Remaining != 1 {
		t.Errorf("Monday Remaining = %d, want 1", segs[3].Remaining)
	}

	// Cells must be contiguous.
	for i := 1; i < len(segs); i++ {
		if segs[i].Cell != segs[i-1].Cell+1 {
			t.Errorf("cells not contiguous: %d then %d", segs[i-1].Cell, segs[i].Cell)
		}
	}

	// The Friday bar is projected with width clipped to its week row.
	m := Metrics{CellWidth: 10, RowHeight: 1}
	g := ProjectMonth(segs[0], 0, m)
	if g.Width != 30 {
		t.Errorf("Friday bar width = %v, want 30 (3 remaining days in row)", g.Width)
	}
	gMon := ProjectMonth(segs[3], 0, m)
	if !gMon.Caption {
		t.Error("Monday starts a new week row and must re-render the caption")
	}
	if gMon.Col != 0 {
		t.Errorf("Monday col = %d, want 0", gMon.Col)
	}
}

func TestSegmentFullDay_StartsBeforeWindow(t *testing.T) {
	b := grid.Days(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 3)
	rec := fullDay(1,
		time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))

	segs := Segments([]record.Normalized{rec}, b)

	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2 (cells 0 and 1)", len(segs))
	}
	if segs[0].Cell != 0 {
		t.Errorf("first cell = %d, want pin to 0", segs[0].Cell)
	}
	if segs[0].First {
		t.Error("a record that started before the window must not be marked First")
	}
	if !segs[1].Last {
		t.Error("final in-window segment must be Last")
	}
}

func TestSegmentFullDay_EndsPastWindow(t *testing.T) {
	b := grid.Days(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 3)
	rec := fullDay(1,
		time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))

	segs := Segments([]record.Normalized{rec}, b)

	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2 (cells 1 and 2)", len(segs))
	}
	if segs[len(segs)-1].Cell != b.CellCount-1 {
		t.Errorf("emission must cap at cell %d, got %d", b.CellCount-1, segs[len(segs)-1].Cell)
	}
	if segs[len(segs)-1].Last {
		t.Error("record continuing past the window must not be marked Last")
	}
}

func TestSegmentFullDay_EntirelyOutside(t *testing.T) {
	b := grid.Days(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 3)

	before := fullDay(1,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	after := fullDay(2,
		time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC))

	if segs := Segments([]record.Normalized{before, after}, b); len(segs) != 0 {
		t.Errorf("out-of-window records must be dropped silently, got %d segments", len(segs))
	}
}

func TestSegmentTimed_MidnightSplit(t *testing.T) {
	b := grid.Days(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 3)
	// 23:00 on day 0 through 03:00 on day 1.
	rec := timed(1,
		time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 11, 3, 0, 0, 0, time.UTC))

	segs := Segments([]record.Normalized{rec}, b)

	if len(segs) != 2 {
		t.Fatalf("got %d segments, want 2", len(segs))
	}

	first, second := segs[0], segs[1]
	if first.Cell != 0 || second.Cell != 1 {
		t.Errorf("cells = %d,%d, want 0,1", first.Cell, second.Cell)
	}
	if !first.First || first.Last {
		t.Error("first piece flags wrong")
	}
	if second.First || !second.Last {
		t.Error("second piece flags wrong")
	}

	midnight := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC).Unix()
	if first.End != midnight || second.Start != midnight {
		t.Errorf("split point: first ends %d, second starts %d, want %d",
			first.End, second.Start, midnight)
	}

	// Coverage: the union of segment spans equals the record span,
	// with no double counting.
	var total int64
	for _, s := range segs {
		total += s.End - s.Start
	}
	if want := rec.End - rec.Start; total != want {
		t.Errorf("covered %d seconds, want %d", total, want)
	}
}

func TestSegmentTimed_EndsExactlyAtMidnight(t *testing.T) {
	b := grid.Days(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 3)
	rec := timed(1,
		time.Date(2025, 6, 10, 22, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))

	segs := Segments([]record.Normalized{rec}, b)

	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1 (no empty next-day piece)", len(segs))
	}
	if !segs[0].Last {
		t.Error("single piece must carry Last")
	}
}

func TestSegmentTimed_ZeroLength(t *testing.T) {
	b := grid.Days(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), 3)
	at := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	rec := timed(1, at, at)

	segs := Segments([]record.Normalized{rec}, b)

	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1 instant marker", len(segs))
	}
	if segs[0].Start != segs[0].End {
		t.Error("instant segment must stay zero-length")
	}
	if !segs[0].First || !segs[0].Last {
		t.Error("instant segment is both First and Last")
	}
}

func TestClipToWindow(t *testing.T) {
	b := grid.GanttPage(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), grid.UnitDay, 14, 0)

	t.Run("straddles window start", func(t *testing.T) {
		rec := timed(1,
			time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC))
		s, ok := ClipToWindow(rec, b)
		if !ok {
			t.Fatal("expected in-window clip")
		}
		if s.Start != b.StartUnix() {
			t.Errorf("clip start = %d, want window start %d", s.Start, b.StartUnix())
		}
		if s.First {
			t.Error("clipped-at-start bar must not be First")
		}
	})

	t.Run("outside window", func(t *testing.T) {
		rec := timed(2,
			time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC))
		if _, ok := ClipToWindow(rec, b); ok {
			t.Error("record past the window must be excluded")
		}
	})
}
