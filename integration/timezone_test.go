package integration

import (
	"context"
	"testing"
	"time"

	"timegrid/internal/grid"
	"timegrid/internal/layout"
	"timegrid/internal/record"
)

func nyLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	return loc
}

// Full-day records store UTC-midnight sentinels. Viewed from a western
// timezone they must still land on their calendar dates, and a DST
// transition inside the span must stretch the normalized range because
// the two bounds resolve different offsets.
func TestFullDayAcrossDSTTransition(t *testing.T) {
	loc := nyLocation(t)
	repo := openRepo(t)

	// March 8-10 2025: US DST begins March 9 at 02:00 local.
	createRecord(t, repo, "sprint",
		unix(t, "2025-03-08T00:00:00Z"), unix(t, "2025-03-11T00:00:00Z"), "")

	recs, err := repo.ListByRange(context.Background(),
		unix(t, "2025-03-01T00:00:00Z"), unix(t, "2025-04-01T00:00:00Z"))
	if err != nil {
		t.Fatalf("ListByRange: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("fetched %d records, want 1", len(recs))
	}

	n := record.Normalize(recs[0], record.LocationOffset(loc))
	if !n.FullDay {
		t.Fatal("record should normalize as full-day")
	}

	// EST (-5h) at the start bound, EDT (-4h) at the end bound, so the
	// spring-forward span is one hour short of three full days.
	if got, want := n.Start, recs[0].Start+5*3600; got != want {
		t.Errorf("normalized start = %d, want %d", got, want)
	}
	if got, want := n.End, recs[0].End+4*3600; got != want {
		t.Errorf("normalized end = %d, want %d", got, want)
	}
	if got, want := n.End-n.Start, int64(3*86400-3600); got != want {
		t.Errorf("normalized span = %ds, want %ds", got, want)
	}
}

// The same record rendered from two timezones occupies the same calendar
// dates in each viewer's grid.
func TestFullDayStableAcrossViewers(t *testing.T) {
	ny := nyLocation(t)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}

	repo := openRepo(t)
	// Single-day record: both bounds carry the same date sentinel.
	createRecord(t, repo, "holiday",
		unix(t, "2025-06-20T00:00:00Z"), unix(t, "2025-06-20T00:00:00Z"), "")

	for _, tc := range []struct {
		name string
		loc  *time.Location
	}{
		{"new york", ny},
		{"tokyo", tokyo},
	} {
		t.Run(tc.name, func(t *testing.T) {
			anchor := time.Date(2025, 6, 1, 0, 0, 0, 0, tc.loc)
			b := grid.Month(anchor, true)

			recs, err := repo.ListByRange(context.Background(), b.StartUnix(), b.EndUnix())
			if err != nil {
				t.Fatalf("ListByRange: %v", err)
			}
			norm := record.NormalizeAll(recs, record.LocationOffset(tc.loc))
			if len(norm) != 1 {
				t.Fatalf("normalized %d records, want 1", len(norm))
			}

			e := layout.Engine{Mode: layout.ModeMonth, Metrics: layout.Metrics{CellWidth: 14, RowHeight: 1}}
			res := e.Layout(norm, b)
			if len(res.Bars) != 1 {
				t.Fatalf("placed %d bars, want 1", len(res.Bars))
			}

			cellDate := b.CellStart(res.Bars[0].Cell)
			if cellDate.Month() != time.June || cellDate.Day() != 20 {
				t.Errorf("bar landed on %s, want June 20", cellDate.Format("2006-01-02"))
			}
		})
	}
}

// Timed records never shift: their epochs are absolute instants, so the
// same meeting renders at different local hours for different viewers.
func TestTimedRecordsPassThrough(t *testing.T) {
	loc := nyLocation(t)
	repo := openRepo(t)

	start := unix(t, "2025-06-20T14:00:00Z")
	end := unix(t, "2025-06-20T15:00:00Z")
	createRecord(t, repo, "standup", start, end, "")

	recs, err := repo.ListByRange(context.Background(), start-86400, end+86400)
	if err != nil {
		t.Fatalf("ListByRange: %v", err)
	}
	n := record.Normalize(recs[0], record.LocationOffset(loc))

	if n.FullDay {
		t.Error("timed record flagged as full-day")
	}
	if n.Start != start || n.End != end {
		t.Errorf("timed record shifted: got [%d, %d], want [%d, %d]", n.Start, n.End, start, end)
	}
}
