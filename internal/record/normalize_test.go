package record

import (
	"testing"
	"time"
)

func TestIsFullDay(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{
			name: "both bounds on UTC midnight",
			rec:  Record{Start: 1735689600, End: 1735776000}, // 2025-01-01 .. 2025-01-02
			want: true,
		},
		{
			name: "timed record",
			rec:  Record{Start: 1735689600 + 9*3600, End: 1735689600 + 10*3600},
			want: false,
		},
		{
			name: "start on midnight, end timed",
			rec:  Record{Start: 1735689600, End: 1735689600 + 1800},
			want: false,
		},
		{
			name: "zero-length at midnight",
			rec:  Record{Start: 1735689600, End: 1735689600},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.IsFullDay(); got != tt.want {
				t.Errorf("IsFullDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize_FullDayShift(t *testing.T) {
	// 2025-01-01 00:00 UTC stored as a full-day sentinel, viewed from UTC-5.
	// The epoch must move forward 5h so the bound sits on local midnight of
	// Jan 1, not the evening of Dec 31.
	rec := Record{Start: 1735689600, End: 1735776000}

	n := Normalize(rec, FixedOffset(-5*3600))

	if !n.FullDay {
		t.Fatal("expected FullDay to be set")
	}
	if n.Start != rec.Start+5*3600 {
		t.Errorf("Start = %d, want %d", n.Start, rec.Start+5*3600)
	}
	if n.End != rec.End+5*3600 {
		t.Errorf("End = %d, want %d", n.End, rec.End+5*3600)
	}
}

func TestNormalize_TimedPassThrough(t *testing.T) {
	rec := Record{Start: 1735722000, End: 1735725600} // 09:00-10:00 UTC

	n := Normalize(rec, FixedOffset(3600))

	if n.FullDay {
		t.Error("timed record should not be marked full-day")
	}
	if n.Start != rec.Start || n.End != rec.End {
		t.Errorf("timed record must pass through unchanged, got [%d, %d]", n.Start, n.End)
	}
}

func TestNormalize_ClampsMalformedRange(t *testing.T) {
	rec := Record{Start: 1700000000, End: 1699999000}

	n := Normalize(rec, FixedOffset(0))

	if n.End != n.Start {
		t.Errorf("expected zero-length clamp, got [%d, %d]", n.Start, n.End)
	}
	if n.Start != rec.Start {
		t.Errorf("clamp must anchor at Start, got %d", n.Start)
	}
}

func TestNormalize_DSTOffsetsEvaluatedPerBound(t *testing.T) {
	// A full-day record spanning the US spring-forward transition
	// (2025-03-08 .. 2025-03-10). Start is in EST (-5h), end in EDT (-4h).
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	start := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC).Unix()
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).Unix()
	rec := Record{Start: start, End: end}

	n := Normalize(rec, LocationOffset(loc))

	if !n.FullDay {
		t.Fatal("expected full-day record")
	}
	if n.Start != start+5*3600 {
		t.Errorf("start offset: got shift %d, want %d", n.Start-start, int64(5*3600))
	}
	if n.End != end+4*3600 {
		t.Errorf("end offset: got shift %d, want %d", n.End-end, int64(4*3600))
	}

	// Both shifted bounds sit on local midnight of their stored dates.
	for _, sec := range []int64{n.Start, n.End} {
		lt := time.Unix(sec, 0).In(loc)
		if lt.Hour() != 0 || lt.Minute() != 0 {
			t.Errorf("shifted bound %d is %s local, want midnight", sec, lt.Format("15:04"))
		}
	}
}

func TestNormalize_ShiftStability(t *testing.T) {
	// Normalizing an already-normalized record again must not move it to a
	// different calendar cell: the shifted bounds are no longer sentinel
	// values, so the second pass is a no-op.
	rec := Record{Start: 1735689600, End: 1735776000}
	offset := FixedOffset(-5 * 3600)

	once := Normalize(rec, offset)
	twice := Normalize(once.Record, offset)

	if twice.Start != once.Start || twice.End != once.End {
		t.Errorf("second normalize moved the record: [%d, %d] vs [%d, %d]",
			twice.Start, twice.End, once.Start, once.End)
	}
}

func TestNormalize_OffsetFailureFallsBackToTimed(t *testing.T) {
	rec := Record{Start: 1735689600, End: 1735776000}

	tests := []struct {
		name   string
		offset OffsetFunc
	}{
		{"nil offset", nil},
		{"implausible offset", FixedOffset(48 * 3600)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(rec, tt.offset)
			if n.FullDay {
				t.Error("expected fallback to non-full-day")
			}
			if n.Start != rec.Start || n.End != rec.End {
				t.Error("fallback must leave bounds unshifted")
			}
		})
	}
}

func TestNormalizeAll_PreservesOrder(t *testing.T) {
	recs := []Record{
		{ID: 3, Start: 300, End: 400},
		{ID: 1, Start: 100, End: 200},
		{ID: 2, Start: 100, End: 150},
	}

	out := NormalizeAll(recs, FixedOffset(0))

	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for i := range recs {
		if out[i].ID != recs[i].ID {
			t.Errorf("position %d: ID = %d, want %d (input order must be preserved)",
				i, out[i].ID, recs[i].ID)
		}
	}
}
