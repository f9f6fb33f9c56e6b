package importer

import (
	"strings"
	"testing"
	"time"
)

func icsPayload(events ...string) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
	}
	lines = append(lines, events...)
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

func TestReadICS_TimedEvent(t *testing.T) {
	payload := icsPayload(
		"BEGIN:VEVENT",
		"UID:ev-1",
		"DTSTAMP:20250301T000000Z",
		"SUMMARY:Release planning",
		"DTSTART:20250307T090000Z",
		"DTEND:20250307T103000Z",
		"CATEGORIES:project-a",
		"END:VEVENT",
	)

	recs, err := ReadICS(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ReadICS failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	r := recs[0]
	if r.Title != "Release planning" {
		t.Errorf("Title = %q", r.Title)
	}
	if want := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC).Unix(); r.Start != want {
		t.Errorf("Start = %d, want %d", r.Start, want)
	}
	if want := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC).Unix(); r.End != want {
		t.Errorf("End = %d, want %d", r.End, want)
	}
	if r.IsFullDay() {
		t.Error("timed event must not read as full-day")
	}
	if r.GroupKey != "project-a" {
		t.Errorf("GroupKey = %q, want project-a", r.GroupKey)
	}
}

func TestReadICS_AllDayEvent(t *testing.T) {
	// ICS DTEND is exclusive for all-day events: a Mar 7..Mar 10 stay is
	// written DTEND 20250311.
	payload := icsPayload(
		"BEGIN:VEVENT",
		"UID:ev-2",
		"DTSTAMP:20250301T000000Z",
		"SUMMARY:Conference",
		"DTSTART;VALUE=DATE:20250307",
		"DTEND;VALUE=DATE:20250311",
		"END:VEVENT",
	)

	recs, err := ReadICS(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ReadICS failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	r := recs[0]
	if !r.IsFullDay() {
		t.Error("VALUE=DATE bounds must produce the full-day sentinel encoding")
	}
	if want := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC).Unix(); r.Start != want {
		t.Errorf("Start = %d, want %d", r.Start, want)
	}
	if want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).Unix(); r.End != want {
		t.Errorf("End = %d, want %d (exclusive DTEND pulled back one day)", r.End, want)
	}
}

func TestReadICS_SingleAllDay(t *testing.T) {
	payload := icsPayload(
		"BEGIN:VEVENT",
		"UID:ev-3",
		"DTSTAMP:20250301T000000Z",
		"SUMMARY:Holiday",
		"DTSTART;VALUE=DATE:20250501",
		"DTEND;VALUE=DATE:20250502",
		"END:VEVENT",
	)

	recs, err := ReadICS(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ReadICS failed: %v", err)
	}

	r := recs[0]
	if r.Start != r.End {
		t.Errorf("single-day event: start %d, end %d, want equal sentinels", r.Start, r.End)
	}
	if want := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).Unix(); r.Start != want {
		t.Errorf("Start = %d, want %d", r.Start, want)
	}
}

func TestReadICS_SkipsRecurring(t *testing.T) {
	payload := icsPayload(
		"BEGIN:VEVENT",
		"UID:ev-4",
		"DTSTAMP:20250301T000000Z",
		"SUMMARY:Weekly sync",
		"DTSTART:20250303T100000Z",
		"DTEND:20250303T110000Z",
		"RRULE:FREQ=WEEKLY",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:ev-5",
		"DTSTAMP:20250301T000000Z",
		"SUMMARY:One-off",
		"DTSTART:20250304T100000Z",
		"DTEND:20250304T110000Z",
		"END:VEVENT",
	)

	recs, err := ReadICS(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ReadICS failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1 (recurring event skipped)", len(recs))
	}
	if recs[0].Title != "One-off" {
		t.Errorf("kept %q, want the non-recurring event", recs[0].Title)
	}
}

func TestReadICS_UntitledEvent(t *testing.T) {
	payload := icsPayload(
		"BEGIN:VEVENT",
		"UID:ev-6",
		"DTSTAMP:20250301T000000Z",
		"DTSTART:20250304T100000Z",
		"DTEND:20250304T110000Z",
		"END:VEVENT",
	)

	recs, err := ReadICS(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ReadICS failed: %v", err)
	}
	if recs[0].Title != "(untitled)" {
		t.Errorf("Title = %q, want placeholder", recs[0].Title)
	}
}

func TestReadICS_Garbage(t *testing.T) {
	if _, err := ReadICS(strings.NewReader("not a calendar")); err == nil {
		t.Error("expected parse error")
	}
}
