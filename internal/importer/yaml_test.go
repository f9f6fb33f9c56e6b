package importer

import (
	"strings"
	"testing"
	"time"
)

func TestReadYAML(t *testing.T) {
	input := `
records:
  - title: Standup
    start: 2025-03-07T09:00:00Z
    end: 2025-03-07T09:15:00Z
    color: "#3366cc"
  - title: Conference
    start: 2025-03-07
    end: 2025-03-10
    group: travel
`

	recs, err := ReadYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadYAML failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	standup := recs[0]
	if standup.Title != "Standup" {
		t.Errorf("Title = %q, want Standup", standup.Title)
	}
	wantStart := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC).Unix()
	if standup.Start != wantStart {
		t.Errorf("Start = %d, want %d", standup.Start, wantStart)
	}
	if standup.IsFullDay() {
		t.Error("timed record must not read as full-day")
	}
	if standup.Color != "#3366cc" {
		t.Errorf("Color = %q, want #3366cc", standup.Color)
	}

	conf := recs[1]
	if !conf.IsFullDay() {
		t.Error("bare-date bounds must produce the full-day sentinel encoding")
	}
	if want := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC).Unix(); conf.Start != want {
		t.Errorf("Start = %d, want %d", conf.Start, want)
	}
	// The end date names the last covered day.
	if want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).Unix(); conf.End != want {
		t.Errorf("End = %d, want %d", conf.End, want)
	}
	if conf.GroupKey != "travel" {
		t.Errorf("GroupKey = %q, want travel", conf.GroupKey)
	}
}

func TestReadYAML_Offsets(t *testing.T) {
	input := `
records:
  - title: Madrid meeting
    start: 2025-03-07T10:00:00+01:00
    end: 2025-03-07T11:00:00+01:00
`

	recs, err := ReadYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadYAML failed: %v", err)
	}

	want := time.Date(2025, 3, 7, 9, 0, 0, 0, time.UTC).Unix()
	if recs[0].Start != want {
		t.Errorf("Start = %d, want %d (offset folded into UTC)", recs[0].Start, want)
	}
}

func TestReadYAML_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing title", "records:\n  - start: 2025-01-01\n    end: 2025-01-02\n"},
		{"missing start", "records:\n  - title: x\n    end: 2025-01-02\n"},
		{"bad time", "records:\n  - title: x\n    start: yesterday\n    end: 2025-01-02\n"},
		{"not yaml", "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadYAML(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReadYAML_Empty(t *testing.T) {
	recs, err := ReadYAML(strings.NewReader("records: []\n"))
	if err != nil {
		t.Fatalf("ReadYAML failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d records, want 0", len(recs))
	}
}
