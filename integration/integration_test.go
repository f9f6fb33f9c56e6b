package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"timegrid/internal/db"
	"timegrid/internal/gantt"
	"timegrid/internal/grid"
	"timegrid/internal/layout"
	"timegrid/internal/record"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T) *db.SQLite {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	repo, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// createRecord is a helper to create and insert a record.
func createRecord(t *testing.T, repo *db.SQLite, title string, start, end int64, group string) *record.Record {
	t.Helper()
	r := &record.Record{Title: title, Start: start, End: end, GroupKey: group}
	if err := repo.CreateRecord(context.Background(), r); err != nil {
		t.Fatalf("failed to insert record %q: %v", title, err)
	}
	return r
}

func unix(t *testing.T, s string) int64 {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return ts.Unix()
}

// The full pipeline: rows in SQLite through normalization, segmentation and
// lane packing to geometry.
func TestStorageToMonthLayout(t *testing.T) {
	repo := openRepo(t)

	createRecord(t, repo, "conference",
		unix(t, "2025-03-10T00:00:00Z"), unix(t, "2025-03-12T00:00:00Z"), "")
	createRecord(t, repo, "review",
		unix(t, "2025-03-10T09:00:00Z"), unix(t, "2025-03-10T10:00:00Z"), "")

	anchor := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	b := grid.Month(anchor, true)

	recs, err := repo.ListByRange(context.Background(), b.StartUnix(), b.EndUnix())
	if err != nil {
		t.Fatalf("ListByRange: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("fetched %d records, want 2", len(recs))
	}

	norm := record.NormalizeAll(recs, record.FixedOffset(0))
	if !norm[0].FullDay {
		t.Error("conference should normalize as full-day")
	}

	e := layout.Engine{Mode: layout.ModeMonth, Metrics: layout.Metrics{CellWidth: 14, RowHeight: 1}}
	res := e.Layout(norm, b)

	// Both records overlap on March 10 and must land in separate lanes.
	lanes := map[int]bool{}
	for _, p := range res.Bars {
		if p.Cell == b.CellIndex(unix(t, "2025-03-10T12:00:00Z")) {
			lanes[p.Lane] = true
		}
	}
	if len(lanes) != 2 {
		t.Errorf("lanes on the shared day = %d, want 2", len(lanes))
	}
}

// The gantt controller driving fetches against the real repository.
func TestControllerAgainstSQLite(t *testing.T) {
	repo := openRepo(t)

	createRecord(t, repo, "build", unix(t, "2025-03-07T08:00:00Z"), unix(t, "2025-03-07T12:00:00Z"), "ci")
	createRecord(t, repo, "deploy", unix(t, "2025-03-07T12:00:00Z"), unix(t, "2025-03-07T13:00:00Z"), "ci")

	anchor := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	ctl := gantt.New(anchor, grid.UnitDay, 14, record.FixedOffset(0))

	req := ctl.Refresh()
	recs, err := repo.ListByRange(context.Background(), req.Bounds.StartUnix(), req.Bounds.EndUnix())
	if err != nil {
		t.Fatalf("ListByRange: %v", err)
	}
	if !ctl.Apply(req.Token, recs) {
		t.Fatal("controller rejected its own response")
	}
	if len(ctl.Records()) != 2 {
		t.Fatalf("controller holds %d records, want 2", len(ctl.Records()))
	}

	e := layout.Engine{
		Mode:    layout.ModeGantt,
		Overlap: layout.OverlapStrict,
		Metrics: layout.Metrics{RowHeight: 1, PixelsPerSecond: 1.0 / 3600},
	}
	res := e.Layout(ctl.Records(), ctl.Bounds())

	if len(res.Groups) != 1 || res.Groups[0].Key != "ci" {
		t.Fatalf("groups = %+v, want single ci group", res.Groups)
	}
	// Touching endpoints do not conflict under the strict predicate.
	if res.Groups[0].LaneCount != 1 {
		t.Errorf("lane count = %d, want 1", res.Groups[0].LaneCount)
	}
}

// A stale page's response must never overwrite the newest page.
func TestControllerStaleResponseAgainstSQLite(t *testing.T) {
	repo := openRepo(t)

	createRecord(t, repo, "this week", unix(t, "2025-03-07T08:00:00Z"), unix(t, "2025-03-07T09:00:00Z"), "")
	createRecord(t, repo, "next page", unix(t, "2025-03-21T08:00:00Z"), unix(t, "2025-03-21T09:00:00Z"), "")

	anchor := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	ctl := gantt.New(anchor, grid.UnitDay, 14, record.FixedOffset(0))

	first := ctl.Refresh()
	firstRecs, err := repo.ListByRange(context.Background(), first.Bounds.StartUnix(), first.Bounds.EndUnix())
	if err != nil {
		t.Fatalf("ListByRange: %v", err)
	}

	second := ctl.PageChange(1)
	secondRecs, err := repo.ListByRange(context.Background(), second.Bounds.StartUnix(), second.Bounds.EndUnix())
	if err != nil {
		t.Fatalf("ListByRange: %v", err)
	}

	// Newest lands first, stale straggles in afterwards.
	if !ctl.Apply(second.Token, secondRecs) {
		t.Fatal("current response rejected")
	}
	if ctl.Apply(first.Token, firstRecs) {
		t.Error("stale response applied")
	}

	for _, n := range ctl.Records() {
		if n.Title == "this week" && n.Start < second.Bounds.StartUnix() {
			t.Errorf("stale record %q visible on the new page", n.Title)
		}
	}
}
