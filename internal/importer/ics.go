package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"timegrid/internal/record"
)

// ReadICS parses an iCalendar feed into records. All-day VEVENTs (VALUE=DATE
// bounds) convert to the UTC-midnight sentinel encoding; ICS declares DTEND
// exclusive for those, so one day is subtracted to reach the inclusive
// last-covered-day form used here. Recurring events (RRULE) are skipped:
// recurrence expansion is out of scope, and rendering only the seed instance
// would be misleading.
func ReadICS(r io.Reader) ([]*record.Record, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var recs []*record.Record
	for _, ve := range cal.Events() {
		if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
			continue
		}

		title := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			title = p.Value
		}
		if title == "" {
			title = "(untitled)"
		}

		start, err := ve.GetStartAt()
		if err != nil {
			continue // no usable DTSTART
		}
		end, err := ve.GetEndAt()
		if err != nil {
			end = start
		}

		rec := &record.Record{Title: title}

		if isDateOnly(ve) {
			rec.Start = utcMidnight(start)
			rec.End = utcMidnight(end.AddDate(0, 0, -1))
			if rec.End < rec.Start {
				rec.End = rec.Start
			}
		} else {
			rec.Start = start.Unix()
			rec.End = end.Unix()
		}

		// Raw property name: COLOR (RFC 7986) has no constant in every
		// library version.
		if p := ve.GetProperty("COLOR"); p != nil {
			rec.Color = p.Value
		}
		if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
			rec.GroupKey = p.Value
		}

		recs = append(recs, rec)
	}

	return recs, nil
}

// isDateOnly reports whether the event's DTSTART carries a date without
// time-of-day, either via VALUE=DATE or the bare YYYYMMDD form.
func isDateOnly(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}

func utcMidnight(t time.Time) int64 {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix()
}
