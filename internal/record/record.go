// Package record defines the schedulable time record model and its
// normalization into grid-ready values.
package record

// SecondsPerDay is the length of a nominal day in epoch seconds.
const SecondsPerDay = 86400

// Record is one schedulable item as delivered by the data source.
// Start and End are instants in epoch seconds with Start <= End expected;
// equal values denote a zero-length (instant) event.
type Record struct {
	ID       int64
	Title    string
	Start    int64
	End      int64
	Color    string // optional display tint, not used in layout math
	GroupKey string // optional, used only by the gantt grouping pass
}

// IsFullDay reports whether the record uses the full-day sentinel encoding:
// both bounds are exact multiples of 86400 when interpreted as UTC, i.e. the
// record was stored as a date without time-of-day.
func (r Record) IsFullDay() bool {
	return r.Start%SecondsPerDay == 0 && r.End%SecondsPerDay == 0
}

// Duration returns the record length in seconds, treating a malformed
// range (End < Start) as zero-length.
func (r Record) Duration() int64 {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}
