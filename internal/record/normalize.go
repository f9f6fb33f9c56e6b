package record

import "time"

// maxUTCOffset is the largest plausible UTC offset in seconds (UTC+14).
// Offsets beyond this are treated as a failed timezone computation.
const maxUTCOffset = 14 * 3600

// OffsetFunc returns the viewer's UTC offset in seconds at the given instant.
// It is evaluated independently for a record's start and end so that DST
// transitions falling between them are honored.
type OffsetFunc func(epochSec int64) int

// LocationOffset returns an OffsetFunc backed by a time.Location.
func LocationOffset(loc *time.Location) OffsetFunc {
	return func(sec int64) int {
		_, off := time.Unix(sec, 0).In(loc).Zone()
		return off
	}
}

// FixedOffset returns an OffsetFunc with a constant offset. Useful for tests
// and for callers that already resolved the viewer's offset.
func FixedOffset(seconds int) OffsetFunc {
	return func(int64) int { return seconds }
}

// Normalized is a Record corrected for grid placement: full-day sentinel
// values have been shifted into the viewer's local clock, and malformed
// ranges have been clamped.
type Normalized struct {
	Record
	FullDay bool
}

// Normalize converts a raw record into a grid-ready one.
//
// Full-day records (UTC-midnight-anchored dates) are shifted so each bound
// lands on the viewer's local midnight of the stored date: the epoch moves
// opposite to the UTC offset, so a western viewer's bar moves later and an
// eastern viewer's earlier. Timed records pass through unchanged; their
// epoch values are already meaningful in absolute time.
//
// A malformed range (End < Start) is clamped to a zero-length event at Start
// rather than rejected, so rendering degrades instead of blanking the view.
// If the offset lookup misbehaves (nil or out of the plausible range), the
// record is treated as timed, which renders it as a thin bar instead of
// dropping it.
func Normalize(r Record, offset OffsetFunc) Normalized {
	if r.End < r.Start {
		r.End = r.Start
	}
	n := Normalized{Record: r}

	if !r.IsFullDay() {
		return n
	}
	if offset == nil {
		return n
	}

	startOff := offset(r.Start)
	endOff := offset(r.End)
	if startOff < -maxUTCOffset || startOff > maxUTCOffset ||
		endOff < -maxUTCOffset || endOff > maxUTCOffset {
		return n
	}

	n.FullDay = true
	n.Start = r.Start - int64(startOff)
	n.End = r.End - int64(endOff)
	if n.End < n.Start {
		n.End = n.Start
	}
	return n
}

// NormalizeAll normalizes a slice of records, preserving input order.
// Input order is the engine's lane tie-break, so it is never re-sorted here.
func NormalizeAll(recs []Record, offset OffsetFunc) []Normalized {
	out := make([]Normalized, len(recs))
	for i, r := range recs {
		out[i] = Normalize(r, offset)
	}
	return out
}
