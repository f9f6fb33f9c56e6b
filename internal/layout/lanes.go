package layout

// OverlapMode selects the conflict predicate used when packing segments
// into lanes.
type OverlapMode int

const (
	// OverlapStrict treats intervals as half-open: touching endpoints do
	// not conflict. Used for same-day timed events.
	OverlapStrict OverlapMode = iota

	// OverlapTouch treats intervals as closed: adjacency still reserves
	// the lane. Used for full-day and multi-day bars so two bars meeting
	// on a boundary day do not visually collide.
	OverlapTouch
)

// String returns the mode name as it appears in configuration.
func (m OverlapMode) String() string {
	if m == OverlapTouch {
		return "touch"
	}
	return "strict"
}

// ParseOverlapMode parses an overlap mode name. Unknown names fall back to
// strict.
func ParseOverlapMode(s string) OverlapMode {
	if s == "touch" {
		return OverlapTouch
	}
	return OverlapStrict
}

// Overlaps reports whether the two intervals conflict under the mode.
func (m OverlapMode) Overlaps(aStart, aEnd, bStart, bEnd int64) bool {
	if m == OverlapTouch {
		return aStart <= bEnd && bStart <= aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// Assignment maps segments to lanes. Lanes is parallel to the segment slice
// given to AssignLanes; LaneCount (max index + 1) drives the cell's or
// group's total render height.
type Assignment struct {
	Lanes     []int
	LaneCount int
}

// AssignLanes packs segments into the minimum number of non-overlapping
// lanes using greedy first-fit interval coloring.
//
// Segments are processed in the order given — the order the data source
// returned them, sorted by start upstream — and are never re-sorted, so
// layout stays visually stable across re-renders. Each segment lands in the
// lowest-indexed lane holding no conflicting segment; when none is eligible
// a new lane is appended. Ties on identical start times resolve to input
// order, which makes the result deterministic. Greedy first-fit is optimal
// for interval graphs, so LaneCount never exceeds the maximum clique size
// of the overlap graph.
//
// There is no lane cap: pathological inputs (hundreds of fully overlapping
// segments) keep appending lanes. Callers bound record counts upstream.
func AssignLanes(segs []Segment, mode OverlapMode) Assignment {
	asg := Assignment{Lanes: make([]int, len(segs))}

	// lanes[i] holds the indices of segments already placed in lane i.
	var lanes [][]int

	for i, s := range segs {
		placed := false
		for li, members := range lanes {
			if laneFits(segs, members, s, mode) {
				lanes[li] = append(lanes[li], i)
				asg.Lanes[i] = li
				placed = true
				break
			}
		}
		if !placed {
			lanes = append(lanes, []int{i})
			asg.Lanes[i] = len(lanes) - 1
		}
	}

	asg.LaneCount = len(lanes)
	return asg
}

// laneFits reports whether s conflicts with no segment already in the lane.
func laneFits(segs []Segment, members []int, s Segment, mode OverlapMode) bool {
	for _, mi := range members {
		m := segs[mi]
		if mode.Overlaps(m.Start, m.End, s.Start, s.End) {
			return false
		}
	}
	return true
}

// Widen computes, for each segment, how many consecutive higher-indexed
// lanes are free of time-overlapping segments across its whole duration.
// Renderers expand a segment's width proportionally into that free space so
// a lone event in an otherwise-empty scope is not drawn lane-thin.
//
// When several equally wide expansions are possible the first found wins;
// that tie-break is implementation-defined and kept from the original
// behavior. The scan is O(lanes²) per scope, fine at the small lane counts
// a cell or group holds.
func Widen(segs []Segment, asg Assignment, mode OverlapMode) []int {
	extra := make([]int, len(segs))

	for i, s := range segs {
		lane := asg.Lanes[i]
		for l := lane + 1; l < asg.LaneCount; l++ {
			if laneBlocked(segs, asg, l, s, mode) {
				break
			}
			extra[i]++
		}
	}
	return extra
}

// laneBlocked reports whether any segment assigned to lane l overlaps s.
func laneBlocked(segs []Segment, asg Assignment, l int, s Segment, mode OverlapMode) bool {
	for j, other := range segs {
		if asg.Lanes[j] != l {
			continue
		}
		if mode.Overlaps(other.Start, other.End, s.Start, s.End) {
			return true
		}
	}
	return false
}

// GroupByCell buckets segments by their grid cell, preserving input order
// within each cell. The lane assigner runs once per bucket.
func GroupByCell(segs []Segment, cellCount int) [][]Segment {
	cells := make([][]Segment, cellCount)
	for _, s := range segs {
		if s.Cell < 0 || s.Cell >= cellCount {
			continue
		}
		cells[s.Cell] = append(cells[s.Cell], s)
	}
	return cells
}
