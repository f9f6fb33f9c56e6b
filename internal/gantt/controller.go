// Package gantt holds the paging and zoom state machine for the gantt
// timeline. The layout engine itself is synchronous and pure; this package
// owns the one asynchronous boundary, where record sets arrive from a fetch
// collaborator while the user keeps navigating. Every navigation trigger
// issues a Request carrying a monotonically increasing token, and only the
// response matching the latest token is ever applied. Stale responses are
// discarded silently, not treated as errors.
package gantt

import (
	"context"
	"time"

	"timegrid/internal/grid"
	"timegrid/internal/record"
)

// State is the controller's fetch state.
type State int

const (
	StateIdle State = iota
	StateLoading
)

func (s State) String() string {
	if s == StateLoading {
		return "loading"
	}
	return "idle"
}

// Fetcher hands back the records intersecting a half-open epoch range,
// sorted by start ascending. record.Repository satisfies it.
type Fetcher interface {
	ListByRange(ctx context.Context, start, end int64) ([]record.Record, error)
}

// Request describes one fetch the caller must run. The token ties the
// eventual response back to the navigation state that asked for it.
type Request struct {
	Token  uint64
	Bounds grid.Bounds
}

// Zoom limits. Outside this range bars degenerate to slivers or single
// bars outgrow the viewport.
const (
	minZoom = 0.25
	maxZoom = 8
)

// Controller tracks the visible gantt page and the in-flight fetch. It is
// not safe for concurrent use; a single update loop owns it and runs the
// fetches it requests on its behalf.
type Controller struct {
	anchor     time.Time
	step       grid.Unit
	stepCount  int
	pageOffset int
	zoom       float64
	offset     record.OffsetFunc

	state   State
	token   uint64
	bounds  grid.Bounds
	records []record.Normalized
}

// New returns an idle controller anchored at anchor. The first Request
// comes from Refresh; until its response is applied Records is empty.
func New(anchor time.Time, step grid.Unit, stepCount int, offset record.OffsetFunc) *Controller {
	c := &Controller{
		anchor:    anchor,
		step:      step,
		stepCount: stepCount,
		zoom:      1,
		offset:    offset,
	}
	c.bounds = grid.GanttPage(c.anchor, c.step, c.stepCount, c.pageOffset)
	return c
}

func (c *Controller) State() State                  { return c.state }
func (c *Controller) Bounds() grid.Bounds           { return c.bounds }
func (c *Controller) Records() []record.Normalized  { return c.records }
func (c *Controller) Zoom() float64                 { return c.zoom }
func (c *Controller) Step() grid.Unit               { return c.step }
func (c *Controller) PageOffset() int               { return c.pageOffset }

// Refresh recomputes bounds from the current navigation state and issues a
// fetch request for them.
func (c *Controller) Refresh() Request {
	c.bounds = grid.GanttPage(c.anchor, c.step, c.stepCount, c.pageOffset)
	c.token++
	c.state = StateLoading
	return Request{Token: c.token, Bounds: c.bounds}
}

// PageChange shifts the window by delta pages and issues a fetch for the
// new bounds. A trigger while a fetch is still in flight simply outdates
// the previous token.
func (c *Controller) PageChange(delta int) Request {
	c.pageOffset += delta
	return c.Refresh()
}

// ZoomChange scales the zoom factor, clamped to a sane range, and issues a
// fetch so geometry is recomputed against fresh records.
func (c *Controller) ZoomChange(factor float64) Request {
	if factor > 0 {
		c.zoom *= factor
	}
	if c.zoom < minZoom {
		c.zoom = minZoom
	}
	if c.zoom > maxZoom {
		c.zoom = maxZoom
	}
	return c.Refresh()
}

// StepTypeToggle switches between hour and day steps. The page offset
// resets: a "page 3 of hours" position is meaningless in days.
func (c *Controller) StepTypeToggle() Request {
	if c.step == grid.UnitDay {
		c.step = grid.UnitHour
	} else {
		c.step = grid.UnitDay
	}
	c.pageOffset = 0
	return c.Refresh()
}

// Rebase returns a fresh controller anchored at anchor, keeping the step,
// step count and zoom. The token sequence carries over so responses still in
// flight for the old anchor are stale against the rebased controller.
func (c *Controller) Rebase(anchor time.Time) *Controller {
	n := &Controller{
		anchor:    anchor,
		step:      c.step,
		stepCount: c.stepCount,
		zoom:      c.zoom,
		offset:    c.offset,
		token:     c.token,
	}
	n.bounds = grid.GanttPage(n.anchor, n.step, n.stepCount, n.pageOffset)
	return n
}

// Apply hands a fetch response to the controller. It reports whether the
// response was current; stale responses (token older than the latest
// request) leave all state untouched.
func (c *Controller) Apply(token uint64, recs []record.Record) bool {
	if token != c.token {
		return false
	}
	c.records = record.NormalizeAll(recs, c.offset)
	c.state = StateIdle
	return true
}

// Fail reports a fetch error for the given token. A current failure drops
// back to idle keeping the previously applied records; a stale one is
// ignored like any stale response.
func (c *Controller) Fail(token uint64) bool {
	if token != c.token {
		return false
	}
	c.state = StateIdle
	return true
}
