package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"timegrid/internal/dateutil"
	"timegrid/internal/grid"
	"timegrid/internal/layout"
	"timegrid/internal/record"
)

func (a *App) renderCmd() *cobra.Command {
	var (
		mode string
		date string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Lay out a grid window and print the placements",
		Long: `Run one layout pass without opening the interactive viewer.

Computes the grid window around a date, fetches the records it covers,
runs the layout engine and prints every placement with its geometry.
Useful for scripting and for inspecting lane assignment.`,
		Example: `  timegrid render
  timegrid render --mode=gantt --date=2025-03-07
  timegrid render --mode=hour`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			anchor, err := dateutil.ParseDate(date)
			if err != nil {
				return err
			}
			loc, err := a.viewLocation()
			if err != nil {
				return err
			}
			anchor = anchor.In(loc)

			m := layout.ParseMode(mode)
			b := a.bounds(m, anchor)

			recs, err := a.repo.ListByRange(context.Background(), b.StartUnix(), b.EndUnix())
			if err != nil {
				return fmt.Errorf("listing records: %w", err)
			}
			norm := record.NormalizeAll(recs, record.LocationOffset(loc))

			engine := layout.Engine{
				Mode:    m,
				Overlap: layout.ParseOverlapMode(a.config.View.OverlapMode),
				Metrics: a.metrics(),
			}
			res := engine.Layout(norm, b)

			printResult(m, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "View mode: month, day, hour or gantt (defaults to config)")
	cmd.Flags().StringVar(&date, "date", "", "Anchor date (YYYY-MM-DD, defaults to today)")

	return cmd
}

// viewLocation resolves the configured timezone, defaulting to system local.
func (a *App) viewLocation() (*time.Location, error) {
	if a.config.View.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(a.config.View.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", a.config.View.Timezone, err)
	}
	return loc, nil
}

// bounds computes the grid window for a mode around an anchor.
func (a *App) bounds(m layout.Mode, anchor time.Time) grid.Bounds {
	switch m {
	case layout.ModeDay, layout.ModeHour:
		return grid.Days(anchor, a.config.View.DaysVisible)
	case layout.ModeGantt:
		step := grid.UnitDay
		if a.config.Gantt.Step == "hour" {
			step = grid.UnitHour
		}
		return grid.GanttPage(anchor, step, a.config.Gantt.StepCount, 0)
	default:
		return grid.Month(anchor, a.config.View.WeekStartsMonday)
	}
}

// metrics builds engine metrics from the configured layout values.
func (a *App) metrics() layout.Metrics {
	return layout.Metrics{
		CellWidth:       a.config.Layout.CellWidth,
		RowHeight:       a.config.Layout.RowHeight,
		PixelsPerHour:   a.config.Layout.PixelsPerHour,
		PixelsPerSecond: a.config.Gantt.PixelsPerSecond,
		Zoom:            a.config.Gantt.ZoomFactor,
		BarGutter:       a.config.Layout.BarGutter,
	}
}

func printResult(m layout.Mode, res layout.Result) {
	window := fmt.Sprintf("%s .. %s (%d %s cells)",
		res.Bounds.Start.Format("2006-01-02 15:04"),
		res.Bounds.End().Format("2006-01-02 15:04"),
		res.Bounds.CellCount, res.Bounds.Unit)
	fmt.Println(formatHeader(fmt.Sprintf("%s view: %s", m, window)))
	fmt.Println()

	if m == layout.ModeGantt {
		fmt.Printf("timeline width: %.0f\n\n", res.TotalWidth)
		for _, g := range res.Groups {
			name := g.Key
			if name == "" {
				name = "(ungrouped)"
			}
			fmt.Printf("%s  top=%.0f height=%.0f lanes=%d\n",
				formatHeader(name), g.Top, g.Height, g.LaneCount)
		}
		fmt.Println()
	}

	for _, p := range res.Bars {
		printPlaced("bar  ", p)
	}
	for _, p := range res.Timed {
		printPlaced("timed", p)
	}

	fmt.Println()
	fmt.Println(formatStats(fmt.Sprintf("%d bar placements, %d timed placements, max %d lanes per cell",
		len(res.Bars), len(res.Timed), res.LaneCountMax())))
}

func printPlaced(kind string, p layout.Placed) {
	caption := " "
	if p.Caption {
		caption = "*"
	}
	fmt.Printf("  %s %s lane=%d cell=%-3d left=%7.1f top=%7.1f w=%7.1f h=%5.1f  %s\n",
		formatMuted(kind), caption, p.Lane, p.Cell,
		p.Left, p.Top, p.Width, p.Height, p.Record.Title)
}
