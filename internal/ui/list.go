package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"timegrid/internal/dateutil"
	"timegrid/internal/record"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		week      bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records in a date range",
		Long: `List all records whose span touches a date range.

If no dates are specified, lists today's records.
If only --start is specified, lists records for that single day.
If both --start and --end are specified, lists records in that range (inclusive).
With --week, lists the current Monday-to-Sunday week instead.`,
		Example: `  timegrid list
  timegrid list --week
  timegrid list --start=2025-03-07
  timegrid list --start=2025-03-07 --end=2025-03-10`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			var from, to int64
			if week && startDate == "" {
				monday, sunday := dateutil.WeekRange(time.Now())
				from = monday.Unix()
				to = sunday.AddDate(0, 0, 1).Unix()
			} else {
				dateRange, err := dateutil.NewDateRange(startDate, endDate)
				if err != nil {
					return err
				}
				from = dateRange.Start.Unix()
				to = dateRange.End.AddDate(0, 0, 1).Unix() // end date inclusive
			}

			recs, err := a.repo.ListByRange(context.Background(), from, to)
			if err != nil {
				return fmt.Errorf("listing records: %w", err)
			}

			if len(recs) == 0 {
				fmt.Println("No records found in the specified date range.")
				return nil
			}

			offset := record.LocationOffset(time.Local)
			norm := record.NormalizeAll(recs, offset)

			// Title column gets whatever the terminal leaves after the
			// fixed-width id, kind and span columns.
			maxTitle := termWidth() - 40
			if maxTitle < 20 {
				maxTitle = 20
			}

			// Print records grouped by start date.
			var currentDate string
			for _, n := range norm {
				date := time.Unix(n.Start, 0).In(time.Local).Format("2006-01-02")
				if date != currentDate {
					if currentDate != "" {
						fmt.Println()
					}
					fmt.Println(formatHeader("=== " + date + " ==="))
					currentDate = date
				}
				PrintRecordRow(n, maxTitle)
			}

			var total int64
			for _, n := range norm {
				total += n.End - n.Start
			}

			fmt.Println()
			fmt.Println(formatStats(fmt.Sprintf("%d records · %s total", len(norm), FormatDuration(total))))
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVar(&week, "week", false, "List the current Monday-to-Sunday week")

	return cmd
}
