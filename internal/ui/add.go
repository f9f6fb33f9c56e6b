package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"timegrid/internal/dateutil"
	"timegrid/internal/record"
)

func (a *App) addCmd() *cobra.Command {
	var (
		start    string
		end      string
		colorHex string
		group    string
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new record",
		Long: `Add a new time record.

Bounds accept RFC 3339 timestamps or bare dates; bare dates make the
record full-day, with --end naming the last day it covers.

Example:
  timegrid add "Write documentation" --start=2025-03-07T09:00:00Z --end=2025-03-07T11:00:00Z
  timegrid add "Conference" --start=2025-03-07 --end=2025-03-10`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			startSec, err := dateutil.ParseInstant(start)
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			endSec, err := dateutil.ParseInstant(end)
			if err != nil {
				return fmt.Errorf("end: %w", err)
			}

			r := &record.Record{
				Title:    args[0],
				Start:    startSec,
				End:      endSec,
				Color:    colorHex,
				GroupKey: group,
			}

			ctx := context.Background()
			if err := a.repo.CreateRecord(ctx, r); err != nil {
				return fmt.Errorf("creating record: %w", err)
			}

			n := record.Normalize(*r, nil)
			fmt.Printf("Created record #%d: %s %s\n", r.ID, r.Title, FormatSpan(n))

			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start (YYYY-MM-DD or RFC 3339, required)")
	cmd.Flags().StringVar(&end, "end", "", "End (YYYY-MM-DD or RFC 3339, required)")
	cmd.Flags().StringVar(&colorHex, "color", "", "Display color (e.g. #3366cc)")
	cmd.Flags().StringVar(&group, "group", "", "Gantt group key")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (a *App) removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			var id int64
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
				return fmt.Errorf("invalid record id %q", args[0])
			}
			if err := a.repo.DeleteRecord(context.Background(), id); err != nil {
				return fmt.Errorf("removing record: %w", err)
			}
			fmt.Printf("Removed record #%d\n", id)
			return nil
		},
	}
	return cmd
}
